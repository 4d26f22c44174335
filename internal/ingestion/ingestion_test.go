package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_Structure(t *testing.T) {
	input := "  # Senior Engineer\r\n\r\n\r\n\r\nWe   build    things.\n  - Go\n  - Postgres\n"

	result := CleanText(input)

	assert.Equal(t, "# Senior Engineer\n\nWe build things.\n  - Go\n  - Postgres", result)
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n  \n"))
}

func TestExtractJobText_UsesPostingSelector(t *testing.T) {
	html := `<html><body>
		<nav>Home | Jobs | About</nav>
		<div class="job-description"><p>We need a Go engineer.</p><p>5 years experience.</p></div>
		<footer>Copyright</footer>
	</body></html>`

	text, err := ExtractJobText(html)

	require.NoError(t, err)
	assert.Contains(t, text, "We need a Go engineer.")
	assert.Contains(t, text, "5 years experience.")
	assert.NotContains(t, text, "Copyright")
	assert.NotContains(t, text, "Home | Jobs")
}

func TestExtractJobText_FallsBackToBody(t *testing.T) {
	html := `<html><body><p>Plain posting text.</p><script>alert(1)</script></body></html>`

	text, err := ExtractJobText(html)

	require.NoError(t, err)
	assert.Contains(t, text, "Plain posting text.")
	assert.NotContains(t, text, "alert")
}

func TestIngestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>Backend role. Requires Go.</main></body></html>`))
	}))
	defer server.Close()

	text, meta, err := IngestFromURL(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, text, "Backend role. Requires Go.")
	require.NotNil(t, meta)
	assert.Equal(t, server.URL, meta.SourceURL)
	assert.Equal(t, 4, meta.WordCount)
}

func TestIngestFromURL_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, _, err := IngestFromURL(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, _, err := IngestFromURL(context.Background(), "not a url")
	require.Error(t, err)

	fetchErr, ok := err.(*FetchError)
	require.True(t, ok)
	assert.Contains(t, fetchErr.Message, "invalid URL")
}

func TestIngestFromFile(t *testing.T) {
	path := t.TempDir() + "/posting.txt"
	require.NoError(t, os.WriteFile(path, []byte("Platform team.\n\n\n\nRequires Kubernetes."), 0o644))

	text, meta, err := IngestFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "Platform team.\n\nRequires Kubernetes.", text)
	assert.Equal(t, "", meta.SourceURL)
}

func TestIngestFromFile_Missing(t *testing.T) {
	_, _, err := IngestFromFile(t.TempDir() + "/missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
