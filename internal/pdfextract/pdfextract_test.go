package pdfextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_EmptyInput(t *testing.T) {
	_, err := ExtractText(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty PDF")
}

func TestExtractText_NotAPDF(t *testing.T) {
	_, err := ExtractText([]byte("this is plain text, not a PDF"))
	require.Error(t, err)
}

func TestExtractText_TruncatedHeader(t *testing.T) {
	_, err := ExtractText([]byte("%PDF-1.7"))
	require.Error(t, err)
}
