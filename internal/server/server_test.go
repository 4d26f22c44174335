package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerreco/internal/server/ratelimit"
	"github.com/jonathan/careerreco/internal/types"
)

type fakeEngine struct {
	results []*types.RankedResult
	err     error
	gotJob  string
	gotTopN int
}

func (f *fakeEngine) Rank(_ context.Context, jobText string, _ []*types.Resume, topN int) ([]*types.RankedResult, error) {
	f.gotJob = jobText
	f.gotTopN = topN
	return f.results, f.err
}

type fakeCorpus struct {
	resumes []*types.Resume
	err     error
}

func (f *fakeCorpus) LoadCorpus(context.Context) ([]*types.Resume, error) {
	return f.resumes, f.err
}

func newTestServer(t *testing.T, engine Engine, corpus CorpusLoader) *Server {
	t.Helper()
	s, err := New(Config{Addr: ":0"}, Deps{
		Engines: map[string]Engine{"hybrid": engine, "nlp": engine},
		Corpus:  corpus,
	})
	require.NoError(t, err)
	return s
}

func postRecommend(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/recommend", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRecommend_ReturnsFlatRecords(t *testing.T) {
	engine := &fakeEngine{results: []*types.RankedResult{
		{
			ResumeID:     "r1",
			Score:        0.86,
			Reasoning:    "Strong backend background.",
			MatchReasons: []string{"Has required skill: Go"},
			SkillMatch:   []types.SkillMatch{{Skill: "Go", Match: true}},
			Strengths:    []string{"Distributed systems"},
		},
	}}
	s := newTestServer(t, engine, &fakeCorpus{resumes: []*types.Resume{{ID: "r1"}}})

	rec := postRecommend(t, s, `{"job_text": "Go engineer", "mode": "hybrid", "top_n": 5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp recommendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hybrid", resp.Mode)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "r1", resp.Results[0].ID)
	assert.Equal(t, 0.86, resp.Results[0].Score)
	assert.Equal(t, "Strong backend background.", resp.Results[0].Reasoning)
	assert.Equal(t, []string{"Has required skill: Go"}, resp.Results[0].MatchReasons)
	assert.Equal(t, "Go engineer", engine.gotJob)
	assert.Equal(t, 5, engine.gotTopN)
}

func TestRecommend_DefaultsModeAndTopN(t *testing.T) {
	engine := &fakeEngine{}
	s := newTestServer(t, engine, &fakeCorpus{})

	rec := postRecommend(t, s, `{"job_text": "Go engineer"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, engine.gotTopN)
}

func TestRecommend_RequiresJobInput(t *testing.T) {
	s := newTestServer(t, &fakeEngine{}, &fakeCorpus{})

	rec := postRecommend(t, s, `{"mode": "nlp"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "job_text or job_url")
}

func TestRecommend_RejectsBothJobInputs(t *testing.T) {
	s := newTestServer(t, &fakeEngine{}, &fakeCorpus{})

	rec := postRecommend(t, s, `{"job_text": "x", "job_url": "http://example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "mutually exclusive")
}

func TestRecommend_UnknownMode(t *testing.T) {
	s := newTestServer(t, &fakeEngine{}, &fakeCorpus{})

	rec := postRecommend(t, s, `{"job_text": "x", "mode": "psychic"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown mode")
}

func TestRecommend_IngestsJobURL(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>Platform engineer. Kubernetes required.</main></body></html>`))
	}))
	defer posting.Close()

	engine := &fakeEngine{}
	s := newTestServer(t, engine, &fakeCorpus{})

	rec := postRecommend(t, s, fmt.Sprintf(`{"job_url": %q}`, posting.URL))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, engine.gotJob, "Platform engineer.")
}

func TestRecommend_CorpusFailure(t *testing.T) {
	s := newTestServer(t, &fakeEngine{}, &fakeCorpus{err: fmt.Errorf("connection refused")})

	rec := postRecommend(t, s, `{"job_text": "x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecommend_EngineFailure(t *testing.T) {
	s := newTestServer(t, &fakeEngine{err: fmt.Errorf("embedding service down")}, &fakeCorpus{})

	rec := postRecommend(t, s, `{"job_text": "x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecommend_RateLimited(t *testing.T) {
	s, err := New(Config{Addr: ":0"}, Deps{
		Engines: map[string]Engine{"hybrid": &fakeEngine{}},
		Corpus:  &fakeCorpus{},
		Limiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: true, Limit: 10, Window: time.Minute, Burst: 1}),
	})
	require.NoError(t, err)

	rec := postRecommend(t, s, `{"job_text": "x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postRecommend(t, s, `{"job_text": "x"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &fakeEngine{}, &fakeCorpus{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestNew_RequiresEngines(t *testing.T) {
	_, err := New(Config{}, Deps{Corpus: &fakeCorpus{}})
	require.Error(t, err)
}

func TestNew_RequiresCorpus(t *testing.T) {
	_, err := New(Config{}, Deps{Engines: map[string]Engine{"nlp": &fakeEngine{}}})
	require.Error(t, err)
}
