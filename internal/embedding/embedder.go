// Package embedding provides the text-embedding collaborator: a fixed-
// dimension, model-pinned encoder behind an OpenAI-compatible HTTP endpoint.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Embedder encodes text into fixed-length float32 vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// HTTPEmbedder calls an OpenAI-compatible /embeddings endpoint.
type HTTPEmbedder struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures an HTTPEmbedder.
type Option func(*HTTPEmbedder)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(e *HTTPEmbedder) {
		e.httpClient = client
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(e *HTTPEmbedder) {
		e.logger = logger
	}
}

// NewHTTPEmbedder creates an embedder for the given endpoint and model.
func NewHTTPEmbedder(apiKey, baseURL, model string, dimensions int, opts ...Option) (*HTTPEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding API key is required")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("embedding base URL is required")
	}
	if model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}

	embedder := &HTTPEmbedder{
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(embedder)
	}
	return embedder, nil
}

// Dimensions returns the configured vector dimensionality.
func (e *HTTPEmbedder) Dimensions() int {
	return e.dimensions
}

type embeddingRequest struct {
	Input      any    `json:"input"` // string or []string
	Model      string `json:"model"`
	Dimensions int    `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Embed encodes a single text.
func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	return vectors[0], nil
}

// EmbedBatch encodes multiple texts in one request. Vectors are returned in
// input order.
func (e *HTTPEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(embeddingRequest{
		Input:      texts,
		Model:      e.model,
		Dimensions: e.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	e.logger.Debug("embedding request", zap.Int("texts", len(texts)), zap.String("model", e.model))

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse embedding response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("embedding API error: %s", parsed.Error.Message)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(parsed.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, entry := range parsed.Data {
		if entry.Index < 0 || entry.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", entry.Index)
		}
		vectors[entry.Index] = entry.Embedding
	}
	return vectors, nil
}
