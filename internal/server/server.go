// Package server provides the HTTP API for resume recommendations.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/server/ratelimit"
	"github.com/jonathan/careerreco/internal/types"
)

// Engine ranks a resume corpus against a job description.
type Engine interface {
	Rank(ctx context.Context, jobText string, resumes []*types.Resume, topN int) ([]*types.RankedResult, error)
}

// CorpusLoader supplies the resume corpus to rank. Usually backed by the
// store, swapped for a fixture in tests.
type CorpusLoader interface {
	LoadCorpus(ctx context.Context) ([]*types.Resume, error)
}

// Deps are the collaborators the server needs. All ranking engines are
// injected; the server owns no scoring logic.
type Deps struct {
	Engines map[string]Engine
	Corpus  CorpusLoader
	Logger  *zap.Logger
	Limiter *ratelimit.Limiter
}

// Config holds server configuration.
type Config struct {
	Addr        string
	DefaultTopN int
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	engines     map[string]Engine
	corpus      CorpusLoader
	limiter     *ratelimit.Limiter
	logger      *zap.Logger
	defaultTopN int
}

// New creates a server instance. Deps.Engines must contain an entry for every
// mode the API should accept.
func New(cfg Config, deps Deps) (*Server, error) {
	if len(deps.Engines) == 0 {
		return nil, fmt.Errorf("server requires at least one ranking engine")
	}
	if deps.Corpus == nil {
		return nil, fmt.Errorf("server requires a corpus loader")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter(ratelimit.DefaultConfig())
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = 10
	}

	s := &Server{
		engines:     deps.Engines,
		corpus:      deps.Corpus,
		limiter:     deps.Limiter,
		logger:      deps.Logger,
		defaultTopN: cfg.DefaultTopN,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/recommend", s.handleRecommend)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // ranking a corpus fans out into model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clientID extracts the client identifier from the request address.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
