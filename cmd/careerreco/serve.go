package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerreco/internal/config"
	"github.com/jonathan/careerreco/internal/server"
	"github.com/jonathan/careerreco/internal/store"
	"github.com/jonathan/careerreco/internal/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the recommendation API server",
	Long:  "Start an HTTP server exposing POST /api/recommend and GET /healthz.",
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")

	rootCmd.AddCommand(serveCmd)
}

// llmEngineAdapter lifts the LLM engine's error-free Rank into the server's
// Engine interface.
type llmEngineAdapter struct {
	engine interface {
		Rank(ctx context.Context, jobText string, resumes []*types.Resume, topN int) []*types.RankedResult
	}
}

func (a llmEngineAdapter) Rank(ctx context.Context, jobText string, resumes []*types.Resume, topN int) ([]*types.RankedResult, error) {
	return a.engine.Rank(ctx, jobText, resumes, topN), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	logger, err := newLogger(true)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	db, err := store.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	engines, err := buildEngines(ctx, cfg, logger)
	if err != nil {
		return err
	}

	available := map[string]server.Engine{
		"llm": llmEngineAdapter{engine: engines.llm},
	}
	if engines.nlp != nil {
		available["nlp"] = engines.nlp
	}
	if engines.hybrid != nil {
		available["hybrid"] = engines.hybrid
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}

	srv, err := server.New(server.Config{
		Addr:        addr,
		DefaultTopN: cfg.TopN,
	}, server.Deps{
		Engines: available,
		Corpus:  db,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
