// Package main provides the entry point for the career recommendation engine.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/config"
	"github.com/jonathan/careerreco/internal/embedding"
	"github.com/jonathan/careerreco/internal/evaluation"
	"github.com/jonathan/careerreco/internal/llm"
	"github.com/jonathan/careerreco/internal/observability"
	"github.com/jonathan/careerreco/internal/ranking"
)

var rootCmd = &cobra.Command{
	Use:   "careerreco",
	Short: "Hybrid resume recommendation engine",
	Long:  "careerreco ranks a corpus of candidate resumes against a job description, combining statistical scoring with LLM judgment.",
}

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. JSON output when serving, console
// output for interactive commands.
func newLogger(json bool) (*zap.Logger, error) {
	return observability.NewLogger(json, verbose)
}

// engineSet holds the ranking engines that could be built from the available
// credentials. Missing credentials disable engines rather than failing the
// whole process.
type engineSet struct {
	embedder embedding.Embedder
	nlp      *ranking.NLPEngine
	llm      *ranking.LLMEngine
	hybrid   *ranking.HybridEngine
}

// buildEngines wires embedder, LLM client and evaluator into the three
// ranking engines. An engine whose collaborators are unavailable stays nil.
func buildEngines(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*engineSet, error) {
	set := &engineSet{}

	var embedder embedding.Embedder
	if cfg.EmbeddingAPIKey != "" {
		httpEmbedder, err := embedding.NewHTTPEmbedder(
			cfg.EmbeddingAPIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel, cfg.EmbeddingDimensions,
			embedding.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create embedder: %w", err)
		}
		embedder = httpEmbedder
		set.embedder = embedder
		set.nlp = ranking.NewNLPEngine(embedder, logger)
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = geminiClient
	}

	tier := llm.TierStandard
	if cfg.ModelTier != "" {
		tier = llm.ModelTier(cfg.ModelTier)
	}
	evaluator := evaluation.New(client,
		evaluation.WithTier(tier),
		evaluation.WithCacheCapacity(cfg.CacheCapacity),
		evaluation.WithLogger(logger))
	set.llm = ranking.NewLLMEngine(evaluator, logger)

	if set.nlp != nil {
		set.hybrid = ranking.NewHybridEngine(set.nlp, set.llm, cfg.NLPWeight, cfg.LLMWeight,
			ranking.WithHybridLogger(logger))
	}

	return set, nil
}
