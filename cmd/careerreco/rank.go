package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/config"
	"github.com/jonathan/careerreco/internal/ingestion"
	"github.com/jonathan/careerreco/internal/render"
	"github.com/jonathan/careerreco/internal/store"
	"github.com/jonathan/careerreco/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank stored resumes against a job description",
	Long:  "Rank every resume in the database against a job description given as a text file or URL, using statistical scoring, LLM judgment, or both.",
	RunE:  runRank,
}

var (
	rankJobFile      string
	rankJobURL       string
	rankMode         string
	rankTopN         int
	rankEmbedMissing bool
	rankJSON         bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankJobFile, "job", "j", "", "Path to text file containing the job description")
	rankCmd.Flags().StringVarP(&rankJobURL, "url", "u", "", "URL to fetch the job posting from")
	rankCmd.Flags().StringVarP(&rankMode, "mode", "m", "hybrid", "Ranking mode: nlp, llm, or hybrid")
	rankCmd.Flags().IntVarP(&rankTopN, "top-n", "n", 0, "Number of results to return (default from config)")
	rankCmd.Flags().BoolVar(&rankEmbedMissing, "embed-missing", false, "Compute and store embeddings for resumes that lack one")
	rankCmd.Flags().BoolVar(&rankJSON, "json", false, "Output results as JSON")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	if rankJobFile == "" && rankJobURL == "" {
		return fmt.Errorf("either --job or --url must be provided")
	}
	if rankJobFile != "" && rankJobURL != "" {
		return fmt.Errorf("--job and --url are mutually exclusive; provide only one")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	logger, err := newLogger(false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()

	var jobText string
	if rankJobFile != "" {
		jobText, _, err = ingestion.IngestFromFile(rankJobFile)
	} else {
		jobText, _, err = ingestion.IngestFromURL(ctx, rankJobURL)
	}
	if err != nil {
		return fmt.Errorf("failed to ingest job description: %w", err)
	}

	db, err := store.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	resumes, err := db.LoadCorpus(ctx)
	if err != nil {
		return fmt.Errorf("failed to load resume corpus: %w", err)
	}
	logger.Info("corpus loaded", zap.Int("resumes", len(resumes)))

	engines, err := buildEngines(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if rankEmbedMissing {
		if err := embedMissing(ctx, engines, db, resumes, logger); err != nil {
			return err
		}
	}

	topN := rankTopN
	if topN <= 0 {
		topN = cfg.TopN
	}

	var results []*types.RankedResult
	switch rankMode {
	case "nlp":
		if engines.nlp == nil {
			return fmt.Errorf("nlp mode requires EMBEDDING_API_KEY")
		}
		results, err = engines.nlp.Rank(ctx, jobText, resumes, topN)
	case "llm":
		results = engines.llm.Rank(ctx, jobText, resumes, topN)
	case "hybrid":
		if engines.hybrid == nil {
			return fmt.Errorf("hybrid mode requires EMBEDDING_API_KEY")
		}
		results, err = engines.hybrid.Rank(ctx, jobText, resumes, topN)
	default:
		return fmt.Errorf("unknown mode: %s (expected nlp, llm, or hybrid)", rankMode)
	}
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	return printResults(results, rankJSON)
}

// embedMissing computes and stores embeddings for resumes that lack one, so
// they can participate in the statistical path on this and future runs.
func embedMissing(ctx context.Context, engines *engineSet, db *store.Store, resumes []*types.Resume, logger *zap.Logger) error {
	if engines.embedder == nil {
		return fmt.Errorf("--embed-missing requires EMBEDDING_API_KEY")
	}

	embedded := 0
	for _, resume := range resumes {
		if resume.HasEmbedding() {
			continue
		}
		vector, err := engines.embedder.Embed(ctx, render.EmbeddingText(resume))
		if err != nil {
			logger.Warn("failed to embed resume",
				zap.String("resume_id", resume.ID),
				zap.Error(err))
			continue
		}
		if err := db.SaveEmbedding(ctx, resume.ID, vector); err != nil {
			return err
		}
		resume.Embedding = vector
		embedded++
	}
	if embedded > 0 {
		logger.Info("embedded resumes", zap.Int("count", embedded))
	}
	return nil
}

func printResults(results []*types.RankedResult, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No matching resumes found.")
		return nil
	}

	for i, result := range results {
		name := result.ResumeID
		if result.Resume != nil {
			name = fmt.Sprintf("%s (%s)", result.Resume.DisplayName(), result.ResumeID)
		}
		fmt.Printf("%2d. %-50s %.3f\n", i+1, name, result.Score)
		for _, reason := range result.MatchReasons {
			fmt.Printf("      - %s\n", reason)
		}
		if result.Reasoning != "" {
			fmt.Printf("      %s\n", result.Reasoning)
		}
	}
	return nil
}
