package ranking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/embedding"
	"github.com/jonathan/careerreco/internal/extraction"
	"github.com/jonathan/careerreco/internal/scoring"
	"github.com/jonathan/careerreco/internal/types"
)

// Component weights. They sum to exactly 1.0 so the final score is a true
// weighted average of the component scores.
const (
	weightSimilarity     = 0.40
	weightExperience     = 0.25
	weightSkillMatch     = 0.20
	weightEducation      = 0.05
	weightLanguages      = 0.05
	weightCertifications = 0.05
)

// NLPEngine ranks resumes by the weighted combination of the six feature
// scorers. It is the cheap full-corpus stage of the hybrid pipeline.
type NLPEngine struct {
	embedder embedding.Embedder
	logger   *zap.Logger
}

// NewNLPEngine constructs the engine. The embedder is required: similarity
// scoring embeds the job text on every ranking call.
func NewNLPEngine(embedder embedding.Embedder, logger *zap.Logger) *NLPEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NLPEngine{embedder: embedder, logger: logger}
}

// Rank extracts requirements from the job text, scores every resume that
// carries an embedding, and returns the topN results ordered by score.
// Resumes without an embedding are skipped as a precondition, not an error;
// a resume whose scoring fails is dropped and logged, never fatal.
func (e *NLPEngine) Rank(ctx context.Context, jobText string, resumes []*types.Resume, topN int) ([]*types.RankedResult, error) {
	req := extraction.ExtractRequirements(jobText)

	jobVector, err := e.embedder.Embed(ctx, jobText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	results := make([]*types.RankedResult, 0, len(resumes))
	for _, resume := range resumes {
		if !resume.HasEmbedding() {
			continue
		}
		result, err := e.scoreResume(ctx, req, jobVector, resume)
		if err != nil {
			e.logger.Warn("resume scoring failed",
				zap.String("resume_id", resume.ID),
				zap.Error(err))
			continue
		}
		results = append(results, result)
	}

	sortByScore(results)
	return top(results, topN), nil
}

func (e *NLPEngine) scoreResume(ctx context.Context, req *types.JobRequirements, jobVector []float32, resume *types.Resume) (*types.RankedResult, error) {
	reasons := []string{}

	similarity := embedding.Cosine(jobVector, resume.Embedding)

	skillScore, skillReasons, err := scoring.SkillMatchScore(ctx, e.embedder, req.Skills, resume.Skills)
	if err != nil {
		return nil, err
	}
	reasons = append(reasons, skillReasons...)

	candidateYears := scoring.TotalExperienceYears(resume.Experience)
	experienceScore, experienceReasons := scoring.ExperienceScore(candidateYears, req.YearsExperience)
	reasons = append(reasons, experienceReasons...)

	educationScore, educationReasons := scoring.EducationScore(resume.Education, req)
	reasons = append(reasons, educationReasons...)

	languageScore, languageReasons := scoring.LanguageScore(resume.LanguageNames(), req.Languages)
	reasons = append(reasons, languageReasons...)

	certScore, certReasons, err := scoring.CertificationScore(ctx, e.embedder, resume.Certifications, req, jobVector)
	if err != nil {
		return nil, err
	}
	reasons = append(reasons, certReasons...)

	components := types.ScoreComponents{
		types.ComponentSimilarity:     similarity,
		types.ComponentExperience:     experienceScore,
		types.ComponentSkillMatch:     skillScore,
		types.ComponentEducation:      educationScore,
		types.ComponentLanguages:      languageScore,
		types.ComponentCertifications: certScore,
	}

	score := weightSimilarity*similarity +
		weightExperience*experienceScore +
		weightSkillMatch*skillScore +
		weightEducation*educationScore +
		weightLanguages*languageScore +
		weightCertifications*certScore

	return &types.RankedResult{
		ResumeID:     resume.ID,
		Resume:       resume,
		Score:        score,
		Components:   components,
		MatchReasons: reasons,
		NLPScore:     score,
	}, nil
}
