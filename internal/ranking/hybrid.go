package ranking

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/types"
)

// llmCandidateLimit bounds how many NLP-ranked resumes are sent to the LLM
// stage per request.
const llmCandidateLimit = 20

// Default blend when the configured weights are unusable.
const (
	defaultNLPWeight = 0.4
	defaultLLMWeight = 0.6
)

// NLPRankFunc is the injectable full-corpus ranking stage. The default is
// NLPEngine.Rank.
type NLPRankFunc func(ctx context.Context, jobText string, resumes []*types.Resume, topN int) ([]*types.RankedResult, error)

// HybridEngine fuses NLP and LLM rankings: NLP over the whole corpus, LLM
// over the NLP top candidates, then a weighted linear combination keyed by
// resume identity.
type HybridEngine struct {
	nlpRank   NLPRankFunc
	llmEngine *LLMEngine
	nlpWeight float64
	llmWeight float64
	logger    *zap.Logger
}

// HybridOption configures a HybridEngine.
type HybridOption func(*HybridEngine)

// WithNLPRankFunc replaces the NLP ranking stage.
func WithNLPRankFunc(fn NLPRankFunc) HybridOption {
	return func(e *HybridEngine) { e.nlpRank = fn }
}

// WithHybridLogger attaches a logger.
func WithHybridLogger(logger *zap.Logger) HybridOption {
	return func(e *HybridEngine) { e.logger = logger }
}

// NewHybridEngine constructs the fusion engine. Weights are normalized to
// sum to 1 so the compensating scale-up for un-evaluated resumes stays
// consistent; a non-positive weight sum falls back to the 0.4/0.6 default.
func NewHybridEngine(nlpEngine *NLPEngine, llmEngine *LLMEngine, nlpWeight, llmWeight float64, opts ...HybridOption) *HybridEngine {
	sum := nlpWeight + llmWeight
	if sum <= 0 {
		nlpWeight, llmWeight = defaultNLPWeight, defaultLLMWeight
	} else if sum != 1.0 {
		nlpWeight /= sum
		llmWeight /= sum
	}

	e := &HybridEngine{
		llmEngine: llmEngine,
		nlpWeight: nlpWeight,
		llmWeight: llmWeight,
		logger:    zap.NewNop(),
	}
	if nlpEngine != nil {
		e.nlpRank = nlpEngine.Rank
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the normalized blend weights.
func (e *HybridEngine) Weights() (nlpWeight, llmWeight float64) {
	return e.nlpWeight, e.llmWeight
}

// Rank runs the full pipeline: NLP over every resume, LLM over the NLP top
// candidates, then the weighted merge. Resumes the LLM never saw keep their
// NLP score scaled by the full weight budget so they are not structurally
// penalized against evaluated ones.
func (e *HybridEngine) Rank(ctx context.Context, jobText string, resumes []*types.Resume, topN int) ([]*types.RankedResult, error) {
	nlpResults, err := e.nlpRank(ctx, jobText, resumes, len(resumes))
	if err != nil {
		return nil, err
	}
	if len(nlpResults) == 0 {
		return []*types.RankedResult{}, nil
	}

	limit := llmCandidateLimit
	if limit > len(nlpResults) {
		limit = len(nlpResults)
	}
	candidates := make([]*types.Resume, 0, limit)
	for _, result := range nlpResults[:limit] {
		candidates = append(candidates, result.Resume)
	}

	llmResults := e.llmEngine.Rank(ctx, jobText, candidates, limit)
	llmByID := make(map[string]*types.RankedResult, len(llmResults))
	for _, result := range llmResults {
		llmByID[result.ResumeID] = result
	}

	combined := make([]*types.RankedResult, 0, len(nlpResults))
	for _, nlpResult := range nlpResults {
		merged := &types.RankedResult{
			ResumeID:     nlpResult.ResumeID,
			Resume:       nlpResult.Resume,
			Components:   nlpResult.Components,
			MatchReasons: nlpResult.MatchReasons,
			NLPScore:     nlpResult.Score,
		}

		if llmResult, ok := llmByID[nlpResult.ResumeID]; ok {
			merged.Score = e.nlpWeight*nlpResult.Score + e.llmWeight*llmResult.Score
			merged.LLMScore = llmResult.Score
			merged.MatchReasons = append(append([]string{}, nlpResult.MatchReasons...), llmResult.MatchReasons...)
			merged.RawScore = llmResult.RawScore
			merged.Reasoning = llmResult.Reasoning
			merged.SkillMatch = llmResult.SkillMatch
			merged.ExperienceMatch = llmResult.ExperienceMatch
			merged.EducationMatch = llmResult.EducationMatch
			merged.Strengths = llmResult.Strengths
			merged.Weaknesses = llmResult.Weaknesses
		} else {
			// Un-evaluated resumes get the full weight budget applied to
			// their NLP score.
			merged.Score = nlpResult.Score * (e.nlpWeight + e.llmWeight)
		}

		combined = append(combined, merged)
	}

	evaluated, failed := e.llmEngine.Stats()
	e.logger.Debug("hybrid ranking complete",
		zap.Int("corpus", len(resumes)),
		zap.Int("nlp_ranked", len(nlpResults)),
		zap.Int("llm_candidates", limit),
		zap.Uint64("llm_evaluated", evaluated),
		zap.Uint64("llm_failed", failed))

	sortByScore(combined)
	return top(combined, topN), nil
}
