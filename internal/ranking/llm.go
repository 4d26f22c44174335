package ranking

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/types"
)

// neutralScore is substituted when a resume could not be evaluated.
const neutralScore = 0.5

// Judge evaluates one resume against one job description. It never fails:
// degraded conditions come back as flagged verdicts, and a nil return is
// treated as a judgment failure.
type Judge interface {
	Evaluate(ctx context.Context, jobText string, resume *types.Resume) *types.Verdict
}

// LLMEngine ranks resumes by the model's 0-100 verdict score, normalized to
// [0,1]. One bad resume never aborts the batch.
type LLMEngine struct {
	judge  Judge
	logger *zap.Logger

	evaluated atomic.Uint64
	failed    atomic.Uint64
}

// NewLLMEngine constructs the engine. A nil judge is tolerated: ranking then
// degrades to the neutral fallback list.
func NewLLMEngine(judge Judge, logger *zap.Logger) *LLMEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMEngine{judge: judge, logger: logger}
}

// Rank evaluates every resume and returns the topN ordered by normalized
// verdict score. An empty input returns an empty list; a batch where nothing
// could be evaluated returns the first topN resumes at the neutral score so
// the caller always receives results when resumes were supplied.
func (e *LLMEngine) Rank(ctx context.Context, jobText string, resumes []*types.Resume, topN int) []*types.RankedResult {
	if len(resumes) == 0 {
		return []*types.RankedResult{}
	}
	if e.judge == nil {
		return e.fallbackResults(resumes, topN)
	}

	results := make([]*types.RankedResult, 0, len(resumes))
	for _, resume := range resumes {
		verdict := e.judge.Evaluate(ctx, jobText, resume)
		if verdict == nil {
			e.failed.Add(1)
			e.logger.Warn("evaluation returned no verdict", zap.String("resume_id", resume.ID))
			results = append(results, neutralResult(resume))
			continue
		}
		if verdict.Error {
			e.failed.Add(1)
		} else {
			e.evaluated.Add(1)
		}
		results = append(results, buildLLMResult(resume, verdict))
	}

	if len(results) == 0 {
		return e.fallbackResults(resumes, topN)
	}

	sortByScore(results)
	return top(results, topN)
}

// Stats reports evaluated versus failed resume counts since construction.
func (e *LLMEngine) Stats() (evaluated, failed uint64) {
	return e.evaluated.Load(), e.failed.Load()
}

// buildLLMResult converts a verdict into a ranked result. Reasons are
// ordered: reasoning paragraph, strengths, gaps, then per-skill lines.
func buildLLMResult(resume *types.Resume, verdict *types.Verdict) *types.RankedResult {
	reasons := []string{}
	if verdict.Reasoning != "" {
		reasons = append(reasons, verdict.Reasoning)
	}
	for _, strength := range verdict.Strengths {
		reasons = append(reasons, "✓ Strength: "+strength)
	}
	for _, weakness := range verdict.Weaknesses {
		reasons = append(reasons, "△ Gap: "+weakness)
	}
	for _, sm := range verdict.SkillMatch {
		if sm.Match {
			reasons = append(reasons, fmt.Sprintf("Matched skill: %s", sm.Skill))
		} else {
			reasons = append(reasons, fmt.Sprintf("Missing skill: %s", sm.Skill))
		}
	}

	score := float64(verdict.Score) / 100.0
	return &types.RankedResult{
		ResumeID:        resume.ID,
		Resume:          resume,
		Score:           score,
		MatchReasons:    reasons,
		RawScore:        verdict.Score,
		Reasoning:       verdict.Reasoning,
		SkillMatch:      verdict.SkillMatch,
		ExperienceMatch: verdict.ExperienceMatch,
		EducationMatch:  verdict.EducationMatch,
		Strengths:       verdict.Strengths,
		Weaknesses:      verdict.Weaknesses,
		LLMScore:        score,
	}
}

func neutralResult(resume *types.Resume) *types.RankedResult {
	return &types.RankedResult{
		ResumeID:     resume.ID,
		Resume:       resume,
		Score:        neutralScore,
		MatchReasons: []string{"Evaluation unavailable for this resume"},
		RawScore:     50,
		LLMScore:     neutralScore,
	}
}

func (e *LLMEngine) fallbackResults(resumes []*types.Resume, topN int) []*types.RankedResult {
	count := len(resumes)
	if topN > 0 && topN < count {
		count = topN
	}
	results := make([]*types.RankedResult, 0, count)
	for _, resume := range resumes[:count] {
		results = append(results, neutralResult(resume))
	}
	return results
}
