// Package evaluation implements the LLM resume evaluator: prompt assembly,
// the call to the chat-completion client, layered response parsing and a
// bounded memo cache over (job text, resume text, model) triples.
package evaluation

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/llm"
	"github.com/jonathan/careerreco/internal/observability"
	"github.com/jonathan/careerreco/internal/prompts"
	"github.com/jonathan/careerreco/internal/render"
	"github.com/jonathan/careerreco/internal/types"
)

const rawResponseLogLimit = 300

// Evaluator judges one resume against one job description via the
// chat-completion client. A nil client is a valid degraded configuration
// (no API key): every evaluation then returns the neutral missing-key verdict.
type Evaluator struct {
	client llm.Client
	tier   llm.ModelTier
	cache  *verdictCache
	logger *zap.Logger

	systemPrompt string
	userTemplate string

	successes atomic.Uint64
	failures  atomic.Uint64
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTier selects the model tier used for evaluations.
func WithTier(tier llm.ModelTier) Option {
	return func(e *Evaluator) { e.tier = tier }
}

// WithCacheCapacity overrides the memo cache size.
func WithCacheCapacity(capacity int) Option {
	return func(e *Evaluator) { e.cache = newVerdictCache(capacity) }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

// New constructs an Evaluator. Pass a nil client to run without LLM access.
func New(client llm.Client, opts ...Option) *Evaluator {
	system, user := prompts.Evaluation()
	e := &Evaluator{
		client:       client,
		tier:         llm.TierStandard,
		cache:        newVerdictCache(DefaultCacheCapacity),
		logger:       zap.NewNop(),
		systemPrompt: system,
		userTemplate: user,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate renders the resume to its canonical text form and evaluates it.
func (e *Evaluator) Evaluate(ctx context.Context, jobText string, resume *types.Resume) *types.Verdict {
	return e.EvaluateText(ctx, jobText, render.FormatResume(resume))
}

// EvaluateText evaluates a pre-rendered resume text against the job text.
// It never returns an error: configuration problems, transport failures and
// malformed responses all degrade to flagged verdicts.
func (e *Evaluator) EvaluateText(ctx context.Context, jobText, resumeText string) *types.Verdict {
	if e.client == nil {
		verdict := types.DefaultVerdict()
		verdict.Reasoning = "LLM evaluation unavailable: no API key configured"
		verdict.Error = true
		verdict.MissingAPIKey = true
		return verdict
	}

	model := e.client.GetModel(e.tier)
	key := jobText + "\x1f" + resumeText + "\x1f" + model
	if verdict, ok := e.cache.get(key); ok {
		copied := *verdict
		return &copied
	}

	requestID := uuid.NewString()
	userPrompt := prompts.Fill(e.userTemplate, map[string]string{
		"JobDescription": jobText,
		"Resume":         resumeText,
	})

	raw, err := e.client.GenerateJSON(ctx, e.systemPrompt, userPrompt, e.tier)
	if err != nil {
		e.failures.Add(1)
		e.logger.Warn("evaluation call failed",
			zap.String("request_id", requestID),
			zap.String("model", model),
			zap.Error(err))
		return &types.Verdict{
			Score:           0,
			Reasoning:       "LLM evaluation failed: " + err.Error(),
			SkillMatch:      []types.SkillMatch{},
			ExperienceMatch: "Unknown",
			EducationMatch:  "Unknown",
			Strengths:       []string{},
			Weaknesses:      []string{},
			Error:           true,
		}
	}

	verdict, outcome := ParseVerdict(raw)
	if outcome == OutcomeDefault {
		e.failures.Add(1)
		e.logger.Warn("evaluation response unusable",
			zap.String("request_id", requestID),
			zap.String("raw", observability.Truncate(raw, rawResponseLogLimit)))
	} else {
		e.successes.Add(1)
		e.logger.Debug("evaluation parsed",
			zap.String("request_id", requestID),
			zap.String("outcome", string(outcome)),
			zap.Int("score", verdict.Score))
	}

	// Transport failures are not cached; parse outcomes are, default
	// included, since retrying the same pinned prompt yields the same text.
	e.cache.put(key, verdict)

	copied := *verdict
	return &copied
}

// Stats reports how many evaluations parsed usefully versus failed outright.
func (e *Evaluator) Stats() (successes, failures uint64) {
	return e.successes.Load(), e.failures.Load()
}

// CacheSize reports the current number of memoized verdicts.
func (e *Evaluator) CacheSize() int {
	return e.cache.len()
}
