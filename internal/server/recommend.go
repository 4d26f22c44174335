package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/careerreco/internal/ingestion"
	"github.com/jonathan/careerreco/internal/types"
)

// recommendRequest is the body of POST /api/recommend. Exactly one of
// job_text and job_url must be set.
type recommendRequest struct {
	JobText string `json:"job_text,omitempty"`
	JobURL  string `json:"job_url,omitempty"`
	Mode    string `json:"mode,omitempty"`
	TopN    int    `json:"top_n,omitempty"`
}

// recommendRecord is one ranked candidate, flattened for API consumers.
type recommendRecord struct {
	ID              string             `json:"id"`
	Score           float64            `json:"score"`
	Reasoning       string             `json:"reasoning,omitempty"`
	MatchReasons    []string           `json:"match_reasons"`
	SkillMatch      []types.SkillMatch `json:"skill_match,omitempty"`
	ExperienceMatch string             `json:"experience_match,omitempty"`
	EducationMatch  string             `json:"education_match,omitempty"`
	Strengths       []string           `json:"strengths,omitempty"`
	Weaknesses      []string           `json:"weaknesses,omitempty"`
}

type recommendResponse struct {
	Mode    string            `json:"mode"`
	Count   int               `json:"count"`
	Results []recommendRecord `json:"results"`
}

const defaultMode = "hybrid"

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	allowed, info := s.limiter.Allow(clientID(r))
	if !allowed {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
		s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.JobText == "" && req.JobURL == "" {
		s.errorResponse(w, http.StatusBadRequest, "one of job_text or job_url is required")
		return
	}
	if req.JobText != "" && req.JobURL != "" {
		s.errorResponse(w, http.StatusBadRequest, "job_text and job_url are mutually exclusive")
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = defaultMode
	}
	engine, ok := s.engines[mode]
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown mode: %s", mode))
		return
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.defaultTopN
	}

	jobText := req.JobText
	if req.JobURL != "" {
		text, _, err := ingestion.IngestFromURL(r.Context(), req.JobURL)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, fmt.Sprintf("failed to ingest job posting: %v", err))
			return
		}
		jobText = text
	}

	resumes, err := s.corpus.LoadCorpus(r.Context())
	if err != nil {
		s.logger.Error("failed to load corpus", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load resume corpus")
		return
	}

	start := time.Now()
	results, err := engine.Rank(r.Context(), jobText, resumes, topN)
	if err != nil {
		s.logger.Error("ranking failed", zap.String("mode", mode), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "ranking failed")
		return
	}

	s.logger.Info("recommendation served",
		zap.String("mode", mode),
		zap.Int("corpus_size", len(resumes)),
		zap.Int("results", len(results)),
		zap.Duration("duration", time.Since(start)))

	s.jsonResponse(w, http.StatusOK, recommendResponse{
		Mode:    mode,
		Count:   len(results),
		Results: toRecords(results),
	})
}

func toRecords(results []*types.RankedResult) []recommendRecord {
	records := make([]recommendRecord, 0, len(results))
	for _, result := range results {
		records = append(records, recommendRecord{
			ID:              result.ResumeID,
			Score:           result.Score,
			Reasoning:       result.Reasoning,
			MatchReasons:    result.MatchReasons,
			SkillMatch:      result.SkillMatch,
			ExperienceMatch: result.ExperienceMatch,
			EducationMatch:  result.EducationMatch,
			Strengths:       result.Strengths,
			Weaknesses:      result.Weaknesses,
		})
	}
	return records
}
