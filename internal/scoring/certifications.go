package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/careerreco/internal/embedding"
	"github.com/jonathan/careerreco/internal/types"
)

const (
	certRelevanceThreshold = 0.3
	certRelevantCredit     = 0.2
	certRelevantCap        = 0.8
	certMinimalCredit      = 0.1
	certMinimalCap         = 0.3
)

// CertificationScore scores certifications on a three-step ladder: exact
// matches against explicitly required certifications, then semantic relevance
// of the candidate's certifications to the job text, then minimal credit for
// holding any certification at all. The last step attaches no reasons.
// Required certifications with zero exact matches fall through to the later
// steps instead of scoring a hard zero.
func CertificationScore(ctx context.Context, embedder embedding.Embedder, certifications []string, req *types.JobRequirements, jobVector []float32) (float64, []string, error) {
	if len(certifications) == 0 {
		return 0, nil, nil
	}

	if len(req.Certifications) > 0 {
		matched := 0
		var reasons []string
		for _, want := range req.Certifications {
			for _, have := range certifications {
				if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have)) {
					matched++
					reasons = append(reasons, fmt.Sprintf("Has required certification: %s", have))
					break
				}
			}
		}
		if matched > 0 {
			return float64(matched) / float64(len(req.Certifications)), reasons, nil
		}
	}

	if embedder != nil && len(jobVector) > 0 {
		vectors, err := embedder.EmbedBatch(ctx, certifications)
		if err != nil {
			return 0, nil, fmt.Errorf("certification relevance scoring failed: %w", err)
		}
		relevant := 0
		var reasons []string
		for i, vec := range vectors {
			if embedding.Cosine(vec, jobVector) > certRelevanceThreshold {
				relevant++
				reasons = append(reasons, fmt.Sprintf("Has relevant certification: %s", certifications[i]))
			}
		}
		if relevant > 0 {
			score := certRelevantCredit * float64(relevant)
			if score > certRelevantCap {
				score = certRelevantCap
			}
			return score, reasons, nil
		}
	}

	score := certMinimalCredit * float64(len(certifications))
	if score > certMinimalCap {
		score = certMinimalCap
	}
	return score, nil, nil
}
