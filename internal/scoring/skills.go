// Package scoring implements the per-feature scorers. Each scorer is a pure
// function of (resume fields, requirements) returning a normalized score plus
// human-readable match reasons for its positive contributions.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/careerreco/internal/embedding"
)

const (
	exactSkillScore     = 1.0
	substringSkillScore = 0.8
	skillAcceptFloor    = 0.5

	// Phase-B semantic matching kicks in only when direct matches cover
	// less than this fraction of the required skills.
	directCoverageFloor = 0.7

	semanticHalfWeight  = 0.5
	directBlendWeight   = 0.7
	semanticBlendWeight = 0.3
)

// SkillSimilarity scores how well one resume skill satisfies one required
// skill. Exact match outranks substring containment, which outranks plain
// word overlap.
func SkillSimilarity(required, candidate string) float64 {
	a := strings.ToLower(strings.TrimSpace(required))
	b := strings.ToLower(strings.TrimSpace(candidate))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return exactSkillScore
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringSkillScore
	}

	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	union := len(setA)
	overlap := 0
	seenB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		if seenB[w] {
			continue
		}
		seenB[w] = true
		if setA[w] {
			overlap++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(overlap) / float64(union)
}

// SkillMatchScore runs the two-phase skill matcher. Phase A greedily assigns
// each required skill its best-matching unused resume skill, accepting only
// matches above the floor so no resume skill is consumed twice. Phase B adds
// embedding-based credit for leftover skills when direct coverage is low.
// The embedder may be nil, which disables phase B.
func SkillMatchScore(ctx context.Context, embedder embedding.Embedder, required, resumeSkills []string) (float64, []string, error) {
	if len(required) == 0 {
		return 0, nil, nil
	}

	used := make([]bool, len(resumeSkills))
	var directSum float64
	var reasons []string
	var unmatched []string
	matchedCount := 0

	for _, reqSkill := range required {
		best := -1
		bestScore := 0.0
		for j, skill := range resumeSkills {
			if used[j] {
				continue
			}
			if s := SkillSimilarity(reqSkill, skill); s > bestScore {
				bestScore = s
				best = j
			}
		}
		if best >= 0 && bestScore > skillAcceptFloor {
			used[best] = true
			directSum += bestScore
			matchedCount++
			reasons = append(reasons, fmt.Sprintf("Has required skill: %s", resumeSkills[best]))
		} else {
			unmatched = append(unmatched, reqSkill)
		}
	}

	direct := directSum / float64(len(required))
	coverage := float64(matchedCount) / float64(len(required))

	semantic := 0.0
	if coverage < directCoverageFloor && embedder != nil && len(unmatched) > 0 {
		var unused []string
		for j, skill := range resumeSkills {
			if !used[j] {
				unused = append(unused, skill)
			}
		}
		if len(unused) > 0 {
			s, err := semanticSkillScore(ctx, embedder, unmatched, unused)
			if err != nil {
				return 0, nil, fmt.Errorf("semantic skill matching failed: %w", err)
			}
			semantic = s * semanticHalfWeight
		}
	}

	score := direct
	if semantic > 0 {
		score = directBlendWeight*direct + semanticBlendWeight*semantic
	}
	return clamp01(score), reasons, nil
}

// semanticSkillScore embeds both leftover skill sets and averages each
// required skill's best cosine similarity against the unused resume skills.
func semanticSkillScore(ctx context.Context, embedder embedding.Embedder, required, unused []string) (float64, error) {
	reqVecs, err := embedder.EmbedBatch(ctx, required)
	if err != nil {
		return 0, err
	}
	unusedVecs, err := embedder.EmbedBatch(ctx, unused)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, rv := range reqVecs {
		best := 0.0
		for _, uv := range unusedVecs {
			if sim := embedding.Cosine(rv, uv); sim > best {
				best = sim
			}
		}
		total += best
	}
	return total / float64(len(required)), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
