// Package ranking contains the three ranking engines: the NLP weighted-score
// engine over the full corpus, the LLM judgment engine, and the hybrid fusion
// engine that blends the two.
package ranking

import (
	"sort"

	"github.com/jonathan/careerreco/internal/types"
)

// sortByScore orders results descending by final score. Stable so equal
// scores keep their relative order across runs.
func sortByScore(results []*types.RankedResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

func top(results []*types.RankedResult, n int) []*types.RankedResult {
	if n <= 0 || n >= len(results) {
		return results
	}
	return results[:n]
}
