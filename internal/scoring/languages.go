package scoring

import (
	"fmt"
	"strings"
)

// LanguageScore is the fraction of required human languages the resume
// declares, matched exactly after trimming and case-folding. Either side
// being empty scores zero.
func LanguageScore(resumeLanguages, required []string) (float64, []string) {
	if len(required) == 0 || len(resumeLanguages) == 0 {
		return 0, nil
	}

	matched := 0
	var reasons []string
	for _, want := range required {
		for _, have := range resumeLanguages {
			if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have)) {
				matched++
				reasons = append(reasons, fmt.Sprintf("Speaks required language: %s", want))
				break
			}
		}
	}
	return float64(matched) / float64(len(required)), reasons
}
