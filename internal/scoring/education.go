package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/careerreco/internal/types"
)

// educationRanks orders education levels onto a numeric scale. Associate and
// diploma share a rank with the extractor's catch-all "other" level.
var educationRanks = map[string]int{
	types.EducationNone:      0,
	"high school":            1,
	"highschool":             1,
	"associate":              2,
	"diploma":                2,
	types.EducationOther:     2,
	types.EducationBachelors: 3,
	types.EducationMasters:   4,
	types.EducationPhD:       5,
}

// EducationRank maps a level token to its position on the ordered scale.
// Unknown tokens rank 0.
func EducationRank(level string) int {
	return educationRanks[strings.ToLower(strings.TrimSpace(level))]
}

// HighestEducation classifies every degree string on the resume and returns
// the highest level found.
func HighestEducation(entries []types.Education) string {
	highest := types.EducationNone
	for _, entry := range entries {
		level := classifyDegree(entry.Degree)
		if EducationRank(level) > EducationRank(highest) {
			highest = level
		}
	}
	return highest
}

func classifyDegree(degree string) string {
	d := strings.ToLower(degree)
	switch {
	case strings.Contains(d, "phd") || strings.Contains(d, "ph.d") || strings.Contains(d, "doctor"):
		return types.EducationPhD
	case strings.Contains(d, "master") || strings.Contains(d, "msc") || strings.Contains(d, "m.s") || strings.Contains(d, "mba"):
		return types.EducationMasters
	case strings.Contains(d, "bachelor") || strings.Contains(d, "bsc") || strings.Contains(d, "b.s") || strings.Contains(d, "b.a"):
		return types.EducationBachelors
	case strings.Contains(d, "associate"):
		return "associate"
	case strings.Contains(d, "diploma"):
		return "diploma"
	case strings.Contains(d, "high school"):
		return "high school"
	default:
		return types.EducationNone
	}
}

// EducationScore compares the candidate's highest level against the required
// one. No requirement means full credit. Match reasons only fire when the job
// text explicitly mentioned education.
func EducationScore(entries []types.Education, req *types.JobRequirements) (float64, []string) {
	requiredRank := EducationRank(req.EducationLevel)
	if requiredRank == 0 {
		return 1.0, nil
	}

	candidate := HighestEducation(entries)
	candidateRank := EducationRank(candidate)

	if candidateRank >= requiredRank {
		var reasons []string
		if req.EducationMentioned {
			reasons = []string{fmt.Sprintf("Meets education requirement: %s", candidate)}
		}
		return 1.0, reasons
	}
	if candidateRank == 0 {
		return 0, nil
	}
	return float64(candidateRank) / float64(requiredRank), nil
}
