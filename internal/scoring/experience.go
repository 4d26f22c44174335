package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/careerreco/internal/types"
)

// overQualifiedCap rewards over-qualification up to 1.5x when the candidate
// meets the required floor. Under-qualified candidates are hard-capped at 1.0.
// The asymmetry is deliberate.
const overQualifiedCap = 1.5

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"January 2006",
	"Jan 2006",
}

// TotalExperienceYears sums experience entry durations. An explicit Years
// field wins; otherwise the duration is derived from start/end dates with an
// open end date meaning "still employed". Unparseable entries contribute zero.
func TotalExperienceYears(entries []types.Experience) float64 {
	total := 0.0
	for _, entry := range entries {
		if entry.Years != nil {
			total += *entry.Years
			continue
		}
		start, err := parseDate(entry.StartDate)
		if err != nil {
			continue
		}
		end := time.Now()
		if !isOngoing(entry.EndDate) {
			parsed, err := parseDate(entry.EndDate)
			if err != nil {
				continue
			}
			end = parsed
		}
		if end.After(start) {
			total += end.Sub(start).Hours() / 24 / 365
		}
	}
	return total
}

func isOngoing(endDate string) bool {
	switch strings.ToLower(strings.TrimSpace(endDate)) {
	case "", "present", "current", "now", "ongoing":
		return true
	}
	return false
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", value)
}

// ExperienceScore compares candidate years against the required floor.
// Meeting the floor scores candidate/required capped at 1.5; falling short
// scores the plain ratio capped at 1.0. A zero requirement caps at 1.0 too.
func ExperienceScore(candidateYears float64, requiredYears int) (float64, []string) {
	if requiredYears > 0 && candidateYears >= float64(requiredYears) {
		score := candidateYears / float64(requiredYears)
		if score > overQualifiedCap {
			score = overQualifiedCap
		}
		reason := fmt.Sprintf("Meets experience requirement: %.1f years (%d required)", candidateYears, requiredYears)
		return score, []string{reason}
	}

	divisor := requiredYears
	if divisor < 1 {
		divisor = 1
	}
	score := candidateYears / float64(divisor)
	if score > 1.0 {
		score = 1.0
	}
	return score, nil
}
