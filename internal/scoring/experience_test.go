package scoring

import (
	"testing"

	"github.com/jonathan/careerreco/internal/types"
	"github.com/stretchr/testify/assert"
)

func yearsPtr(v float64) *float64 { return &v }

func TestTotalExperienceYears_ExplicitYears(t *testing.T) {
	entries := []types.Experience{
		{Position: "Engineer", Years: yearsPtr(3.5)},
		{Position: "Senior Engineer", Years: yearsPtr(2)},
	}
	assert.InDelta(t, 5.5, TotalExperienceYears(entries), 1e-9)
}

func TestTotalExperienceYears_FromDates(t *testing.T) {
	entries := []types.Experience{
		{Position: "Engineer", StartDate: "2020-01-01", EndDate: "2022-01-01"},
	}
	assert.InDelta(t, 2.0, TotalExperienceYears(entries), 0.05)
}

func TestTotalExperienceYears_OngoingEndDate(t *testing.T) {
	entries := []types.Experience{
		{Position: "Engineer", StartDate: "2024-01-01", EndDate: "present"},
	}
	assert.Greater(t, TotalExperienceYears(entries), 1.0)
}

func TestTotalExperienceYears_UnparseableEntriesIgnored(t *testing.T) {
	entries := []types.Experience{
		{Position: "Unspecified Position"},
		{Position: "Engineer", StartDate: "sometime", EndDate: "later"},
		{Position: "Analyst", Years: yearsPtr(1)},
	}
	assert.InDelta(t, 1.0, TotalExperienceYears(entries), 1e-9)
}

func TestExperienceScore_OverQualifiedCappedAt150Percent(t *testing.T) {
	score, reasons := ExperienceScore(10, 5)
	assert.InDelta(t, 1.5, score, 1e-9)
	assert.NotEmpty(t, reasons)

	score, _ = ExperienceScore(6, 5)
	assert.InDelta(t, 1.2, score, 1e-9)
}

func TestExperienceScore_UnderQualifiedCappedAtOne(t *testing.T) {
	score, reasons := ExperienceScore(3, 5)
	assert.InDelta(t, 0.6, score, 1e-9)
	assert.Empty(t, reasons)
}

func TestExperienceScore_NoRequirement(t *testing.T) {
	score, reasons := ExperienceScore(2, 0)
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Empty(t, reasons)

	score, _ = ExperienceScore(0.5, 0)
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestExperienceScore_Bounds(t *testing.T) {
	for _, tc := range []struct {
		candidate float64
		required  int
	}{
		{0, 0}, {0, 10}, {100, 1}, {5, 5}, {4.9, 5},
	} {
		score, _ := ExperienceScore(tc.candidate, tc.required)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.5)
	}
}
