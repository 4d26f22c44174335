package extraction

import (
	"strings"
	"testing"

	"github.com/jonathan/careerreco/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsFold(items []string, want string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), strings.ToLower(want)) {
			return true
		}
	}
	return false
}

func TestExtractRequirements_FullJobDescription(t *testing.T) {
	text := "Requires 5+ years experience in Python and AWS. Bachelor's degree required."

	req := ExtractRequirements(text)

	assert.Equal(t, 5, req.YearsExperience)
	assert.Equal(t, types.EducationBachelors, req.EducationLevel)
	assert.True(t, req.EducationMentioned)
	assert.True(t, containsFold(req.Skills, "python"), "skills should include python: %v", req.Skills)
	assert.True(t, containsFold(req.Skills, "aws"), "skills should include aws: %v", req.Skills)
	assert.Equal(t, text, req.FullText)
}

func TestExtractRequirements_EmptyText(t *testing.T) {
	req := ExtractRequirements("")

	assert.Empty(t, req.Skills)
	assert.Zero(t, req.YearsExperience)
	assert.Equal(t, types.EducationNone, req.EducationLevel)
	assert.False(t, req.EducationMentioned)
	assert.Empty(t, req.Languages)
	assert.Empty(t, req.Certifications)
}

func TestExtractRequirements_Idempotent(t *testing.T) {
	text := "Looking for someone with knowledge of Kubernetes, Docker and Go. " +
		"3 years of experience required. Master's degree in Computer Science preferred. " +
		"Must speak English and German. AWS certification required."

	first := ExtractRequirements(text)
	second := ExtractRequirements(text)

	assert.Equal(t, first, second)
}

func TestExtractYears_TakesMaximum(t *testing.T) {
	req := ExtractRequirements("2 years of experience with Go, 7+ years experience overall.")
	assert.Equal(t, 7, req.YearsExperience)
}

func TestExtractEducation_Levels(t *testing.T) {
	cases := []struct {
		text  string
		level string
	}{
		{"PhD in machine learning required.", types.EducationPhD},
		{"Master's degree in statistics.", types.EducationMasters},
		{"Bachelor degree in CS required.", types.EducationBachelors},
		{"Graduated from a technical university.", types.EducationOther},
		{"We build rockets.", types.EducationNone},
	}

	for _, tc := range cases {
		req := ExtractRequirements(tc.text)
		assert.Equal(t, tc.level, req.EducationLevel, "text: %s", tc.text)
	}
}

func TestExtractEducation_MentionedIndependentOfLevel(t *testing.T) {
	// Indicator word present but no classifiable level.
	req := ExtractRequirements("Graduated candidates preferred.")
	assert.True(t, req.EducationMentioned)
	assert.Equal(t, types.EducationOther, req.EducationLevel)

	req = ExtractRequirements("Fast-paced startup environment.")
	assert.False(t, req.EducationMentioned)
}

func TestExtractLanguages_CapitalizedOnly(t *testing.T) {
	req := ExtractRequirements("Must be fluent in English and Spanish. We polish our craft daily.")

	assert.Contains(t, req.Languages, "English")
	assert.Contains(t, req.Languages, "Spanish")
	assert.NotContains(t, req.Languages, "Polish")
}

func TestExtractCertifications_Patterns(t *testing.T) {
	req := ExtractRequirements(
		"Certifications required: AWS Solutions Architect. " +
			"Must be certified Kubernetes administrator. " +
			"We require a PMP certification for this role.")

	assert.True(t, containsFold(req.Certifications, "aws solutions architect"), "got %v", req.Certifications)
	assert.True(t, containsFold(req.Certifications, "kubernetes"), "got %v", req.Certifications)
	assert.True(t, containsFold(req.Certifications, "pmp"), "got %v", req.Certifications)
}

func TestExtractCueSkills_Window(t *testing.T) {
	req := ExtractRequirements("We want expertise in distributed systems and event streaming platforms.")

	assert.True(t, containsFold(req.Skills, "distributed systems"), "got %v", req.Skills)
}

func TestExtractCueSkills_ByteLengtheningLowercase(t *testing.T) {
	// "Ⱥ" (2 bytes) lowercases to "ⱥ" (3 bytes), so cue positions found in
	// the lowercased text sit past the end of the original string.
	text := strings.Repeat("Ⱥ", 100) + "experience in Python"

	var req *types.JobRequirements
	assert.NotPanics(t, func() { req = ExtractRequirements(text) })
	assert.True(t, containsFold(req.Skills, "python"), "got %v", req.Skills)
}

func TestExtractStatisticalTerms_DedupedAgainstCueSkills(t *testing.T) {
	req := ExtractRequirements("Experience in Python. Python Python Python.")

	count := 0
	for _, s := range req.Skills {
		if strings.EqualFold(s, "python") {
			count++
		}
	}
	assert.Equal(t, 1, count, "python should appear once: %v", req.Skills)
}

func TestExtractRequirements_SkillCapAndLength(t *testing.T) {
	// Statistical terms are capped at 20 and must be longer than 3 chars.
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("alpha beta gamma delta epsilon zeta kappa sigma omega lambda ")
	}
	req := ExtractRequirements(sb.String())

	require.NotEmpty(t, req.Skills)
	assert.LessOrEqual(t, len(req.Skills), 20)
	for _, s := range req.Skills {
		assert.Greater(t, len(s), 3)
	}
}
