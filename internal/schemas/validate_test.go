package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateVerdict_Valid(t *testing.T) {
	doc := `{
		"score": 85,
		"reasoning": "Strong overlap on core skills.",
		"skill_match": [{"skill": "Python", "match": true, "importance": "high"}],
		"experience_match": "Good",
		"education_match": "Excellent",
		"strengths": ["Deep backend experience"],
		"weaknesses": ["No cloud certifications"]
	}`

	assert.NoError(t, ValidateVerdict(doc))
}

func TestValidateVerdict_MinimalValid(t *testing.T) {
	assert.NoError(t, ValidateVerdict(`{"score": 50, "reasoning": "ok"}`))
}

func TestValidateVerdict_MissingRequiredField(t *testing.T) {
	err := ValidateVerdict(`{"reasoning": "missing score"}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateVerdict_ScoreOutOfRange(t *testing.T) {
	err := ValidateVerdict(`{"score": 150, "reasoning": "too high"}`)
	require.Error(t, err)

	_, ok := err.(*ValidationError)
	assert.True(t, ok)
}

func TestValidateVerdict_WrongTypes(t *testing.T) {
	err := ValidateVerdict(`{"score": "85", "reasoning": 12}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(validationErr.Errors), 2)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{ not json`)
	require.Error(t, err)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "score", Message: "is required"},
	}}
	assert.Contains(t, err.Error(), "score")
	assert.Contains(t, err.Error(), "is required")
}
