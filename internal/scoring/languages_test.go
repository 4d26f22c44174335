package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageScore_Fraction(t *testing.T) {
	score, reasons := LanguageScore(
		[]string{"english", " Spanish "},
		[]string{"English", "Spanish", "German"})

	assert.InDelta(t, 2.0/3.0, score, 1e-9)
	assert.Equal(t, []string{
		"Speaks required language: English",
		"Speaks required language: Spanish",
	}, reasons)
}

func TestLanguageScore_EmptySides(t *testing.T) {
	score, reasons := LanguageScore(nil, []string{"English"})
	assert.Zero(t, score)
	assert.Empty(t, reasons)

	score, _ = LanguageScore([]string{"English"}, nil)
	assert.Zero(t, score)
}
