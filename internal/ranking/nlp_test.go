package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerreco/internal/types"
)

type stubEmbedder struct {
	vec []float32
}

func (s stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vec, nil
}

func (s stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vec
	}
	return out, nil
}

// batchFailEmbedder embeds single texts fine but fails batch calls.
type batchFailEmbedder struct {
	stubEmbedder
}

func (batchFailEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("batch endpoint down")
}

func yearsPtr(v float64) *float64 { return &v }

func testResume(id string, embedded bool) *types.Resume {
	r := &types.Resume{
		ID:     id,
		UserID: "user-" + id,
		Skills: []string{"Python", "AWS", "Docker"},
		Experience: []types.Experience{
			{Position: "Engineer", Company: "Acme", Years: yearsPtr(5)},
		},
		Education: []types.Education{
			{Degree: "Bachelor of Science", Institution: "State U"},
		},
	}
	if embedded {
		r.Embedding = []float32{1, 0}
	}
	r.Normalize()
	return r
}

func TestWeightsSumToOne(t *testing.T) {
	sum := weightSimilarity + weightExperience + weightSkillMatch +
		weightEducation + weightLanguages + weightCertifications
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestNLPEngine_ExcludesResumesWithoutEmbedding(t *testing.T) {
	engine := NewNLPEngine(stubEmbedder{vec: []float32{1, 0}}, nil)
	resumes := []*types.Resume{
		testResume("a", true),
		testResume("b", false), // no embedding
		testResume("c", true),
	}

	results, err := engine.Rank(context.Background(), "Requires 3 years experience in Python.", resumes, 10)

	require.NoError(t, err)
	assert.Len(t, results, len(resumes)-1)
	for _, result := range results {
		assert.NotEqual(t, "b", result.ResumeID)
	}
}

func TestNLPEngine_ScoreIsWeightedComponentSum(t *testing.T) {
	engine := NewNLPEngine(stubEmbedder{vec: []float32{1, 0}}, nil)
	resumes := []*types.Resume{testResume("a", true)}

	results, err := engine.Rank(context.Background(), "Requires 3 years experience in Python.", resumes, 10)

	require.NoError(t, err)
	require.Len(t, results, 1)

	result := results[0]
	require.Len(t, result.Components, 6)
	expected := weightSimilarity*result.Components[types.ComponentSimilarity] +
		weightExperience*result.Components[types.ComponentExperience] +
		weightSkillMatch*result.Components[types.ComponentSkillMatch] +
		weightEducation*result.Components[types.ComponentEducation] +
		weightLanguages*result.Components[types.ComponentLanguages] +
		weightCertifications*result.Components[types.ComponentCertifications]
	assert.InDelta(t, expected, result.Score, 1e-9)
	assert.Equal(t, result.Score, result.NLPScore)
}

func TestNLPEngine_SortedDescendingAndBounded(t *testing.T) {
	engine := NewNLPEngine(stubEmbedder{vec: []float32{1, 0}}, nil)

	strong := testResume("strong", true)
	weak := testResume("weak", true)
	weak.Skills = nil
	weak.Experience = nil
	weak.Education = nil
	weak.Normalize()

	results, err := engine.Rank(context.Background(),
		"Requires 5 years experience in Python and AWS. Bachelor degree required.",
		[]*types.Resume{weak, strong}, 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "strong", results[0].ResumeID)
}

func TestNLPEngine_JobEmbeddingFailureIsFatal(t *testing.T) {
	engine := NewNLPEngine(failEmbedder{}, nil)

	_, err := engine.Rank(context.Background(), "job", []*types.Resume{testResume("a", true)}, 5)
	assert.Error(t, err)
}

type failEmbedder struct{}

func (failEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("embedding service down")
}

func (failEmbedder) EmbedBatch(_ context.Context, _ []string) ([][]float32, error) {
	return nil, errors.New("embedding service down")
}

func TestNLPEngine_ScoringErrorDropsOnlyThatResume(t *testing.T) {
	engine := NewNLPEngine(batchFailEmbedder{stubEmbedder{vec: []float32{1, 0}}}, nil)

	// Empty job text: no required skills, so only the resume holding
	// certifications triggers a batch embedding call, which fails.
	withCerts := testResume("with-certs", true)
	withCerts.Certifications = []string{"CKA"}
	clean := testResume("clean", true)

	results, err := engine.Rank(context.Background(), "", []*types.Resume{withCerts, clean}, 10)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "clean", results[0].ResumeID)
}

func TestNLPEngine_EmptyCorpus(t *testing.T) {
	engine := NewNLPEngine(stubEmbedder{vec: []float32{1, 0}}, nil)

	results, err := engine.Rank(context.Background(), "any job", nil, 5)

	require.NoError(t, err)
	assert.Empty(t, results)
}
