package types

// Score component names. Every ranked result carries exactly these six.
const (
	ComponentSimilarity     = "similarity"
	ComponentExperience     = "experience"
	ComponentSkillMatch     = "skill_match"
	ComponentEducation      = "education"
	ComponentLanguages      = "languages"
	ComponentCertifications = "certifications"
)

// ScoreComponents maps component name to its normalized score. Similarity may
// be slightly negative and experience may exceed 1 up to 1.5.
type ScoreComponents map[string]float64

// RankedResult is one entry of a ranked recommendation list. Constructed per
// request, never persisted. ResumeID is the stable identity used to match
// results across the NLP and LLM stages.
type RankedResult struct {
	ResumeID     string          `json:"id"`
	Resume       *Resume         `json:"resume,omitempty"`
	Score        float64         `json:"score"`
	Components   ScoreComponents `json:"score_components,omitempty"`
	MatchReasons []string        `json:"match_reasons"`

	// LLM-path fields, empty on pure NLP results.
	RawScore        int          `json:"raw_score,omitempty"`
	Reasoning       string       `json:"reasoning,omitempty"`
	SkillMatch      []SkillMatch `json:"skill_match,omitempty"`
	ExperienceMatch string       `json:"experience_match,omitempty"`
	EducationMatch  string       `json:"education_match,omitempty"`
	Strengths       []string     `json:"strengths,omitempty"`
	Weaknesses      []string     `json:"weaknesses,omitempty"`

	// Hybrid-path fields.
	NLPScore float64 `json:"nlp_score,omitempty"`
	LLMScore float64 `json:"llm_score,omitempty"`
}
