package types

// SkillMatch is the model's judgment on one required skill.
type SkillMatch struct {
	Skill      string `json:"skill"`
	Match      bool   `json:"match"`
	Importance string `json:"importance,omitempty"`
}

// Verdict is the parsed (or best-effort recovered) structured judgment from
// the language model about one resume/job pair. Score and Reasoning are always
// populated, even under total parse failure.
type Verdict struct {
	Score           int          `json:"score"`
	Reasoning       string       `json:"reasoning"`
	SkillMatch      []SkillMatch `json:"skill_match,omitempty"`
	ExperienceMatch string       `json:"experience_match,omitempty"`
	EducationMatch  string       `json:"education_match,omitempty"`
	Strengths       []string     `json:"strengths,omitempty"`
	Weaknesses      []string     `json:"weaknesses,omitempty"`

	// Error marks degraded verdicts (missing key, failed call, unparseable
	// response). Never surfaced as a Go error to ranking callers.
	Error         bool `json:"error,omitempty"`
	MissingAPIKey bool `json:"missing_api_key,omitempty"`
}

// DefaultVerdict returns the neutral verdict used when recovery of a model
// response only partially succeeds.
func DefaultVerdict() *Verdict {
	return &Verdict{
		Score:           50,
		Reasoning:       "Parsing the full response was not possible.",
		SkillMatch:      []SkillMatch{},
		ExperienceMatch: "Unknown",
		EducationMatch:  "Unknown",
		Strengths:       []string{},
		Weaknesses:      []string{},
	}
}
