package types

// Education level tokens on the ordered scale used by the extractor and the
// education scorer. "other" covers associate/diploma-level mentions.
const (
	EducationNone      = "none"
	EducationOther     = "other"
	EducationBachelors = "bachelors"
	EducationMasters   = "masters"
	EducationPhD       = "phd"
)

// JobRequirements is the structured requirement set extracted from a job
// description. Produced fresh per ranking call and never mutated afterwards.
type JobRequirements struct {
	// Skills holds cue-phrase and statistically extracted skill terms,
	// deduplicated case-insensitively.
	Skills []string `json:"skills"`

	// YearsExperience is the highest years-of-experience floor found in the
	// text, 0 when unspecified.
	YearsExperience int `json:"years_experience"`

	// EducationLevel is the highest education level mentioned, one of the
	// Education* tokens.
	EducationLevel string `json:"education_level"`

	// EducationMentioned is true only when the text actually talks about
	// education. Match-reason generation gates on this flag, not on the level.
	EducationMentioned bool `json:"education_mentioned"`

	// EducationTerms are the raw education phrases found, kept for debugging.
	EducationTerms []string `json:"education_terms,omitempty"`

	// Languages are required human languages.
	Languages []string `json:"languages"`

	// Certifications are required certification names.
	Certifications []string `json:"certifications"`

	// FullText is the original job description, kept for semantic fallback
	// scoring against the job embedding.
	FullText string `json:"-"`
}
