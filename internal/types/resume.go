// Package types defines the shared data records for the recommendation pipeline.
package types

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Education is a single education entry on a resume.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
}

// Experience is a single work experience entry. Duration comes from the
// explicit Years field when present, otherwise from StartDate/EndDate.
type Experience struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Years       *float64 `json:"years,omitempty"`
	StartDate   string   `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     string   `json:"end_date,omitempty"`   // YYYY-MM-DD, empty means ongoing
}

// Language is a human language declared on a resume. Stored resumes contain
// either a bare string ("Spanish") or an object with name and fluency.
type Language struct {
	Name    string `json:"name"`
	Fluency string `json:"fluency,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and object encodings.
func (l *Language) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		l.Name = s
		l.Fluency = ""
		return nil
	}

	type languageObject Language
	var obj languageObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("language entry is neither string nor object: %w", err)
	}
	*l = Language(obj)
	return nil
}

// Resume is a candidate resume joined with its owner's profile data.
type Resume struct {
	ID             string       `json:"id"`
	UserID         string       `json:"user_id"`
	Name           string       `json:"name,omitempty"`
	Email          string       `json:"email,omitempty"`
	Phone          string       `json:"phone,omitempty"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Skills         []string     `json:"skills"`
	Languages      []Language   `json:"languages"`
	Certifications []string     `json:"certifications"`
	Embedding      []float32    `json:"-"`
}

// Profile holds the account data joined onto resumes by UserID.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// DisplayName returns the candidate's name, synthesizing a placeholder from
// the user ID when the profile carried no usable name.
func (r *Resume) DisplayName() string {
	if name := strings.TrimSpace(r.Name); name != "" {
		return name
	}
	id := r.UserID
	if id == "" {
		id = "Unknown"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return "Candidate " + id
}

// Normalize ensures every list field is non-nil so no resume reaches scoring
// with a missing iterable. Empty education and experience get placeholder
// entries matching what the web layer expects to render.
func (r *Resume) Normalize() {
	if len(r.Experience) == 0 {
		r.Experience = []Experience{{
			Position: "Unspecified Position",
			Company:  "No company information available",
		}}
	}
	if len(r.Education) == 0 {
		r.Education = []Education{{
			Degree:      "Unspecified Degree",
			Institution: "No institution information available",
		}}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.Certifications == nil {
		r.Certifications = []string{}
	}
}

// HasEmbedding reports whether the resume carries a non-empty embedding vector.
func (r *Resume) HasEmbedding() bool {
	return len(r.Embedding) > 0
}

// LanguageNames returns the declared language names, dropping empty entries.
func (r *Resume) LanguageNames() []string {
	names := make([]string, 0, len(r.Languages))
	for _, lang := range r.Languages {
		if strings.TrimSpace(lang.Name) != "" {
			names = append(names, lang.Name)
		}
	}
	return names
}

// DecodeEmbedding decodes a base64-encoded little-endian float32 array as
// stored by the resume table.
func DecodeEmbedding(encoded string) ([]float32, error) {
	if encoded == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedding base64: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("embedding byte length %d is not a multiple of 4", len(raw))
	}

	vector := make([]float32, len(raw)/4)
	for i := range vector {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		vector[i] = math.Float32frombits(bits)
	}
	return vector, nil
}

// EncodeEmbedding is the inverse of DecodeEmbedding, used when persisting
// freshly generated vectors.
func EncodeEmbedding(vector []float32) string {
	raw := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(raw[i*4:], math.Float32bits(v))
	}
	return base64.StdEncoding.EncodeToString(raw)
}
