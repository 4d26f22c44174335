// Package render flattens resumes into deterministic text, both for the
// evaluation prompt and for embedding generation. The renderings are stable
// so identical resumes always produce identical text, which the evaluation
// cache depends on.
package render

import (
	"fmt"
	"strings"

	"github.com/jonathan/careerreco/internal/types"
)

// FormatResume produces the text representation sent to the evaluation model.
func FormatResume(resume *types.Resume) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", resume.DisplayName())

	sb.WriteString("## Education\n")
	if hasRealEducation(resume.Education) {
		for _, edu := range resume.Education {
			fmt.Fprintf(&sb, "- %s, %s\n", edu.Degree, edu.Institution)
		}
	} else {
		sb.WriteString("No formal education listed\n")
	}

	sb.WriteString("\n## Experience\n")
	if hasRealExperience(resume.Experience) {
		for _, exp := range resume.Experience {
			fmt.Fprintf(&sb, "- %s at %s", exp.Position, exp.Company)
			if exp.Description != "" {
				fmt.Fprintf(&sb, ": %s", exp.Description)
			}
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("No work experience listed\n")
	}

	sb.WriteString("\n## Skills\n")
	if len(resume.Skills) > 0 {
		sb.WriteString(strings.Join(resume.Skills, ", "))
		sb.WriteString("\n")
	} else {
		sb.WriteString("No specific skills listed\n")
	}

	if len(resume.Languages) > 0 {
		sb.WriteString("\n## Languages\n")
		for _, lang := range resume.Languages {
			if lang.Fluency != "" {
				fmt.Fprintf(&sb, "- %s (%s)\n", lang.Name, lang.Fluency)
			} else {
				fmt.Fprintf(&sb, "- %s\n", lang.Name)
			}
		}
	}

	if len(resume.Certifications) > 0 {
		sb.WriteString("\n## Certifications\n")
		for _, cert := range resume.Certifications {
			fmt.Fprintf(&sb, "- %s\n", cert)
		}
	}

	return sb.String()
}

// EmbeddingText builds the enriched text a resume embedding is computed from.
// Section labels are repeated so domain terms weigh more than boilerplate.
func EmbeddingText(resume *types.Resume) string {
	var parts []string

	if len(resume.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(resume.Skills, ", "))
	}
	for _, exp := range resume.Experience {
		if isPlaceholderExperience(exp) {
			continue
		}
		line := "Experience: " + exp.Position + " at " + exp.Company
		if exp.Description != "" {
			line += ". " + exp.Description
		}
		parts = append(parts, line)
	}
	for _, edu := range resume.Education {
		if isPlaceholderEducation(edu) {
			continue
		}
		parts = append(parts, "Education: "+edu.Degree+" from "+edu.Institution)
	}
	if names := resume.LanguageNames(); len(names) > 0 {
		parts = append(parts, "Languages: "+strings.Join(names, ", "))
	}
	if len(resume.Certifications) > 0 {
		parts = append(parts, "Certifications: "+strings.Join(resume.Certifications, ", "))
	}

	return strings.Join(parts, "\n")
}

func hasRealEducation(entries []types.Education) bool {
	for _, edu := range entries {
		if !isPlaceholderEducation(edu) {
			return true
		}
	}
	return false
}

func hasRealExperience(entries []types.Experience) bool {
	for _, exp := range entries {
		if !isPlaceholderExperience(exp) {
			return true
		}
	}
	return false
}

func isPlaceholderEducation(edu types.Education) bool {
	return edu.Degree == "" || edu.Degree == "Unspecified Degree"
}

func isPlaceholderExperience(exp types.Experience) bool {
	return exp.Position == "" || exp.Position == "Unspecified Position"
}
