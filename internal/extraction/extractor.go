// Package extraction turns raw job-description text into a structured
// requirement set: skills, years of experience, education level, human
// languages and certifications.
package extraction

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/careerreco/internal/types"
)

// Cue phrases that introduce skill mentions in job text.
var cuePhrases = []string{
	"experience in", "knowledge of", "skilled in", "proficient with",
	"familiar with", "expertise in", "background in", "ability to",
	"competent in", "trained in", "qualified in", "specializing in",
}

// cueWindowSize bounds how much text after a cue phrase is chunked for skills.
const cueWindowSize = 100

// maxStatisticalTerms caps how many n-gram terms supplement the cue skills.
const maxStatisticalTerms = 20

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s+years?(?:\s+of)?(?:\s+experience)?`)

var educationIndicators = []string{
	"degree", "bachelor", "master", "phd", "diploma", "certification",
	"graduated", "university",
}

var educationRequirementPhrases = []string{
	"degree required", "must have degree", "education required", "degree in",
	"qualified with",
}

var certificationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)certification(?:s)? (?:in|required|needed): ([^.]+)`),
	regexp.MustCompile(`(?i)certified ([^.]+)`),
	regexp.MustCompile(`(?i)require(?:s|d)? ([^.]+) certification`),
}

var sentenceSplitter = regexp.MustCompile(`[.!?\n]+`)

var wordPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+#]*`)

// ExtractRequirements derives a JobRequirements from free job-description
// text. Each phase degrades to empty/default values independently; an empty
// input yields an all-zero requirement set.
func ExtractRequirements(text string) *types.JobRequirements {
	req := &types.JobRequirements{
		Skills:         []string{},
		EducationLevel: types.EducationNone,
		Languages:      []string{},
		Certifications: []string{},
		FullText:       text,
	}
	if strings.TrimSpace(text) == "" {
		return req
	}

	skills := extractCueSkills(text)
	skills = append(skills, extractStatisticalTerms(text, skills)...)
	req.Skills = dedupeFold(skills)

	req.YearsExperience = extractYears(text)
	req.EducationLevel, req.EducationMentioned, req.EducationTerms = extractEducation(text)
	req.Languages = extractLanguages(text)
	req.Certifications = extractCertifications(text)

	return req
}

// extractCueSkills scans for cue phrases and chunks the bounded window of
// text following each occurrence into noun-phrase-like skill candidates.
// Indexes are taken in the lowercased text and sliced there too: lowercasing
// can change byte lengths, so offsets are not valid in the original string.
func extractCueSkills(text string) []string {
	lower := strings.ToLower(text)
	var skills []string

	for _, cue := range cuePhrases {
		idx := strings.Index(lower, cue)
		if idx < 0 {
			continue
		}
		start := idx + len(cue)
		end := start + cueWindowSize
		if end > len(lower) {
			end = len(lower)
		}
		skills = append(skills, nounPhrases(lower[start:end])...)
	}

	return skills
}

// nounPhrases approximates noun-phrase chunking: runs of content words,
// delimited by stopwords and punctuation, capped at four words.
func nounPhrases(fragment string) []string {
	var phrases []string
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		phrase := strings.Join(current, " ")
		if len(phrase) > 2 {
			phrases = append(phrases, phrase)
		}
		current = nil
	}

	token := strings.Builder{}
	emit := func() {
		word := token.String()
		token.Reset()
		if word == "" {
			return
		}
		if isStopword(strings.ToLower(word)) || len(current) >= 4 {
			flush()
			if isStopword(strings.ToLower(word)) {
				return
			}
		}
		current = append(current, word)
	}

	for _, r := range fragment {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '\'':
			token.WriteRune(r)
		case r == ' ' || r == '\t':
			emit()
		default:
			// Sentence punctuation ends both token and phrase.
			emit()
			flush()
		}
	}
	emit()
	flush()

	return phrases
}

// extractStatisticalTerms supplements cue-based skills with the most frequent
// 1-3 word terms over the stopword-filtered text.
func extractStatisticalTerms(text string, existing []string) []string {
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		if len(tok) < 2 || isStopword(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			term := strings.Join(tokens[i:i+n], " ")
			counts[term]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	// Frequency descending, lexicographic tie-break for determinism.
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[strings.ToLower(s)] = true
	}

	var selected []string
	for _, term := range terms {
		if len(selected) >= maxStatisticalTerms {
			break
		}
		if len(term) <= 3 || seen[term] {
			continue
		}
		seen[term] = true
		selected = append(selected, term)
	}
	return selected
}

// extractYears returns the highest years-of-experience floor mentioned, 0 when
// none is found.
func extractYears(text string) int {
	matches := yearsPattern.FindAllStringSubmatch(strings.ToLower(text), -1)
	years := 0
	for _, m := range matches {
		n := 0
		for _, r := range m[1] {
			n = n*10 + int(r-'0')
		}
		if n > years {
			years = n
		}
	}
	return years
}

// extractEducation classifies the highest education level mentioned and
// whether education was mentioned at all. The two are tracked independently:
// downstream match reasons gate on the mention flag.
func extractEducation(text string) (string, bool, []string) {
	lower := strings.ToLower(text)
	mentioned := false

	for _, phrase := range educationRequirementPhrases {
		if strings.Contains(lower, phrase) {
			mentioned = true
			break
		}
	}

	var terms []string
	for _, sentence := range sentenceSplitter.Split(text, -1) {
		sentLower := strings.ToLower(sentence)
		for _, indicator := range educationIndicators {
			if strings.Contains(sentLower, indicator) {
				mentioned = true
				if trimmed := strings.TrimSpace(sentence); trimmed != "" {
					terms = append(terms, trimmed)
				}
				break
			}
		}
	}

	level := types.EducationNone
	if mentioned {
		joined := strings.ToLower(strings.Join(terms, " "))
		switch {
		case strings.Contains(joined, "phd") || strings.Contains(joined, "doctor"):
			level = types.EducationPhD
		case strings.Contains(joined, "master") || strings.Contains(joined, "msc") || strings.Contains(joined, "ms "):
			level = types.EducationMasters
		case strings.Contains(joined, "bachelor") || strings.Contains(joined, "bs ") || strings.Contains(joined, "ba "):
			level = types.EducationBachelors
		case len(terms) > 0:
			level = types.EducationOther
		}
	}

	return level, mentioned, terms
}

// extractLanguages finds required human languages. A lexicon word only counts
// when capitalized in the source, the way a named entity appears.
func extractLanguages(text string) []string {
	var langs []string
	seen := make(map[string]bool)

	for _, word := range wordPattern.FindAllString(text, -1) {
		first := rune(word[0])
		if !unicode.IsUpper(first) {
			continue
		}
		canonical, ok := knownLanguages[strings.ToLower(word)]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		langs = append(langs, canonical)
	}

	if langs == nil {
		return []string{}
	}
	return langs
}

// extractCertifications unions the matches of the certification patterns.
func extractCertifications(text string) []string {
	var certs []string
	for _, pattern := range certificationPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			certs = append(certs, strings.TrimSpace(m[1]))
		}
	}
	return dedupeFold(certs)
}

// dedupeFold removes case-insensitive duplicates preserving first-seen order.
func dedupeFold(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
