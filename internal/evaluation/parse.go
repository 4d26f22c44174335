package evaluation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jonathan/careerreco/internal/schemas"
	"github.com/jonathan/careerreco/internal/types"
)

// ParseOutcome is the result of one pass through the layered verdict parser.
type ParseOutcome string

const (
	// OutcomeFull means the response parsed as schema-valid JSON.
	OutcomeFull ParseOutcome = "full"
	// OutcomePartial means individual fields were recovered from a
	// malformed response onto the default verdict.
	OutcomePartial ParseOutcome = "partial"
	// OutcomeDefault means nothing usable was recovered.
	OutcomeDefault ParseOutcome = "default"
)

// Responses shorter than this cannot contain a usable verdict.
const minResponseLength = 10

var (
	scorePattern     = regexp.MustCompile(`"score"\s*:\s*(-?\d+)`)
	reasoningPattern = regexp.MustCompile(`"reasoning"\s*:\s*"((?:[^"\\]|\\.)*)"`)
)

// ParseVerdict runs the three-layer recovery strategy over a raw model
// response: strict schema-validated parse, then per-field regex and gjson
// salvage onto the default verdict, then the fixed default. It never fails;
// the returned verdict always has a score and reasoning.
func ParseVerdict(raw string) (*types.Verdict, ParseOutcome) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < minResponseLength {
		return types.DefaultVerdict(), OutcomeDefault
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")

	// Layer 1: slice from the first brace to the last and parse strictly.
	if start >= 0 && end > start {
		slice := trimmed[start : end+1]
		if schemas.ValidateVerdict(slice) == nil {
			var verdict types.Verdict
			if err := json.Unmarshal([]byte(slice), &verdict); err == nil {
				normalizeVerdict(&verdict)
				return &verdict, OutcomeFull
			}
		}
	}

	// Layer 2: recover individual fields from the malformed text.
	verdict := types.DefaultVerdict()
	recovered := false

	if m := scorePattern.FindStringSubmatch(trimmed); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			verdict.Score = clampScore(score)
			recovered = true
		}
	}
	if m := reasoningPattern.FindStringSubmatch(trimmed); m != nil && m[1] != "" {
		verdict.Reasoning = unescapeJSONString(m[1])
		recovered = true
	}
	if start >= 0 {
		recovered = salvageFields(trimmed[start:], verdict) || recovered
	}

	if !recovered {
		return types.DefaultVerdict(), OutcomeDefault
	}
	return verdict, OutcomePartial
}

// salvageFields pulls whatever list and commentary fields survived the
// truncation. gjson tolerates trailing garbage as long as the prefix of the
// document is well-formed.
func salvageFields(doc string, verdict *types.Verdict) bool {
	recovered := false

	if res := gjson.Get(doc, "strengths"); res.IsArray() {
		for _, item := range res.Array() {
			if s := item.String(); s != "" {
				verdict.Strengths = append(verdict.Strengths, s)
				recovered = true
			}
		}
	}
	if res := gjson.Get(doc, "weaknesses"); res.IsArray() {
		for _, item := range res.Array() {
			if s := item.String(); s != "" {
				verdict.Weaknesses = append(verdict.Weaknesses, s)
				recovered = true
			}
		}
	}
	if res := gjson.Get(doc, "skill_match"); res.IsArray() {
		for _, item := range res.Array() {
			skill := item.Get("skill").String()
			if skill == "" {
				continue
			}
			verdict.SkillMatch = append(verdict.SkillMatch, types.SkillMatch{
				Skill:      skill,
				Match:      item.Get("match").Bool(),
				Importance: item.Get("importance").String(),
			})
			recovered = true
		}
	}
	if res := gjson.Get(doc, "experience_match"); res.Type == gjson.String {
		verdict.ExperienceMatch = res.String()
		recovered = true
	}
	if res := gjson.Get(doc, "education_match"); res.Type == gjson.String {
		verdict.EducationMatch = res.String()
		recovered = true
	}

	return recovered
}

func normalizeVerdict(v *types.Verdict) {
	v.Score = clampScore(v.Score)
	if v.SkillMatch == nil {
		v.SkillMatch = []types.SkillMatch{}
	}
	if v.Strengths == nil {
		v.Strengths = []string{}
	}
	if v.Weaknesses == nil {
		v.Weaknesses = []string{}
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func unescapeJSONString(s string) string {
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return unquoted
	}
	return s
}
