// Package prompts embeds the evaluation prompt templates shipped with the
// engine. Templates live in JSON so prompt wording can change without
// touching Go code.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed evaluation.json
var evaluationJSON []byte

var (
	parseOnce sync.Once
	templates map[string]string
	parseErr  error
)

// Evaluation returns the system instruction and the user prompt template for
// resume evaluation. The embedded file is parsed once per process; a
// malformed or incomplete embed is a packaging defect and panics on first use.
func Evaluation() (system, user string) {
	parseOnce.Do(func() {
		parseErr = json.Unmarshal(evaluationJSON, &templates)
	})
	if parseErr != nil {
		panic(fmt.Sprintf("failed to parse embedded evaluation prompts: %v", parseErr))
	}
	system, user = templates["system"], templates["user"]
	if system == "" || user == "" {
		panic("embedded evaluation prompts missing system or user template")
	}
	return system, user
}

// Fill substitutes {{.Key}} placeholders in a template with the given values.
// Placeholders without a value are left in place.
func Fill(template string, values map[string]string) string {
	for key, value := range values {
		template = strings.ReplaceAll(template, "{{."+key+"}}", value)
	}
	return template
}
