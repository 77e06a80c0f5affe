package evaluator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"www.github.com/Wanderer0074348/SheetGrader/src/models"
)

var (
	trailingCommaObj = regexp.MustCompile(`,\s*}`)
	trailingCommaArr = regexp.MustCompile(`,\s*]`)
)

// ParseEvaluation extracts the structured evaluation from a raw model reply.
// Models occasionally wrap the JSON in markdown fences or prose, or emit
// near-JSON (single quotes, trailing commas); this strips and repairs before
// giving up.
func ParseEvaluation(raw string) (*models.Evaluation, error) {
	text := strings.TrimSpace(raw)

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in model reply")
	}
	jsonStr := text[start : end+1]

	var eval models.Evaluation
	if err := json.Unmarshal([]byte(jsonStr), &eval); err == nil {
		return &eval, nil
	}

	repaired := repairJSON(jsonStr)
	if err := json.Unmarshal([]byte(repaired), &eval); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation JSON: %w", err)
	}
	return &eval, nil
}

// repairJSON fixes the malformations seen in practice: single-quoted strings
// and trailing commas before a closing brace or bracket.
func repairJSON(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = trailingCommaObj.ReplaceAllString(s, "}")
	s = trailingCommaArr.ReplaceAllString(s, "]")
	return s
}
