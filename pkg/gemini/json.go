package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes the markdown code fences models wrap JSON in.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// UnmarshalResponse decodes a model response into out, tolerating code
// fences and leading prose before the first bracket.
func UnmarshalResponse(response string, out interface{}) error {
	s := StripFences(response)

	if err := json.Unmarshal([]byte(s), out); err == nil {
		return nil
	}

	// Models sometimes prepend prose; find the first JSON bracket.
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return fmt.Errorf("gemini: no JSON found in response")
	}
	end := strings.LastIndexAny(s, "}]")
	if end <= start {
		return fmt.Errorf("gemini: malformed JSON in response")
	}

	if err := json.Unmarshal([]byte(s[start:end+1]), out); err != nil {
		return fmt.Errorf("gemini: decode response: %w", err)
	}
	return nil
}
