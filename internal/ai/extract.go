package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Extract trims surrounding whitespace and an optional markdown code fence
// (with or without a language tag) from the raw reply, then parses the
// remainder as a single JSON value. Anything that does not parse is an error;
// partial values are never returned.
func Extract(raw string) (json.RawMessage, error) {
	cleaned := stripFences(raw)

	var payload json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("parse structured response: %w", err)
	}

	return payload, nil
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
