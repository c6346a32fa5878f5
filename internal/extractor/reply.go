package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"billex/internal/domain"
	"billex/internal/port"
)

// DecodeReply parses the model's JSON reply into a RawExtraction. If the text
// is not JSON outright, one fallback parse is attempted after stripping
// markdown code fences; beyond that the call counts as failed. The page type
// is coerced into the closed enum here so downstream code never sees a
// free-form value.
func DecodeReply(text string) (*port.RawExtraction, error) {
	var raw port.RawExtraction
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		stripped := stripCodeFences(text)
		if err2 := json.Unmarshal([]byte(stripped), &raw); err2 != nil {
			return nil, fmt.Errorf("parsing model JSON output: %w (raw: %s)", err, truncate(text, 500))
		}
	}
	raw.PageType = string(domain.CoercePageType(raw.PageType))
	return &raw, nil
}

// stripCodeFences removes ```json / ``` wrappers some models insist on.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
