package planner

import (
	"encoding/json"
	"strings"

	apperrors "github.com/nutriplan/v1/pkg/errors"
)

// Models wrap JSON payloads in prose and markdown fences often enough that
// strict parsing would reject most replies. The extractors take the greedy
// span from the first opening bracket to the last closing one and validate
// that span, carrying the raw text on failure for diagnostics.

// ExtractJSONObject returns the first-{ to last-} span of text
func ExtractJSONObject(text string) ([]byte, error) {
	return extractSpan(text, "{", "}")
}

// ExtractJSONArray returns the first-[ to last-] span of text
func ExtractJSONArray(text string) ([]byte, error) {
	return extractSpan(text, "[", "]")
}

func extractSpan(text, open, close string) ([]byte, error) {
	start := strings.Index(text, open)
	end := strings.LastIndex(text, close)
	if start == -1 || end <= start {
		return nil, apperrors.NewMalformedResponseError("no JSON payload found in model output", text)
	}

	span := []byte(text[start : end+1])
	if !json.Valid(span) {
		return nil, apperrors.NewMalformedResponseError("extracted span is not valid JSON", text)
	}
	return span, nil
}
