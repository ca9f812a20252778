// Package parser extracts command candidates from raw completion text.
//
// Backends are asked for a JSON array of {"command": ...} objects and nothing
// else, but in practice they wrap the array in commentary, markdown fences,
// or ignore the format entirely. Parse tolerates all of that: it hunts for an
// embedded array, accepts plain-string arrays, and when no array can be
// located at all it falls back to treating the whole trimmed response as a
// single literal command. The fallback never errors; the only hard failure
// is a candidate set that ends up empty.
package parser

import (
	"encoding/json"
	"strings"

	"github.com/doeshing/nlsh/internal/domain"
)

// Parse turns raw backend text into an ordered candidate list.
//
// The array span is the first '[' through the last ']' in the text, never a
// shorter match, so arrays nested inside object values stay inside the outer
// decode. Discovery order is preserved and duplicates are kept. A decoded
// empty array is a *domain.ParseFailure, distinct from the fallback path.
func Parse(raw string) (domain.CandidateList, error) {
	if span, ok := arraySpan(raw); ok {
		if candidates, ok := decodeArray(span); ok {
			if len(candidates) == 0 {
				return nil, &domain.ParseFailure{Raw: raw}
			}
			return candidates, nil
		}
	}

	// Universal safety net: the whole response becomes one literal command.
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &domain.ParseFailure{Raw: raw}
	}
	return domain.CandidateList{{Command: trimmed}}, nil
}

// arraySpan returns the substring from the first '[' through the last ']'.
func arraySpan(raw string) (string, bool) {
	start := strings.Index(raw, "[")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "]")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// decodeArray attempts a structural decode of the span. The second return is
// false when the span is not a JSON array at all, which sends Parse down the
// fallback path. A well-formed array whose elements are unusable yields an
// empty list with ok=true so the caller can report the hard failure.
func decodeArray(span string) (domain.CandidateList, bool) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(span), &elements); err != nil {
		return nil, false
	}

	candidates := make(domain.CandidateList, 0, len(elements))
	for _, element := range elements {
		if c, ok := decodeElement(element); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, true
}

// decodeElement accepts either a plain string or an object carrying a
// "command" key. Anything else is dropped, not a total failure.
func decodeElement(element json.RawMessage) (domain.Candidate, bool) {
	var s string
	if err := json.Unmarshal(element, &s); err == nil {
		c := domain.Candidate{Command: s}
		return c, c.Valid()
	}

	var obj struct {
		Command *string `json:"command"`
	}
	if err := json.Unmarshal(element, &obj); err == nil && obj.Command != nil {
		c := domain.Candidate{Command: *obj.Command}
		return c, c.Valid()
	}
	return domain.Candidate{}, false
}
