package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJSON is returned when no parseable JSON value could be recovered
// from a model reply.
var ErrNoJSON = errors.New("llm: no parseable JSON in reply")

// ExtractJSONArray unmarshals the first JSON array found in a model reply
// into v. Recovery is staged: direct parse, then code-fence stripping, then
// a bracket scan for the array, then reconstruction from the last complete
// element when the reply was truncated mid-stream. Callers fall back to
// their deterministic path when it returns an error.
func ExtractJSONArray(raw string, v any) error {
	return extractJSON(raw, '[', ']', v)
}

// ExtractJSONObject is ExtractJSONArray for a top-level JSON object.
func ExtractJSONObject(raw string, v any) error {
	return extractJSON(raw, '{', '}', v)
}

func extractJSON(raw string, opener, closer byte, v any) error {
	candidates := []string{raw, StripCodeFence(raw)}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if err := json.Unmarshal([]byte(c), v); err == nil {
			return nil
		}
		if span, ok := findBalanced(c, opener, closer); ok {
			if err := json.Unmarshal([]byte(span), v); err == nil {
				return nil
			}
		}
		if opener == '[' {
			if repaired, ok := repairTruncatedArray(c); ok {
				if err := json.Unmarshal([]byte(repaired), v); err == nil {
					return nil
				}
			}
		}
	}
	return fmt.Errorf("%w: %s", ErrNoJSON, truncate(strings.TrimSpace(raw), 120))
}

// StripCodeFence removes a surrounding markdown code fence (```json ... ```
// or plain ```), which chat models commonly wrap JSON in.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language tag line ("json").
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// findBalanced locates the first balanced open...close span, skipping
// brackets inside JSON strings.
func findBalanced(s string, opener, closer byte) (string, bool) {
	start := strings.IndexByte(s, opener)
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// repairTruncatedArray salvages a reply cut off mid-element: it keeps
// everything up to the last complete object in the array and re-closes the
// array there.
func repairTruncatedArray(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return "", false
	}
	return s[start:end+1] + "]", true
}
