// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers and surrounding prose from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks or add a preamble even when instructed not to.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(strings.TrimSpace(text))

	if payload := extractJSON(text); payload != "" {
		return payload
	}
	return text
}

func stripCodeFence(text string) string {
	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			// If first line looks like a language identifier (no spaces, short), skip it
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// extractJSON returns the first balanced JSON object or array in text, trying
// whichever opening delimiter appears first.
func extractJSON(text string) string {
	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")

	type candidate struct {
		idx     int
		extract func(string) string
	}
	var order []candidate
	switch {
	case objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx):
		order = []candidate{{objIdx, extractJSONObject}, {arrIdx, extractJSONArray}}
	case arrIdx >= 0:
		order = []candidate{{arrIdx, extractJSONArray}, {objIdx, extractJSONObject}}
	}

	for _, c := range order {
		if c.idx < 0 {
			continue
		}
		if out := c.extract(text[c.idx:]); out != "" {
			return out
		}
	}
	return ""
}

// extractJSONObject returns the balanced object at the start of s, or "" when s does not start with one
func extractJSONObject(s string) string {
	return extractBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced array at the start of s, or "" when s does not start with one
func extractJSONArray(s string) string {
	return extractBalanced(s, '[', ']')
}

func extractBalanced(s string, open, closing byte) string {
	if len(s) == 0 || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
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
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
