// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// ExtractJSONArray locates a JSON array inside free-text model output.
// Models often wrap JSON in ```json ... ``` fences or surround it with
// conversational text even when instructed not to. Strategies, in order:
//  1. fenced ```json ... ``` or generic ``` ... ``` block
//  2. first balanced [...] substring
//  3. the whole trimmed text, if it starts with '['
//
// Returns the candidate JSON text and whether any strategy matched. The
// returned text is not guaranteed to be valid JSON; callers still unmarshal.
func ExtractJSONArray(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if fenced, ok := extractFencedBlock(text); ok {
		if arr := firstBalancedArray(fenced); arr != "" {
			return arr, true
		}
		return fenced, true
	}

	if arr := firstBalancedArray(text); arr != "" {
		return arr, true
	}

	if strings.HasPrefix(text, "[") {
		return text, true
	}
	return "", false
}

// extractFencedBlock returns the contents of the first markdown code fence.
func extractFencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}
	rest := text[start+3:]

	// Skip a language identifier on the opening fence line
	if idx := strings.Index(rest, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(rest[:idx])
		if firstLine == "json" || (len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[")) {
			rest = rest[idx+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}

// firstBalancedArray scans for the first '[' and returns the substring up to
// its matching ']', respecting nesting and string literals. Returns "" when
// no balanced array exists.
func firstBalancedArray(text string) string {
	start := strings.Index(text, "[")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
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
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
