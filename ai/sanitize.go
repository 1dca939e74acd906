package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Model output is treated as an unreliable textual oracle: the JSON we
// asked for may arrive wrapped in prose, fenced in a markdown code
// block, truncated, or sprinkled with control characters. Extraction
// tries a sequence of strategies and reports failure rather than
// guessing, so callers can fall back deterministically.

var codeBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*([\\[{].*?[\\]}])\\s*```")

// ExtractJSONObject returns the first JSON object found in text.
func ExtractJSONObject(text string) (string, bool) {
	return extract(text, '{', '}')
}

// ExtractJSONArray returns the first JSON array found in text.
func ExtractJSONArray(text string) (string, bool) {
	return extract(text, '[', ']')
}

func extract(text string, open, close byte) (string, bool) {
	// Strategy 1: the whole response is the JSON we asked for.
	cleaned := strings.TrimSpace(text)
	if len(cleaned) > 0 && cleaned[0] == open && json.Valid([]byte(cleaned)) {
		return cleaned, true
	}

	// Strategy 2: fenced code block.
	if m := codeBlockRegex.FindStringSubmatch(text); len(m) > 1 {
		candidate := strings.TrimSpace(m[1])
		if len(candidate) > 0 && candidate[0] == open && json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}

	// Strategy 3: delimiter scan over the raw text.
	if candidate, ok := scanDelimited(text, open, close); ok {
		return candidate, true
	}

	// Strategy 4: repair pass, then scan again.
	repaired := repairJSONText(text)
	if candidate, ok := scanDelimited(repaired, open, close); ok {
		return candidate, true
	}
	cleaned = strings.TrimSpace(repaired)
	if len(cleaned) > 0 && cleaned[0] == open && json.Valid([]byte(cleaned)) {
		return cleaned, true
	}

	return "", false
}

// scanDelimited walks the text from the first opening delimiter,
// tracking string and escape state, and returns the first balanced
// span that parses as JSON.
func scanDelimited(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				// Balanced but invalid; try a repaired copy of the span.
				fixed := repairJSONText(candidate)
				if json.Valid([]byte(fixed)) {
					return fixed, true
				}
				return "", false
			}
		}
	}

	// Ran out of text with the span still open: close it and see if
	// the truncated output was otherwise well formed.
	candidate := repairJSONText(text[start:])
	if json.Valid([]byte(candidate)) {
		return candidate, true
	}
	return "", false
}

var (
	trailingCommaRegex = regexp.MustCompile(`,\s*([}\]])`)
	controlCharRegex   = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)
)

// repairJSONText fixes the malformations models produce most often:
// control characters, trailing commas, truncated values, and unclosed
// braces/brackets.
func repairJSONText(text string) string {
	text = controlCharRegex.ReplaceAllString(text, "")
	text = trailingCommaRegex.ReplaceAllString(text, "$1")

	// An odd quote count means the output was cut mid-string; drop
	// everything from the last comma so the partial pair goes away.
	if strings.Count(text, `"`)%2 == 1 {
		if idx := strings.LastIndex(text, ","); idx >= 0 {
			text = text[:idx]
		}
	}
	if brackets := strings.Count(text, "[") - strings.Count(text, "]"); brackets > 0 {
		text += strings.Repeat("]", brackets)
	}
	if open := strings.Count(text, "{") - strings.Count(text, "}"); open > 0 {
		text += strings.Repeat("}", open)
	}

	return strings.TrimSpace(text)
}
