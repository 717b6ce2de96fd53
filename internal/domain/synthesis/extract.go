// Package synthesis derives textual content from a quote and the
// taxonomy: auto-generated item descriptions, contract prose, and the
// keyword scanner feeding the contract's fallback chains.
package synthesis

import "strings"

// ExtractDuration scans free text for "<keyword>[:\s-]*<value>" where
// the value is a run of word characters and whitespace terminated by a
// period, a newline, or end of input. Matching is case-insensitive.
// When no usable value is found the fallback is returned.
//
// The value run may span newlines; it is cut at the last newline
// inside the run unless the run ends at a period or at end of input.
func ExtractDuration(text, keyword, fallback string) string {
	if text == "" || keyword == "" {
		return fallback
	}
	lower := strings.ToLower(text)
	kw := strings.ToLower(keyword)

	for start := 0; start < len(lower); {
		rel := strings.Index(lower[start:], kw)
		if rel < 0 {
			return fallback
		}
		i := start + rel + len(kw)
		for i < len(text) && isSeparator(text[i]) {
			i++
		}
		j := i
		for j < len(text) && isWordOrSpace(text[j]) {
			j++
		}
		if end, ok := valueEnd(text, i, j); ok {
			if v := strings.TrimSpace(text[i:end]); v != "" {
				return v
			}
		}
		start += rel + 1
	}
	return fallback
}

// valueEnd finds the longest prefix of text[i:j] whose next character
// is a period, a newline, or end of input.
func valueEnd(text string, i, j int) (int, bool) {
	if j <= i {
		return 0, false
	}
	if j == len(text) || text[j] == '.' {
		return j, true
	}
	for k := j - 1; k > i; k-- {
		if text[k] == '\n' {
			return k, true
		}
	}
	return 0, false
}

func isSeparator(c byte) bool {
	return c == ':' || c == '-' || isSpace(c)
}

func isWordOrSpace(c byte) bool {
	return c == '_' || isSpace(c) ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
