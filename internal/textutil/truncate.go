package textutil

import "strings"

// Truncate shortens s to at most limit runes, appending an ellipsis when text
// was removed. Leading and trailing whitespace is trimmed first.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}
