package textutil

import "regexp"

const (
	markOpen  = "<mark>"
	markClose = "</mark>"
)

// EscapeLiteral escapes every regular expression metacharacter in s so the
// result matches s literally.
func EscapeLiteral(s string) string {
	return regexp.QuoteMeta(s)
}

// HighlightMatches wraps every case-insensitive occurrence of term in text
// with <mark> tags. An empty term returns text untouched; text is never
// escaped.
func HighlightMatches(text, term string) string {
	return HighlightFunc(text, term, func(match string) string {
		return markOpen + match + markClose
	})
}

// HighlightFunc is HighlightMatches with a caller-supplied wrapper. Matches are
// found left to right and never overlap.
func HighlightFunc(text, term string, wrap func(string) string) string {
	if term == "" || text == "" || wrap == nil {
		return text
	}
	pattern, err := regexp.Compile("(?i)" + EscapeLiteral(term))
	if err != nil {
		return text
	}
	return pattern.ReplaceAllStringFunc(text, wrap)
}
