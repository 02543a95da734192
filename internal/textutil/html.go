package textutil

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML returns the visible text of an HTML fragment. Tags are dropped and
// character references are decoded. Empty input yields "".
func StripHTML(markup string) string {
	if markup == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way keep the text recovered so far.
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
