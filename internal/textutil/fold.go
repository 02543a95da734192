package textutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Lower lower-cases s using language-neutral Unicode rules.
func Lower(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}

// Collator orders lower-cased strings the way a locale-aware comparison
// would. A Collator is not safe for concurrent use.
type Collator struct {
	c *collate.Collator
}

// NewCollator returns a language-neutral collator.
func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Und)}
}

// Compare returns -1, 0 or +1 comparing the lower-cased forms of a and b.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(Lower(a), Lower(b))
}
