// Package textstats computes the word and character counts shown in the
// status line.
package textstats

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Stats holds the counts for a piece of text.
type Stats struct {
	// Words is the number of whitespace-separated fields.
	Words int
	// Chars is the number of runes, whitespace included.
	Chars int
}

// Count returns the Stats for text.
func Count(text string) Stats {
	return Stats{
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}
}

// String renders the counter label, e.g. "3 words · 17 characters".
func (s Stats) String() string {
	return fmt.Sprintf("%d words · %d characters", s.Words, s.Chars)
}
