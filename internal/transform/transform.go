// Package transform implements the case conversions offered by caseclipper.
//
// Every conversion is a pure function of its input: Apply never mutates the
// text it is given and always returns the same output for the same
// (text, mode) pair. Unknown modes return the input unchanged.
package transform

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Iron-Ham/caseclipper/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode names one case conversion strategy.
type Mode string

const (
	ModeUpper    Mode = "upper"
	ModeLower    Mode = "lower"
	ModeTitle    Mode = "title"
	ModeSentence Mode = "sentence"
	ModeToggle   Mode = "toggle"
)

// sentenceSeparator joins sentence fragments back together.
const sentenceSeparator = ". "

// Modes returns all modes in the order their buttons are shown.
func Modes() []Mode {
	return []Mode{ModeUpper, ModeLower, ModeTitle, ModeSentence, ModeToggle}
}

// ValidModes returns the mode names as strings, for help text and validation.
func ValidModes() []string {
	modes := Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

// ParseMode converts a user-supplied name into a Mode. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseMode(name string) (Mode, error) {
	normalized := Mode(strings.ToLower(strings.TrimSpace(name)))
	for _, m := range Modes() {
		if m == normalized {
			return m, nil
		}
	}
	return "", errors.NewValidationError(
		fmt.Sprintf("must be one of: %s", strings.Join(ValidModes(), ", ")),
	).WithField("mode").WithValue(name).WithCause(errors.ErrUnknownMode)
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	for _, known := range Modes() {
		if m == known {
			return true
		}
	}
	return false
}

// Label returns the button caption for the mode. Each caption is written in
// the case the mode produces.
func (m Mode) Label() string {
	switch m {
	case ModeUpper:
		return "UPPER"
	case ModeLower:
		return "lower"
	case ModeTitle:
		return "Title"
	case ModeSentence:
		return "Sentence"
	case ModeToggle:
		return "tOGGLE"
	default:
		return string(m)
	}
}

// Apply returns text converted according to mode.
func Apply(text string, mode Mode) string {
	switch mode {
	case ModeUpper:
		// Casers carry state and must not be shared.
		return cases.Upper(language.Und).String(text)
	case ModeLower:
		return cases.Lower(language.Und).String(text)
	case ModeTitle:
		return title(text)
	case ModeSentence:
		return sentence(text)
	case ModeToggle:
		return toggle(text)
	default:
		return text
	}
}

// title upper-cases each cased rune that does not follow another cased rune
// and lower-cases the rest. Any uncased rune, including digits and
// apostrophes, starts a new word.
func title(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	prevCased := false
	for _, r := range text {
		cased := isCased(r)
		switch {
		case !cased:
			b.WriteRune(r)
		case prevCased:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToTitle(r))
		}
		prevCased = cased
	}
	return b.String()
}

// sentence splits on periods, trims and capitalizes every fragment, drops
// empty fragments and joins the remainder with ". ".
func sentence(text string) string {
	fragments := strings.Split(text, ".")
	kept := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = capitalize(strings.TrimSpace(fragment))
		if fragment == "" {
			continue
		}
		kept = append(kept, fragment)
	}
	return strings.Join(kept, sentenceSeparator)
}

// capitalize title-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	b.WriteRune(unicode.ToTitle(runes[0]))
	for _, r := range runes[1:] {
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// toggle flips the case of every rune on its own.
func toggle(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsUpper(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
