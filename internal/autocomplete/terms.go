package autocomplete

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinFragmentLength is the shortest active fragment that is sent to the
// endpoint. Shorter fragments resolve to an empty list without a request.
// Length is counted in runes, so a single emoji is one character.
const MinFragmentLength = 2

// Terms splits an input value into its whitespace-delimited terms. A value
// ending in whitespace has an empty final term: the user has finished the
// previous term and not started the next one.
func Terms(value string) []string {
	terms := strings.Fields(value)
	if len(terms) == 0 {
		return terms
	}
	last, _ := utf8.DecodeLastRuneInString(value)
	if unicode.IsSpace(last) {
		terms = append(terms, "")
	}
	return terms
}

// ActiveFragment returns the last term of value, the one being completed.
// It returns the empty string when value has no terms.
func ActiveFragment(value string) string {
	terms := Terms(value)
	if len(terms) == 0 {
		return ""
	}
	return terms[len(terms)-1]
}

// ShouldQuery reports whether fragment is long enough to be worth a request.
func ShouldQuery(fragment string) bool {
	return utf8.RuneCountInString(fragment) >= MinFragmentLength
}

// Complete replaces the active term of value with completion and returns the
// new input value: all terms joined by single spaces, plus a trailing space
// so the next term can be typed straight away.
func Complete(value, completion string) string {
	terms := Terms(value)
	if len(terms) == 0 {
		terms = []string{completion}
	} else {
		terms[len(terms)-1] = completion
	}
	return strings.Join(terms, " ") + " "
}
