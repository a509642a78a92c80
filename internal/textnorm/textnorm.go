// Package textnorm implements the text normalizer (spec §4.A): lower-case,
// diacritic-stripped, whitespace-delimited tokenization ahead of stemming.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Clean Unicode-normalizes text to decomposed form, drops every code point
// that is not a letter or whitespace (digits, punctuation, symbols, and
// the diacritical marks decomposition exposes), and lower-cases the rest.
func Clean(text string) string {
	decomposed := norm.NFD.String(text)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Split breaks cleaned text on runs of whitespace. Blank input yields an
// empty slice.
func Split(text string) []string {
	return strings.Fields(text)
}

// Parse is Split(Clean(text)).
func Parse(text string) []string {
	return Split(Clean(text))
}
