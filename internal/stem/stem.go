// Package stem adapts the Snowball English stemming algorithm (spec
// §4.B) for use as the search engine's stemmer. Stemming itself is
// treated as an external utility per spec §1; this package only owns the
// "per-worker stemmer, then normalize-then-stem a line" contract.
package stem

import (
	"github.com/kljensen/snowball/english"

	"github.com/shoresh319/gostone/internal/textnorm"
)

// Stemmer produces Snowball English stems. Construct one per worker
// goroutine: although the backing algorithm here is a pure function with
// no internal state, the type exists so call sites follow the same
// per-worker ownership discipline the spec requires of stemmers in
// general (some Snowball backends do carry mutable scratch state).
type Stemmer struct{}

// New constructs a Stemmer.
func New() *Stemmer { return &Stemmer{} }

// Stem returns the deterministic Snowball English stem of word. word is
// expected to already be lower-case and alphabetic (the output of
// textnorm.Parse); Stem does not re-normalize it.
func (s *Stemmer) Stem(word string) string {
	stemmed, err := english.Stem(word, false)
	if err != nil {
		return word
	}
	return stemmed
}

// StemLine normalizes line with textnorm.Parse, then stems each token,
// preserving order.
func (s *Stemmer) StemLine(line string) []string {
	tokens := textnorm.Parse(line)
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = s.Stem(tok)
	}
	return out
}
