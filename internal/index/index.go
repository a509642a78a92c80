// Package index implements the inverted index: a three-level ordered
// structure mapping stemmed words to locations to token positions, plus a
// derived per-location token-count table. It supports exact and prefix
// search with deterministic ranking.
//
// Index itself holds no lock; internal/concurrent wraps it with a
// reader/writer lock for use by many producers and queriers.
package index

import (
	"errors"
	"sort"

	"github.com/shoresh319/gostone/internal/orderedmap"
)

// ErrInvalidInput is returned by Add when word or location is empty, or
// position is not a positive integer.
var ErrInvalidInput = errors.New("index: invalid input")

// Index is the word -> location -> positions inverted index together with
// its per-location token-count table.
type Index struct {
	words  *orderedmap.Map[string, *locations]
	counts map[string]int
}

// locations is the per-word location -> positions level.
type locations struct {
	m *orderedmap.Map[string, *positionSet]
}

// New constructs an empty Index.
func New() *Index {
	return &Index{
		words:  orderedmap.New[string, *locations](),
		counts: make(map[string]int),
	}
}

// Add ensures word -> location -> position exists, incrementing the
// location's token count only when position was newly inserted.
func (ix *Index) Add(word, location string, position int) error {
	if word == "" || location == "" || position <= 0 {
		return ErrInvalidInput
	}
	loc := ix.words.GetOrInsert(word, newLocations)
	set := loc.m.GetOrInsert(location, newPositionSet)
	if set.add(position) {
		ix.counts[location]++
	}
	return nil
}

// AddAllTokens adds words[i] at position startPosition+i, for every i.
func (ix *Index) AddAllTokens(words []string, location string, startPosition int) error {
	for i, w := range words {
		if err := ix.Add(w, location, startPosition+i); err != nil {
			return err
		}
	}
	return nil
}

// Merge folds other's contents into ix: positions are unioned per
// (word, location), and other's counts are added to ix's (or adopted when
// ix has no prior entry for that location). Merge is intended to be
// called once per source index — merging the same index twice double
// counts.
func (ix *Index) Merge(other *Index) error {
	if other == nil {
		return nil
	}
	other.words.Range(func(word string, otherLoc *locations) bool {
		loc := ix.words.GetOrInsert(word, newLocations)
		otherLoc.m.Range(func(location string, otherSet *positionSet) bool {
			set := loc.m.GetOrInsert(location, newPositionSet)
			set.union(otherSet)
			return true
		})
		return true
	})
	for location, count := range other.counts {
		if _, ok := ix.counts[location]; ok {
			ix.counts[location] += count
		} else {
			ix.counts[location] = count
		}
	}
	return nil
}

// Count returns the token count recorded for location, or 0 if unknown.
func (ix *Index) Count(location string) int {
	return ix.counts[location]
}

// Locations reports every location known to the index, ascending.
func (ix *Index) Locations() []string {
	locs := make([]string, 0, len(ix.counts))
	for l := range ix.counts {
		locs = append(locs, l)
	}
	sort.Strings(locs)
	return locs
}

// Words returns every word in the index, in ascending order.
func (ix *Index) Words() []string {
	return ix.words.Keys()
}

// positionsAt returns the positions recorded for (word, location), or nil.
func (ix *Index) positionsAt(word, location string) []int {
	loc, ok := ix.words.Get(word)
	if !ok {
		return nil
	}
	set, ok := loc.m.Get(location)
	if !ok {
		return nil
	}
	return set.Positions()
}

func newLocations() *locations {
	return &locations{m: orderedmap.New[string, *positionSet]()}
}
