package index

import (
	"encoding/json"
	"io"
)

// WriteIndexJSON emits the word -> location -> positions structure as
// pretty JSON: tab indentation, newline separators, keys sorted
// lexicographically (encoding/json sorts map[string]... keys for us).
func (ix *Index) WriteIndexJSON(w io.Writer) error {
	doc := make(map[string]map[string][]int, ix.words.Len())
	ix.words.Range(func(word string, loc *locations) bool {
		byLoc := make(map[string][]int, loc.m.Len())
		loc.m.Range(func(location string, set *positionSet) bool {
			byLoc[location] = set.Positions()
			return true
		})
		doc[word] = byLoc
		return true
	})
	return encodeJSON(w, doc)
}

// WriteCountsJSON emits the per-location token-count table as pretty
// JSON, sorted by location.
func (ix *Index) WriteCountsJSON(w io.Writer) error {
	return encodeJSON(w, ix.counts)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(v)
}
