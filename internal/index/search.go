package index

import (
	"sort"
	"strings"
)

// SearchResult reports, for one query evaluation and one location, how
// many positions matched and the resulting relevance score. It is a plain
// record: ranking consults a snapshot of the count table taken at search
// time, rather than holding a back-reference into the live index.
type SearchResult struct {
	Where   string
	Matches int
	Score   float64
}

// ExactSearch accumulates a SearchResult per location for every query word
// that appears verbatim in the index.
func (ix *Index) ExactSearch(queries map[string]struct{}) []SearchResult {
	acc := newAccumulator(ix.counts)
	for q := range queries {
		loc, ok := ix.words.Get(q)
		if !ok {
			continue
		}
		acc.addWord(loc)
	}
	return acc.rank()
}

// PartialSearch accumulates a SearchResult per location for every index
// word that has a query word as a prefix.
func (ix *Index) PartialSearch(queries map[string]struct{}) []SearchResult {
	acc := newAccumulator(ix.counts)
	for q := range queries {
		if q == "" {
			continue
		}
		prefixed := ix.words.PrefixKeys(func(w string) bool {
			return strings.HasPrefix(w, q)
		}, q)
		for _, w := range prefixed {
			loc, ok := ix.words.Get(w)
			if !ok {
				continue
			}
			acc.addWord(loc)
		}
	}
	return acc.rank()
}

// accumulator accrues per-location matches while a search is in progress,
// against a fixed snapshot of the count table.
type accumulator struct {
	counts map[string]int
	byLoc  map[string]*SearchResult
	order  []string
}

func newAccumulator(counts map[string]int) *accumulator {
	snapshot := make(map[string]int, len(counts))
	for k, v := range counts {
		snapshot[k] = v
	}
	return &accumulator{counts: snapshot, byLoc: make(map[string]*SearchResult)}
}

func (a *accumulator) addWord(loc *locations) {
	loc.m.Range(func(location string, set *positionSet) bool {
		r, ok := a.byLoc[location]
		if !ok {
			r = &SearchResult{Where: location}
			a.byLoc[location] = r
			a.order = append(a.order, location)
		}
		r.Matches += set.Len()
		if c := a.counts[location]; c > 0 {
			r.Score = float64(r.Matches) / float64(c)
		}
		return true
	})
}

func (a *accumulator) rank() []SearchResult {
	out := make([]SearchResult, 0, len(a.order))
	for _, loc := range a.order {
		out = append(out, *a.byLoc[loc])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		ci, cj := a.counts[out[i].Where], a.counts[out[j].Where]
		if ci != cj {
			return ci > cj
		}
		li, lj := strings.ToLower(out[i].Where), strings.ToLower(out[j].Where)
		if li != lj {
			return li < lj
		}
		return out[i].Where < out[j].Where
	})
	return out
}
