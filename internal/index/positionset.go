package index

import "sort"

// positionSet is an ordered set of 1-based token positions for a single
// (word, location) pair.
type positionSet struct {
	pos []int
}

func newPositionSet() *positionSet {
	return &positionSet{}
}

// add inserts p if absent, keeping pos sorted ascending. Returns true if p
// was newly added.
func (s *positionSet) add(p int) bool {
	i := sort.SearchInts(s.pos, p)
	if i < len(s.pos) && s.pos[i] == p {
		return false
	}
	s.pos = append(s.pos, 0)
	copy(s.pos[i+1:], s.pos[i:])
	s.pos[i] = p
	return true
}

// union merges other's positions into s, returning the number newly added.
func (s *positionSet) union(other *positionSet) int {
	added := 0
	for _, p := range other.pos {
		if s.add(p) {
			added++
		}
	}
	return added
}

// Len reports the number of distinct positions.
func (s *positionSet) Len() int { return len(s.pos) }

// Positions returns a copy of the positions in ascending order.
func (s *positionSet) Positions() []int {
	out := make([]int, len(s.pos))
	copy(out, s.pos)
	return out
}
