// Package orderedmap implements a small sorted-key map used by the
// inverted index to provide the lexicographic iteration order the search
// engine's word and location levels require.
package orderedmap

import (
	"cmp"
	"sort"
)

// Map is a map with deterministic, ascending iteration order over its keys.
// It is not safe for concurrent use; callers serialize access externally
// (the reader/writer lock in internal/rwlock does this for the index).
type Map[K cmp.Ordered, V any] struct {
	keys []K
	vals map[K]V
}

// New constructs an empty Map.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	return &Map[K, V]{vals: make(map[K]V)}
}

// Get returns the value stored at k, if any.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Set stores v at k, inserting a new sorted position if k is absent.
func (m *Map[K, V]) Set(k K, v V) {
	if _, ok := m.vals[k]; !ok {
		m.insertKey(k)
	}
	m.vals[k] = v
}

// GetOrInsert returns the existing value at k, or calls makeVal to create
// one, stores it, and returns it.
func (m *Map[K, V]) GetOrInsert(k K, makeVal func() V) V {
	if v, ok := m.vals[k]; ok {
		return v
	}
	v := makeVal()
	m.insertKey(k)
	m.vals[k] = v
	return v
}

func (m *Map[K, V]) insertKey(k K) {
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= k })
	m.keys = append(m.keys, k)
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = k
}

// Len reports the number of entries.
func (m *Map[K, V]) Len() int { return len(m.keys) }

// Keys returns the keys in ascending order. The slice is owned by the
// caller and safe to mutate.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range calls f for every entry in ascending key order, stopping early if
// f returns false.
func (m *Map[K, V]) Range(f func(k K, v V) bool) {
	for _, k := range m.keys {
		if !f(k, m.vals[k]) {
			return
		}
	}
}

// PrefixKeys returns, in ascending order, every key with the given prefix.
// It locates the start of the run with a binary search and stops at the
// first key that no longer matches — the "tail view" behavior spec'd for
// prefix search over an ordered map.
func (m *Map[K, V]) PrefixKeys(hasPrefix func(k K) bool, from K) []K {
	start := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= from })
	var out []K
	for i := start; i < len(m.keys); i++ {
		if !hasPrefix(m.keys[i]) {
			break
		}
		out = append(out, m.keys[i])
	}
	return out
}
