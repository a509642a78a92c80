// Package concurrent wraps the bare inverted index (internal/index) with
// the reader/writer lock (internal/rwlock) so many producer goroutines and
// querier goroutines can share a single index safely (spec §4.E).
package concurrent

import (
	"io"

	"github.com/shoresh319/gostone/internal/index"
	"github.com/shoresh319/gostone/internal/rwlock"
)

// Index wraps index.Index with a reader/writer lock. Every mutating
// method is a write-locked critical section; every observing method is a
// read-locked one. Merge holds the write lock for the whole bulk
// operation, so callers get bulk-atomicity by building a private local
// index and invoking a single Merge.
type Index struct {
	lock *rwlock.RWLock
	idx  *index.Index
}

// New constructs an empty, lock-protected Index.
func New() *Index {
	return &Index{lock: rwlock.New(), idx: index.New()}
}

// Add acquires the write lock and inserts (word, location, position).
func (c *Index) Add(word, location string, position int) error {
	t := c.lock.AcquireWrite(0)
	defer c.mustReleaseWrite(t)
	return c.idx.Add(word, location, position)
}

// AddAllTokens acquires the write lock once and inserts every token.
func (c *Index) AddAllTokens(words []string, location string, startPosition int) error {
	t := c.lock.AcquireWrite(0)
	defer c.mustReleaseWrite(t)
	return c.idx.AddAllTokens(words, location, startPosition)
}

// Merge acquires the write lock for the duration of the bulk merge of
// other into the shared index.
func (c *Index) Merge(other *index.Index) error {
	t := c.lock.AcquireWrite(0)
	defer c.mustReleaseWrite(t)
	return c.idx.Merge(other)
}

// ExactSearch acquires the read lock and delegates to the bare index.
func (c *Index) ExactSearch(queries map[string]struct{}) []index.SearchResult {
	c.lock.AcquireRead(0)
	defer c.mustReleaseRead()
	return c.idx.ExactSearch(queries)
}

// PartialSearch acquires the read lock and delegates to the bare index.
func (c *Index) PartialSearch(queries map[string]struct{}) []index.SearchResult {
	c.lock.AcquireRead(0)
	defer c.mustReleaseRead()
	return c.idx.PartialSearch(queries)
}

// Count acquires the read lock and returns the token count for location.
func (c *Index) Count(location string) int {
	c.lock.AcquireRead(0)
	defer c.mustReleaseRead()
	return c.idx.Count(location)
}

// WriteIndexJSON acquires the read lock and emits the index as JSON.
func (c *Index) WriteIndexJSON(w io.Writer) error {
	c.lock.AcquireRead(0)
	defer c.mustReleaseRead()
	return c.idx.WriteIndexJSON(w)
}

// WriteCountsJSON acquires the read lock and emits the count table as JSON.
func (c *Index) WriteCountsJSON(w io.Writer) error {
	c.lock.AcquireRead(0)
	defer c.mustReleaseRead()
	return c.idx.WriteCountsJSON(w)
}

func (c *Index) mustReleaseRead() {
	if err := c.lock.ReleaseRead(); err != nil {
		panic(err)
	}
}

func (c *Index) mustReleaseWrite(t rwlock.Ticket) {
	if err := c.lock.ReleaseWrite(t); err != nil {
		panic(err)
	}
}
