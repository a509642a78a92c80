// Package query implements the query parser (spec §4.H): reads query
// lines, stems and dedupes each into a canonical query, dispatches exact
// or prefix search against the shared index, and accumulates results
// keyed by canonical query for JSON emission.
package query

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/shoresh319/gostone/internal/index"
	"github.com/shoresh319/gostone/internal/queue"
	"github.com/shoresh319/gostone/internal/stem"
)

// Searcher is the subset of the (concurrent) index the parser needs.
type Searcher interface {
	ExactSearch(queries map[string]struct{}) []index.SearchResult
	PartialSearch(queries map[string]struct{}) []index.SearchResult
}

// Parser accumulates deduplicated query results against a Searcher.
type Parser struct {
	mu       sync.Mutex
	results  map[string][]index.SearchResult
	exact    bool
	searcher Searcher
}

// New constructs a Parser. When exact is true, Search uses ExactSearch;
// otherwise it uses PartialSearch (prefix matching).
func New(searcher Searcher, exact bool) *Parser {
	return &Parser{results: make(map[string][]index.SearchResult), exact: exact, searcher: searcher}
}

// Search stems and dedupes line into a canonical query, runs the
// configured search unless a result for that canonical query is already
// stored, and stores the result. Re-submitting a line whose canonical
// query already has a stored result is a no-op; concurrent calls for the
// same canonical query may each run the search, and the last result
// stored is kept.
func (p *Parser) Search(line string) {
	unique := uniqueStems(line)
	if len(unique) == 0 {
		return
	}
	canonical := strings.Join(unique, " ")

	if p.alreadyComputed(canonical) {
		return
	}

	queries := make(map[string]struct{}, len(unique))
	for _, w := range unique {
		queries[w] = struct{}{}
	}
	var results []index.SearchResult
	if p.exact {
		results = p.searcher.ExactSearch(queries)
	} else {
		results = p.searcher.PartialSearch(queries)
	}

	p.mu.Lock()
	p.results[canonical] = results
	p.mu.Unlock()
}

func (p *Parser) alreadyComputed(canonical string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.results[canonical]
	return ok
}

// SearchFile opens path and calls Search for every line, sequentially.
func (p *Parser) SearchFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open queries %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		p.Search(scanner.Text())
	}
	return scanner.Err()
}

// SearchFileConcurrent opens path and submits one work-queue task per
// line, returning once every line has been processed.
func (p *Parser) SearchFileConcurrent(path string, wq *queue.Queue) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open queries %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		wq.Execute(func() { p.Search(line) })
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	wq.Finish()
	return nil
}

// uniqueStems stems and deduplicates line into ascending-sorted stems.
func uniqueStems(line string) []string {
	s := stem.New()
	tokens := s.StemLine(line)
	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	sort.Strings(unique)
	return unique
}
