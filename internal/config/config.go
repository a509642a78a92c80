// Package config holds the fully-resolved runtime settings derived from
// the CLI flags (spec §6), in the same constructor-defaulting style as
// the teacher's app.Config.
package config

import (
	"fmt"

	"github.com/shoresh319/gostone/internal/cliflags"
)

// Config is every setting the CLI accepts, already defaulted.
type Config struct {
	TextPath string // -text: build index from this file or directory
	HTMLSeed string // -html: seed URL for a web crawl

	MaxPages int // -max, default 1
	Threads  int // -threads, default 5: >1 enables concurrent mode

	IndexPath   string // -index, default index.json
	CountsPath  string // -counts, default counts.json
	ResultsPath string // -results, default results.json

	QueryPath string // -query: search queries from this file
	Exact     bool   // -exact: exact-match instead of prefix
}

// FromArgs parses args with the §6 grammar and returns a defaulted
// Config. Missing required paths are not an error here: whether -text,
// -html, or -query are required is a decision for the caller, since a
// single run may supply any combination of them (spec §6: "each is
// optional").
func FromArgs(args []string) (Config, error) {
	s := cliflags.Parse(args)

	maxPages, err := s.Int("max", 1)
	if err != nil {
		return Config{}, err
	}
	threads, err := s.Int("threads", 5)
	if err != nil {
		return Config{}, err
	}
	if threads < 1 {
		return Config{}, fmt.Errorf("-threads must be >= 1, got %d", threads)
	}

	return Config{
		TextPath:    s.String("text", ""),
		HTMLSeed:    s.String("html", ""),
		MaxPages:    maxPages,
		Threads:     threads,
		IndexPath:   s.String("index", "index.json"),
		CountsPath:  s.String("counts", "counts.json"),
		ResultsPath: s.String("results", "results.json"),
		QueryPath:   s.String("query", ""),
		Exact:       s.Bool("exact"),
	}, nil
}
