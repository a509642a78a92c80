package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/shoresh319/gostone/internal/builder"
	"github.com/shoresh319/gostone/internal/concurrent"
	"github.com/shoresh319/gostone/internal/config"
	"github.com/shoresh319/gostone/internal/crawler"
	"github.com/shoresh319/gostone/internal/index"
	"github.com/shoresh319/gostone/internal/query"
	"github.com/shoresh319/gostone/internal/queue"
)

func main() {
	cfg, err := config.FromArgs(os.Args[1:])
	if err != nil {
		log.Printf("gostone: %v", err)
		os.Exit(1)
	}

	if cfg.TextPath == "" && cfg.HTMLSeed == "" && cfg.QueryPath == "" {
		log.Print("gostone: nothing to do; pass -text, -html, or -query")
		os.Exit(0)
	}

	idx := concurrent.New()
	concurrentMode := cfg.Threads > 1

	var wq *queue.Queue
	if concurrentMode {
		wq = queue.New(cfg.Threads)
		defer wq.Join()
	}

	if cfg.TextPath != "" {
		if err := ingestText(cfg, idx, wq); err != nil {
			log.Printf("gostone: index %s: %v", cfg.TextPath, err)
		}
	}

	if cfg.HTMLSeed != "" {
		if err := ingestCrawl(cfg, idx, wq); err != nil {
			log.Printf("gostone: crawl %s: %v", cfg.HTMLSeed, err)
		}
	}

	if err := writeIndexOutputs(cfg, idx); err != nil {
		log.Printf("gostone: write index outputs: %v", err)
	}

	if cfg.QueryPath != "" {
		if err := runQueries(cfg, idx, wq); err != nil {
			log.Printf("gostone: run queries: %v", err)
		}
	}
}

func ingestText(cfg config.Config, idx *concurrent.Index, wq *queue.Queue) error {
	if wq != nil {
		return builder.BuildIndexConcurrent(cfg.TextPath, idx, wq)
	}
	// BuildIndex works against the bare index; a single-threaded run
	// still benefits from a private local index merged once, so it
	// shares the same write-lock discipline as the concurrent path.
	local := index.New()
	if err := builder.BuildIndex(cfg.TextPath, local); err != nil {
		return err
	}
	return idx.Merge(local)
}

func ingestCrawl(cfg config.Config, idx *concurrent.Index, wq *queue.Queue) error {
	crawlQueue := wq
	if crawlQueue == nil {
		crawlQueue = queue.New(1)
		defer crawlQueue.Join()
	}

	fetcher := crawler.NewFetcher(crawler.FetcherConfig{})
	c := crawler.New(cfg.MaxPages, idx, crawlQueue, fetcher)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	return c.Run(ctx, cfg.HTMLSeed)
}

func writeIndexOutputs(cfg config.Config, idx *concurrent.Index) error {
	if err := writeJSONFile(cfg.IndexPath, idx.WriteIndexJSON); err != nil {
		return err
	}
	return writeJSONFile(cfg.CountsPath, idx.WriteCountsJSON)
}

func runQueries(cfg config.Config, idx *concurrent.Index, wq *queue.Queue) error {
	parser := query.New(idx, cfg.Exact)

	var err error
	if wq != nil {
		err = parser.SearchFileConcurrent(cfg.QueryPath, wq)
	} else {
		err = parser.SearchFile(cfg.QueryPath)
	}
	if err != nil {
		return err
	}

	return writeJSONFile(cfg.ResultsPath, parser.WriteJSON)
}

func writeJSONFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
