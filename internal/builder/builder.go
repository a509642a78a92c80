// Package builder implements the index builder (spec §4.G): walking a
// directory or single file, stemming each line, and adding the resulting
// tokens to an inverted index at a monotonically increasing position.
package builder

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shoresh319/gostone/internal/concurrent"
	"github.com/shoresh319/gostone/internal/index"
	"github.com/shoresh319/gostone/internal/queue"
	"github.com/shoresh319/gostone/internal/stem"
)

// sequentialFanOut bounds how many files are stemmed in parallel during
// BuildIndex. This is independent of the work-queue-based concurrent mode
// the -threads flag enables: it just keeps single-process runs from
// stemming one file at a time when several cores are idle, while merging
// results back in a fixed file order so the resulting index never
// depends on goroutine scheduling.
const sequentialFanOut = 4

// textExtensions are the case-insensitive extensions eligible for
// indexing when walking a directory.
var textExtensions = map[string]bool{
	".txt":  true,
	".text": true,
}

// ListFiles returns every regular file under path whose extension is
// .txt or .text (case-insensitive), in deterministic lexical order. If
// path is not a directory, it is returned as the sole entry regardless
// of extension.
func ListFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if textExtensions[strings.ToLower(filepath.Ext(p))] {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

// BuildFile stems every line of the file at path and adds the resulting
// tokens to idx under location path. Position increments once per
// stemmed token emitted, starting at 1, across the whole file — not per
// line.
func BuildFile(path string, idx *index.Index, stemmer *stem.Stemmer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	position := 1
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		tokens := stemmer.StemLine(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if err := idx.AddAllTokens(tokens, path, position); err != nil {
			return fmt.Errorf("index %s: %w", path, err)
		}
		position += len(tokens)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

// BuildIndex walks path (a directory or a single file) and adds every
// eligible file's tokens to idx. Files are parsed into private local
// indexes with bounded fan-out, then merged into idx in file order, so
// the result is identical to a strictly sequential build regardless of
// how the fan-out goroutines are scheduled.
func BuildIndex(path string, idx *index.Index) error {
	files, err := ListFiles(path)
	if err != nil {
		return err
	}

	locals := make([]*index.Index, len(files))
	var group errgroup.Group
	group.SetLimit(sequentialFanOut)
	for i, f := range files {
		i, f := i, f
		group.Go(func() error {
			local := index.New()
			if err := BuildFile(f, local, stem.New()); err != nil {
				return err
			}
			locals[i] = local
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	for _, local := range locals {
		if err := idx.Merge(local); err != nil {
			return err
		}
	}
	return nil
}

// BuildIndexConcurrent walks path and submits one work-queue task per
// file: each task builds a private local index (with its own stemmer,
// per spec's non-thread-safe-stemmer discipline) and merges it into the
// shared index in a single bulk operation. It calls wq.Finish() before
// returning, so every submitted task has completed and the shared index
// holds every file's tokens when it returns.
func BuildIndexConcurrent(path string, shared *concurrent.Index, wq *queue.Queue) error {
	files, err := ListFiles(path)
	if err != nil {
		return err
	}
	for _, f := range files {
		file := f
		wq.Execute(func() {
			buildFromFile(file, shared)
		})
	}
	wq.Finish()
	return nil
}

func buildFromFile(path string, shared *concurrent.Index) {
	local := index.New()
	if err := BuildFile(path, local, stem.New()); err != nil {
		logBuildError(path, err)
		return
	}
	if err := shared.Merge(local); err != nil {
		logBuildError(path, err)
	}
}
