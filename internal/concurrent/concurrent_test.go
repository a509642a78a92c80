package concurrent

import (
	"bytes"
	"math"
	"sync"
	"testing"

	"github.com/shoresh319/gostone/internal/index"
)

func TestConcurrentAddsMatchSequentialMerge(t *testing.T) {
	files := map[string][]string{
		"a.txt": {"cat", "dog", "cat"},
		"b.txt": {"bird", "cat"},
		"c.txt": {"dog", "dog", "bird"},
	}

	shared := New()
	var wg sync.WaitGroup
	for loc, tokens := range files {
		wg.Add(1)
		go func(loc string, tokens []string) {
			defer wg.Done()
			local := index.New()
			_ = local.AddAllTokens(tokens, loc, 1)
			_ = shared.Merge(local)
		}(loc, tokens)
	}
	wg.Wait()

	sequential := index.New()
	for loc, tokens := range files {
		_ = sequential.AddAllTokens(tokens, loc, 1)
	}

	var gotIdx, wantIdx bytes.Buffer
	if err := shared.WriteIndexJSON(&gotIdx); err != nil {
		t.Fatal(err)
	}
	if err := sequential.WriteIndexJSON(&wantIdx); err != nil {
		t.Fatal(err)
	}
	if gotIdx.String() != wantIdx.String() {
		t.Fatalf("concurrent index diverged from sequential:\ngot:  %s\nwant: %s", gotIdx.String(), wantIdx.String())
	}
}

func TestConcurrentReadersDuringWritesNeverDivideByZero(t *testing.T) {
	shared := New()
	_ = shared.Add("cat", "a.txt", 1)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 2; i < 200; i++ {
			_ = shared.Add("cat", "a.txt", i)
		}
		close(stop)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			for _, r := range shared.ExactSearch(map[string]struct{}{"cat": {}}) {
				if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) || r.Score <= 0 {
					t.Errorf("score is not a positive finite ratio: %+v", r)
				}
			}
		}
	}()

	wg.Wait()
}
