package config

import "testing"

func TestFromArgsDefaults(t *testing.T) {
	cfg, err := FromArgs([]string{"-text", "corpus"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxPages != 1 {
		t.Errorf("MaxPages = %d, want 1", cfg.MaxPages)
	}
	if cfg.Threads != 5 {
		t.Errorf("Threads = %d, want 5", cfg.Threads)
	}
	if cfg.IndexPath != "index.json" || cfg.CountsPath != "counts.json" || cfg.ResultsPath != "results.json" {
		t.Errorf("unexpected default paths: %+v", cfg)
	}
	if cfg.Exact {
		t.Error("Exact should default to false")
	}
}

func TestFromArgsOverrides(t *testing.T) {
	cfg, err := FromArgs([]string{"-html", "https://example.com", "-max", "3", "-threads", "2", "-exact"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTMLSeed != "https://example.com" {
		t.Errorf("HTMLSeed = %q", cfg.HTMLSeed)
	}
	if cfg.MaxPages != 3 {
		t.Errorf("MaxPages = %d, want 3", cfg.MaxPages)
	}
	if cfg.Threads != 2 {
		t.Errorf("Threads = %d, want 2", cfg.Threads)
	}
	if !cfg.Exact {
		t.Error("Exact should be true")
	}
}

func TestFromArgsRejectsZeroThreads(t *testing.T) {
	if _, err := FromArgs([]string{"-threads", "0"}); err == nil {
		t.Fatal("expected error for -threads 0")
	}
}
