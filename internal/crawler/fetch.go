package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxRedirects caps redirect hops per spec §4.I step 2a.
const maxRedirects = 3

// FetcherConfig configures a Fetcher.
type FetcherConfig struct {
	HTTPClient           *http.Client
	RetryMax             int
	RetryWaitMin         time.Duration
	RetryWaitMax         time.Duration
	ConcurrencyPerDomain int // default 3
}

// Fetcher retrieves page bodies over HTTP with retry support for 429s, a
// capped redirect chain, and a per-domain concurrency limit so a crawl
// doesn't hammer a single host. Adapted from an article fetcher,
// generalized from "return extracted text" to "return the raw body" since
// the crawler needs the DOM for both link extraction and text stripping.
type Fetcher struct {
	client               *retryablehttp.Client
	domainSemaphores     map[string]chan struct{}
	mu                   sync.RWMutex
	concurrencyPerDomain int
}

// NewFetcher constructs a Fetcher with sane retry and redirect defaults.
func NewFetcher(cfg FetcherConfig) *Fetcher {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg.HTTPClient.CheckRedirect = limitRedirects(maxRedirects)

	if cfg.ConcurrencyPerDomain <= 0 {
		cfg.ConcurrencyPerDomain = 3
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = cfg.HTTPClient
	if cfg.RetryMax > 0 {
		retryClient.RetryMax = cfg.RetryMax
	}
	if cfg.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = cfg.RetryWaitMax
	}
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return true, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	retryClient.Backoff = func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
				if seconds, err := strconv.Atoi(retryAfter); err == nil {
					return clampDuration(time.Duration(seconds)*time.Second, min, max)
				}
			}
			return clampDuration(time.Duration(1<<uint(attemptNum))*time.Second, min, max)
		}
		return retryablehttp.DefaultBackoff(min, max, attemptNum, resp)
	}

	return &Fetcher{
		client:               retryClient,
		domainSemaphores:     make(map[string]chan struct{}),
		concurrencyPerDomain: cfg.ConcurrencyPerDomain,
	}
}

func clampDuration(d, min, max time.Duration) time.Duration {
	if d > max {
		return max
	}
	if d < min {
		return min
	}
	return d
}

func limitRedirects(max int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return fmt.Errorf("stopped after %d redirects", max)
		}
		return nil
	}
}

func (f *Fetcher) domainSemaphore(domain string) chan struct{} {
	f.mu.RLock()
	sem, ok := f.domainSemaphores[domain]
	f.mu.RUnlock()
	if ok {
		return sem
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if sem, ok := f.domainSemaphores[domain]; ok {
		return sem
	}
	sem = make(chan struct{}, f.concurrencyPerDomain)
	for i := 0; i < f.concurrencyPerDomain; i++ {
		sem <- struct{}{}
	}
	f.domainSemaphores[domain] = sem
	return sem
}

func extractDomain(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	return parsed.Hostname(), nil
}

// Fetch retrieves the raw body at rawURL, applying per-domain
// concurrency limiting, retry-with-backoff, and the capped redirect
// chain. A non-200 response or a transport failure returns an error; the
// caller (a crawl task) abandons that page and proceeds with the rest of
// the crawl.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	domain, err := extractDomain(rawURL)
	if err != nil {
		return nil, err
	}

	sem := f.domainSemaphore(domain)
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-sem:
		defer func() { sem <- struct{}{} }()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
