package crawler

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"

	"golang.org/x/net/html"

	"github.com/shoresh319/gostone/internal/concurrent"
	"github.com/shoresh319/gostone/internal/index"
	"github.com/shoresh319/gostone/internal/queue"
	"github.com/shoresh319/gostone/internal/stem"
)

// Crawler performs a bounded breadth-first crawl starting from a seed URL,
// indexing the text of every page it visits into a shared concurrent
// index. Visiting and link extraction run on the work queue so many pages
// fetch and index in parallel; the visited set and the max-pages cap are
// enforced under a single lock so the crawl never overshoots max even
// when many pages finish at once.
type Crawler struct {
	max     int
	mu      sync.Mutex
	visited map[string]struct{}

	index   *concurrent.Index
	wq      *queue.Queue
	fetcher *Fetcher
}

// New constructs a Crawler that stops once max distinct pages have been
// visited, indexing into idx using wq for concurrency and fetcher for
// retrieval.
func New(max int, idx *concurrent.Index, wq *queue.Queue, fetcher *Fetcher) *Crawler {
	if max < 1 {
		max = 1
	}
	return &Crawler{
		max:     max,
		visited: make(map[string]struct{}),
		index:   idx,
		wq:      wq,
		fetcher: fetcher,
	}
}

// Run seeds the crawl at rawURL and blocks until every submitted page has
// been processed.
func (c *Crawler) Run(ctx context.Context, rawURL string) error {
	if err := c.Seed(ctx, rawURL); err != nil {
		return err
	}
	c.Wait()
	return nil
}

// Seed normalizes rawURL and, if it has not already been visited and the
// cap has not been reached, submits it as the first crawl task.
func (c *Crawler) Seed(ctx context.Context, rawURL string) error {
	normalized, err := NormalizeURL(rawURL, rawURL)
	if err != nil {
		return err
	}
	c.submit(ctx, normalized)
	return nil
}

// Wait blocks until the work queue has drained every submitted task.
func (c *Crawler) Wait() {
	c.wq.Finish()
}

// submit registers pageURL as visited and enqueues a task to crawl it,
// unless the cap has already been reached or the page was seen before.
// Marking visited, checking the cap, and enqueuing the task happen under
// the same lock a
// crawlOne task uses when discovering new links, so concurrent discovery
// of the same link never double-submits it and the visited count never
// exceeds max.
func (c *Crawler) submit(ctx context.Context, pageURL string) {
	c.mu.Lock()
	if len(c.visited) >= c.max {
		c.mu.Unlock()
		return
	}
	if _, seen := c.visited[pageURL]; seen {
		c.mu.Unlock()
		return
	}
	c.visited[pageURL] = struct{}{}
	c.wq.Execute(func() {
		c.crawlOne(ctx, pageURL)
	})
	c.mu.Unlock()
}

// crawlOne fetches pageURL, indexes its text, and submits any links it
// discovers for further crawling.
func (c *Crawler) crawlOne(ctx context.Context, pageURL string) {
	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		log.Printf("crawler: fetch %s: %v", pageURL, err)
		return
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		log.Printf("crawler: parse %s: %v", pageURL, err)
		return
	}

	if err := c.indexPage(pageURL, doc); err != nil {
		log.Printf("crawler: index %s: %v", pageURL, err)
	}

	for _, link := range extractLinks(doc, pageURL) {
		c.submit(ctx, link)
	}
}

// indexPage stems the page's visible text and merges it into the shared
// index under the page's URL as its location.
func (c *Crawler) indexPage(pageURL string, doc *html.Node) error {
	stemmer := stem.New()
	tokens := stemmer.StemLine(extractText(doc))
	if len(tokens) == 0 {
		return nil
	}
	local := index.New()
	if err := local.AddAllTokens(tokens, pageURL, 1); err != nil {
		return err
	}
	return c.index.Merge(local)
}

// extractLinks walks doc's DOM for <a href> attributes and normalizes
// each against pageURL, dropping anything that fails to resolve into an
// http(s) URL.
func extractLinks(doc *html.Node, pageURL string) []string {
	var links []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				normalized, err := NormalizeURL(pageURL, attr.Val)
				if err == nil {
					links = append(links, normalized)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return links
}

// extractText concatenates doc's text nodes, skipping script and style
// content, and joins them with newlines.
func extractText(doc *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.Join(parts, "\n")
}
