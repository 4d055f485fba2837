// Package news fetches raw news records from GNews and RSS/Atom feeds and
// enriches them with full article text.
package news

import (
	"context"
	"net/http"
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
)

const (
	httpTimeout   = 30 * time.Second
	maxConcurrent = 10
	maxWords      = 5000
)

// Source produces raw news records.
type Source interface {
	Fetch(ctx context.Context) (*FetchResult, error)
	Name() string
}

// FailedFeed records a feed or source that could not be fetched.
type FailedFeed struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// FetchResult contains the raw records fetched from a source, the number of
// records dropped as malformed, and any per-feed failures.
type FetchResult struct {
	Records []articles.RawArticle
	Skipped int
	Failed  []FailedFeed
}

// newHTTPClient returns an HTTP client with a 30-second timeout and
// browser-like request headers.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: httpTimeout,
		Transport: &userAgentTransport{
			base: http.DefaultTransport,
		},
	}
}

// userAgentTransport wraps an http.RoundTripper to inject a custom User-Agent
// header on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Headliner/1.0; +https://github.com/hoanghai1803/headliner)")
	req.Header.Set("Accept", "application/json,application/rss+xml,application/atom+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	return t.base.RoundTrip(req)
}
