package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/hoanghai1803/headliner/internal/articles"
	"golang.org/x/sync/errgroup"
)

// truncationMarker matches the "[1234 chars]" suffix GNews appends to
// shortened article content.
var truncationMarker = regexp.MustCompile(`\[\+?\d+ chars\]\s*$`)

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Headliner/1.0; +https://github.com/hoanghai1803/headliner)")
}

// Extractor fetches full article text with go-readability.
type Extractor struct {
	limiter  *hostLimiter
	timeout  time.Duration
	maxWords int
}

// NewExtractor creates an Extractor that waits at least one second between
// requests to the same domain and keeps at most 5000 words per article.
func NewExtractor() *Extractor {
	return &Extractor{
		limiter:  newHostLimiter(rateLimitInterval),
		timeout:  httpTimeout,
		maxWords: maxWords,
	}
}

// NeedsFullText reports whether content is missing or was cut short by the
// upstream API.
func NeedsFullText(content string) bool {
	content = strings.TrimSpace(content)
	return content == "" || truncationMarker.MatchString(content)
}

// Extract fetches the page at articleURL and returns its main readable text,
// truncated to the extractor's word limit.
func (e *Extractor) Extract(ctx context.Context, articleURL string) (string, error) {
	if err := e.limiter.wait(ctx, articleURL); err != nil {
		return "", fmt.Errorf("waiting for rate limit: %w", err)
	}

	article, err := readability.FromURL(articleURL, e.timeout, browserHeaders)
	if err != nil {
		return "", fmt.Errorf("extracting article from %q: %w", articleURL, err)
	}

	return truncateWords(strings.TrimSpace(article.TextContent), e.maxWords), nil
}

// Enrich returns a copy of records in which truncated or empty content has
// been replaced by extracted full text, plus the number of failed
// extractions. Failed records keep their original content.
func (e *Extractor) Enrich(ctx context.Context, records []articles.RawArticle) ([]articles.RawArticle, int) {
	out := make([]articles.RawArticle, len(records))
	copy(out, records)

	var failures atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i := range out {
		if out[i].URL == "" || !NeedsFullText(out[i].Content) {
			continue
		}
		g.Go(func() error {
			text, err := e.Extract(ctx, out[i].URL)
			if err != nil || text == "" {
				slog.Warn("failed to extract article text", "url", out[i].URL, "error", err)
				failures.Add(1)
				return nil
			}
			out[i].Content = text
			return nil
		})
	}
	_ = g.Wait()

	return out, int(failures.Load())
}

// truncateWords returns the first maxWords whitespace-delimited words from s.
// If s contains fewer than maxWords words, it is returned unchanged.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
