package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
)

// FeedFetcher fetches RSS and Atom feeds with per-domain rate limiting and
// bounded concurrency.
type FeedFetcher struct {
	feeds     []string
	hoursBack int

	client    *http.Client
	limiter   *hostLimiter
	sanitizer *Sanitizer
	now       func() time.Time
}

// NewFeedFetcher creates a FeedFetcher for the given feed URLs. Items
// published more than hoursBack hours ago are dropped; hoursBack <= 0
// disables the filter.
func NewFeedFetcher(feeds []string, hoursBack int) *FeedFetcher {
	return &FeedFetcher{
		feeds:     feeds,
		hoursBack: hoursBack,
		client:    newHTTPClient(),
		limiter:   newHostLimiter(rateLimitInterval),
		sanitizer: NewSanitizer(),
		now:       time.Now,
	}
}

// Name implements Source.
func (f *FeedFetcher) Name() string { return "rss" }

// Fetch fetches all configured feeds concurrently with a maximum of 10
// goroutines. Individual feed failures are collected in FetchResult.Failed
// rather than failing the entire batch.
func (f *FeedFetcher) Fetch(ctx context.Context) (*FetchResult, error) {
	perFeed := make([]*FetchResult, len(f.feeds))
	var (
		failed []FailedFeed
		mu     sync.Mutex
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, feedURL := range f.feeds {
		g.Go(func() error {
			res, err := f.fetchSingleFeed(ctx, feedURL)
			if err != nil {
				slog.Warn("failed to fetch feed", "url", feedURL, "error", err)

				mu.Lock()
				failed = append(failed, FailedFeed{Source: feedURL, Error: err.Error()})
				mu.Unlock()

				return nil // skip failures, don't fail the batch
			}

			perFeed[i] = res
			slog.Info("fetched feed", "url", feedURL, "items", len(res.Records), "skipped", res.Skipped)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching feeds: %w", err)
	}

	// Concatenate in configuration order so output does not depend on
	// goroutine scheduling.
	result := &FetchResult{Failed: failed}
	for _, res := range perFeed {
		if res == nil {
			continue
		}
		result.Records = append(result.Records, res.Records...)
		result.Skipped += res.Skipped
	}
	return result, nil
}

func (f *FeedFetcher) fetchSingleFeed(ctx context.Context, feedURL string) (*FetchResult, error) {
	if err := f.limiter.wait(ctx, feedURL); err != nil {
		return nil, fmt.Errorf("waiting for rate limit: %w", err)
	}

	fp := gofeed.NewParser()
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", feedURL, err)
	}

	return f.parseFeedItems(feedURL, feed), nil
}

// parseFeedItems converts gofeed items into raw records, filtering by the
// lookback window. Items with nil PublishedParsed are always included. Items
// with empty Title or Link are skipped and counted.
func (f *FeedFetcher) parseFeedItems(feedURL string, feed *gofeed.Feed) *FetchResult {
	var cutoff time.Time
	if f.hoursBack > 0 {
		cutoff = f.now().Add(-time.Duration(f.hoursBack) * time.Hour)
	}

	source := articles.RawSource{Name: feed.Title, URL: feed.Link}
	if source.Name == "" {
		source.Name = extractDomain(feedURL)
	}
	if source.URL == "" {
		source.URL = feedURL
	}

	res := &FetchResult{}
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			res.Skipped++
			continue
		}

		if item.PublishedParsed != nil && !cutoff.IsZero() && item.PublishedParsed.Before(cutoff) {
			continue
		}

		publishedAt := item.Published
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}

		res.Records = append(res.Records, articles.RawArticle{
			Title:       f.sanitizer.Text(item.Title),
			Description: f.sanitizer.Text(item.Description),
			URL:         item.Link,
			PublishedAt: publishedAt,
			Source:      source,
			Content:     f.sanitizer.Text(item.Content),
		})
	}
	return res
}
