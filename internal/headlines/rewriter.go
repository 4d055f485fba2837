// Package headlines rewrites article titles in the style of their
// excitement tier.
package headlines

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hoanghai1803/headliner/internal/ai"
	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/hoanghai1803/headliner/internal/ranking"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 4
	defaultCacheSize   = 512
)

// Result is the outcome of Rewrite.
type Result struct {
	// Articles are in input order. Rewritten articles carry the fetched
	// title in OriginalTitle.
	Articles []articles.Article

	// Failures counts articles that kept their title because the provider
	// failed or returned nothing usable.
	Failures int

	// CacheHits counts rewrites served from the cache.
	CacheHits int
}

// Rewriter asks an AI provider for tier-styled headlines.
type Rewriter struct {
	provider    ai.Provider
	concurrency int
	cache       *lru.Cache[string, string]
}

// NewRewriter creates a Rewriter that runs at most concurrency provider
// calls at a time. concurrency <= 0 selects the default of 4.
func NewRewriter(provider ai.Provider, concurrency int) (*Rewriter, error) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	cache, err := lru.New[string, string](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating headline cache: %w", err)
	}
	return &Rewriter{provider: provider, concurrency: concurrency, cache: cache}, nil
}

// Rewrite returns a copy of list with each title replaced by a rewritten
// headline. An article whose rewrite fails keeps its title. The input list
// is never modified.
func (r *Rewriter) Rewrite(ctx context.Context, list []articles.Article) Result {
	out := articles.Clone(list)
	if out == nil {
		out = []articles.Article{}
	}

	var failures, hits atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i := range out {
		g.Go(func() error {
			a := out[i]
			key := cacheKey(a)
			if headline, ok := r.cache.Get(key); ok {
				hits.Add(1)
				out[i] = articles.Patch(a, articles.Fields{Title: &headline})
				return nil
			}

			headline, err := r.rewriteOne(ctx, a)
			if err != nil {
				slog.Warn("headline rewrite failed, keeping original", "url", a.URL, "error", err)
				failures.Add(1)
				return nil
			}

			r.cache.Add(key, headline)
			out[i] = articles.Patch(a, articles.Fields{Title: &headline})
			return nil
		})
	}
	_ = g.Wait() // per-article failures are absorbed above

	return Result{
		Articles:  out,
		Failures:  int(failures.Load()),
		CacheHits: int(hits.Load()),
	}
}

func (r *Rewriter) rewriteOne(ctx context.Context, a articles.Article) (string, error) {
	if strings.TrimSpace(a.Title) == "" {
		return "", fmt.Errorf("article has no title")
	}

	tier := ranking.Tier(a.InterestScore)
	headline, err := r.provider.RewriteHeadline(ctx, ai.HeadlineRequest{
		Title:         a.Title,
		Description:   a.Description,
		InterestScore: a.InterestScore,
		Badge:         tier.Badge(),
		Style:         tier.Style,
	})
	if err != nil {
		return "", err
	}

	headline = strings.TrimSpace(headline)
	if headline == "" {
		return "", fmt.Errorf("provider returned an empty headline")
	}
	return headline, nil
}

// cacheKey identifies a rewrite by the article and the inputs that shape
// the prompt.
func cacheKey(a articles.Article) string {
	return a.URL + "\x00" + strconv.Itoa(a.InterestScore) + "\x00" + a.Title
}
