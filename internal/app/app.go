// Package app wires configuration into a ready-to-use briefing service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hoanghai1803/headliner/internal/ai"
	"github.com/hoanghai1803/headliner/internal/briefing"
	"github.com/hoanghai1803/headliner/internal/config"
	"github.com/hoanghai1803/headliner/internal/headlines"
	"github.com/hoanghai1803/headliner/internal/news"
	"github.com/hoanghai1803/headliner/internal/storage"
)

// App holds the long-lived collaborators of a running process.
type App struct {
	Config  *config.Config
	Store   *storage.Store
	Service *briefing.Service

	closers []func() error
}

// New opens the database, connects the optional cache and builds the news
// sources, AI provider and briefing service described by cfg. Missing
// credentials disable the matching collaborator instead of failing.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	store, err := openStore(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	a.Store = store
	a.closers = append(a.closers, store.Close)

	cache := openCache(ctx, cfg.Cache)
	if cache != nil {
		a.closers = append(a.closers, cache.Close)
	}

	source := NewSource(cfg, cache)

	provider, err := NewProvider(cfg.AI)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	var rewriter *headlines.Rewriter
	if provider != nil && cfg.Ranking.RewriteHeadlines {
		rewriter, err = headlines.NewRewriter(provider, cfg.Ranking.RewriteConcurrency)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("creating headline rewriter: %w", err)
		}
	}

	a.Service = briefing.NewService(source, news.NewExtractor(), provider, rewriter, store, briefing.Options{
		Query:         cfg.News.Query,
		TopK:          cfg.Ranking.TopK,
		RetentionDays: cfg.Storage.RetentionDays,
		Provider:      cfg.AI.Provider,
		Model:         cfg.AI.Model,
		MissingKeys:   cfg.MissingKeys(),
	})
	return a, nil
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewSource builds the configured news sources. It returns nil when neither
// a GNews key nor any feed is configured.
func NewSource(cfg *config.Config, cache *news.ResponseCache) news.Source {
	var sources []news.Source
	if cfg.News.APIKey != "" {
		sources = append(sources, news.NewGNewsClient(cfg.News.APIKey, news.GNewsParams{
			Query:     cfg.News.Query,
			Lang:      cfg.News.Lang,
			Country:   cfg.News.Country,
			Max:       cfg.News.MaxArticles,
			HoursBack: cfg.News.HoursBack,
		}, cache))
	}
	if len(cfg.News.Feeds) > 0 {
		sources = append(sources, news.NewFeedFetcher(cfg.News.Feeds, cfg.News.HoursBack))
	}
	if len(sources) == 0 {
		slog.Warn("no news source configured, briefings are disabled")
		return nil
	}
	return news.NewMulti(sources...)
}

// NewProvider creates the AI provider, or returns nil when no API key is
// configured.
func NewProvider(cfg config.AIConfig) (ai.Provider, error) {
	if cfg.APIKey == "" {
		slog.Warn("no AI provider API key configured, AI features will be disabled")
		return nil, nil
	}
	provider, err := ai.NewProvider(ai.ProviderConfig{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("creating AI provider: %w", err)
	}
	slog.Info("AI provider configured", "provider", cfg.Provider, "model", cfg.Model)
	return provider, nil
}

func openStore(path string) (*storage.Store, error) {
	store, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening briefing archive: %w", err)
	}
	return store, nil
}

// openCache connects to Redis when configured. An unreachable server is
// logged and the cache disabled.
func openCache(ctx context.Context, cfg config.CacheConfig) *news.ResponseCache {
	if cfg.RedisURL == "" || cfg.TTLMinutes == 0 {
		return nil
	}
	cache, err := news.NewResponseCache(cfg.RedisURL, time.Duration(cfg.TTLMinutes)*time.Minute)
	if err != nil {
		slog.Warn("invalid redis configuration, response cache disabled", "error", err)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		slog.Warn("redis unavailable, response cache disabled", "error", err)
		_ = cache.Close()
		return nil
	}
	slog.Info("response cache enabled", "ttl_minutes", cfg.TTLMinutes)
	return cache
}
