// Package briefing runs the headliner pipeline: fetch, normalize, rank,
// rewrite and persist. It also answers questions about, and summarizes,
// the latest stored briefing.
package briefing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hoanghai1803/headliner/internal/ai"
	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/hoanghai1803/headliner/internal/headlines"
	"github.com/hoanghai1803/headliner/internal/metrics"
	"github.com/hoanghai1803/headliner/internal/models"
	"github.com/hoanghai1803/headliner/internal/news"
	"github.com/hoanghai1803/headliner/internal/ranking"
	"github.com/hoanghai1803/headliner/internal/storage"
)

var (
	// ErrNoSource is returned by Run when no news source is configured.
	ErrNoSource = errors.New("no news source configured")

	// ErrNoProvider is returned by operations that need an AI provider
	// when none is configured.
	ErrNoProvider = errors.New("AI provider not configured")

	// ErrNoBriefing is returned when an operation needs a stored briefing
	// and none exists yet.
	ErrNoBriefing = errors.New("no briefing available yet")
)

// Store is the persistence the service needs. *storage.Store implements it.
type Store interface {
	SaveBriefing(ctx context.Context, b *models.Briefing) error
	GetBriefing(ctx context.Context, id string) (*models.Briefing, error)
	GetLatestBriefing(ctx context.Context) (*models.Briefing, error)
	ListBriefings(ctx context.Context, limit int) ([]models.BriefingSummary, error)
	SearchArticles(ctx context.Context, query string, limit int) ([]models.ArchivedArticle, error)
	DeleteBriefingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Enricher replaces truncated article content with full text.
// *news.Extractor implements it.
type Enricher interface {
	Enrich(ctx context.Context, records []articles.RawArticle) ([]articles.RawArticle, int)
}

// Options configures a Service.
type Options struct {
	Query         string
	TopK          int
	RetentionDays int

	// Provider and Model describe the AI backend for status reporting.
	Provider string
	Model    string

	// MissingKeys lists configuration keys whose absence disables a
	// collaborator.
	MissingKeys []string
}

// Service owns the pipeline and its collaborators. Any collaborator except
// the store may be nil; the operations that need it then report an error.
type Service struct {
	source    news.Source
	extractor Enricher
	provider  ai.Provider
	rewriter  *headlines.Rewriter
	store     Store
	opts      Options

	now   func() time.Time
	newID func() string

	runMu sync.Mutex
}

// NewService wires a Service. rewriter may be nil to skip headline
// rewriting.
func NewService(source news.Source, extractor Enricher, provider ai.Provider, rewriter *headlines.Rewriter, store Store, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = ranking.DefaultTopK
	}
	return &Service{
		source:    source,
		extractor: extractor,
		provider:  provider,
		rewriter:  rewriter,
		store:     store,
		opts:      opts,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Run executes one pipeline pass and persists the result. Runs are
// serialized. Per-item problems (malformed records, unparseable timestamps,
// failed extractions and rewrites, individual feed failures) are logged and
// counted, never returned.
func (s *Service) Run(ctx context.Context) (*models.Briefing, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	b, err := s.run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordBriefing("failed", elapsed.Seconds())
		return nil, err
	}
	metrics.RecordBriefing("completed", elapsed.Seconds())

	slog.Info("briefing completed",
		"id", b.ID,
		"articles", len(b.Articles),
		"skipped", b.Skipped,
		"parse_failures", b.ParseFailures,
		"rewrite_failures", b.RewriteFailures,
		"failed_sources", len(b.FailedSources),
		"duration", elapsed,
	)
	return b, nil
}

func (s *Service) run(ctx context.Context) (*models.Briefing, error) {
	start := time.Now()

	// 1. Fetch raw records.
	slog.Info("fetching news", "source", s.source.Name())
	res, err := s.source.Fetch(ctx)
	if err != nil {
		metrics.RecordFetchFailure(s.source.Name())
		return nil, fmt.Errorf("fetching news: %w", err)
	}

	failed := make([]models.FailedSource, 0, len(res.Failed))
	for _, f := range res.Failed {
		metrics.RecordFetchFailure(f.Source)
		failed = append(failed, models.FailedSource{Source: f.Source, Error: f.Error})
	}

	// 2. Fill in truncated content.
	records := res.Records
	if s.extractor != nil {
		var extractFailures int
		records, extractFailures = s.extractor.Enrich(ctx, records)
		if extractFailures > 0 {
			slog.Warn("some articles kept truncated content", "count", extractFailures)
		}
	}

	// 3. Normalize and rank.
	now := s.now()
	ranked := ranking.Rank(articles.FromRaw(records), now)
	list := ranked.Articles

	// 4. Rewrite headlines.
	rewriteFailures := 0
	if s.rewriter != nil && len(list) > 0 {
		slog.Info("rewriting headlines", "articles", len(list))
		rw := s.rewriter.Rewrite(ctx, list)
		list = rw.Articles
		rewriteFailures = rw.Failures
	}

	metrics.RecordQuality(res.Skipped, ranked.ParseFailures, rewriteFailures)

	b := &models.Briefing{
		ID:              s.newID(),
		Query:           s.opts.Query,
		Articles:        list,
		TotalFetched:    len(res.Records) + res.Skipped,
		Skipped:         res.Skipped,
		ParseFailures:   ranked.ParseFailures,
		RewriteFailures: rewriteFailures,
		FailedSources:   failed,
		DurationMs:      time.Since(start).Milliseconds(),
		CreatedAt:       now,
	}
	if s.rewriter != nil {
		b.ModelUsed = s.opts.Model
	}

	// 5. Persist.
	if err := s.store.SaveBriefing(ctx, b); err != nil {
		return nil, fmt.Errorf("saving briefing: %w", err)
	}

	s.prune(ctx, now)
	return b, nil
}

func (s *Service) prune(ctx context.Context, now time.Time) {
	if s.opts.RetentionDays <= 0 {
		return
	}
	cutoff := now.AddDate(0, 0, -s.opts.RetentionDays)
	n, err := s.store.DeleteBriefingsBefore(ctx, cutoff)
	if err != nil {
		slog.Warn("failed to prune old briefings", "error", err)
		return
	}
	if n > 0 {
		slog.Info("pruned old briefings", "deleted", n, "cutoff", cutoff)
	}
}

// Latest returns the most recent briefing.
func (s *Service) Latest(ctx context.Context) (*models.Briefing, error) {
	b, err := s.store.GetLatestBriefing(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNoBriefing
		}
		return nil, fmt.Errorf("loading latest briefing: %w", err)
	}
	return b, nil
}

// Get returns the briefing with the given ID. A missing briefing is
// reported as storage.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Briefing, error) {
	return s.store.GetBriefing(ctx, id)
}

// List returns summaries of recent briefings, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]models.BriefingSummary, error) {
	return s.store.ListBriefings(ctx, limit)
}

// Search runs a relevance query over the latest briefing. k <= 0 selects
// the configured top_k.
func (s *Service) Search(ctx context.Context, query string, k int) (ranking.QueryResult, error) {
	b, err := s.Latest(ctx)
	if err != nil {
		return ranking.QueryResult{Matches: []ranking.Match{}}, err
	}
	if k <= 0 {
		k = s.opts.TopK
	}
	return ranking.Query(b.Articles, query, k), nil
}

// SearchArchive runs a full-text search across every stored briefing.
func (s *Service) SearchArchive(ctx context.Context, query string, limit int) ([]models.ArchivedArticle, error) {
	results, err := s.store.SearchArticles(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching archive: %w", err)
	}
	return results, nil
}

// entries converts articles into prompt entries, most interesting first.
func entries(list []articles.Article) []ai.ArticleEntry {
	out := make([]ai.ArticleEntry, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		a := list[i]
		out = append(out, ai.ArticleEntry{
			Title:         a.Title,
			Source:        a.Source,
			Description:   a.Description,
			URL:           a.URL,
			InterestScore: a.InterestScore,
			Badge:         ranking.Tier(a.InterestScore).Badge(),
		})
	}
	return out
}
