package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/hoanghai1803/headliner/internal/models"
)

// timeLayout is fixed-width so that created_at sorts correctly as text.
const timeLayout = "2006-01-02 15:04:05.000000"

// SaveBriefing inserts a briefing and its articles in one transaction.
// Articles keep their slice order via the position column.
func (s *Store) SaveBriefing(ctx context.Context, b *models.Briefing) error {
	failedJSON, err := json.Marshal(nonNilFailed(b.FailedSources))
	if err != nil {
		return fmt.Errorf("marshaling failed sources: %w", err)
	}

	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO briefings
			(id, query, total_fetched, skipped, parse_failures, rewrite_failures,
			 failed_sources_json, model_used, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Query, b.TotalFetched, b.Skipped, b.ParseFailures, b.RewriteFailures,
		string(failedJSON), b.ModelUsed, b.DurationMs, createdAt.UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("inserting briefing: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO briefing_articles
			(briefing_id, position, title, original_title, description, url,
			 published_at, source, content, interest_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing article insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range b.Articles {
		if _, err := stmt.ExecContext(ctx,
			b.ID, i, a.Title, a.OriginalTitle, a.Description, a.URL,
			a.PublishedAt, a.Source, a.Content, a.InterestScore,
		); err != nil {
			return fmt.Errorf("inserting briefing article %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing briefing: %w", err)
	}
	return nil
}

// GetBriefing returns the briefing with the given ID and its articles.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetBriefing(ctx context.Context, id string) (*models.Briefing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, total_fetched, skipped, parse_failures, rewrite_failures,
				failed_sources_json, model_used, duration_ms, created_at
		 FROM briefings WHERE id = ?`, id)
	return s.loadBriefing(ctx, row)
}

// GetLatestBriefing returns the most recently created briefing.
// Returns nil, ErrNotFound if no briefing has been stored yet.
func (s *Store) GetLatestBriefing(ctx context.Context) (*models.Briefing, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, total_fetched, skipped, parse_failures, rewrite_failures,
				failed_sources_json, model_used, duration_ms, created_at
		 FROM briefings
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT 1`)
	return s.loadBriefing(ctx, row)
}

func (s *Store) loadBriefing(ctx context.Context, row *sql.Row) (*models.Briefing, error) {
	var (
		b          models.Briefing
		failedJSON string
		createdAt  string
	)
	err := row.Scan(
		&b.ID, &b.Query, &b.TotalFetched, &b.Skipped, &b.ParseFailures,
		&b.RewriteFailures, &failedJSON, &b.ModelUsed, &b.DurationMs, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting briefing: %w", err)
	}
	b.CreatedAt = parseTime(createdAt)

	if err := json.Unmarshal([]byte(failedJSON), &b.FailedSources); err != nil {
		return nil, fmt.Errorf("decoding failed sources of briefing %s: %w", b.ID, err)
	}

	list, err := s.briefingArticles(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Articles = list
	return &b, nil
}

func (s *Store) briefingArticles(ctx context.Context, briefingID string) ([]articles.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, original_title, description, url, published_at, source,
				content, interest_score
		 FROM briefing_articles
		 WHERE briefing_id = ?
		 ORDER BY position`, briefingID)
	if err != nil {
		return nil, fmt.Errorf("querying briefing articles: %w", err)
	}
	defer rows.Close()

	list := []articles.Article{}
	for rows.Next() {
		var a articles.Article
		if err := rows.Scan(
			&a.Title, &a.OriginalTitle, &a.Description, &a.URL,
			&a.PublishedAt, &a.Source, &a.Content, &a.InterestScore,
		); err != nil {
			return nil, fmt.Errorf("scanning briefing article: %w", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating briefing articles: %w", err)
	}
	return list, nil
}

// ListBriefings returns summaries of the most recent briefings, newest
// first. The top article is the last one in ranked order.
func (s *Store) ListBriefings(ctx context.Context, limit int) ([]models.BriefingSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id, b.query, b.created_at,
				(SELECT COUNT(*) FROM briefing_articles a WHERE a.briefing_id = b.id),
				COALESCE((SELECT a.title FROM briefing_articles a
						  WHERE a.briefing_id = b.id ORDER BY a.position DESC LIMIT 1), ''),
				COALESCE((SELECT a.interest_score FROM briefing_articles a
						  WHERE a.briefing_id = b.id ORDER BY a.position DESC LIMIT 1), 0)
		 FROM briefings b
		 ORDER BY b.created_at DESC, b.rowid DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying briefings: %w", err)
	}
	defer rows.Close()

	summaries := []models.BriefingSummary{}
	for rows.Next() {
		var (
			sum       models.BriefingSummary
			createdAt string
		)
		if err := rows.Scan(&sum.ID, &sum.Query, &createdAt, &sum.ArticleCount, &sum.TopTitle, &sum.TopScore); err != nil {
			return nil, fmt.Errorf("scanning briefing row: %w", err)
		}
		sum.CreatedAt = parseTime(createdAt)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating briefing rows: %w", err)
	}
	return summaries, nil
}

// DeleteBriefingsBefore removes briefings created before cutoff together
// with their articles and returns how many briefings were deleted.
func (s *Store) DeleteBriefingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM briefings WHERE created_at < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("deleting old briefings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted briefings: %w", err)
	}
	return n, nil
}

func nonNilFailed(failed []models.FailedSource) []models.FailedSource {
	if failed == nil {
		return []models.FailedSource{}
	}
	return failed
}
