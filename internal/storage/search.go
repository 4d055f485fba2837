package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/hoanghai1803/headliner/internal/models"
)

// SearchArticles performs a full-text search over every stored briefing
// article using FTS5. Each whitespace-separated term is matched as a quoted
// phrase and terms are OR-ed together. Results are ordered by FTS rank, then
// recency.
func (s *Store) SearchArticles(ctx context.Context, query string, limit int) ([]models.ArchivedArticle, error) {
	match := ftsQuery(query)
	if match == "" {
		return []models.ArchivedArticle{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT a.briefing_id, b.created_at,
				a.title, a.original_title, a.description, a.url, a.published_at,
				a.source, a.content, a.interest_score
		 FROM briefing_articles_fts fts
		 JOIN briefing_articles a ON a.id = fts.rowid
		 JOIN briefings b ON b.id = a.briefing_id
		 WHERE briefing_articles_fts MATCH ?
		 ORDER BY rank, b.created_at DESC
		 LIMIT ?`,
		match, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching articles: %w", err)
	}
	defer rows.Close()

	results := []models.ArchivedArticle{}
	for rows.Next() {
		var (
			r         models.ArchivedArticle
			createdAt string
		)
		if err := rows.Scan(
			&r.BriefingID, &createdAt,
			&r.Article.Title, &r.Article.OriginalTitle, &r.Article.Description,
			&r.Article.URL, &r.Article.PublishedAt, &r.Article.Source,
			&r.Article.Content, &r.Article.InterestScore,
		); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}

// ftsQuery turns free text into an FTS5 expression of OR-ed phrases.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ReplaceAll(t, `"`, `""`)
		quoted = append(quoted, `"`+t+`"`)
	}
	return strings.Join(quoted, " OR ")
}
