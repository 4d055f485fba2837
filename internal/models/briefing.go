package models

import (
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
)

// FailedSource records a news source or feed that could not be fetched
// during a briefing run.
type FailedSource struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// Briefing is one completed pipeline run: the ranked articles plus an audit
// trail of what was dropped along the way. Articles are stored in ranked
// order, least interesting first.
type Briefing struct {
	ID              string             `json:"id"`
	Query           string             `json:"query"`
	Articles        []articles.Article `json:"articles"`
	TotalFetched    int                `json:"total_fetched"`
	Skipped         int                `json:"skipped"`
	ParseFailures   int                `json:"parse_failures"`
	RewriteFailures int                `json:"rewrite_failures"`
	FailedSources   []FailedSource     `json:"failed_sources"`
	ModelUsed       string             `json:"model_used,omitempty"`
	DurationMs      int64              `json:"duration_ms"`
	CreatedAt       time.Time          `json:"created_at"`
}

// BriefingSummary is the list view of a Briefing.
type BriefingSummary struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	ArticleCount int       `json:"article_count"`
	TopTitle     string    `json:"top_title,omitempty"`
	TopScore     int       `json:"top_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// ArchivedArticle is an article found by a full-text search across stored
// briefings.
type ArchivedArticle struct {
	BriefingID string           `json:"briefing_id"`
	Article    articles.Article `json:"article"`
	CreatedAt  time.Time        `json:"created_at"`
}
