// Package ranking scores news articles and produces ordered views of them.
//
// Interest scoring depends only on an article's own title, description and
// publication time, so every function here is pure and safe to call from
// any number of goroutines. Relevance scoring answers free-text queries
// against a collection without changing it.
package ranking

import (
	"math"
	"strings"
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
)

const (
	baseScore = 1

	highKeywordPoints = 3
	highKeywordCap    = 6
	mediumKeywordCap  = 2

	freshWindow  = 6 * time.Hour
	recentWindow = 12 * time.Hour

	freshBonus  = 1.0
	recentBonus = 0.5
)

// Score is the breakdown of an interest score.
type Score struct {
	Value   int     `json:"value"`
	High    int     `json:"high_matches"`
	Medium  int     `json:"medium_matches"`
	Recency float64 `json:"recency_bonus"`

	// TimestampErr is set when publishedAt could not be parsed. The recency
	// bonus is 0 in that case.
	TimestampErr error `json:"-"`
}

// RecencyBonus returns +1 for articles younger than 6 hours, +0.5 for
// articles in [6h, 12h), and 0 otherwise. An unparseable timestamp yields a
// bonus of 0 together with the parse error; callers decide whether to count
// it. Timestamps in the future count as fresh.
func RecencyBonus(publishedAt string, now time.Time) (float64, error) {
	published, err := ParseTimestamp(publishedAt)
	if err != nil {
		return 0, err
	}
	age := now.Sub(published)
	switch {
	case age < freshWindow:
		return freshBonus, nil
	case age < recentWindow:
		return recentBonus, nil
	default:
		return 0, nil
	}
}

// ScoreInterest computes the interest score of a single article from its
// title, description and publication time.
func ScoreInterest(title, description, publishedAt string, now time.Time) Score {
	text := strings.ToLower(title + " " + description)

	s := Score{
		High:   countMatches(text, highLower),
		Medium: countMatches(text, mediumLower),
	}
	s.Recency, s.TimestampErr = RecencyBonus(publishedAt, now)

	sum := float64(baseScore) +
		float64(min(s.High*highKeywordPoints, highKeywordCap)) +
		float64(min(s.Medium, mediumKeywordCap)) +
		s.Recency
	s.Value = articles.ClampScore(int(math.Round(sum)))
	return s
}

// ScoreArticle is ScoreInterest applied to an Article.
func ScoreArticle(a articles.Article, now time.Time) Score {
	return ScoreInterest(a.Title, a.Description, a.PublishedAt, now)
}
