// Package articles holds the normalized news article record and the
// non-destructive transformations the rest of headliner applies to it.
//
// An Article is built once from a RawArticle and then enriched by later
// stages through Patch, which always returns a copy. Nothing in this package
// performs I/O.
package articles

// MinInterestScore and MaxInterestScore bound Article.InterestScore.
const (
	MinInterestScore = 1
	MaxInterestScore = 10
)

// RawSource is the nested source object of a raw news record.
type RawSource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// RawArticle is a news record exactly as a fetch collaborator delivers it.
// Every field is optional.
type RawArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"publishedAt"`
	Source      RawSource `json:"source"`
	Content     string    `json:"content"`
}

// Article is a normalized news item plus its derived fields.
type Article struct {
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title,omitempty"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	PublishedAt   string `json:"published_at"`
	Source        string `json:"source"`
	Content       string `json:"content"`
	InterestScore int    `json:"interest_score"`
}

// Rewritten reports whether a non-empty title was replaced by a rewrite
// stage.
func (a Article) Rewritten() bool {
	return a.OriginalTitle != ""
}

// Fields lists optional overrides for Patch. Nil fields are left unchanged.
type Fields struct {
	Title         *string
	Description   *string
	URL           *string
	PublishedAt   *string
	Source        *string
	Content       *string
	InterestScore *int
}

// Patch returns a copy of a with the non-nil fields of f applied. The input
// is never modified. Setting Title records the previous title in
// OriginalTitle unless an original title is already present, so repeated
// rewrites keep the fetched headline. Filling in a missing title is not a
// rewrite: OriginalTitle stays empty until a non-empty title is replaced.
// InterestScore is clamped to [MinInterestScore, MaxInterestScore].
func Patch(a Article, f Fields) Article {
	out := a
	if f.Title != nil {
		if out.OriginalTitle == "" && a.Title != "" {
			out.OriginalTitle = a.Title
		}
		out.Title = *f.Title
	}
	if f.Description != nil {
		out.Description = *f.Description
	}
	if f.URL != nil {
		out.URL = *f.URL
	}
	if f.PublishedAt != nil {
		out.PublishedAt = *f.PublishedAt
	}
	if f.Source != nil {
		out.Source = *f.Source
	}
	if f.Content != nil {
		out.Content = *f.Content
	}
	if f.InterestScore != nil {
		out.InterestScore = ClampScore(*f.InterestScore)
	}
	return out
}

// ClampScore limits score to [MinInterestScore, MaxInterestScore].
func ClampScore(score int) int {
	return min(max(score, MinInterestScore), MaxInterestScore)
}

// Clone returns a shallow copy of list. Article holds only value fields, so
// the copy shares nothing with the original.
func Clone(list []Article) []Article {
	if list == nil {
		return nil
	}
	out := make([]Article, len(list))
	copy(out, list)
	return out
}
