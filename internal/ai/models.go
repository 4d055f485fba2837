package ai

import "fmt"

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider string // "anthropic" | "openai"
	APIKey   string
	Model    string
}

// ArticleEntry is a simplified article representation for AI prompts.
type ArticleEntry struct {
	Title         string `json:"title"`
	Source        string `json:"source"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	InterestScore int    `json:"interest_score"`
	Badge         string `json:"badge"`
}

// HeadlineRequest carries what the rewrite prompt needs about one article.
type HeadlineRequest struct {
	Title         string
	Description   string
	InterestScore int
	Badge         string // e.g. "🔥 BREAKING"
	Style         string // e.g. "extremely sensational and urgent"
}

// SummaryKind selects the shape of an audio-friendly summary.
type SummaryKind string

const (
	SummaryBrief      SummaryKind = "brief"
	SummaryDetailed   SummaryKind = "detailed"
	SummaryHighlights SummaryKind = "highlights"
)

// ParseSummaryKind validates s. An empty string selects SummaryBrief.
func ParseSummaryKind(s string) (SummaryKind, error) {
	switch SummaryKind(s) {
	case "":
		return SummaryBrief, nil
	case SummaryBrief, SummaryDetailed, SummaryHighlights:
		return SummaryKind(s), nil
	default:
		return "", fmt.Errorf("unknown summary kind %q: must be brief, detailed or highlights", s)
	}
}
