package briefing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/hoanghai1803/headliner/internal/ranking"
)

// Answer is the result of Ask.
type Answer struct {
	Question      string          `json:"question"`
	Matches       []ranking.Match `json:"results"`
	TotalSearched int             `json:"total_searched"`
	Answer        string          `json:"answer"`
	AnswerError   string          `json:"answer_error,omitempty"`
}

// Ask finds the articles of the latest briefing most relevant to question
// and asks the AI provider for a conversational answer. The relevant
// articles are sent first, followed by the rest of the briefing. When the
// provider is missing or fails, the matches are still returned with an
// empty answer and the reason in AnswerError.
func (s *Service) Ask(ctx context.Context, question string, k int) (*Answer, error) {
	b, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = s.opts.TopK
	}

	qr := ranking.Query(b.Articles, question, k)
	out := &Answer{
		Question:      strings.TrimSpace(question),
		Matches:       qr.Matches,
		TotalSearched: qr.TotalSearched,
	}

	if s.provider == nil {
		out.AnswerError = ErrNoProvider.Error()
		return out, nil
	}

	text, err := s.provider.Answer(ctx, out.Question, entries(matchesFirst(b.Articles, qr.Matches)))
	if err != nil {
		slog.Warn("AI answer failed, returning matches only", "error", err)
		out.AnswerError = "failed to generate an answer"
		return out, nil
	}
	out.Answer = text
	return out, nil
}

// matchesFirst returns list in ranked order with the matched articles moved
// to the tail, best match last, so entries presents them first.
func matchesFirst(list []articles.Article, matches []ranking.Match) []articles.Article {
	if len(matches) == 0 {
		return list
	}
	matched := make(map[string]bool, len(matches))
	for _, m := range matches {
		matched[m.Article.URL+"\x00"+m.Article.Title] = true
	}

	out := make([]articles.Article, 0, len(list))
	for _, a := range list {
		if !matched[a.URL+"\x00"+a.Title] {
			out = append(out, a)
		}
	}
	for i := len(matches) - 1; i >= 0; i-- {
		out = append(out, matches[i].Article)
	}
	return out
}
