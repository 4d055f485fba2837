package briefing

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/hoanghai1803/headliner/internal/ai"
)

// speechWPM is the average speaking rate used to estimate how long a
// summary takes to read aloud.
const speechWPM = 150

// AudioSummary is text meant to be read aloud, with a duration estimate.
type AudioSummary struct {
	BriefingID       string         `json:"briefing_id"`
	Kind             ai.SummaryKind `json:"kind"`
	Text             string         `json:"text"`
	WordCount        int            `json:"word_count"`
	EstimatedMinutes float64        `json:"estimated_minutes"`
}

// AudioSummary asks the AI provider to summarize the latest briefing in the
// given style.
func (s *Service) AudioSummary(ctx context.Context, kind ai.SummaryKind) (*AudioSummary, error) {
	if s.provider == nil {
		return nil, ErrNoProvider
	}
	b, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}

	text, err := s.provider.Summarize(ctx, kind, entries(b.Articles))
	if err != nil {
		return nil, fmt.Errorf("generating %s summary: %w", kind, err)
	}

	words := countWords(text)
	return &AudioSummary{
		BriefingID:       b.ID,
		Kind:             kind,
		Text:             text,
		WordCount:        words,
		EstimatedMinutes: EstimateSpeechMinutes(words),
	}, nil
}

// EstimateSpeechMinutes converts a word count into speaking time at 150
// words per minute, rounded to one decimal place.
func EstimateSpeechMinutes(words int) float64 {
	if words <= 0 {
		return 0
	}
	return math.Round(float64(words)/speechWPM*10) / 10
}

// countWords counts whitespace-delimited words in the text.
func countWords(text string) int {
	return len(strings.Fields(text))
}
