package briefing

import (
	"context"
	"time"
)

// Status reports which collaborators are configured and when the last
// briefing was produced.
type Status struct {
	Ready          bool       `json:"ready"`
	NewsConfigured bool       `json:"news_configured"`
	AIConfigured   bool       `json:"ai_configured"`
	MissingKeys    []string   `json:"missing_keys"`
	Source         string     `json:"source,omitempty"`
	Provider       string     `json:"ai_provider,omitempty"`
	Model          string     `json:"model,omitempty"`
	LatestID       string     `json:"latest_briefing_id,omitempty"`
	LatestAt       *time.Time `json:"latest_briefing_at,omitempty"`
}

// Status reports readiness. A failure to read the archive is not fatal;
// the latest-briefing fields are simply left empty.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{
		NewsConfigured: s.source != nil,
		AIConfigured:   s.provider != nil,
		MissingKeys:    append([]string{}, s.opts.MissingKeys...),
		Provider:       s.opts.Provider,
		Model:          s.opts.Model,
	}
	st.Ready = st.NewsConfigured && st.AIConfigured
	if s.source != nil {
		st.Source = s.source.Name()
	}

	if list, err := s.store.ListBriefings(ctx, 1); err == nil && len(list) > 0 {
		st.LatestID = list[0].ID
		at := list[0].CreatedAt
		st.LatestAt = &at
	}
	return st
}
