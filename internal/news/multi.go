package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Multi fans a fetch out to several sources and concatenates their records
// in source order.
type Multi struct {
	sources []Source
}

// NewMulti combines sources into one Source.
func NewMulti(sources ...Source) *Multi {
	return &Multi{sources: sources}
}

// Name implements Source.
func (m *Multi) Name() string {
	names := make([]string, len(m.sources))
	for i, s := range m.sources {
		names[i] = s.Name()
	}
	return strings.Join(names, "+")
}

// Fetch fetches every source concurrently. A failing source is recorded in
// FetchResult.Failed. An error is returned only when there are sources and
// all of them fail.
func (m *Multi) Fetch(ctx context.Context) (*FetchResult, error) {
	results := make([]*FetchResult, len(m.sources))
	errs := make([]error, len(m.sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, src := range m.sources {
		g.Go(func() error {
			res, err := src.Fetch(ctx)
			if err != nil {
				slog.Warn("news source failed", "source", src.Name(), "error", err)
				errs[i] = err
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching sources: %w", err)
	}

	out := &FetchResult{}
	succeeded := 0
	for i, res := range results {
		if errs[i] != nil {
			out.Failed = append(out.Failed, FailedFeed{Source: m.sources[i].Name(), Error: errs[i].Error()})
			continue
		}
		succeeded++
		if res == nil {
			continue
		}
		out.Records = append(out.Records, res.Records...)
		out.Skipped += res.Skipped
		out.Failed = append(out.Failed, res.Failed...)
	}

	if len(m.sources) > 0 && succeeded == 0 {
		return nil, fmt.Errorf("all news sources failed: %w", errors.Join(errs...))
	}
	return out, nil
}
