package ranking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnparseableTimestamp is returned by ParseTimestamp for empty or
// malformed input.
var ErrUnparseableTimestamp = errors.New("unparseable timestamp")

// timestampLayouts are tried in order. The last two have no zone and are
// read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp as produced by news APIs.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnparseableTimestamp)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTimestamp, s)
}
