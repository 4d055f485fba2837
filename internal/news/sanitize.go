package news

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer reduces feed HTML to plain text.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer backed by bluemonday's strict policy,
// which removes every tag.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.StrictPolicy()}
}

// Text strips all markup from s, unescapes HTML entities and collapses runs
// of whitespace into single spaces.
func (s *Sanitizer) Text(raw string) string {
	if raw == "" {
		return ""
	}
	clean := html.UnescapeString(s.policy.Sanitize(raw))
	return strings.Join(strings.Fields(clean), " ")
}
