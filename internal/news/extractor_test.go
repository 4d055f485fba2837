package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
)

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWords int
		want     string
	}{
		{
			name:     "under limit returns original",
			input:    "hello world",
			maxWords: 5,
			want:     "hello world",
		},
		{
			name:     "exactly at limit returns original",
			input:    "one two three",
			maxWords: 3,
			want:     "one two three",
		},
		{
			name:     "over limit is truncated",
			input:    "one two three four five six",
			maxWords: 3,
			want:     "one two three",
		},
		{
			name:     "empty string returns empty",
			input:    "",
			maxWords: 5,
			want:     "",
		},
		{
			name:     "multiple spaces between words",
			input:    "one   two   three   four",
			maxWords: 2,
			want:     "one two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateWords(tt.input, tt.maxWords)
			if got != tt.want {
				t.Errorf("truncateWords(%q, %d) = %q, want %q", tt.input, tt.maxWords, got, tt.want)
			}
		})
	}
}

func TestNeedsFullText(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{content: "", want: true},
		{content: "   ", want: true},
		{content: "The company said on Tuesday... [2345 chars]", want: true},
		{content: "Short teaser [+512 chars]", want: true},
		{content: "A complete article body.", want: false},
		{content: "Mentions [3 chars] in the middle of text.", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			if got := NeedsFullText(tt.content); got != tt.want {
				t.Errorf("NeedsFullText(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

const testArticleHTML = `<!DOCTYPE html>
<html>
<head><title>Lab unveils reasoning model</title></head>
<body>
<nav><a href="/">Home</a> <a href="/tech">Tech</a></nav>
<article>
<p>%s</p>
<p>%s</p>
<p>%s</p>
</article>
<footer>Copyright</footer>
</body>
</html>`

func newArticleServer(t *testing.T) *httptest.Server {
	t.Helper()
	para := strings.Repeat("The research lab described how the new reasoning model handles long multi-step problems in mathematics and code. ", 6)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, testArticleHTML, para, para, para)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestExtractor() *Extractor {
	e := NewExtractor()
	e.limiter = newHostLimiter(time.Millisecond)
	e.timeout = 5 * time.Second
	return e
}

func TestExtractor_Extract(t *testing.T) {
	srv := newArticleServer(t)
	e := newTestExtractor()
	e.maxWords = 12

	text, err := e.Extract(context.Background(), srv.URL+"/story")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "The research lab described") {
		t.Errorf("unexpected extracted text %q", text)
	}
	if n := len(strings.Fields(text)); n != 12 {
		t.Errorf("expected 12 words after truncation, got %d", n)
	}
}

func TestExtractor_Enrich(t *testing.T) {
	srv := newArticleServer(t)
	e := newTestExtractor()

	in := []articles.RawArticle{
		{Title: "complete", URL: srv.URL + "/a", Content: "Already complete."},
		{Title: "truncated", URL: srv.URL + "/b", Content: "The research lab... [900 chars]"},
		{Title: "unreachable", URL: "http://127.0.0.1:1/c", Content: ""},
		{Title: "no url", Content: ""},
	}

	out, failures := e.Enrich(context.Background(), in)

	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
	if out[0].Content != "Already complete." {
		t.Errorf("complete content should be untouched, got %q", out[0].Content)
	}
	if !strings.Contains(out[1].Content, "reasoning model") {
		t.Errorf("truncated content should be replaced, got %q", out[1].Content)
	}
	if out[2].Content != "" {
		t.Errorf("failed extraction should keep original content, got %q", out[2].Content)
	}
	if in[1].Content != "The research lab... [900 chars]" {
		t.Error("Enrich must not modify its input")
	}
}
