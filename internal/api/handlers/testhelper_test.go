package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hoanghai1803/headliner/internal/ai"
	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/hoanghai1803/headliner/internal/briefing"
	"github.com/hoanghai1803/headliner/internal/news"
	"github.com/hoanghai1803/headliner/internal/storage"
)

const stale = "2020-01-01T00:00:00Z"

// newTestStore creates an in-memory SQLite store with migrations applied. It
// registers a cleanup function to close the database when the test completes.
func newTestStore(t *testing.T) *storage.Store {
	t.Helper()

	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storage.RunMigrations(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	return storage.NewStore(db)
}

type stubSource struct {
	records []articles.RawArticle
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(context.Context) (*news.FetchResult, error) {
	return &news.FetchResult{Records: s.records}, nil
}

type stubProvider struct{}

func (stubProvider) RewriteHeadline(_ context.Context, req ai.HeadlineRequest) (string, error) {
	return req.Title, nil
}

func (stubProvider) Answer(context.Context, string, []ai.ArticleEntry) (string, error) {
	return "An answer.", nil
}

func (stubProvider) Summarize(context.Context, ai.SummaryKind, []ai.ArticleEntry) (string, error) {
	return "one two three", nil
}

func stubRecords() []articles.RawArticle {
	return []articles.RawArticle{
		{Title: "Weekly update", URL: "https://n.example/weekly", PublishedAt: stale},
		{Title: "Meta lawsuit warning", URL: "https://n.example/meta", PublishedAt: stale},
		{Title: "Google update", URL: "https://n.example/google", PublishedAt: stale, Content: "Body."},
	}
}

// newTestService builds a service over an in-memory store. A nil source or
// provider leaves that collaborator unconfigured.
func newTestService(t *testing.T, source news.Source, provider ai.Provider) *briefing.Service {
	t.Helper()
	return briefing.NewService(source, nil, provider, nil, newTestStore(t), briefing.Options{
		Query:       "ai",
		TopK:        3,
		Provider:    "anthropic",
		Model:       "claude-haiku-4-5",
		MissingKeys: []string{},
	})
}

// serve runs h against a request with an optional JSON body.
func serve(t *testing.T, h http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, w.Body.String())
	}
	return v
}
