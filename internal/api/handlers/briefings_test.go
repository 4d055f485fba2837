package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/headliner/internal/models"
	"github.com/hoanghai1803/headliner/internal/ranking"
)

func TestRunBriefing(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		svc := newTestService(t, nil, nil)
		w := serve(t, RunBriefing(svc), http.MethodPost, "/api/briefings", nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("got status %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
	})

	t.Run("creates ranked briefing", func(t *testing.T) {
		svc := newTestService(t, &stubSource{records: stubRecords()}, nil)
		w := serve(t, RunBriefing(svc), http.MethodPost, "/api/briefings", nil)
		if w.Code != http.StatusCreated {
			t.Fatalf("got status %d, want %d (body %s)", w.Code, http.StatusCreated, w.Body.String())
		}

		got := decode[BriefingView](t, w)
		if got.Briefing == nil || got.ID == "" {
			t.Fatal("expected a briefing id")
		}
		if len(got.Articles) != 3 {
			t.Fatalf("got %d articles, want 3", len(got.Articles))
		}

		wantTitles := []string{"Weekly update", "Google update", "Meta lawsuit warning"}
		wantTiers := []ranking.TierLabel{ranking.TierNews, ranking.TierTrending, ranking.TierHot}
		for i, a := range got.Articles {
			if a.Title != wantTitles[i] {
				t.Errorf("article %d title = %q, want %q", i, a.Title, wantTitles[i])
			}
			if a.Tier != wantTiers[i] {
				t.Errorf("article %d tier = %q, want %q", i, a.Tier, wantTiers[i])
			}
		}
		if got.Articles[2].Badge != "⚡ HOT" {
			t.Errorf("badge = %q, want %q", got.Articles[2].Badge, "⚡ HOT")
		}
	})
}

func TestGetLatestBriefing(t *testing.T) {
	svc := newTestService(t, &stubSource{records: stubRecords()}, nil)

	w := serve(t, GetLatestBriefing(svc), http.MethodGet, "/api/briefings/latest", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("before run: got status %d, want %d", w.Code, http.StatusNotFound)
	}

	created := decode[BriefingView](t, serve(t, RunBriefing(svc), http.MethodPost, "/api/briefings", nil))

	w = serve(t, GetLatestBriefing(svc), http.MethodGet, "/api/briefings/latest", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if got := decode[BriefingView](t, w); got.ID != created.ID {
		t.Errorf("got id %q, want %q", got.ID, created.ID)
	}
}

func TestGetBriefing(t *testing.T) {
	svc := newTestService(t, &stubSource{records: stubRecords()}, nil)
	created := decode[BriefingView](t, serve(t, RunBriefing(svc), http.MethodPost, "/api/briefings", nil))

	get := func(id string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/api/briefings/"+id, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()
		GetBriefing(svc)(w, r)
		return w
	}

	w := get(created.ID)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	if got := decode[BriefingView](t, w); len(got.Articles) != 3 {
		t.Errorf("got %d articles, want 3", len(got.Articles))
	}

	if w := get("missing"); w.Code != http.StatusNotFound {
		t.Errorf("missing: got status %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListBriefings(t *testing.T) {
	svc := newTestService(t, &stubSource{records: stubRecords()}, nil)
	for range 3 {
		serve(t, RunBriefing(svc), http.MethodPost, "/api/briefings", nil)
	}

	w := serve(t, ListBriefings(svc), http.MethodGet, "/api/briefings?limit=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
	}
	list := decode[[]models.BriefingSummary](t, w)
	if len(list) != 2 {
		t.Fatalf("got %d summaries, want 2", len(list))
	}
	if list[0].ArticleCount != 3 || list[0].TopTitle != "Meta lawsuit warning" {
		t.Errorf("unexpected summary %+v", list[0])
	}

	w = serve(t, ListBriefings(svc), http.MethodGet, "/api/briefings?limit=x", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: got status %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetTiers(t *testing.T) {
	w := serve(t, GetTiers(), http.MethodGet, "/api/tiers", nil)
	tiers := decode[[]ranking.TierInfo](t, w)
	if len(tiers) != 4 || tiers[0].Label != ranking.TierBreaking || tiers[0].MinScore != 8 {
		t.Errorf("unexpected tiers %+v", tiers)
	}
}
