package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/hoanghai1803/headliner/internal/briefing"
	"github.com/hoanghai1803/headliner/internal/models"
	"github.com/hoanghai1803/headliner/internal/ranking"
)

// maxListLimit caps how many briefing summaries one request may return.
const maxListLimit = 100

// ArticleView is an article annotated with its excitement tier.
type ArticleView struct {
	articles.Article
	Tier  ranking.TierLabel `json:"tier"`
	Badge string            `json:"badge"`
}

// BriefingView is the JSON shape of a briefing. Articles keep ranked order,
// least interesting first.
type BriefingView struct {
	*models.Briefing
	Articles []ArticleView `json:"articles"`
}

func newBriefingView(b *models.Briefing) BriefingView {
	views := make([]ArticleView, len(b.Articles))
	for i, a := range b.Articles {
		t := ranking.Tier(a.InterestScore)
		views[i] = ArticleView{Article: a, Tier: t.Label, Badge: t.Badge()}
	}
	return BriefingView{Briefing: b, Articles: views}
}

// RunBriefing handles POST /api/briefings. It runs the full pipeline (fetch,
// rank, rewrite, persist) and returns the new briefing.
func RunBriefing(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.Run(r.Context())
		if err != nil {
			writeServiceError(w, err, "run briefing")
			return
		}
		writeJSON(w, http.StatusCreated, newBriefingView(b))
	}
}

// ListBriefings handles GET /api/briefings?limit={limit}.
func ListBriefings(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 20)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		list, err := svc.List(r.Context(), limit)
		if err != nil {
			writeServiceError(w, err, "list briefings")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GetLatestBriefing handles GET /api/briefings/latest.
func GetLatestBriefing(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.Latest(r.Context())
		if err != nil {
			writeServiceError(w, err, "get latest briefing")
			return
		}
		writeJSON(w, http.StatusOK, newBriefingView(b))
	}
}

// GetBriefing handles GET /api/briefings/{id}.
func GetBriefing(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "briefing id is required")
			return
		}

		b, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, "get briefing")
			return
		}
		writeJSON(w, http.StatusOK, newBriefingView(b))
	}
}

// GetTiers handles GET /api/tiers.
func GetTiers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ranking.Tiers)
	}
}
