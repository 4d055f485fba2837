package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/hoanghai1803/headliner/internal/ai"
	"github.com/hoanghai1803/headliner/internal/briefing"
	"github.com/hoanghai1803/headliner/internal/models"
)

// maxK caps how many matches a single query may ask for.
const maxK = 50

// Ask handles POST /api/ask. The body is {"question": "...", "k": 3}; both
// fields are optional and an empty question asks for an overview.
func Ask(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Question string `json:"question"`
			K        int    `json:"k"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if body.K < 0 || body.K > maxK {
			writeError(w, http.StatusBadRequest, "k must be between 0 and 50")
			return
		}

		answer, err := svc.Ask(r.Context(), body.Question, body.K)
		if err != nil {
			writeServiceError(w, err, "answer question")
			return
		}
		writeJSON(w, http.StatusOK, answer)
	}
}

// Search handles GET /api/search?q={query}&k={k}. It scores the articles of
// the latest briefing against the query without calling the AI provider.
func Search(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := queryInt(r, "k", 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if k > maxK {
			k = maxK
		}

		result, err := svc.Search(r.Context(), r.URL.Query().Get("q"), k)
		if err != nil {
			writeServiceError(w, err, "search briefing")
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// SearchArchive handles GET /api/archive/search?q={query}&limit={limit}. It
// performs full-text search over every stored briefing.
func SearchArchive(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeJSON(w, http.StatusOK, []models.ArchivedArticle{})
			return
		}

		limit, err := queryInt(r, "limit", 20)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}

		results, err := svc.SearchArchive(r.Context(), query, limit)
		if err != nil {
			writeServiceError(w, err, "search archive")
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// AudioSummary handles POST /api/summary. The body is {"kind": "brief"};
// kind is one of brief, detailed or highlights and defaults to brief.
func AudioSummary(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Kind string `json:"kind"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		kind, err := ai.ParseSummaryKind(body.Kind)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		summary, err := svc.AudioSummary(r.Context(), kind)
		if err != nil {
			writeServiceError(w, err, "generate summary")
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// Status handles GET /api/status.
func Status(svc *briefing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status(r.Context()))
	}
}
