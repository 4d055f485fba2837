package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hoanghai1803/headliner/internal/briefing"
	"github.com/hoanghai1803/headliner/internal/storage"
)

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// At this point headers are already sent; log but cannot change status.
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response with the given HTTP status code.
// The response body is {"error": "message"}.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// queryInt reads an integer query parameter. A missing parameter yields def;
// a malformed or negative one is an error.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %q parameter: %w", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("invalid %q parameter: must be >= 0", name)
	}
	return v, nil
}

// writeServiceError maps briefing and storage errors to HTTP responses.
// Unexpected errors are logged and reported without internal detail.
func writeServiceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, briefing.ErrNoBriefing):
		writeError(w, http.StatusNotFound, "No briefing available yet. Run POST /api/briefings first.")
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Briefing not found")
	case errors.Is(err, briefing.ErrNoSource):
		writeError(w, http.StatusServiceUnavailable,
			"No news source configured. Set news.api_key (or GNEWS_API_KEY) or news.feeds in config.toml")
	case errors.Is(err, briefing.ErrNoProvider):
		writeError(w, http.StatusServiceUnavailable,
			"AI provider not configured. Add your API key to config.toml")
	default:
		slog.Error("request failed", "action", action, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
