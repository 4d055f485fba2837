package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hoanghai1803/headliner/internal/api/handlers"
	"github.com/hoanghai1803/headliner/internal/briefing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures the HTTP router with all API routes and
// the Prometheus metrics endpoint.
func NewRouter(svc *briefing.Service) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/status", handlers.Status(svc))
		api.Get("/tiers", handlers.GetTiers())

		api.Post("/briefings", handlers.RunBriefing(svc))
		api.Get("/briefings", handlers.ListBriefings(svc))
		api.Get("/briefings/latest", handlers.GetLatestBriefing(svc))
		api.Get("/briefings/{id}", handlers.GetBriefing(svc))

		api.Post("/ask", handlers.Ask(svc))
		api.Get("/search", handlers.Search(svc))
		api.Post("/summary", handlers.AudioSummary(svc))

		api.Get("/archive/search", handlers.SearchArchive(svc))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
