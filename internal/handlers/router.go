package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes assembles the HTTP surface.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/clients/register", h.RegisterClient)

		// Upload surface: authenticated and rate limited.
		r.Group(func(r chi.Router) {
			r.Use(h.ClientAuthMiddleware)
			r.Use(h.RateLimitMiddleware)
			r.Post("/ingest/matches", h.IngestMatches)
		})

		// Read surface: open.
		r.Get("/players", h.SearchPlayers)
		r.Route("/players/{tag}", func(r chi.Router) {
			r.Get("/", h.GetPlayerOverview)
			r.Get("/analysis", h.GetPlayerAnalysis)
			r.Get("/matches", h.GetPlayerMatches)
		})
		r.Get("/leaderboard", h.GetLeaderboard)
	})

	return r
}
