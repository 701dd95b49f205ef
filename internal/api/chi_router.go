// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/kinographus/internal/config"
	"github.com/tomtom215/kinographus/internal/middleware"
)

// Router assembles the HTTP routing tree for the service.
type Router struct {
	handler *Handler
	config  *config.Config
}

// NewRouter creates a router around the given handler set.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{handler: handler, config: cfg}
}

// Setup configures all HTTP routes using Chi.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	// CORS must be global to handle OPTIONS preflight.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.config.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	// Health endpoints get permissive rate limiting so monitoring can poll
	// frequently without being cut off.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.Limit(1000, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Recommendation endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.Limit(
			router.config.Server.RateLimitReqs,
			router.config.Server.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
		r.Use(middleware.PrometheusMetrics)

		r.Get("/recommendations", router.handler.Recommendations)
		r.Get("/recommendations/content", router.handler.RecommendationsContent)
		r.Get("/recommendations/collaborative", router.handler.RecommendationsCollaborative)
		r.Get("/similarity/movies", router.handler.SimilarityMovies)
		r.Get("/similarity/users", router.handler.SimilarityUsers)
		r.Get("/users/{id}/profile", router.handler.UserProfile)
		r.Get("/movies/stats", router.handler.MovieStats)
	})

	// Admin endpoints carry a strict rate limit on top of the handler's own
	// rebuild throttle.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Use(middleware.PrometheusMetrics)

		r.Post("/rebuild", router.handler.Rebuild)
	})

	// Prometheus scrape endpoint.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
