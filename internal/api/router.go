// CineScope - Movie Success Prediction and Similar-Title Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinescope

// Package api provides the HTTP surface of the scoring service using
// the Chi router.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the HTTP surface configuration.
type Config struct {
	// AllowedOrigins for CORS. Empty means same-origin only.
	AllowedOrigins []string

	// RateLimit is the per-IP request budget per minute for scoring
	// endpoints.
	RateLimit int

	// RateLimitHealth is the per-IP budget per minute for health
	// endpoints. Permissive so monitors can poll freely.
	RateLimitHealth int
}

// DefaultConfig returns the default API configuration.
func DefaultConfig() Config {
	return Config{
		RateLimit:       300,
		RateLimitHealth: 1000,
	}
}

// NewRouter wires all HTTP routes.
func NewRouter(cfg Config, h *Handlers) http.Handler {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 300
	}
	if cfg.RateLimitHealth <= 0 {
		cfg.RateLimitHealth = 1000
	}

	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(cfg))
	r.Use(AccessLog())

	// Health endpoints carry a permissive rate limit so monitors can
	// poll without tripping the scoring budget.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimitHealth, time.Minute))
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// Scoring endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
		r.Use(PrometheusMetrics())

		r.Post("/predict", h.Predict)
		r.Get("/models", h.Models)
		r.Get("/vocabulary", h.Vocabulary)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// corsHandler builds the CORS middleware. OPTIONS preflight must be
// handled globally, ahead of the per-route rate limits.
func corsHandler(cfg Config) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
