// Ratingcf - Neighborhood Collaborative Filtering for Movie Ratings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratingcf

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/ratingcf/internal/middleware"
)

// RouterConfig holds routing options.
type RouterConfig struct {
	// RateLimitRequests per RateLimitWindow per client IP on /api/v1.
	// Zero disables rate limiting.
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// NewRouter builds the chi router:
//
//	GET /health
//	GET /metrics
//	GET /api/v1/users/{userID}/predictions/{movieID}
//	GET /api/v1/users/{userID}/rankings?year=YYYY
//	GET /api/v1/reports?limit=N
//	GET /api/v1/reports/{runID}
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow, func(w http.ResponseWriter, req *http.Request) {
			respondError(w, req, http.StatusTooManyRequests, &APIError{Code: "RATE_LIMITED", Message: "Too many requests"}, nil)
		}))

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/predictions/{movieID}", h.Prediction)
			r.Get("/rankings", h.Rankings)
		})

		r.Get("/reports", h.Reports)
		r.Get("/reports/{runID}", h.Report)
	})

	return r
}
