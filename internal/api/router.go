// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/middleware"
)

// NewRouter configures all HTTP routes.
func NewRouter(h *Handler, mw *ChiMiddleware) http.Handler {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}

	r := chi.NewRouter()

	// Applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Route("/recommend", func(r chi.Router) {
			r.Get("/content/{tmdb_id}", h.RecommendContent)
			r.Get("/crew/{tmdb_id}", h.RecommendCrew)
			r.Get("/franchise/{tmdb_id}", h.RecommendFranchise)
			r.Get("/collaborative", h.RecommendCollaborative)
			r.Get("/hybrid", h.RecommendHybrid)
			r.Get("/popular", h.RecommendPopular)
		})

		r.Get("/movies/trending", h.TrendingMovies)
		r.Get("/movies/{tmdb_id}", h.GetMovie)
		r.Get("/movies/{tmdb_id}/reviews", h.MovieReviews)
		r.Post("/reviews", h.CreateReview)

		r.Post("/watchlist/toggle", h.ToggleWatchlist)
		r.Post("/watched/toggle", h.ToggleWatched)
		r.Get("/users/{user_id}/watchlist", h.UserWatchlist)
		r.Get("/users/{user_id}/watched", h.UserWatched)

		r.Post("/admin/train", h.AdminTrain)
	})

	return r
}
