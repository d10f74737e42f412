// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// ReviewResponse is a stored review. MovieID is the TMDB id.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleResponse reports the list state after a toggle.
type ToggleResponse struct {
	Status string `json:"status"`
}

const (
	toggleAdded   = "added"
	toggleRemoved = "removed"
)

func toReviewResponse(review *database.Review, tmdbID int64) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		MovieID:   tmdbID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

// movieFromPath resolves {tmdb_id} and writes 400 or 404 when it cannot.
func (h *Handler) movieFromPath(rw *ResponseWriter, r *http.Request) (*recommend.Item, bool) {
	var req MovieRequest
	if !bindParams(rw, int64Param("tmdb_id", chi.URLParam(r, "tmdb_id"), &req.TMDBID)) || !validateRequest(rw, &req) {
		return nil, false
	}
	return h.movieByTMDBID(r.Context(), rw, req.TMDBID)
}

func (h *Handler) movieByTMDBID(ctx context.Context, rw *ResponseWriter, tmdbID int64) (*recommend.Item, bool) {
	item, err := h.store.GetItemByTMDBID(ctx, tmdbID)
	if err != nil {
		rw.InternalError(err)
		return nil, false
	}
	if item == nil {
		rw.NotFound("Movie not found")
		return nil, false
	}
	return item, true
}

// GetMovie handles GET /api/v1/movies/{tmdb_id}. A movie missing from the
// catalog is fetched from TMDB and stored, when a client is configured.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req MovieRequest
	if !bindParams(rw, int64Param("tmdb_id", chi.URLParam(r, "tmdb_id"), &req.TMDBID)) || !validateRequest(rw, &req) {
		return
	}

	item, err := h.store.GetItemByTMDBID(r.Context(), req.TMDBID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if item == nil {
		var ok bool
		if item, ok = h.importMovie(r.Context(), rw, req.TMDBID); !ok {
			return
		}
	}
	rw.Success(toMovieResponse(item))
}

// importMovie pulls tmdbID into the catalog. On failure it writes the error
// response and returns false.
func (h *Handler) importMovie(ctx context.Context, rw *ResponseWriter, tmdbID int64) (*recommend.Item, bool) {
	if h.remote == nil {
		rw.NotFound("Movie not found")
		return nil, false
	}

	item, err := tmdb.ImportMovie(ctx, h.remote, h.store, tmdbID)
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		rw.NotFound("Movie not found")
		return nil, false
	case errors.Is(err, tmdb.ErrCircuitOpen):
		h.logger.Warn().Int64("tmdb_id", tmdbID).Msg("TMDB circuit open, movie import unavailable")
		rw.ServiceUnavailable("Movie details are temporarily unavailable")
		return nil, false
	case err != nil:
		rw.ExternalServiceError("tmdb", err)
		return nil, false
	}

	h.logger.Info().Int64("tmdb_id", tmdbID).Int64("id", item.ID).Str("title", item.Title).Msg("Imported movie from TMDB")
	return item, true
}

// TrendingMovies handles GET /api/v1/movies/trending. It serves the TMDB
// weekly trending list, or the catalog's most popular movies without a
// TMDB client.
func (h *Handler) TrendingMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := LimitRequest{Limit: h.limits.Default}
	if !bindParams(rw, intParam("limit", r.URL.Query().Get("limit"), &req.Limit)) || !validateRequest(rw, &req) {
		return
	}
	limit := h.clampLimit(req.Limit)

	if h.remote == nil {
		w.Header().Set(SourceHeader, sourceCatalog)
		ids, err := h.engine.RecommendPopular(r.Context(), limit)
		h.writeRecommendations(r.Context(), rw, ids, err)
		return
	}

	w.Header().Set(SourceHeader, sourceTMDB)
	page, err := h.remote.TrendingMovies(r.Context(), "week")
	switch {
	case errors.Is(err, tmdb.ErrCircuitOpen):
		h.logger.Warn().Msg("TMDB circuit open, trending unavailable")
		rw.ServiceUnavailable("Trending movies are temporarily unavailable")
		return
	case err != nil:
		rw.ExternalServiceError("tmdb", err)
		return
	}

	results := make([]MovieResult, 0, min(limit, len(page.Results)))
	for i := range page.Results {
		if len(results) == limit {
			break
		}
		m := &page.Results[i]
		if strings.TrimSpace(m.Title) == "" {
			continue
		}
		results = append(results, MovieResult{ID: m.ID, Title: m.Title, PosterPath: m.PosterPath})
	}
	rw.List(results, len(results))
}

// MovieReviews handles GET /api/v1/movies/{tmdb_id}/reviews, newest first.
func (h *Handler) MovieReviews(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	item, ok := h.movieFromPath(rw, r)
	if !ok {
		return
	}

	reviews, err := h.store.ListReviewsForMovie(r.Context(), item.ID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = toReviewResponse(&reviews[i], item.TMDBID)
	}
	rw.List(out, len(out))
}

// CreateReview handles POST /api/v1/reviews.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req CreateReviewRequest
	if err := decodeBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	item, ok := h.movieByTMDBID(r.Context(), rw, req.MovieID)
	if !ok {
		return
	}

	review, err := h.store.AddReview(r.Context(), database.Review{
		UserID:  req.UserID,
		MovieID: item.ID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	switch {
	case errors.Is(err, database.ErrMovieNotFound):
		rw.NotFound("Movie not found")
		return
	case errors.Is(err, database.ErrInvalidRating):
		rw.ValidationError("rating must be between 1 and 5", map[string]any{"field": "rating"})
		return
	case err != nil:
		rw.InternalError(err)
		return
	}

	h.logger.Debug().Int64("user_id", req.UserID).Int64("tmdb_id", item.TMDBID).Int("rating", req.Rating).Msg("Review added")
	rw.Created(toReviewResponse(review, item.TMDBID))
}

// ToggleWatchlist handles POST /api/v1/watchlist/toggle.
func (h *Handler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.store.ToggleWatchlist)
}

// ToggleWatched handles POST /api/v1/watched/toggle. Marking a movie watched
// also removes it from the watchlist.
func (h *Handler) ToggleWatched(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.store.ToggleWatched)
}

type toggleFunc func(ctx context.Context, userID, movieID int64) (bool, error)

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn toggleFunc) {
	rw := NewResponseWriter(w, r)
	var req ToggleRequest
	if err := decodeBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	item, ok := h.movieByTMDBID(r.Context(), rw, req.MovieID)
	if !ok {
		return
	}

	added, err := fn(r.Context(), req.UserID, item.ID)
	switch {
	case errors.Is(err, database.ErrMovieNotFound):
		rw.NotFound("Movie not found")
		return
	case err != nil:
		rw.InternalError(err)
		return
	}

	status := toggleRemoved
	if added {
		status = toggleAdded
	}
	rw.Success(ToggleResponse{Status: status})
}

// UserWatchlist handles GET /api/v1/users/{user_id}/watchlist.
func (h *Handler) UserWatchlist(w http.ResponseWriter, r *http.Request) {
	h.userList(w, r, h.store.ListWatchlist)
}

// UserWatched handles GET /api/v1/users/{user_id}/watched.
func (h *Handler) UserWatched(w http.ResponseWriter, r *http.Request) {
	h.userList(w, r, h.store.ListWatched)
}

type listFunc func(ctx context.Context, userID int64) ([]recommend.Item, error)

func (h *Handler) userList(w http.ResponseWriter, r *http.Request, fn listFunc) {
	rw := NewResponseWriter(w, r)
	var req UserRequest
	if !bindParams(rw, int64Param("user_id", chi.URLParam(r, "user_id"), &req.UserID)) || !validateRequest(rw, &req) {
		return
	}

	items, err := fn(r.Context(), req.UserID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	results := toMovieResults(items)
	rw.List(results, len(results))
}
