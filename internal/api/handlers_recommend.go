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

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// SourceHeader reports whether a content or trending list came from local
// data or from TMDB.
const SourceHeader = "X-Recommendation-Source"

const (
	sourceArtifact = "artifact"
	sourceTMDB     = "tmdb"
	sourceCatalog  = "catalog"
)

// bindItemRequest parses {tmdb_id} and ?limit for the per-movie routes.
func (h *Handler) bindItemRequest(rw *ResponseWriter, r *http.Request) (ItemRecommendRequest, bool) {
	req := ItemRecommendRequest{Limit: h.limits.Default}
	if !bindParams(rw,
		int64Param("tmdb_id", chi.URLParam(r, "tmdb_id"), &req.TMDBID),
		intParam("limit", r.URL.Query().Get("limit"), &req.Limit),
	) || !validateRequest(rw, &req) {
		return req, false
	}
	req.Limit = h.clampLimit(req.Limit)
	return req, true
}

// itemRecommender is one of the engine's per-item strategies.
type itemRecommender func(ctx context.Context, itemID int64, topN int) ([]int64, error)

// recommendForItem resolves the TMDB id and runs fn. An unknown id yields an
// empty list.
func (h *Handler) recommendForItem(w http.ResponseWriter, r *http.Request, fn itemRecommender) {
	rw := NewResponseWriter(w, r)
	req, ok := h.bindItemRequest(rw, r)
	if !ok {
		return
	}

	item, err := h.store.GetItemByTMDBID(r.Context(), req.TMDBID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if item == nil {
		rw.List([]MovieResult{}, 0)
		return
	}

	ids, err := fn(r.Context(), item.ID, req.Limit)
	h.writeRecommendations(r.Context(), rw, ids, err)
}

// RecommendContent handles GET /api/v1/recommend/content/{tmdb_id}.
// Without a trained artifact it falls back to TMDB similar movies.
func (h *Handler) RecommendContent(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, ok := h.bindItemRequest(rw, r)
	if !ok {
		return
	}

	item, err := h.store.GetItemByTMDBID(r.Context(), req.TMDBID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if item == nil {
		rw.List([]MovieResult{}, 0)
		return
	}

	ids, loaded := h.engine.RecommendSimilar(r.Context(), item.ID, req.Limit)
	if !loaded {
		h.similarFallback(rw, r, req)
		return
	}
	w.Header().Set(SourceHeader, sourceArtifact)
	h.writeRecommendations(r.Context(), rw, ids, nil)
}

// similarFallback serves TMDB similar movies. Without a TMDB client the
// result is empty.
func (h *Handler) similarFallback(rw *ResponseWriter, r *http.Request, req ItemRecommendRequest) {
	rw.w.Header().Set(SourceHeader, sourceTMDB)
	if h.remote == nil {
		rw.List([]MovieResult{}, 0)
		return
	}

	page, err := h.remote.SimilarMovies(r.Context(), req.TMDBID)
	switch {
	case errors.Is(err, tmdb.ErrNotFound):
		rw.List([]MovieResult{}, 0)
		return
	case errors.Is(err, tmdb.ErrCircuitOpen):
		h.logger.Warn().Int64("tmdb_id", req.TMDBID).Msg("TMDB circuit open, similar fallback unavailable")
		rw.ServiceUnavailable("Similar movies are temporarily unavailable")
		return
	case err != nil:
		rw.ExternalServiceError("tmdb", err)
		return
	}

	results := make([]MovieResult, 0, min(req.Limit, len(page.Results)))
	for i := range page.Results {
		if len(results) == req.Limit {
			break
		}
		m := &page.Results[i]
		if m.ID == req.TMDBID || strings.TrimSpace(m.Title) == "" {
			continue
		}
		results = append(results, MovieResult{ID: m.ID, Title: m.Title, PosterPath: m.PosterPath})
	}
	rw.List(results, len(results))
}

// RecommendCrew handles GET /api/v1/recommend/crew/{tmdb_id}.
func (h *Handler) RecommendCrew(w http.ResponseWriter, r *http.Request) {
	h.recommendForItem(w, r, h.engine.RecommendByCrew)
}

// RecommendFranchise handles GET /api/v1/recommend/franchise/{tmdb_id}.
func (h *Handler) RecommendFranchise(w http.ResponseWriter, r *http.Request) {
	h.recommendForItem(w, r, h.engine.RecommendByFranchise)
}

// RecommendCollaborative handles GET /api/v1/recommend/collaborative?user_id=.
func (h *Handler) RecommendCollaborative(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()
	req := UserRecommendRequest{Limit: h.limits.Default}
	if !bindParams(rw,
		int64Param("user_id", q.Get("user_id"), &req.UserID),
		intParam("limit", q.Get("limit"), &req.Limit),
	) || !validateRequest(rw, &req) {
		return
	}

	ids, err := h.engine.RecommendForUser(r.Context(), req.UserID, h.clampLimit(req.Limit))
	h.writeRecommendations(r.Context(), rw, ids, err)
}

// RecommendHybrid handles GET /api/v1/recommend/hybrid?movie_id=&user_id=.
// An unknown movie_id is dropped, so a request that also names a user still
// gets user-based results.
func (h *Handler) RecommendHybrid(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()
	req := HybridRecommendRequest{Limit: h.limits.Default}
	if !bindParams(rw,
		int64Param("movie_id", q.Get("movie_id"), &req.MovieID),
		int64Param("user_id", q.Get("user_id"), &req.UserID),
		intParam("limit", q.Get("limit"), &req.Limit),
	) || !validateRequest(rw, &req) {
		return
	}

	hybrid := recommend.HybridRequest{TopN: h.clampLimit(req.Limit)}
	if req.MovieID > 0 {
		item, err := h.store.GetItemByTMDBID(r.Context(), req.MovieID)
		if err != nil {
			rw.InternalError(err)
			return
		}
		if item != nil {
			hybrid.ItemID = &item.ID
		}
	}
	if req.UserID > 0 {
		hybrid.UserID = &req.UserID
	}

	ids, err := h.engine.RecommendHybrid(r.Context(), hybrid)
	h.writeRecommendations(r.Context(), rw, ids, err)
}

// RecommendPopular handles GET /api/v1/recommend/popular.
func (h *Handler) RecommendPopular(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := LimitRequest{Limit: h.limits.Default}
	if !bindParams(rw, intParam("limit", r.URL.Query().Get("limit"), &req.Limit)) || !validateRequest(rw, &req) {
		return
	}

	ids, err := h.engine.RecommendPopular(r.Context(), h.clampLimit(req.Limit))
	h.writeRecommendations(r.Context(), rw, ids, err)
}
