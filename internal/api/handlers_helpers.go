// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// MovieResult is one entry of a recommendation or list response. ID is the
// TMDB id.
type MovieResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

// MovieResponse is the detail view of a catalog movie. ID is the TMDB id.
type MovieResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	ReleaseDate string   `json:"release_date"`
	Runtime     int      `json:"runtime"`
	Language    string   `json:"language"`
	PosterPath  string   `json:"poster_path"`
	Director    string   `json:"director"`
	Cast        []string `json:"cast"`
	Popularity  float64  `json:"popularity"`
}

func toMovieResult(item *recommend.Item) MovieResult {
	return MovieResult{ID: item.TMDBID, Title: item.Title, PosterPath: item.PosterPath}
}

func toMovieResults(items []recommend.Item) []MovieResult {
	out := make([]MovieResult, len(items))
	for i := range items {
		out[i] = toMovieResult(&items[i])
	}
	return out
}

func toMovieResponse(item *recommend.Item) MovieResponse {
	genres, cast := item.Genres, item.Cast
	if genres == nil {
		genres = []string{}
	}
	if cast == nil {
		cast = []string{}
	}
	return MovieResponse{
		ID:          item.TMDBID,
		Title:       item.Title,
		Overview:    item.Overview,
		Genres:      genres,
		ReleaseDate: item.ReleaseDate,
		Runtime:     item.Runtime,
		Language:    item.Language,
		PosterPath:  item.PosterPath,
		Director:    item.Director,
		Cast:        cast,
		Popularity:  item.Popularity,
	}
}

// parseIntParam parses raw into dst. An empty raw leaves dst unchanged.
func parseIntParam[T int | int64](raw, name string, dst *T) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%s must be an integer", name)
	}
	*dst = T(v)
	return nil
}

// bindParams parses each name→destination pair and writes a 400 on the first
// malformed value.
func bindParams(rw *ResponseWriter, params ...param) bool {
	for _, p := range params {
		if err := p.parse(); err != nil {
			rw.ValidationError(err.Error(), map[string]any{"field": p.name})
			return false
		}
	}
	return true
}

type param struct {
	name  string
	parse func() error
}

func int64Param(name, raw string, dst *int64) param {
	return param{name: name, parse: func() error { return parseIntParam(raw, name, dst) }}
}

func intParam(name, raw string, dst *int) param {
	return param{name: name, parse: func() error { return parseIntParam(raw, name, dst) }}
}

// validateRequest runs struct validation and writes a 400 on failure.
func validateRequest(rw *ResponseWriter, req any) bool {
	verr := validation.ValidateStruct(req)
	if verr == nil {
		return true
	}
	apiErr := verr.ToAPIError()
	rw.ValidationError(apiErr.Message, apiErr.Details)
	return false
}

// decodeBody decodes a bounded JSON body, rejecting unknown fields and
// trailing data.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return errors.New("request body must be valid JSON")
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// clampLimit caps a validated limit at the configured maximum.
func (h *Handler) clampLimit(limit int) int {
	return min(limit, h.limits.Max)
}

// resultsFor resolves internal ids to MovieResults, preserving order.
func (h *Handler) resultsFor(ctx context.Context, ids []int64) ([]MovieResult, error) {
	if len(ids) == 0 {
		return []MovieResult{}, nil
	}
	items, err := h.store.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve recommended items: %w", err)
	}
	return toMovieResults(items), nil
}

// writeRecommendations resolves ids and writes the list, or a 500.
func (h *Handler) writeRecommendations(ctx context.Context, rw *ResponseWriter, ids []int64, err error) {
	if err != nil {
		rw.InternalError(err)
		return
	}
	results, err := h.resultsFor(ctx, ids)
	if err != nil {
		rw.InternalError(err)
		return
	}
	rw.List(results, len(results))
}
