// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// Store is the catalog and user-list access the handlers need.
// *database.DB satisfies it.
type Store interface {
	GetItemByTMDBID(ctx context.Context, tmdbID int64) (*recommend.Item, error)
	GetItemsByIDs(ctx context.Context, ids []int64) ([]recommend.Item, error)
	AddReview(ctx context.Context, review database.Review) (*database.Review, error)
	ListReviewsForMovie(ctx context.Context, movieID int64) ([]database.Review, error)
	ToggleWatchlist(ctx context.Context, userID, movieID int64) (bool, error)
	ToggleWatched(ctx context.Context, userID, movieID int64) (bool, error)
	ListWatchlist(ctx context.Context, userID int64) ([]recommend.Item, error)
	ListWatched(ctx context.Context, userID int64) ([]recommend.Item, error)
	UpsertMovie(ctx context.Context, item *recommend.Item) (int64, error)
	Ping(ctx context.Context) error
}

// Recommender serves recommendations over internal item ids.
// *recommend.Engine satisfies it.
type Recommender interface {
	RecommendSimilar(ctx context.Context, itemID int64, topN int) ([]int64, bool)
	RecommendForUser(ctx context.Context, userID int64, topN int) ([]int64, error)
	RecommendByCrew(ctx context.Context, itemID int64, topN int) ([]int64, error)
	RecommendByFranchise(ctx context.Context, itemID int64, topN int) ([]int64, error)
	RecommendPopular(ctx context.Context, topN int) ([]int64, error)
	RecommendHybrid(ctx context.Context, req recommend.HybridRequest) ([]int64, error)
	Status() recommend.TrainingStatus
}

// Trainer rebuilds the content artifact. *recommend.Trainer satisfies it.
type Trainer interface {
	Train(ctx context.Context) (*recommend.Artifact, error)
}

// MovieSource is the TMDB API surface the handlers read.
// *tmdb.Client satisfies it.
type MovieSource interface {
	tmdb.DetailsSource
	SimilarMovies(ctx context.Context, tmdbID int64) (*tmdb.MoviePage, error)
	TrendingMovies(ctx context.Context, window string) (*tmdb.MoviePage, error)
}

// Limits bounds the limit query parameter.
type Limits struct {
	Default int
	Max     int
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_recommend.go: recommendation endpoints
//   - handlers_movies.go: movie, trending, review and list endpoints
//   - handlers_health.go: health and admin endpoints
type Handler struct {
	store     Store
	engine    Recommender
	trainer   Trainer
	remote    MovieSource
	limits    Limits
	logger    zerolog.Logger
	startTime time.Time
}

// Deps groups the collaborators of a Handler. TMDB may be nil when no API
// key is configured.
type Deps struct {
	Store   Store
	Engine  Recommender
	Trainer Trainer
	TMDB    MovieSource
	Limits  Limits
}

// NewHandler creates a new API handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(deps Deps, logger zerolog.Logger) (*Handler, error) {
	switch {
	case deps.Store == nil:
		return nil, errors.New("api: store is required")
	case deps.Engine == nil:
		return nil, errors.New("api: engine is required")
	case deps.Trainer == nil:
		return nil, errors.New("api: trainer is required")
	}

	limits := deps.Limits
	if limits.Default <= 0 {
		limits.Default = 10
	}
	if limits.Max < limits.Default {
		limits.Max = max(limits.Default, 50)
	}

	return &Handler{
		store:     deps.Store,
		engine:    deps.Engine,
		trainer:   deps.Trainer,
		remote:    deps.TMDB,
		limits:    limits,
		logger:    logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}, nil
}
