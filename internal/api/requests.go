// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

// Request structs carry go-playground/validator tags. Field names in error
// messages come from the query and json tags.

// ItemRecommendRequest is the input of the per-movie recommendation routes.
type ItemRecommendRequest struct {
	TMDBID int64 `query:"tmdb_id" validate:"gt=0"`
	Limit  int   `query:"limit" validate:"min=1"`
}

// UserRecommendRequest is the input of the collaborative route.
type UserRecommendRequest struct {
	UserID int64 `query:"user_id" validate:"required,gt=0"`
	Limit  int   `query:"limit" validate:"min=1"`
}

// HybridRecommendRequest is the input of the hybrid route. Both ids are
// optional; with neither the result is empty.
type HybridRecommendRequest struct {
	MovieID int64 `query:"movie_id" validate:"omitempty,gt=0"`
	UserID  int64 `query:"user_id" validate:"omitempty,gt=0"`
	Limit   int   `query:"limit" validate:"min=1"`
}

// LimitRequest is the input of the popular route.
type LimitRequest struct {
	Limit int `query:"limit" validate:"min=1"`
}

// MovieRequest identifies a movie by TMDB id.
type MovieRequest struct {
	TMDBID int64 `query:"tmdb_id" validate:"gt=0"`
}

// UserRequest identifies a user.
type UserRequest struct {
	UserID int64 `query:"user_id" validate:"gt=0"`
}

// CreateReviewRequest is the body of POST /reviews. MovieID is a TMDB id.
type CreateReviewRequest struct {
	UserID  int64  `json:"user_id" validate:"required,gt=0"`
	MovieID int64  `json:"movie_id" validate:"required,gt=0"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// ToggleRequest is the body of the watchlist and watched toggles. MovieID is
// a TMDB id.
type ToggleRequest struct {
	UserID  int64 `json:"user_id" validate:"required,gt=0"`
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
}
