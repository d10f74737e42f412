// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import "time"

// Review is a persisted user rating for a movie. MovieID is the internal
// catalog id.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarises catalog and activity volumes.
type Stats struct {
	Movies           int64 `json:"movies"`
	Reviews          int64 `json:"reviews"`
	Reviewers        int64 `json:"reviewers"`
	WatchlistEntries int64 `json:"watchlist_entries"`
	WatchedEntries   int64 `json:"watched_entries"`
}
