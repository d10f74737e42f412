// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// List tables accepted by toggle and listEntries.
const (
	tableWatchlist = "watchlist"
	tableWatched   = "watched"
)

// ToggleWatchlist adds the movie to the user's watchlist, or removes it if
// already present. It reports whether the entry now exists.
func (db *DB) ToggleWatchlist(ctx context.Context, userID, movieID int64) (bool, error) {
	return db.toggle(ctx, tableWatchlist, userID, movieID)
}

// ToggleWatched marks the movie watched, or unmarks it if already watched.
// Marking a movie watched removes it from the user's watchlist.
func (db *DB) ToggleWatched(ctx context.Context, userID, movieID int64) (bool, error) {
	return db.toggle(ctx, tableWatched, userID, movieID)
}

// ListWatchlist returns the movies on the user's watchlist, newest first.
func (db *DB) ListWatchlist(ctx context.Context, userID int64) ([]recommend.Item, error) {
	return db.listEntries(ctx, tableWatchlist, userID)
}

// ListWatched returns the movies the user has watched, newest first.
func (db *DB) ListWatched(ctx context.Context, userID int64) ([]recommend.Item, error) {
	return db.listEntries(ctx, tableWatched, userID)
}

func (db *DB) toggle(ctx context.Context, table string, userID, movieID int64) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	operation := "toggle_" + table
	var added bool
	err := db.withWriteRetry(ctx, operation, func(ctx context.Context) (err error) {
		start := time.Now()
		defer func() { observe(operation, table, start, err) }()

		exists, err := db.movieExists(ctx, movieID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrMovieNotFound
		}

		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback()
			}
		}()

		//nolint:gosec // table is one of the package constants
		res, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE user_id = ? AND movie_id = ?`, userID, movieID)
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}

		added = removed == 0
		if added {
			//nolint:gosec // table is one of the package constants
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO `+table+` (user_id, movie_id, created_at) VALUES (?, ?, ?)`,
				userID, movieID, time.Now().UTC()); err != nil {
				return err
			}
			if table == tableWatched {
				if _, err = tx.ExecContext(ctx,
					`DELETE FROM watchlist WHERE user_id = ? AND movie_id = ?`, userID, movieID); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return false, fmt.Errorf("toggle %s for user %d movie %d: %w", table, userID, movieID, err)
	}
	return added, nil
}

func (db *DB) listEntries(ctx context.Context, table string, userID int64) ([]recommend.Item, error) {
	//nolint:gosec // table is one of the package constants
	query := `SELECT m.id, m.tmdb_id, m.title, m.overview, m.genres, m.release_date, m.runtime,
			m.language, m.poster_path, m.popularity, m.director, m.cast_members
		FROM ` + table + ` e
		JOIN movies m ON m.id = e.movie_id
		WHERE e.user_id = ?
		ORDER BY e.created_at DESC, m.id ASC`
	return db.queryItems(ctx, "list_"+table, query, userID)
}
