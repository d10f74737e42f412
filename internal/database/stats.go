// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"fmt"
	"time"
)

// Stats returns row counts for the catalog and activity tables.
func (db *DB) Stats(ctx context.Context) (_ *Stats, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("stats", "all", start, err) }()

	var s Stats
	err = db.conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM movies),
			(SELECT COUNT(*) FROM reviews),
			(SELECT COUNT(DISTINCT user_id) FROM reviews),
			(SELECT COUNT(*) FROM watchlist),
			(SELECT COUNT(*) FROM watched)`,
	).Scan(&s.Movies, &s.Reviews, &s.Reviewers, &s.WatchlistEntries, &s.WatchedEntries)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &s, nil
}
