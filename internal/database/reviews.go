// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// AddReview stores a review and returns it with ID and CreatedAt set.
// It returns ErrInvalidRating for ratings outside 1-5 and ErrMovieNotFound
// when MovieID is not in the catalog.
func (db *DB) AddReview(ctx context.Context, review Review) (*Review, error) {
	if review.Rating < 1 || review.Rating > 5 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, review.Rating)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	review.Comment = strings.TrimSpace(review.Comment)
	review.CreatedAt = time.Now().UTC()

	err := db.withWriteRetry(ctx, "add_review", func(ctx context.Context) (err error) {
		start := time.Now()
		defer func() { observe("add_review", "reviews", start, err) }()

		exists, err := db.movieExists(ctx, review.MovieID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrMovieNotFound
		}

		return db.conn.QueryRowContext(ctx, `
			INSERT INTO reviews (user_id, movie_id, rating, comment, created_at)
			VALUES (?, ?, ?, ?, ?)
			RETURNING id`,
			review.UserID, review.MovieID, review.Rating, review.Comment, review.CreatedAt,
		).Scan(&review.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("add review for movie %d: %w", review.MovieID, err)
	}
	return &review, nil
}

// ListReviewsForMovie returns the reviews of a movie, newest first.
func (db *DB) ListReviewsForMovie(ctx context.Context, movieID int64) (reviews []Review, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("list_reviews_for_movie", "reviews", start, err) }()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, user_id, movie_id, rating, comment, created_at
		FROM reviews
		WHERE movie_id = ?
		ORDER BY created_at DESC, id DESC`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for movie %d: %w", movieID, err)
	}
	defer closeWithLog(rows, "rows")

	reviews = []Review{}
	for rows.Next() {
		var r Review
		if err = rows.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list reviews for movie %d: scan: %w", movieID, err)
		}
		reviews = append(reviews, r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews for movie %d: %w", movieID, err)
	}
	return reviews, nil
}

// GetInteractionsByUser returns every rating the user has given, ordered by
// review id. Duplicate reviews are returned as separate interactions.
func (db *DB) GetInteractionsByUser(ctx context.Context, userID int64) ([]recommend.Interaction, error) {
	return db.queryInteractions(ctx, "get_interactions_by_user",
		`SELECT user_id, movie_id, rating FROM reviews WHERE user_id = ? ORDER BY id`, userID)
}

// ListAllInteractions returns every rating, ordered by review id.
func (db *DB) ListAllInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	return db.queryInteractions(ctx, "list_all_interactions",
		`SELECT user_id, movie_id, rating FROM reviews ORDER BY id`)
}

func (db *DB) queryInteractions(ctx context.Context, operation, query string, args ...any) (out []recommend.Interaction, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe(operation, "reviews", start, err) }()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer closeWithLog(rows, "rows")

	out = []recommend.Interaction{}
	for rows.Next() {
		var in recommend.Interaction
		if err = rows.Scan(&in.UserID, &in.ItemID, &in.Rating); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", operation, err)
		}
		out = append(out, in)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return out, nil
}
