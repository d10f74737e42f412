// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func TestAddReview(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ids := insertMovies(t, db,
		recommend.Item{TMDBID: 1, Title: "M"},
		recommend.Item{TMDBID: 2, Title: "N"},
	)

	t.Run("stores review", func(t *testing.T) {
		r, err := db.AddReview(ctx, Review{UserID: 7, MovieID: ids[0], Rating: 4, Comment: "  great  "})
		if err != nil {
			t.Fatalf("AddReview() error = %v", err)
		}
		if r.ID == 0 || r.CreatedAt.IsZero() {
			t.Errorf("AddReview() = %+v, want id and timestamp", r)
		}
		if r.Comment != "great" {
			t.Errorf("Comment = %q, want trimmed", r.Comment)
		}
	})

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := db.AddReview(ctx, Review{UserID: 7, MovieID: ids[0], Rating: rating})
			if !errors.Is(err, ErrInvalidRating) {
				t.Errorf("rating %d: err = %v, want ErrInvalidRating", rating, err)
			}
		}
		for _, rating := range []int{1, 5} {
			if _, err := db.AddReview(ctx, Review{UserID: 8, MovieID: ids[1], Rating: rating}); err != nil {
				t.Errorf("rating %d: unexpected error %v", rating, err)
			}
		}
	})

	t.Run("unknown movie", func(t *testing.T) {
		_, err := db.AddReview(ctx, Review{UserID: 7, MovieID: 9999, Rating: 3})
		if !errors.Is(err, ErrMovieNotFound) {
			t.Errorf("err = %v, want ErrMovieNotFound", err)
		}
	})
}

func TestListReviewsForMovie(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ids := insertMovies(t, db, recommend.Item{TMDBID: 1, Title: "M"}, recommend.Item{TMDBID: 2, Title: "N"})

	for _, r := range []Review{
		{UserID: 1, MovieID: ids[0], Rating: 5},
		{UserID: 2, MovieID: ids[0], Rating: 3},
		{UserID: 1, MovieID: ids[1], Rating: 1},
	} {
		if _, err := db.AddReview(ctx, r); err != nil {
			t.Fatalf("AddReview() error = %v", err)
		}
	}

	reviews, err := db.ListReviewsForMovie(ctx, ids[0])
	if err != nil {
		t.Fatalf("ListReviewsForMovie() error = %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("len = %d, want 2", len(reviews))
	}
	// Newest first.
	if reviews[0].UserID != 2 || reviews[1].UserID != 1 {
		t.Errorf("order = %+v", reviews)
	}

	none, err := db.ListReviewsForMovie(ctx, 12345)
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("ListReviewsForMovie(absent) = %v, %v", none, err)
	}
}

func TestInteractions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ids := insertMovies(t, db, recommend.Item{TMDBID: 1, Title: "M"}, recommend.Item{TMDBID: 2, Title: "N"})

	reviews := []Review{
		{UserID: 1, MovieID: ids[0], Rating: 5},
		{UserID: 2, MovieID: ids[0], Rating: 5},
		{UserID: 1, MovieID: ids[1], Rating: 4},
		{UserID: 1, MovieID: ids[1], Rating: 2},
	}
	for _, r := range reviews {
		if _, err := db.AddReview(ctx, r); err != nil {
			t.Fatalf("AddReview() error = %v", err)
		}
	}

	all, err := db.ListAllInteractions(ctx)
	if err != nil {
		t.Fatalf("ListAllInteractions() error = %v", err)
	}
	want := []recommend.Interaction{
		{UserID: 1, ItemID: ids[0], Rating: 5},
		{UserID: 2, ItemID: ids[0], Rating: 5},
		{UserID: 1, ItemID: ids[1], Rating: 4},
		{UserID: 1, ItemID: ids[1], Rating: 2},
	}
	if !reflect.DeepEqual(all, want) {
		t.Errorf("ListAllInteractions() = %v, want %v", all, want)
	}

	user1, err := db.GetInteractionsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetInteractionsByUser() error = %v", err)
	}
	// Duplicate ratings of the same movie are kept.
	if len(user1) != 3 {
		t.Errorf("GetInteractionsByUser(1) = %v, want 3 interactions", user1)
	}

	cold, err := db.GetInteractionsByUser(ctx, 99)
	if err != nil || cold == nil || len(cold) != 0 {
		t.Errorf("GetInteractionsByUser(cold) = %v, %v", cold, err)
	}
}
