// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func TestToggleWatchlist(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ids := insertMovies(t, db, recommend.Item{TMDBID: 1, Title: "M"}, recommend.Item{TMDBID: 2, Title: "N"})

	added, err := db.ToggleWatchlist(ctx, 5, ids[0])
	if err != nil || !added {
		t.Fatalf("first toggle = %v, %v; want added", added, err)
	}
	if _, err := db.ToggleWatchlist(ctx, 5, ids[1]); err != nil {
		t.Fatalf("toggle second movie error = %v", err)
	}

	list, err := db.ListWatchlist(ctx, 5)
	if err != nil {
		t.Fatalf("ListWatchlist() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListWatchlist() = %v, want 2 items", list)
	}

	added, err = db.ToggleWatchlist(ctx, 5, ids[0])
	if err != nil || added {
		t.Fatalf("second toggle = %v, %v; want removed", added, err)
	}
	list, err = db.ListWatchlist(ctx, 5)
	if err != nil {
		t.Fatalf("ListWatchlist() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != ids[1] {
		t.Errorf("ListWatchlist() after removal = %v", list)
	}

	other, err := db.ListWatchlist(ctx, 6)
	if err != nil || len(other) != 0 {
		t.Errorf("ListWatchlist(other user) = %v, %v", other, err)
	}
}

func TestToggleWatched_RemovesWatchlistEntry(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ids := insertMovies(t, db, recommend.Item{TMDBID: 1, Title: "M"})

	if _, err := db.ToggleWatchlist(ctx, 5, ids[0]); err != nil {
		t.Fatalf("ToggleWatchlist() error = %v", err)
	}

	added, err := db.ToggleWatched(ctx, 5, ids[0])
	if err != nil || !added {
		t.Fatalf("ToggleWatched() = %v, %v; want added", added, err)
	}

	watchlist, err := db.ListWatchlist(ctx, 5)
	if err != nil {
		t.Fatalf("ListWatchlist() error = %v", err)
	}
	if len(watchlist) != 0 {
		t.Errorf("watchlist still holds %v after marking watched", watchlist)
	}

	watched, err := db.ListWatched(ctx, 5)
	if err != nil {
		t.Fatalf("ListWatched() error = %v", err)
	}
	if len(watched) != 1 || watched[0].ID != ids[0] {
		t.Errorf("ListWatched() = %v", watched)
	}

	// Unmarking does not restore the watchlist entry.
	added, err = db.ToggleWatched(ctx, 5, ids[0])
	if err != nil || added {
		t.Fatalf("second ToggleWatched() = %v, %v; want removed", added, err)
	}
	watchlist, _ = db.ListWatchlist(ctx, 5)
	if len(watchlist) != 0 {
		t.Errorf("watchlist = %v, want empty", watchlist)
	}
}

func TestToggle_UnknownMovie(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.ToggleWatchlist(context.Background(), 1, 404); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("ToggleWatchlist() err = %v, want ErrMovieNotFound", err)
	}
	if _, err := db.ToggleWatched(context.Background(), 1, 404); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("ToggleWatched() err = %v, want ErrMovieNotFound", err)
	}
}

func TestStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	empty, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if *empty != (Stats{}) {
		t.Errorf("Stats() on empty db = %+v", empty)
	}

	ids := insertMovies(t, db, recommend.Item{TMDBID: 1, Title: "M"}, recommend.Item{TMDBID: 2, Title: "N"})
	for _, r := range []Review{
		{UserID: 1, MovieID: ids[0], Rating: 5},
		{UserID: 1, MovieID: ids[1], Rating: 4},
		{UserID: 2, MovieID: ids[0], Rating: 3},
	} {
		if _, err := db.AddReview(ctx, r); err != nil {
			t.Fatalf("AddReview() error = %v", err)
		}
	}
	if _, err := db.ToggleWatchlist(ctx, 1, ids[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ToggleWatched(ctx, 2, ids[1]); err != nil {
		t.Fatal(err)
	}

	got, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := Stats{Movies: 2, Reviews: 3, Reviewers: 2, WatchlistEntries: 1, WatchedEntries: 1}
	if *got != want {
		t.Errorf("Stats() = %+v, want %+v", *got, want)
	}
}
