// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func TestCollaborative_RecommendForUser(t *testing.T) {
	const (
		u1 int64 = 1
		u2 int64 = 2
		m  int64 = 100
		n  int64 = 200
	)

	tests := []struct {
		name         string
		interactions []recommend.Interaction
		userID       int64
		topN         int
		want         []int64
	}{
		{
			name: "two users share M, U1 also rated N",
			interactions: []recommend.Interaction{
				{UserID: u1, ItemID: m, Rating: 5},
				{UserID: u2, ItemID: m, Rating: 5},
				{UserID: u1, ItemID: n, Rating: 4},
			},
			userID: u2,
			topN:   10,
			want:   []int64{n},
		},
		{
			name: "user without interactions is cold",
			interactions: []recommend.Interaction{
				{UserID: u1, ItemID: m, Rating: 5},
			},
			userID: 42,
			topN:   10,
			want:   []int64{},
		},
		{
			name: "user without neighbours gets nothing",
			interactions: []recommend.Interaction{
				{UserID: u1, ItemID: m, Rating: 5},
				{UserID: u2, ItemID: n, Rating: 5},
			},
			userID: u1,
			topN:   10,
			want:   []int64{},
		},
		{
			name: "ratings are summed across neighbours",
			interactions: []recommend.Interaction{
				{UserID: 1, ItemID: 10, Rating: 3},
				{UserID: 2, ItemID: 10, Rating: 4},
				{UserID: 2, ItemID: 20, Rating: 5},
				{UserID: 2, ItemID: 30, Rating: 2},
				{UserID: 3, ItemID: 10, Rating: 1},
				{UserID: 3, ItemID: 20, Rating: 5},
				{UserID: 3, ItemID: 40, Rating: 6},
			},
			userID: 1,
			topN:   10,
			// 20: 5+5=10, 40: 6, 30: 2
			want: []int64{20, 40, 30},
		},
		{
			name: "score ties broken by ascending item id",
			interactions: []recommend.Interaction{
				{UserID: 1, ItemID: 10, Rating: 3},
				{UserID: 2, ItemID: 10, Rating: 3},
				{UserID: 2, ItemID: 50, Rating: 4},
				{UserID: 2, ItemID: 30, Rating: 4},
			},
			userID: 1,
			topN:   10,
			want:   []int64{30, 50},
		},
		{
			name: "topN truncates",
			interactions: []recommend.Interaction{
				{UserID: 1, ItemID: 10, Rating: 3},
				{UserID: 2, ItemID: 10, Rating: 3},
				{UserID: 2, ItemID: 20, Rating: 5},
				{UserID: 2, ItemID: 30, Rating: 4},
			},
			userID: 1,
			topN:   1,
			want:   []int64{20},
		},
		{
			name: "duplicate interactions count independently",
			interactions: []recommend.Interaction{
				{UserID: 1, ItemID: 10, Rating: 3},
				{UserID: 2, ItemID: 10, Rating: 3},
				{UserID: 2, ItemID: 20, Rating: 2},
				{UserID: 2, ItemID: 20, Rating: 2},
				{UserID: 2, ItemID: 30, Rating: 3},
			},
			userID: 1,
			topN:   10,
			want:   []int64{20, 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollaborative(&fakeInteractions{all: tt.interactions}, 5)
			got, err := c.RecommendForUser(context.Background(), tt.userID, tt.topN)
			if err != nil {
				t.Fatalf("RecommendForUser() error = %v", err)
			}
			if !equalIDs(got, tt.want) {
				t.Errorf("RecommendForUser() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollaborative_NeverReturnsSeenItems(t *testing.T) {
	var interactions []recommend.Interaction
	for u := int64(1); u <= 8; u++ {
		for i := int64(1); i <= 12; i++ {
			if (u+i)%3 == 0 {
				interactions = append(interactions, recommend.Interaction{UserID: u, ItemID: i, Rating: int(i % 5)})
			}
		}
	}
	reader := &fakeInteractions{all: interactions}
	c := NewCollaborative(reader, 5)

	for u := int64(1); u <= 8; u++ {
		own, _ := reader.GetInteractionsByUser(context.Background(), u)
		seen := make(map[int64]bool)
		for _, in := range own {
			seen[in.ItemID] = true
		}

		got, err := c.RecommendForUser(context.Background(), u, 20)
		if err != nil {
			t.Fatalf("user %d: error = %v", u, err)
		}
		for _, id := range got {
			if seen[id] {
				t.Errorf("user %d: recommended already-rated item %d", u, id)
			}
		}
	}
}

func TestCollaborative_NeighbourTieBreak(t *testing.T) {
	// Users 2..7 each co-rate one item with user 1; only the five lowest
	// ids become neighbours, so user 7's item is never propagated.
	interactions := []recommend.Interaction{{UserID: 1, ItemID: 1, Rating: 5}}
	for u := int64(2); u <= 7; u++ {
		interactions = append(interactions,
			recommend.Interaction{UserID: u, ItemID: 1, Rating: 5},
			recommend.Interaction{UserID: u, ItemID: 100 + u, Rating: 1},
		)
	}

	c := NewCollaborative(&fakeInteractions{all: interactions}, 5)
	got, err := c.RecommendForUser(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("RecommendForUser() error = %v", err)
	}

	want := []int64{102, 103, 104, 105, 106}
	if !equalIDs(got, want) {
		t.Errorf("RecommendForUser() = %v, want %v", got, want)
	}
}

func TestCollaborative_PropagatesReaderErrors(t *testing.T) {
	errUpstream := errors.New("interaction store unavailable")
	c := NewCollaborative(&fakeInteractions{err: errUpstream}, 5)

	_, err := c.RecommendForUser(context.Background(), 1, 10)
	if !errors.Is(err, errUpstream) {
		t.Errorf("error = %v, want wrapping %v", err, errUpstream)
	}
}
