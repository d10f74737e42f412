// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Collaborative implements user-based collaborative filtering with
// co-rating counts as the similarity proxy.
//
// For a target user u with seen set S(u):
//
//	sim(u, v)   = |S(u) ∩ S(v)|            for every other user v
//	N(u)        = top-k users by sim, ties by ascending user id
//	score(i)    = Σ rating(v, i)  over v in N(u), i ∉ S(u)
//
// Rating values, not counts, are summed. The full interaction log is
// scanned per request (O(U*R)).
type Collaborative struct {
	interactions recommend.InteractionReader
	neighbors    int
}

// NewCollaborative creates a collaborative scorer drawing from at most
// neighbors similar users. Non-positive values default to 5.
func NewCollaborative(interactions recommend.InteractionReader, neighbors int) *Collaborative {
	if neighbors <= 0 {
		neighbors = 5
	}
	return &Collaborative{
		interactions: interactions,
		neighbors:    neighbors,
	}
}

// RecommendForUser returns up to topN unseen item ids for userID.
// Users without history or without co-rating neighbours get an empty list.
func (c *Collaborative) RecommendForUser(ctx context.Context, userID int64, topN int) ([]int64, error) {
	own, err := c.interactions.GetInteractionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user interactions: %w", err)
	}
	if len(own) == 0 || topN <= 0 {
		return []int64{}, nil
	}

	seen := make(map[int64]struct{}, len(own))
	for _, in := range own {
		seen[in.ItemID] = struct{}{}
	}

	all, err := c.interactions.ListAllInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	coRated := make(map[int64]int)
	byUser := make(map[int64][]recommend.Interaction)
	for _, in := range all {
		if in.UserID == userID {
			continue
		}
		byUser[in.UserID] = append(byUser[in.UserID], in)
		if _, ok := seen[in.ItemID]; ok {
			coRated[in.UserID]++
		}
	}

	neighbors := c.topNeighbors(coRated)
	if len(neighbors) == 0 {
		return []int64{}, nil
	}

	acc := recommend.NewAccumulator()
	for _, v := range neighbors {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		for _, in := range byUser[v] {
			if _, ok := seen[in.ItemID]; ok {
				continue
			}
			acc[in.ItemID] += float64(in.Rating)
		}
	}

	return acc.Top(topN), nil
}

// topNeighbors ranks users by co-rating count descending, ties broken by
// ascending user id.
func (c *Collaborative) topNeighbors(coRated map[int64]int) []int64 {
	users := make([]int64, 0, len(coRated))
	for u := range coRated {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if coRated[users[i]] != coRated[users[j]] {
			return coRated[users[i]] > coRated[users[j]]
		}
		return users[i] < users[j]
	})
	if len(users) > c.neighbors {
		users = users[:c.neighbors]
	}
	return users
}
