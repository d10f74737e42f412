// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// DirectorMatchWeight is the score contributed by an identical director.
const DirectorMatchWeight = 3

// Crew scores items by shared director and overlapping cast.
//
//	score(i) = 3 * [director(i) == director(seed)] + |cast(i) ∩ cast(seed)|
//
// Cast names are trimmed before comparison. Zero scores are dropped.
type Crew struct {
	catalog recommend.CatalogReader
}

// NewCrew creates a crew scorer.
func NewCrew(catalog recommend.CatalogReader) *Crew {
	return &Crew{catalog: catalog}
}

// Recommend returns up to topN items ranked by crew score, ties broken by
// ascending id. An unknown seed, or one with neither director nor cast,
// yields an empty list.
func (c *Crew) Recommend(ctx context.Context, itemID int64, topN int) ([]int64, error) {
	seed, err := c.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get seed item: %w", err)
	}
	if seed == nil || topN <= 0 {
		return []int64{}, nil
	}

	acc := recommend.NewAccumulator()

	if seed.HasDirector() {
		peers, err := c.catalog.ListItemsByDirector(ctx, seed.Director)
		if err != nil {
			return nil, fmt.Errorf("list items by director: %w", err)
		}
		for i := range peers {
			if peers[i].ID == seed.ID {
				continue
			}
			acc[peers[i].ID] += DirectorMatchWeight
		}
	}

	if seed.HasCast() {
		seedCast := castSet(seed.Cast)

		items, err := c.catalog.ListItems(ctx)
		if err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		for i := range items {
			if items[i].ID == seed.ID || !items[i].HasCast() {
				continue
			}
			if n := overlap(seedCast, items[i].Cast); n > 0 {
				acc[items[i].ID] += float64(n)
			}
		}
	}

	return acc.Top(topN), nil
}
