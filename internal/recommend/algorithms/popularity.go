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

// Popularity ranks items by the catalog popularity field.
//
// This scorer is useful for:
//   - Cold start users with no history
//   - Deterministic backfill in the hybrid combiner
//
// Order follows the catalog reader: popularity descending, ties broken by
// ascending id.
type Popularity struct {
	catalog recommend.CatalogReader
}

// NewPopularity creates a popularity scorer.
func NewPopularity(catalog recommend.CatalogReader) *Popularity {
	return &Popularity{catalog: catalog}
}

// Top returns the n most popular item ids.
func (p *Popularity) Top(ctx context.Context, n int) ([]int64, error) {
	if n <= 0 {
		return []int64{}, nil
	}

	items, err := p.catalog.ListPopular(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("list popular items: %w", err)
	}

	ids := make([]int64, 0, len(items))
	for i := range items {
		if len(ids) == n {
			break
		}
		ids = append(ids, items[i].ID)
	}
	return ids, nil
}
