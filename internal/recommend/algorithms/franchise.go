// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Franchise matches items whose title contains the seed's base title.
// It is the least precise signal and performs no ranking of its own.
type Franchise struct {
	catalog recommend.CatalogReader
}

// NewFranchise creates a franchise scorer.
func NewFranchise(catalog recommend.CatalogReader) *Franchise {
	return &Franchise{catalog: catalog}
}

// BaseTitle cuts a title at the first ':' or '(' and returns it trimmed and
// lower-cased.
//
//	BaseTitle("Iron Man: Rise")      == "iron man"
//	BaseTitle("Dune (2021)")         == "dune"
//	BaseTitle("The Matrix Reloaded") == "the matrix reloaded"
func BaseTitle(title string) string {
	if i := strings.IndexAny(title, ":("); i >= 0 {
		title = title[:i]
	}
	return strings.ToLower(strings.TrimSpace(title))
}

// Recommend returns up to topN items, in catalog match order, whose title
// contains the seed's base title case-insensitively. The seed is excluded.
func (f *Franchise) Recommend(ctx context.Context, itemID int64, topN int) ([]int64, error) {
	seed, err := f.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get seed item: %w", err)
	}
	if seed == nil || topN <= 0 {
		return []int64{}, nil
	}

	base := BaseTitle(seed.Title)
	if base == "" {
		return []int64{}, nil
	}

	matches, err := f.catalog.FindItemsByTitleSubstring(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("find items by title: %w", err)
	}

	ids := make([]int64, 0, topN)
	for i := range matches {
		if len(ids) == topN {
			break
		}
		if matches[i].ID == seed.ID {
			continue
		}
		ids = append(ids, matches[i].ID)
	}
	return ids, nil
}
