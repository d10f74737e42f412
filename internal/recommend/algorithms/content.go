// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"sort"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Content implements nearest-neighbour lookup over an artifact's TF-IDF
// vectors using cosine similarity.
//
// Every item in the artifact is scored against the query (O(N*d)); the
// query item is excluded and ties keep catalog order.
type Content struct{}

// NewContent creates a content scorer.
func NewContent() *Content {
	return &Content{}
}

// RecommendSimilar returns up to topN item ids ordered by descending cosine
// similarity to itemID. An unknown item or nil artifact yields an empty list.
func (c *Content) RecommendSimilar(artifact *recommend.Artifact, itemID int64, topN int) []int64 {
	if artifact == nil || topN <= 0 {
		return []int64{}
	}

	row, ok := artifact.IndexOf(itemID)
	if !ok {
		return []int64{}
	}

	query := artifact.Vectors[row]
	queryNorm := artifact.NormAt(row)

	type candidate struct {
		id  int64
		sim float64
	}

	candidates := make([]candidate, 0, artifact.Len())
	for i, id := range artifact.ItemIDs {
		if id == itemID {
			continue
		}
		var sim float64
		if n := artifact.NormAt(i); queryNorm > 0 && n > 0 {
			sim = query.Dot(artifact.Vectors[i]) / (queryNorm * n)
		}
		candidates = append(candidates, candidate{id: id, sim: sim})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	if topN > len(candidates) {
		topN = len(candidates)
	}
	ids := make([]int64, topN)
	for i := 0; i < topN; i++ {
		ids[i] = candidates[i].id
	}
	return ids
}
