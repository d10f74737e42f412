// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"sort"
)

// ScoredItem is an item identifier with its accumulated score.
type ScoredItem struct {
	ItemID int64   `json:"item_id"`
	Score  float64 `json:"score"`
}

// scoreScale is the fixed-point resolution used to compare summed weights,
// so 0.2+0.1 and 0.3 rank as equal.
const scoreScale = 1e9

// Accumulator sums per-item scores for a single request.
type Accumulator map[int64]float64

// NewAccumulator returns an empty accumulator.
func NewAccumulator() Accumulator {
	return make(Accumulator)
}

// Add contributes weight once for each id.
func (a Accumulator) Add(ids []int64, weight float64) {
	for _, id := range ids {
		a[id] += weight
	}
}

// Ranked returns items sorted by score descending with ties broken by
// ascending item id.
func (a Accumulator) Ranked() []ScoredItem {
	out := make([]ScoredItem, 0, len(a))
	for id, score := range a {
		out = append(out, ScoredItem{ItemID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := quantize(out[i].Score), quantize(out[j].Score)
		if si != sj {
			return si > sj
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out
}

func quantize(score float64) int64 {
	return int64(math.Round(score * scoreScale))
}

// Top returns at most n item ids in ranked order.
func (a Accumulator) Top(n int) []int64 {
	return TopIDs(a.Ranked(), n)
}

// TopIDs truncates a ranked list to n ids. The result is never nil.
func TopIDs(ranked []ScoredItem, n int) []int64 {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		ids[i] = ranked[i].ItemID
	}
	return ids
}
