// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"strings"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Ensure all scorers implement their interfaces.
var (
	_ recommend.Vectorizer       = (*TFIDF)(nil)
	_ recommend.ContentScorer    = (*Content)(nil)
	_ recommend.UserScorer       = (*Collaborative)(nil)
	_ recommend.ItemScorer       = (*Crew)(nil)
	_ recommend.ItemScorer       = (*Franchise)(nil)
	_ recommend.PopularityScorer = (*Popularity)(nil)
)

// CosineSimilarity returns dot(a,b)/(|a|*|b|), or 0 when either norm is 0.
func CosineSimilarity(a, b recommend.SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return a.Dot(b) / (na * nb)
}

// castSet returns the set of trimmed, non-empty names.
func castSet(cast []string) map[string]struct{} {
	set := make(map[string]struct{}, len(cast))
	for _, name := range cast {
		name = strings.TrimSpace(name)
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// overlap counts the distinct names of cast present in seed.
func overlap(seed map[string]struct{}, cast []string) int {
	n := 0
	for name := range castSet(cast) {
		if _, ok := seed[name]; ok {
			n++
		}
	}
	return n
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
