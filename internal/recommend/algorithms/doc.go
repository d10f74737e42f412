// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package algorithms implements the vectorizer and the individual scorers
// combined by the recommendation engine.
//
// # Components
//
//   - TFIDF: bounded-vocabulary TF-IDF vectorizer (recommend.Vectorizer)
//   - Content: cosine nearest neighbours over an artifact snapshot
//   - Collaborative: co-rating neighbours with rating propagation
//   - Crew: director match (+3) and cast overlap (+|intersection|)
//   - Franchise: base-title substring matching
//   - Popularity: catalog popularity ordering
//
// # Determinism
//
// Every scorer is a pure function of its inputs. Where scores tie, the
// lower item id (or user id, for neighbour selection) ranks first, except
// Content, which keeps catalog order through a stable sort.
//
// # Thread Safety
//
// Scorers hold no mutable state and are safe for concurrent use.
package algorithms
