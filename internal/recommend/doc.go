// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend implements a hybrid movie recommendation engine.
//
// # Architecture
//
// The engine combines four independent, weak signals:
//
//   - Content: cosine similarity over TF-IDF vectors of genres and overview
//   - Collaborative: co-rating neighbours and rating propagation
//   - Crew: shared director and overlapping cast
//   - Franchise: title-prefix matching
//
// A popularity backfill is added to every hybrid request.
//
// # Offline and Online Phases
//
// Training is a batch job: the Trainer reads the catalog, fits a Vectorizer
// and saves an Artifact through an ArtifactStore. Serving reads the
// published Artifact snapshot, which is swapped atomically with Publish and
// never mutated in place. Concurrent requests see either the old or the new
// artifact in full.
//
// # Error Handling
//
// Cold start is never an error. Unknown items, users without history and a
// missing artifact all produce an empty result. Catalog and interaction
// reader failures are returned to the caller unchanged in kind.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.Scorers{
//	    Content:       algorithms.NewContent(),
//	    Collaborative: algorithms.NewCollaborative(db, 5),
//	    Crew:          algorithms.NewCrew(db),
//	    Franchise:     algorithms.NewFranchise(db),
//	    Popularity:    algorithms.NewPopularity(db),
//	}, recommend.DefaultConfig(), logger)
//
//	ids, err := engine.RecommendHybrid(ctx, recommend.HybridRequest{ItemID: &id, TopN: 10})
//
// The package has no dependencies on other internal packages except metrics.
// Readers, stores and scorers are injected as interfaces.
package recommend
