// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package tmdb provides a client for The Movie Database API and a seeder that
// imports popular movies into the catalog.
//
// The client decodes responses with goccy/go-json, paces requests with a
// token-bucket limiter and guards every call with a gobreaker circuit
// breaker whose state is exported as Prometheus metrics.
//
// The seeder fetches the genre map once, then for each popular movie not yet
// in the catalog fetches credits, keeps the first "Director" crew entry and
// the top five billed cast names, and upserts the result.
package tmdb
