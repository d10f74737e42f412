// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides chi-compatible HTTP middleware for the API server.

Key Components:

  - RequestID: takes X-Request-ID from the client or generates one, echoes it
    in the response and stores request and correlation ids in the logging
    context
  - RequestLogger: one structured zerolog line per request
  - PrometheusMetrics: request count, duration and in-flight gauge, labelled
    by chi route pattern so path parameters do not explode cardinality

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)

RequestID must run before RequestLogger so log lines carry the request id.
*/
package middleware
