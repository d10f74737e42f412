// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package supervisor runs the long-lived services of the server under a
// suture supervisor tree.
//
// # Tree Layout
//
//	reelmatch (root)
//	├── data-layer
//	│   └── training-service   (artifact load and periodic retraining)
//	└── api-layer
//	    └── http-server
//
// Each layer is its own supervisor, so a panicking training run is
// restarted with backoff without taking the HTTP server down.
//
// # Logging
//
// Supervisor events (service panics, restarts, backoff) are written through
// sutureslog to a slog.Logger. Use logging.NewSlogLogger to route them into
// the application's zerolog output.
package supervisor
