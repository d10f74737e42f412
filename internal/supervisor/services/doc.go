// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts application components to suture.Service.
//
//   - HTTPServerService: runs an *http.Server with graceful shutdown
//   - TrainService: loads the newest artifact at startup and rebuilds
//     it on a schedule
//
// Each Serve blocks until its context is canceled and returns ctx.Err()
// on a clean stop.
package services
