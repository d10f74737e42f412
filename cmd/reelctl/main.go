// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command reelctl runs and operates the Reelmatch recommendation server.
//
//	reelctl serve                       HTTP API with scheduled training
//	reelctl train                       build and store a content artifact
//	reelctl seed --pages 5              import popular movies from TMDB
//	reelctl recommend crew 603 -n 5     print recommendations
//
// Every command reads the same configuration: --config, then CONFIG_PATH,
// then ./config.yaml and /etc/reelmatch/config.yaml. Environment variables
// override file values (DUCKDB_PATH, TMDB_API_KEY, ...).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
