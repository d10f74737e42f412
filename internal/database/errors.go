// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/reelmatch/internal/logging"
)

var (
	// ErrMovieNotFound is returned when a write references a movie that is
	// not in the catalog.
	ErrMovieNotFound = errors.New("database: movie not found")

	// ErrInvalidRating is returned when a review rating is outside 1-5.
	ErrInvalidRating = errors.New("database: rating must be between 1 and 5")
)

// closeWithLog closes a resource and logs any error
// Use this for cleanup operations where errors should be acknowledged but not fail the operation
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
