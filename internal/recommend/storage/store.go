// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Store is an artifact store that holds resources.
type Store interface {
	recommend.ArtifactStore
	Close() error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*BadgerStore)(nil)
)

// Open creates the configured artifact store under dir.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(backend, dir string, logger zerolog.Logger) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir, logger)
	case BackendBadger:
		return OpenBadgerStore(filepath.Join(dir, "badger"), logger)
	default:
		return nil, fmt.Errorf("unknown artifact backend %q", backend)
	}
}

// ErrArtifactAbsent is returned by Load when no usable artifact is stored.
var ErrArtifactAbsent = recommend.ErrArtifactAbsent
