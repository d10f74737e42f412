// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

const (
	// ArtifactFile is the name of the artifact inside the store directory.
	ArtifactFile = "content_artifact.gob.gz"

	lockFile       = "content_artifact.lock"
	tempPattern    = ".content_artifact-*.tmp"
	lockRetryDelay = 50 * time.Millisecond
)

// FileStore keeps the artifact in a single file that is replaced atomically.
type FileStore struct {
	dir    string
	path   string
	lock   *flock.Flock
	logger zerolog.Logger
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFileStore(dir string, logger zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for artifact storage
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}
	return &FileStore{
		dir:    dir,
		path:   filepath.Join(dir, ArtifactFile),
		lock:   flock.New(filepath.Join(dir, lockFile)),
		logger: logger.With().Str("component", "artifact_store").Str("backend", "file").Logger(),
	}, nil
}

// Path returns the artifact file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save replaces the stored artifact. The previous file stays intact until
// the new one is fully written and synced.
func (s *FileStore) Save(ctx context.Context, a *recommend.Artifact) error {
	if a == nil {
		return errors.New("save nil artifact")
	}

	data, err := encode(a)
	if err != nil {
		return err
	}

	locked, err := s.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire artifact lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("artifact lock %s is held by another writer", s.lock.Path())
	}
	defer func() { _ = s.lock.Unlock() }() //nolint:errcheck // unlock failure leaves an advisory lock only

	tmp, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()        //nolint:errcheck // already failing
			_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace artifact: %w", err)
	}
	committed = true

	s.logger.Info().
		Int64("version", a.Version).
		Int("items", a.Len()).
		Int("bytes", len(data)).
		Str("path", s.path).
		Msg("content artifact saved")
	return nil
}

// Load reads the stored artifact. It returns recommend.ErrArtifactAbsent
// when the file is missing or unusable.
func (s *FileStore) Load(ctx context.Context) (*recommend.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, recommend.ErrArtifactAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	a, err := decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("stored content artifact unusable")
		return nil, absent(err)
	}
	return a, nil
}

// Close releases the lock file handle.
func (s *FileStore) Close() error {
	return s.lock.Close()
}
