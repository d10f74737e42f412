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

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// artifactKey holds the single stored artifact.
var artifactKey = []byte("artifact:content")

// BadgerStore keeps the artifact under one key in a BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	owned  bool
	logger zerolog.Logger
}

// OpenBadgerStore opens (or creates) a BadgerDB at dir. The store owns the
// database and closes it on Close.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenBadgerStore(dir string, logger zerolog.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for artifact storage
		return nil, fmt.Errorf("create artifact directory: %w", err)
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	s := NewBadgerStore(db, logger)
	s.owned = true
	return s, nil
}

// NewBadgerStore wraps an existing database. The caller keeps ownership.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerStore(db *badger.DB, logger zerolog.Logger) *BadgerStore {
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "artifact_store").Str("backend", "badger").Logger(),
	}
}

// Save replaces the stored artifact in a single transaction.
func (s *BadgerStore) Save(ctx context.Context, a *recommend.Artifact) error {
	if a == nil {
		return errors.New("save nil artifact")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(a)
	if err != nil {
		return err
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(artifactKey, data)
	}); err != nil {
		return fmt.Errorf("set artifact: %w", err)
	}

	s.logger.Info().
		Int64("version", a.Version).
		Int("items", a.Len()).
		Int("bytes", len(data)).
		Msg("content artifact saved")
	return nil
}

// Load reads the stored artifact. It returns recommend.ErrArtifactAbsent
// when the key is missing or its value is unusable.
func (s *BadgerStore) Load(ctx context.Context) (*recommend.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(artifactKey)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, recommend.ErrArtifactAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("get artifact: %w", err)
	}

	a, err := decode(data)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stored content artifact unusable")
		return nil, absent(err)
	}
	return a, nil
}

// Close closes the database if the store opened it.
func (s *BadgerStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
