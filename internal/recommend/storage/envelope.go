// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// formatVersion is bumped when the payload layout changes incompatibly.
const formatVersion = 1

// ErrCorrupt marks an artifact that was found but could not be decoded.
var ErrCorrupt = errors.New("storage: corrupt artifact")

// envelope is the on-disk wrapper around the compressed payload.
type envelope struct {
	Format     int
	SavedAt    time.Time
	Items      int
	Vocabulary int
	Checksum   string
	Payload    []byte
}

// payload carries the exported artifact fields. The lookup index is rebuilt
// on publish.
type payload struct {
	Version   int64
	TrainedAt time.Time
	ItemIDs   []int64
	Vectors   []recommend.SparseVector
	Model     recommend.VocabularyModel
}

// encode serializes an artifact into envelope bytes.
func encode(a *recommend.Artifact) ([]byte, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(payload{
		Version:   a.Version,
		TrainedAt: a.TrainedAt,
		ItemIDs:   a.ItemIDs,
		Vectors:   a.Vectors,
		Model:     a.Model,
	}); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}

	hash := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(envelope{
		Format:     formatVersion,
		SavedAt:    time.Now().UTC(),
		Items:      a.Len(),
		Vocabulary: a.Model.Dim(),
		Checksum:   hex.EncodeToString(hash[:]),
		Payload:    compressed.Bytes(),
	}); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return out.Bytes(), nil
}

// decode reverses encode. Every failure wraps ErrCorrupt.
func decode(data []byte) (*recommend.Artifact, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: read envelope: %v", ErrCorrupt, err)
	}
	if env.Format != formatVersion {
		return nil, fmt.Errorf("%w: unsupported format %d", ErrCorrupt, env.Format)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.Payload))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("%w: read payload: %v", ErrCorrupt, err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != env.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %s, got %s", ErrCorrupt, env.Checksum, checksum)
	}

	var p payload
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode payload: %v", ErrCorrupt, err)
	}

	a, err := recommend.NewArtifact(p.Version, p.TrainedAt, p.ItemIDs, p.Vectors, p.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return a, nil
}

// absent converts a decode failure into the sentinel callers branch on.
func absent(err error) error {
	return fmt.Errorf("%w: %v", recommend.ErrArtifactAbsent, err)
}
