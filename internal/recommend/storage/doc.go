// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package storage persists the content artifact.
//
// The artifact (fitted vocabulary, per-item sparse vectors and the parallel
// item-id index) is written and read as a single unit, so a reader never
// observes a vocabulary from one training run with vectors from another.
//
// # Format
//
// Both backends store the same envelope:
//
//	envelope (gob)
//	  - Format, SavedAt, Items, Vocabulary
//	  - Checksum: SHA-256 of the uncompressed payload
//	  - Payload: gzip-compressed gob of the artifact fields
//
// Load verifies the checksum and the artifact invariants before returning.
// A missing, truncated, corrupt or inconsistent artifact is reported as
// recommend.ErrArtifactAbsent so the service starts cold instead of failing.
//
// # Backends
//
//   - FileStore: one file, content_artifact.gob.gz, replaced by writing a
//     temp file in the same directory, fsyncing it and renaming it over the
//     target. Writers serialize on an advisory lock file (gofrs/flock), so
//     a trainer in the CLI and one in the server never interleave.
//   - BadgerStore: one key inside a BadgerDB, written in one transaction.
//
// # Thread Safety
//
// Both stores are safe for concurrent use. Loads never block on saves.
package storage
