// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
database_connection.go - Connection Pool and Write Retries

Connection Pool Configuration:
  - MaxOpenConns: Based on CPU count for parallel readers
  - MaxIdleConns: 2 for efficient connection reuse
  - ConnMaxLifetime: 1 hour to prevent stale connections
  - ConnMaxIdleTime: 5 minutes for idle connection cleanup

Write Retries:
DuckDB uses optimistic concurrency control. A writer that races another
transaction on the same rows fails with a "Transaction conflict" error;
withWriteRetry re-runs such writes a bounded number of times.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// configureConnectionPool sets connection pool parameters
func (db *DB) configureConnectionPool() error {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
	return nil
}

// withWriteRetry runs fn under the write mutex, retrying on transaction
// conflicts with linear backoff.
func (db *DB) withWriteRetry(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	var err error
	for attempt := 0; attempt <= db.maxConflictRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(db.conflictDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
			logging.Debug().Str("operation", operation).Int("attempt", attempt+1).Msg("Retrying write after transaction conflict")
		}

		err = fn(ctx)
		if !isTransactionConflict(err) {
			return err
		}
	}
	return fmt.Errorf("%s: gave up after %d conflicts: %w", operation, db.maxConflictRetries+1, err)
}

// isTransactionConflict checks if an error is a DuckDB transaction conflict
func isTransactionConflict(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Transaction conflict") ||
		strings.Contains(errStr, "Conflict on update") ||
		strings.Contains(errStr, "Conflict on tuple deletion")
}
