// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
)

// defaultQueryTimeout applies when the configuration leaves QueryTimeout unset.
const defaultQueryTimeout = 30 * time.Second

// DB wraps the DuckDB connection and provides catalog, review and list
// access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	// writeMu serialises writers; DuckDB reports concurrent writes to the
	// same rows as transaction conflicts.
	writeMu sync.Mutex

	maxConflictRetries int
	conflictDelay      time.Duration
}

// New opens the DuckDB database at cfg.Path, creating the parent
// directory when needed, and applies the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if err := ensureParentDir(cfg.Path); err != nil {
		return nil, err
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	conn, err := sql.Open("duckdb", dataSourceName(cfg, threads))
	if err != nil {
		return nil, fmt.Errorf("open duckdb %s: %w", cfg.Path, err)
	}

	db := &DB{
		conn:               conn,
		cfg:                cfg,
		maxConflictRetries: 3,
		conflictDelay:      50 * time.Millisecond,
	}

	if err := db.configureConnectionPool(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("configure connection pool: %w", err)
	}
	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logging.Debug().Str("path", cfg.Path).Int("threads", threads).Msg("Database opened")
	return db, nil
}

func ensureParentDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}

// dataSourceName builds the DuckDB DSN. Extension autoloading is off since
// the catalog schema uses only core types.
func dataSourceName(cfg *config.DatabaseConfig, threads int) string {
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	q := url.Values{}
	q.Set("access_mode", "read_write")
	q.Set("threads", strconv.Itoa(threads))
	q.Set("max_memory", maxMemory)
	q.Set("preserve_insertion_order", strconv.FormatBool(cfg.PreserveInsertionOrder))
	q.Set("autoinstall_known_extensions", "false")
	q.Set("autoload_known_extensions", "false")
	return cfg.Path + "?" + q.Encode()
}

// Conn returns the underlying SQL database connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close flushes the WAL with a CHECKPOINT and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	cancel()

	return db.conn.Close()
}

// Ping checks if the database connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// initialize creates tables and indexes
func (db *DB) initialize() error {
	if err := db.createTables(); err != nil {
		return err
	}

	if err := db.createIndexes(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return nil
}
