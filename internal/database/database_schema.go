// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
database_schema.go - Database Schema Management

Tables:
  - movies: catalog items keyed by an internal id, unique on tmdb_id.
    genres and cast_members are comma-separated lists.
  - reviews: user ratings (1-5); the interaction source for collaborative
    filtering
  - watchlist: (user_id, movie_id) pairs the user wants to watch
  - watched: (user_id, movie_id) pairs the user has watched

Every statement uses IF NOT EXISTS so schema creation is idempotent.
Timestamps are written by the application in UTC, which keeps the schema
free of ICU-dependent TIMESTAMPTZ defaults.

Index Strategy:
Only append-only tables get secondary indexes. movies rows are updated by
upserts, and DuckDB rewrites indexed rows on update.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS movies_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS movies (
			id BIGINT PRIMARY KEY DEFAULT nextval('movies_id_seq'),
			tmdb_id BIGINT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			overview TEXT NOT NULL DEFAULT '',
			genres TEXT NOT NULL DEFAULT '',
			release_date TEXT NOT NULL DEFAULT '',
			runtime INTEGER NOT NULL DEFAULT 0,
			language TEXT NOT NULL DEFAULT '',
			poster_path TEXT NOT NULL DEFAULT '',
			popularity DOUBLE NOT NULL DEFAULT 0,
			director TEXT NOT NULL DEFAULT '',
			cast_members TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP
		)`,

		`CREATE SEQUENCE IF NOT EXISTS reviews_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGINT PRIMARY KEY DEFAULT nextval('reviews_id_seq'),
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS watchlist (
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, movie_id)
		)`,

		`CREATE TABLE IF NOT EXISTS watched (
			user_id BIGINT NOT NULL,
			movie_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, movie_id)
		)`,
	}
}

// createIndexes creates secondary indexes
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_movie ON reviews(movie_id)`,
	}

	for _, idx := range indexes {
		if _, err := db.conn.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", idx, err)
		}
	}

	return nil
}
