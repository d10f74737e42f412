// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

const movieColumns = `id, tmdb_id, title, overview, genres, release_date, runtime,
	language, poster_path, popularity, director, cast_members`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (recommend.Item, error) {
	var (
		item   recommend.Item
		genres string
		cast   string
	)
	err := row.Scan(
		&item.ID, &item.TMDBID, &item.Title, &item.Overview, &genres,
		&item.ReleaseDate, &item.Runtime, &item.Language, &item.PosterPath,
		&item.Popularity, &item.Director, &cast,
	)
	if err != nil {
		return recommend.Item{}, err
	}
	item.Genres = splitList(genres)
	item.Cast = splitList(cast)
	return item, nil
}

// queryItems runs a movies query and scans every row.
func (db *DB) queryItems(ctx context.Context, operation, query string, args ...any) (items []recommend.Item, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe(operation, "movies", start, err) }()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer closeWithLog(rows, "rows")

	items = []recommend.Item{}
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%s: scan: %w", operation, scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return items, nil
}

// queryItem returns the single matching movie or (nil, nil).
func (db *DB) queryItem(ctx context.Context, operation, query string, args ...any) (_ *recommend.Item, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe(operation, "movies", start, err) }()

	item, err := scanItem(db.conn.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	return &item, nil
}

// GetItem returns the movie with the internal id, or (nil, nil) when absent.
func (db *DB) GetItem(ctx context.Context, id int64) (*recommend.Item, error) {
	return db.queryItem(ctx, "get_item",
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
}

// GetItemByTMDBID returns the movie with the TMDB id, or (nil, nil) when absent.
func (db *DB) GetItemByTMDBID(ctx context.Context, tmdbID int64) (*recommend.Item, error) {
	return db.queryItem(ctx, "get_item_by_tmdb_id",
		`SELECT `+movieColumns+` FROM movies WHERE tmdb_id = ?`, tmdbID)
}

// ListItems returns the whole catalog ordered by id.
func (db *DB) ListItems(ctx context.Context) ([]recommend.Item, error) {
	return db.queryItems(ctx, "list_items",
		`SELECT `+movieColumns+` FROM movies ORDER BY id`)
}

// ListItemsByDirector returns movies whose director equals name exactly.
func (db *DB) ListItemsByDirector(ctx context.Context, name string) ([]recommend.Item, error) {
	return db.queryItems(ctx, "list_items_by_director",
		`SELECT `+movieColumns+` FROM movies WHERE director = ? ORDER BY id`, name)
}

// FindItemsByTitleSubstring returns movies whose title contains s,
// case-insensitively. LIKE wildcards in s match literally.
func (db *DB) FindItemsByTitleSubstring(ctx context.Context, s string) ([]recommend.Item, error) {
	pattern := "%" + escapeLike(s) + "%"
	return db.queryItems(ctx, "find_items_by_title",
		`SELECT `+movieColumns+` FROM movies WHERE title ILIKE ? ESCAPE '\' ORDER BY id`, pattern)
}

// ListPopular returns up to limit movies by descending popularity.
func (db *DB) ListPopular(ctx context.Context, limit int) ([]recommend.Item, error) {
	if limit <= 0 {
		return []recommend.Item{}, nil
	}
	return db.queryItems(ctx, "list_popular",
		`SELECT `+movieColumns+` FROM movies ORDER BY popularity DESC, id ASC LIMIT ?`, limit)
}

// GetItemsByIDs returns the movies for ids in the requested order. Unknown
// ids are skipped.
func (db *DB) GetItemsByIDs(ctx context.Context, ids []int64) ([]recommend.Item, error) {
	if len(ids) == 0 {
		return []recommend.Item{}, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	found, err := db.queryItems(ctx, "get_items_by_ids",
		`SELECT `+movieColumns+` FROM movies WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]recommend.Item, len(found))
	for _, item := range found {
		byID[item.ID] = item
	}
	out := make([]recommend.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// UpsertMovie inserts the movie or updates the row with the same TMDB id,
// and returns the internal id. item.ID is ignored.
func (db *DB) UpsertMovie(ctx context.Context, item *recommend.Item) (int64, error) {
	if item == nil {
		return 0, fmt.Errorf("upsert movie: nil item")
	}
	if item.TMDBID <= 0 {
		return 0, fmt.Errorf("upsert movie: tmdb_id must be positive, got %d", item.TMDBID)
	}
	if strings.TrimSpace(item.Title) == "" {
		return 0, fmt.Errorf("upsert movie %d: title is required", item.TMDBID)
	}
	if item.Popularity < 0 {
		return 0, fmt.Errorf("upsert movie %d: popularity must be non-negative", item.TMDBID)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var id int64
	err := db.withWriteRetry(ctx, "upsert_movie", func(ctx context.Context) (err error) {
		start := time.Now()
		defer func() { observe("upsert_movie", "movies", start, err) }()

		_, err = db.conn.ExecContext(ctx, `
			INSERT INTO movies (
				tmdb_id, title, overview, genres, release_date, runtime,
				language, poster_path, popularity, director, cast_members, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (tmdb_id) DO UPDATE SET
				title = EXCLUDED.title,
				overview = EXCLUDED.overview,
				genres = EXCLUDED.genres,
				release_date = EXCLUDED.release_date,
				runtime = EXCLUDED.runtime,
				language = EXCLUDED.language,
				poster_path = EXCLUDED.poster_path,
				popularity = EXCLUDED.popularity,
				director = EXCLUDED.director,
				cast_members = EXCLUDED.cast_members,
				updated_at = EXCLUDED.updated_at`,
			item.TMDBID, strings.TrimSpace(item.Title), item.Overview, joinList(item.Genres),
			item.ReleaseDate, item.Runtime, item.Language, item.PosterPath, item.Popularity,
			strings.TrimSpace(item.Director), joinList(item.Cast), time.Now().UTC(),
		)
		if err != nil {
			return err
		}
		return db.conn.QueryRowContext(ctx, `SELECT id FROM movies WHERE tmdb_id = ?`, item.TMDBID).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("upsert movie %d: %w", item.TMDBID, err)
	}
	return id, nil
}

// HasTMDBID reports whether a movie with the TMDB id is already stored.
func (db *DB) HasTMDBID(ctx context.Context, tmdbID int64) (_ bool, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { observe("has_tmdb_id", "movies", start, err) }()

	var n int64
	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE tmdb_id = ?`, tmdbID).Scan(&n); err != nil {
		return false, fmt.Errorf("has tmdb id %d: %w", tmdbID, err)
	}
	return n > 0, nil
}

// movieExists reports whether the internal id is in the catalog.
func (db *DB) movieExists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies WHERE id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
