// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package database provides the DuckDB-backed movie catalog, reviews and
per-user watch lists.

# Overview

DB implements recommend.CatalogReader and recommend.InteractionReader, so the
scorers and trainer read straight from it:

  - GetItem, GetItemByTMDBID: single lookups returning (nil, nil) when absent
  - ListItems: the whole catalog ordered by id
  - ListItemsByDirector: exact director match
  - FindItemsByTitleSubstring: case-insensitive ILIKE with escaped wildcards
  - ListPopular, GetItemsByIDs: ranking backfill and id hydration
  - GetInteractionsByUser, ListAllInteractions: ratings from the reviews table

Writers cover catalog ingestion (UpsertMovie keyed by TMDB id), reviews
(AddReview validates the 1-5 rating and the movie) and the watchlist and
watched toggles.

# Usage

	db, err := database.New(&cfg.Database)
	if err != nil {
	    return err
	}
	defer db.Close()

	items, err := db.ListItems(ctx)

# Thread Safety

Readers run concurrently on the connection pool. Writers are serialised
through an in-process mutex and retried on DuckDB transaction conflicts.

# Observability

Every query is bounded by the configured query timeout and recorded in the
duckdb_query_duration_seconds histogram, labelled by operation and table.
*/
package database
