// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package tmdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// DetailsSource fetches a single movie with its credits.
// *Client satisfies it.
type DetailsSource interface {
	MovieDetails(ctx context.Context, tmdbID int64) (*MovieDetails, error)
	MovieCredits(ctx context.Context, tmdbID int64) (*Credits, error)
}

// ImportMovie fetches tmdbID from TMDB and upserts it into the catalog.
// The returned item carries the internal id. A movie TMDB does not know
// yields an error wrapping ErrNotFound.
func ImportMovie(ctx context.Context, source DetailsSource, catalog MovieUpserter, tmdbID int64) (*recommend.Item, error) {
	details, err := source.MovieDetails(ctx, tmdbID)
	if err != nil {
		metrics.SeededMovies.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("import movie %d: %w", tmdbID, err)
	}
	if strings.TrimSpace(details.Title) == "" {
		metrics.SeededMovies.WithLabelValues("skipped").Inc()
		return nil, fmt.Errorf("import movie %d: empty title: %w", tmdbID, ErrNotFound)
	}

	credits, err := source.MovieCredits(ctx, tmdbID)
	if err != nil {
		metrics.SeededMovies.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("import movie %d credits: %w", tmdbID, err)
	}

	item := ItemFromDetails(details, credits)
	id, err := catalog.UpsertMovie(ctx, &item)
	if err != nil {
		metrics.SeededMovies.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("import movie %d: %w: %w", tmdbID, errCatalog, err)
	}
	item.ID = id
	metrics.SeededMovies.WithLabelValues("inserted").Inc()
	return &item, nil
}

// ItemFromDetails builds a catalog item from /movie/{id} and its credits.
// credits may be nil.
func ItemFromDetails(d *MovieDetails, credits *Credits) recommend.Item {
	genres := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		if name := strings.TrimSpace(g.Name); name != "" {
			genres = append(genres, name)
		}
	}

	item := recommend.Item{
		TMDBID:      d.ID,
		Title:       strings.TrimSpace(d.Title),
		Overview:    d.Overview,
		Genres:      genres,
		ReleaseDate: d.ReleaseDate,
		Runtime:     max(d.Runtime, 0),
		Language:    d.OriginalLanguage,
		PosterPath:  d.PosterPath,
		Popularity:  max(d.Popularity, 0),
		Cast:        []string{},
	}
	if credits != nil {
		item.Director = credits.Director()
		item.Cast = credits.TopCast(seedCastSize)
	}
	return item
}
