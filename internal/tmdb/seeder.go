// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// seedCastSize is the number of billed cast names stored per movie.
const seedCastSize = 5

// Source is the subset of the TMDB API the seeder reads.
type Source interface {
	PopularMovies(ctx context.Context, page int) (*MoviePage, error)
	MovieCredits(ctx context.Context, tmdbID int64) (*Credits, error)
	MovieGenres(ctx context.Context) ([]Genre, error)
}

// MovieUpserter stores a catalog item keyed by TMDB id and returns its
// internal id.
type MovieUpserter interface {
	UpsertMovie(ctx context.Context, item *recommend.Item) (int64, error)
}

// CatalogWriter is the catalog access the seeder needs.
type CatalogWriter interface {
	MovieUpserter
	HasTMDBID(ctx context.Context, tmdbID int64) (bool, error)
}

// SeedResult counts the movies processed by one Seed run.
type SeedResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Seeder imports popular TMDB movies, with director and top cast, into the
// catalog.
type Seeder struct {
	source  Source
	catalog CatalogWriter
	logger  zerolog.Logger
}

// NewSeeder creates a seeder.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSeeder(source Source, catalog CatalogWriter, logger zerolog.Logger) *Seeder {
	return &Seeder{
		source:  source,
		catalog: catalog,
		logger:  logger.With().Str("component", "seeder").Logger(),
	}
}

// Seed walks pages 1..pages of the popular list. Movies already in the
// catalog are skipped; new ones get their credits fetched and are upserted.
// A credits failure for one movie is counted and skipped; an open circuit,
// a cancelled context or a catalog error aborts the run.
func (s *Seeder) Seed(ctx context.Context, pages int) (SeedResult, error) {
	var result SeedResult
	if pages < 1 {
		return result, fmt.Errorf("seed: pages must be at least 1, got %d", pages)
	}

	genres, err := s.source.MovieGenres(ctx)
	if err != nil {
		return result, fmt.Errorf("seed: fetch genres: %w", err)
	}
	genreNames := make(map[int]string, len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
	}

	for page := 1; page <= pages; page++ {
		list, err := s.source.PopularMovies(ctx, page)
		if err != nil {
			return result, fmt.Errorf("seed: fetch popular page %d: %w", page, err)
		}

		for i := range list.Results {
			if err := ctx.Err(); err != nil {
				return result, err
			}

			outcome, err := s.seedMovie(ctx, &list.Results[i], genreNames)
			metrics.SeededMovies.WithLabelValues(outcome).Inc()
			switch outcome {
			case "inserted":
				result.Inserted++
			case "skipped":
				result.Skipped++
			default:
				result.Failed++
			}
			if err != nil {
				if errors.Is(err, ErrCircuitOpen) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errCatalog) {
					return result, fmt.Errorf("seed: %w", err)
				}
				s.logger.Warn().Err(err).Int64("tmdb_id", list.Results[i].ID).Msg("Skipping movie")
			}
		}

		s.logger.Info().Int("page", page).Int("inserted", result.Inserted).Int("skipped", result.Skipped).Msg("Seeded page")

		if list.TotalPages > 0 && page >= list.TotalPages {
			break
		}
	}

	return result, nil
}

// errCatalog marks catalog failures, which abort the run.
var errCatalog = errors.New("catalog write failed")

// seedMovie imports one movie and returns "inserted", "skipped" or "failed".
func (s *Seeder) seedMovie(ctx context.Context, m *Movie, genreNames map[int]string) (string, error) {
	if m.ID <= 0 || strings.TrimSpace(m.Title) == "" {
		return "skipped", nil
	}

	exists, err := s.catalog.HasTMDBID(ctx, m.ID)
	if err != nil {
		return "failed", fmt.Errorf("%w: %w", errCatalog, err)
	}
	if exists {
		return "skipped", nil
	}

	credits, err := s.source.MovieCredits(ctx, m.ID)
	if err != nil {
		return "failed", err
	}

	item := ItemFromMovie(m, credits, genreNames)
	if _, err := s.catalog.UpsertMovie(ctx, &item); err != nil {
		return "failed", fmt.Errorf("%w: %w", errCatalog, err)
	}
	return "inserted", nil
}

// ItemFromMovie builds a catalog item from a TMDB list entry and its credits.
// Genre ids without a name in genreNames are dropped. credits may be nil.
func ItemFromMovie(m *Movie, credits *Credits, genreNames map[int]string) recommend.Item {
	genres := make([]string, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		if name, ok := genreNames[id]; ok {
			genres = append(genres, name)
		}
	}

	item := recommend.Item{
		TMDBID:      m.ID,
		Title:       strings.TrimSpace(m.Title),
		Overview:    m.Overview,
		Genres:      genres,
		ReleaseDate: m.ReleaseDate,
		Language:    m.OriginalLanguage,
		PosterPath:  m.PosterPath,
		Popularity:  max(m.Popularity, 0),
		Cast:        []string{},
	}
	if credits != nil {
		item.Director = credits.Director()
		item.Cast = credits.TopCast(seedCastSize)
	}
	return item
}
