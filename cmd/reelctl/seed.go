// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

var errNoTMDBKey = errors.New("tmdb.api_key is not configured (set TMDB_API_KEY)")

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import popular movies with credits from TMDB",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				client, err := a.tmdbClient()
				if err != nil {
					return fmt.Errorf("create tmdb client: %w", err)
				}
				if client == nil {
					return errNoTMDBKey
				}
				return a.seed(ctx, client, pages, cmd.OutOrStdout())
			})
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 5, "number of TMDB popular pages to import (20 movies each)")
	return cmd
}

func (a *app) seed(ctx context.Context, source tmdb.Source, pages int, out io.Writer) error {
	seeder := tmdb.NewSeeder(source, a.db, logging.WithComponent("seeder"))

	result, err := seeder.Seed(ctx, pages)
	if err != nil {
		printErr(out, fmt.Sprintf("seeding stopped: %v", err))
	}
	printOK(out, fmt.Sprintf("inserted %d, skipped %d, failed %d", result.Inserted, result.Skipped, result.Failed))
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
