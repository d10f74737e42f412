// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// withApp loads config, opens the app for the duration of fn and closes
// it afterwards.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Error closing resources")
		}
	}()
	return fn(cmd.Context(), a)
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintf(w, "  ✓  %s\n", msg)
}

func printWarn(w io.Writer, msg string) {
	fmt.Fprintf(w, "  ⚠  %s\n", msg)
}

func printErr(w io.Writer, msg string) {
	fmt.Fprintf(w, "  ✗  %s\n", msg)
}

// printMovies writes one TMDB id and title per line.
func printMovies(w io.Writer, items []recommend.Item) error {
	if len(items) == 0 {
		printWarn(w, "no recommendations")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TMDB ID\tTITLE")
	for _, item := range items {
		fmt.Fprintf(tw, "%d\t%s\n", item.TMDBID, item.Title)
	}
	return tw.Flush()
}
