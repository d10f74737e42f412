// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reelctl",
		Short: "Reelmatch movie recommendation server and operator tool",
		Long: `reelctl serves the Reelmatch HTTP API and runs its maintenance tasks:
training the content artifact, seeding the catalog from TMDB and printing
recommendations for debugging.`,
		SilenceUsage:  true, // don't print usage on operational errors
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to config file (default: CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(
		newServeCmd(opts),
		newTrainCmd(opts),
		newSeedCmd(opts),
		newRecommendCmd(opts),
	)
	return cmd
}
