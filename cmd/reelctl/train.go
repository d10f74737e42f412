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

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func newTrainCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Build the content artifact from the current catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return a.train(ctx, cmd.OutOrStdout())
			})
		},
	}
}

func (a *app) train(ctx context.Context, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Recommend.TrainTimeout)
	defer cancel()

	artifact, err := a.trainer.Train(ctx)
	if errors.Is(err, recommend.ErrCatalogTooSmall) {
		return fmt.Errorf("%w; run 'reelctl seed' first", err)
	}
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	printOK(out, fmt.Sprintf("artifact v%d: %d movies, %d terms",
		artifact.Version, artifact.Len(), artifact.Model.Dim()))
	return nil
}
