// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// recommendOptions holds flags shared by the recommend subcommands.
type recommendOptions struct {
	limit int
}

func newRecommendCmd(opts *rootOptions) *cobra.Command {
	ro := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Print recommendations from one strategy",
		Long: `Print recommendations using the same engine as the HTTP API.
Movie arguments are TMDB ids; users are internal user ids.`,
	}
	cmd.PersistentFlags().IntVarP(&ro.limit, "limit", "n", 0, "number of results (default: recommend.limits.default_top_n)")

	byMovie := func(use, short string, run func(a *app) itemRecommender) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <tmdb_id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tmdbID, err := parseID("tmdb_id", args[0])
				if err != nil {
					return err
				}
				return withApp(cmd, opts, func(ctx context.Context, a *app) error {
					return a.recommendForMovie(ctx, cmd.OutOrStdout(), run(a), tmdbID, ro.limit)
				})
			},
		}
	}

	cmd.AddCommand(
		byMovie("content", "Movies with similar genres and overview (needs a trained artifact)", func(a *app) itemRecommender {
			return a.contentRecommender
		}),
		byMovie("crew", "Movies sharing the director or cast", func(a *app) itemRecommender {
			return a.engine.RecommendByCrew
		}),
		byMovie("franchise", "Movies from the same franchise", func(a *app) itemRecommender {
			return a.engine.RecommendByFranchise
		}),
		newRecommendCollaborativeCmd(opts, ro),
		newRecommendHybridCmd(opts, ro),
		&cobra.Command{
			Use:   "popular",
			Short: "Most popular movies in the catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, opts, func(ctx context.Context, a *app) error {
					ids, err := a.engine.RecommendPopular(ctx, a.limit(ro.limit))
					return a.printIDs(ctx, cmd.OutOrStdout(), ids, err)
				})
			},
		},
	)
	return cmd
}

func newRecommendCollaborativeCmd(opts *rootOptions, ro *recommendOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "collaborative <user_id>",
		Short: "Movies rated by users with overlapping reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user_id", args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				ids, err := a.engine.RecommendForUser(ctx, userID, a.limit(ro.limit))
				return a.printIDs(ctx, cmd.OutOrStdout(), ids, err)
			})
		},
	}
}

func newRecommendHybridCmd(opts *rootOptions, ro *recommendOptions) *cobra.Command {
	var movie, user int64

	cmd := &cobra.Command{
		Use:   "hybrid",
		Short: "Weighted blend of every strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if _, err := a.trainer.LoadLatest(ctx); err != nil {
					printWarn(cmd.OutOrStdout(), fmt.Sprintf("content signal unavailable: %v", err))
				}

				req := recommend.HybridRequest{TopN: a.limit(ro.limit)}
				if movie > 0 {
					item, err := a.db.GetItemByTMDBID(ctx, movie)
					if err != nil {
						return err
					}
					if item != nil {
						req.ItemID = &item.ID
					}
				}
				if user > 0 {
					req.UserID = &user
				}

				ids, err := a.engine.RecommendHybrid(ctx, req)
				return a.printIDs(ctx, cmd.OutOrStdout(), ids, err)
			})
		},
	}

	cmd.Flags().Int64Var(&movie, "movie", 0, "seed movie TMDB id")
	cmd.Flags().Int64Var(&user, "user", 0, "user id for the collaborative signal")
	return cmd
}

// itemRecommender recommends for an internal movie id.
type itemRecommender func(ctx context.Context, itemID int64, topN int) ([]int64, error)

// contentRecommender loads the newest stored artifact before scoring.
func (a *app) contentRecommender(ctx context.Context, itemID int64, topN int) ([]int64, error) {
	loaded, err := a.trainer.LoadLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	if !loaded {
		return nil, fmt.Errorf("no trained artifact; run 'reelctl train' first")
	}
	ids, _ := a.engine.RecommendSimilar(ctx, itemID, topN)
	return ids, nil
}

func (a *app) recommendForMovie(ctx context.Context, out io.Writer, rec itemRecommender, tmdbID int64, limit int) error {
	item, err := a.db.GetItemByTMDBID(ctx, tmdbID)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("movie %d is not in the catalog", tmdbID)
	}

	ids, err := rec(ctx, item.ID, a.limit(limit))
	return a.printIDs(ctx, out, ids, err)
}

func (a *app) printIDs(ctx context.Context, out io.Writer, ids []int64, err error) error {
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	items, err := a.db.GetItemsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	return printMovies(out, items)
}

func (a *app) limit(n int) int {
	if n <= 0 {
		return a.cfg.Recommend.Limits.DefaultTopN
	}
	return min(n, a.cfg.Recommend.Limits.MaxTopN)
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return id, nil
}
