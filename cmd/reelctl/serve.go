// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the training service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg

	deps := api.Deps{
		Store:   a.db,
		Engine:  a.engine,
		Trainer: a.trainer,
		Limits: api.Limits{
			Default: cfg.Recommend.Limits.DefaultTopN,
			Max:     cfg.Recommend.Limits.MaxTopN,
		},
	}
	client, err := a.tmdbClient()
	if err != nil {
		return fmt.Errorf("create tmdb client: %w", err)
	}
	if client != nil {
		deps.TMDB = client
	} else {
		a.logger.Warn().Msg("TMDB API key not set; content fallback, trending and movie import are disabled")
	}

	handler, err := api.NewHandler(deps, logging.WithComponent("api"))
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}
	if cfg.Server.RateLimitDisabled {
		a.logger.Warn().Msg("Rate limiting is DISABLED")
	}
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(&cfg.Server)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewTrainService(a.trainer, services.TrainServiceConfig{
		TrainOnStartup: cfg.Recommend.TrainOnStartup,
		TrainInterval:  cfg.Recommend.TrainInterval,
		TrainTimeout:   cfg.Recommend.TrainTimeout,
	}, logging.WithComponent("supervisor")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	a.logger.Info().
		Str("addr", server.Addr).
		Str("database", cfg.Database.Path).
		Str("artifact_backend", cfg.Recommend.ArtifactBackend).
		Msg("Starting Reelmatch")

	err = <-tree.ServeBackground(ctx)

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			a.logger.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	a.logger.Info().Msg("Shutdown complete")
	return nil
}
