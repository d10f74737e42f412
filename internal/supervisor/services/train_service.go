// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// ArtifactTrainer is satisfied by *recommend.Trainer.
type ArtifactTrainer interface {
	Train(ctx context.Context) (*recommend.Artifact, error)
	LoadLatest(ctx context.Context) (bool, error)
}

// TrainServiceConfig controls the artifact lifecycle.
type TrainServiceConfig struct {
	// TrainOnStartup builds a fresh artifact after loading the stored one.
	TrainOnStartup bool

	// TrainInterval between scheduled rebuilds. Zero disables the schedule.
	TrainInterval time.Duration

	// TrainTimeout bounds each training run. Default: 30m
	TrainTimeout time.Duration
}

// TrainService loads the newest stored artifact when it starts and then
// rebuilds on TrainInterval. Training failures are logged and never stop
// the service; the engine keeps serving the previous snapshot.
type TrainService struct {
	trainer ArtifactTrainer
	config  TrainServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainService creates a training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainService(trainer ArtifactTrainer, cfg TrainServiceConfig, logger zerolog.Logger) *TrainService {
	if cfg.TrainTimeout <= 0 {
		cfg.TrainTimeout = 30 * time.Minute
	}
	return &TrainService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "train").Logger(),
		name:    "train-service",
	}
}

// Serve implements suture.Service.
func (s *TrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("Train service starting")

	loaded, err := s.trainer.LoadLatest(ctx)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Msg("Failed to load stored artifact")
	case !loaded:
		s.logger.Info().Msg("No stored artifact; content recommendations fall back until training")
	}

	if s.config.TrainOnStartup {
		s.train(ctx, "startup")
	}

	if s.config.TrainInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Train service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.train(ctx, "scheduled")
		}
	}
}

func (s *TrainService) train(ctx context.Context, trigger string) {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.TrainTimeout)
	defer cancel()

	start := time.Now()
	artifact, err := s.trainer.Train(trainCtx)
	if err != nil {
		event := s.logger.Warn()
		if errors.Is(err, recommend.ErrCatalogTooSmall) {
			event = s.logger.Info()
		}
		event.Err(err).Str("trigger", trigger).Msg("Training run failed")
		return
	}

	s.logger.Info().
		Str("trigger", trigger).
		Int64("version", artifact.Version).
		Int("items", artifact.Len()).
		Dur("duration", time.Since(start)).
		Msg("Training run complete")
}

// String implements fmt.Stringer for suture's logs.
func (s *TrainService) String() string {
	return s.name
}
