// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Engine wires the scorers to the current artifact snapshot and combines
// their outputs. It is safe for concurrent use; reads never lock.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	scorers Scorers

	snapshot atomic.Pointer[Artifact]
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(scorers Scorers, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch {
	case scorers.Content == nil:
		return nil, errors.New("content scorer is required")
	case scorers.Collaborative == nil:
		return nil, errors.New("collaborative scorer is required")
	case scorers.Crew == nil:
		return nil, errors.New("crew scorer is required")
	case scorers.Franchise == nil:
		return nil, errors.New("franchise scorer is required")
	case scorers.Popularity == nil:
		return nil, errors.New("popularity scorer is required")
	}

	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		scorers: scorers,
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Publish atomically replaces the artifact snapshot. Passing nil returns the
// engine to the cold state. The artifact must not be modified afterwards.
func (e *Engine) Publish(a *Artifact) {
	if a == nil {
		e.snapshot.Store(nil)
		e.logger.Info().Msg("content artifact cleared")
		return
	}

	// Build the lookup tables before readers can see the snapshot.
	a.buildIndex()
	e.snapshot.Store(a)
	metrics.SetArtifact(a.Len(), a.Model.Dim(), a.TrainedAt)

	e.logger.Info().
		Int64("version", a.Version).
		Int("items", a.Len()).
		Int("vocabulary", a.Model.Dim()).
		Time("trained_at", a.TrainedAt).
		Msg("content artifact published")
}

// Snapshot returns the current artifact or nil.
func (e *Engine) Snapshot() *Artifact {
	return e.snapshot.Load()
}

// ArtifactLoaded reports whether a content artifact is published.
func (e *Engine) ArtifactLoaded() bool {
	return e.snapshot.Load() != nil
}

// Status describes the published artifact.
func (e *Engine) Status() TrainingStatus {
	a := e.snapshot.Load()
	if a == nil {
		return TrainingStatus{}
	}
	return TrainingStatus{
		Loaded:        true,
		Version:       a.Version,
		Items:         a.Len(),
		Vocabulary:    a.Model.Dim(),
		LastTrainedAt: a.TrainedAt,
	}
}

// RecommendSimilar returns items with the most similar content to itemID.
// loaded is false when no artifact is published so callers can fall back to
// an external similar-items source.
func (e *Engine) RecommendSimilar(_ context.Context, itemID int64, topN int) (ids []int64, loaded bool) {
	start := time.Now()

	snap := e.snapshot.Load()
	if snap == nil || topN <= 0 {
		e.observe(StrategyContent, start, nil, nil)
		return []int64{}, snap != nil
	}

	ids = e.scorers.Content.RecommendSimilar(snap, itemID, topN)
	if ids == nil {
		ids = []int64{}
	}
	e.observe(StrategyContent, start, ids, nil)
	return ids, true
}

// RecommendForUser returns collaborative recommendations for a user.
func (e *Engine) RecommendForUser(ctx context.Context, userID int64, topN int) ([]int64, error) {
	start := time.Now()
	if topN <= 0 {
		return e.finish(StrategyCollaborative, start, nil, nil)
	}
	ids, err := e.scorers.Collaborative.RecommendForUser(ctx, userID, topN)
	return e.finish(StrategyCollaborative, start, ids, err)
}

// RecommendByCrew returns items sharing director or cast with itemID.
func (e *Engine) RecommendByCrew(ctx context.Context, itemID int64, topN int) ([]int64, error) {
	start := time.Now()
	if topN <= 0 {
		return e.finish(StrategyCrew, start, nil, nil)
	}
	ids, err := e.scorers.Crew.Recommend(ctx, itemID, topN)
	return e.finish(StrategyCrew, start, ids, err)
}

// RecommendByFranchise returns items whose title contains itemID's base title.
func (e *Engine) RecommendByFranchise(ctx context.Context, itemID int64, topN int) ([]int64, error) {
	start := time.Now()
	if topN <= 0 {
		return e.finish(StrategyFranchise, start, nil, nil)
	}
	ids, err := e.scorers.Franchise.Recommend(ctx, itemID, topN)
	return e.finish(StrategyFranchise, start, ids, err)
}

// RecommendPopular returns the globally most popular items.
func (e *Engine) RecommendPopular(ctx context.Context, topN int) ([]int64, error) {
	start := time.Now()
	if topN <= 0 {
		return e.finish(StrategyPopular, start, nil, nil)
	}
	ids, err := e.scorers.Popularity.Top(ctx, topN)
	return e.finish(StrategyPopular, start, ids, err)
}

// RecommendHybrid merges every applicable signal with fixed weights.
//
// Each signal contributes its weight once per member of its result list;
// raw sub-scores are not used. Popular items are always added as backfill.
// With neither an item nor a user the result is empty.
func (e *Engine) RecommendHybrid(ctx context.Context, req HybridRequest) ([]int64, error) {
	start := time.Now()
	topN := req.TopN

	if (req.ItemID == nil && req.UserID == nil) || topN <= 0 {
		e.observe(StrategyHybrid, start, nil, nil)
		return []int64{}, nil
	}

	w := e.config.Weights
	lim := e.config.Limits
	acc := NewAccumulator()

	if req.ItemID != nil {
		itemID := *req.ItemID

		if snap := e.snapshot.Load(); snap != nil {
			acc.Add(e.scorers.Content.RecommendSimilar(snap, itemID, lim.Content), w.Content)
		}

		franchise, err := e.scorers.Franchise.Recommend(ctx, itemID, lim.Franchise)
		if err != nil {
			return e.finish(StrategyHybrid, start, nil, fmt.Errorf("franchise signal: %w", err))
		}
		acc.Add(franchise, w.Franchise)

		crew, err := e.scorers.Crew.Recommend(ctx, itemID, lim.Crew)
		if err != nil {
			return e.finish(StrategyHybrid, start, nil, fmt.Errorf("crew signal: %w", err))
		}
		acc.Add(crew, w.Crew)
	}

	if req.UserID != nil {
		collab, err := e.scorers.Collaborative.RecommendForUser(ctx, *req.UserID, lim.Collaborative)
		if err != nil {
			return e.finish(StrategyHybrid, start, nil, fmt.Errorf("collaborative signal: %w", err))
		}
		acc.Add(collab, w.Collaborative)
	}

	popular, err := e.scorers.Popularity.Top(ctx, lim.Popular)
	if err != nil {
		return e.finish(StrategyHybrid, start, nil, fmt.Errorf("popularity signal: %w", err))
	}
	acc.Add(popular, w.Popularity)

	return e.finish(StrategyHybrid, start, acc.Top(topN), nil)
}

// finish records metrics and normalizes the result.
func (e *Engine) finish(strategy string, start time.Time, ids []int64, err error) ([]int64, error) {
	e.observe(strategy, start, ids, err)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (e *Engine) observe(strategy string, start time.Time, ids []int64, err error) {
	elapsed := time.Since(start)
	metrics.RecordRecommendation(strategy, elapsed, len(ids), err)

	if err != nil {
		e.logger.Error().
			Err(err).
			Str("strategy", strategy).
			Msg("recommendation failed")
		return
	}

	e.logger.Debug().
		Str("strategy", strategy).
		Int("returned", len(ids)).
		Dur("latency", elapsed).
		Msg("recommendation complete")
}
