// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// ErrCatalogTooSmall is returned by Train when the catalog has fewer items
// than TrainingConfig.MinItems.
var ErrCatalogTooSmall = errors.New("recommend: catalog too small to train")

// Trainer builds the content artifact offline and publishes it to an Engine.
// Only one training run executes at a time.
type Trainer struct {
	catalog    CatalogReader
	vectorizer Vectorizer
	store      ArtifactStore
	engine     *Engine
	cfg        TrainingConfig
	logger     zerolog.Logger
	now        func() time.Time

	mu sync.Mutex
}

// NewTrainer creates a trainer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainer(catalog CatalogReader, vectorizer Vectorizer, store ArtifactStore, engine *Engine, cfg TrainingConfig, logger zerolog.Logger) *Trainer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Training.Timeout
	}
	return &Trainer{
		catalog:    catalog,
		vectorizer: vectorizer,
		store:      store,
		engine:     engine,
		cfg:        cfg,
		logger:     logger.With().Str("component", "trainer").Logger(),
		now:        time.Now,
	}
}

// Train fits the vectorizer over the full catalog, saves the artifact and
// publishes it. The previous snapshot stays live until the new one is saved.
func (t *Trainer) Train(ctx context.Context) (*Artifact, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := t.now()
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	items, err := t.catalog.ListItems(ctx)
	if err != nil {
		metrics.RecordTraining(time.Since(start), "failure")
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	if len(items) < t.cfg.MinItems || len(items) == 0 {
		metrics.RecordTraining(time.Since(start), "skipped")
		t.logger.Warn().
			Int("items", len(items)).
			Int("min_items", t.cfg.MinItems).
			Msg("catalog too small, skipping training")
		return nil, ErrCatalogTooSmall
	}

	ids := make([]int64, len(items))
	docs := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
		docs[i] = items[i].Document()
	}

	if err := ctx.Err(); err != nil {
		metrics.RecordTraining(time.Since(start), "failure")
		return nil, err
	}

	model, vectors := t.vectorizer.Fit(docs)

	version, err := t.nextVersion(ctx)
	if err != nil {
		metrics.RecordTraining(time.Since(start), "failure")
		return nil, err
	}

	artifact, err := NewArtifact(version, t.now().UTC(), ids, vectors, model)
	if err != nil {
		metrics.RecordTraining(time.Since(start), "failure")
		return nil, fmt.Errorf("assemble artifact: %w", err)
	}

	if err := t.store.Save(ctx, artifact); err != nil {
		metrics.RecordTraining(time.Since(start), "failure")
		return nil, fmt.Errorf("save artifact: %w", err)
	}

	t.engine.Publish(artifact)

	elapsed := time.Since(start)
	metrics.RecordTraining(elapsed, "success")
	t.logger.Info().
		Int64("version", version).
		Int("items", artifact.Len()).
		Int("vocabulary", model.Dim()).
		Dur("duration", elapsed).
		Msg("content artifact trained")

	return artifact, nil
}

// nextVersion follows the published snapshot, or the stored artifact when
// the engine is cold, so one-shot runs keep counting up.
func (t *Trainer) nextVersion(ctx context.Context) (int64, error) {
	if prev := t.engine.Snapshot(); prev != nil {
		return prev.Version + 1, nil
	}
	stored, err := t.store.Load(ctx)
	if errors.Is(err, ErrArtifactAbsent) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read stored artifact version: %w", err)
	}
	return stored.Version + 1, nil
}

// LoadLatest publishes the stored artifact if one exists. A missing or
// unreadable artifact leaves the engine cold and is not an error.
func (t *Trainer) LoadLatest(ctx context.Context) (bool, error) {
	artifact, err := t.store.Load(ctx)
	if errors.Is(err, ErrArtifactAbsent) {
		t.logger.Info().Msg("no stored content artifact, starting cold")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load artifact: %w", err)
	}

	t.engine.Publish(artifact)
	return true, nil
}
