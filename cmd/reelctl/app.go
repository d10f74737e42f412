// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// app is the wired core shared by all commands: catalog database, artifact
// store, engine and trainer.
type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	db      *database.DB
	store   storage.Store
	engine  *recommend.Engine
	trainer *recommend.Trainer
}

// loadConfig reads configuration and initializes global logging from it.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	return cfg, nil
}

func newApp(cfg *config.Config) (*app, error) {
	logger := logging.WithComponent("reelctl")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store, err := storage.Open(cfg.Recommend.ArtifactBackend, cfg.Recommend.ArtifactDir, logging.WithComponent("artifacts"))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open artifact store: %w", err)
	}

	engineCfg := cfg.Recommend.EngineConfig()
	engine, err := recommend.NewEngine(recommend.Scorers{
		Content:       algorithms.NewContent(),
		Collaborative: algorithms.NewCollaborative(db, engineCfg.Limits.Neighbors),
		Crew:          algorithms.NewCrew(db),
		Franchise:     algorithms.NewFranchise(db),
		Popularity:    algorithms.NewPopularity(db),
	}, engineCfg, logging.WithComponent("engine"))
	if err != nil {
		_ = store.Close()
		_ = db.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}

	vectorizer := algorithms.NewTFIDF(algorithms.TFIDFConfig{
		MaxFeatures: cfg.Recommend.VocabularySize,
		StopWords:   cfg.Recommend.StopWords,
	})
	trainer := recommend.NewTrainer(db, vectorizer, store, engine, engineCfg.Training, logging.WithComponent("trainer"))

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		store:   store,
		engine:  engine,
		trainer: trainer,
	}, nil
}

// tmdbClient returns nil without error when no API key is configured.
func (a *app) tmdbClient() (*tmdb.Client, error) {
	if a.cfg.TMDB.APIKey == "" {
		return nil, nil
	}
	return tmdb.NewClient(&a.cfg.TMDB, logging.WithComponent("tmdb"))
}

func (a *app) Close() error {
	return errors.Join(a.store.Close(), a.db.Close())
}
