// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got: %d", c.Server.Port)
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", c.Server.IdleTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("%s must be positive", t.name)
		}
	}

	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got: %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

// validateDatabase validates DuckDB configuration
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got: %d", c.Database.Threads)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("DUCKDB_QUERY_TIMEOUT must be positive")
	}
	return nil
}

// validArtifactBackends defines the allowed artifact stores
var validArtifactBackends = map[string]bool{
	"file":   true,
	"badger": true,
}

// validStopWords defines the allowed stop-word lists
var validStopWords = map[string]bool{
	"english": true,
	"none":    true,
}

// validateRecommend validates recommendation and training configuration
func (c *Config) validateRecommend() error {
	r := &c.Recommend

	if r.ArtifactDir == "" {
		return fmt.Errorf("ARTIFACT_DIR is required")
	}
	if !validArtifactBackends[r.ArtifactBackend] {
		return fmt.Errorf("ARTIFACT_BACKEND must be one of: file, badger")
	}
	if r.TrainInterval < 0 {
		return fmt.Errorf("RECOMMEND_TRAIN_INTERVAL must be non-negative (0 disables retraining)")
	}
	if !validStopWords[r.StopWords] {
		return fmt.Errorf("RECOMMEND_STOP_WORDS must be one of: english, none")
	}
	if r.Limits.MaxTopN < r.Limits.DefaultTopN {
		return fmt.Errorf("recommend.limits.max_top_n (%d) must be at least default_top_n (%d)",
			r.Limits.MaxTopN, r.Limits.DefaultTopN)
	}

	if err := r.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// validateTMDB validates The Movie Database client configuration.
// The API key is optional here; commands that call TMDB check for it.
func (c *Config) validateTMDB() error {
	if err := validateAPIURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive")
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive")
	}
	if c.TMDB.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1, got: %d", c.TMDB.Burst)
	}
	if c.TMDB.BreakerFailures < 1 {
		return fmt.Errorf("tmdb.breaker_failures must be at least 1")
	}
	if c.TMDB.BreakerTimeout <= 0 {
		return fmt.Errorf("tmdb.breaker_timeout must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
