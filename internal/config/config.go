// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"time"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Recommend RecommendConfig `koanf:"recommend"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed browser origins. "*" allows any origin.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs requests are allowed per client IP every RateLimitWindow.
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string        `koanf:"path"`
	MaxMemory              string        `koanf:"max_memory"`
	Threads                int           `koanf:"threads"` // Number of DuckDB threads (0 = use NumCPU)
	PreserveInsertionOrder bool          `koanf:"preserve_insertion_order"`
	QueryTimeout           time.Duration `koanf:"query_timeout"`
}

// RecommendConfig holds recommendation engine and training settings.
type RecommendConfig struct {
	// ArtifactDir is where the content artifact is persisted.
	ArtifactDir string `koanf:"artifact_dir"`

	// ArtifactBackend selects the artifact store: file or badger.
	ArtifactBackend string `koanf:"artifact_backend"`

	// TrainOnStartup builds a fresh artifact when the server starts.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval is how often the artifact is rebuilt. Zero disables
	// scheduled retraining.
	TrainInterval time.Duration `koanf:"train_interval"`

	// TrainTimeout bounds a single training run.
	TrainTimeout time.Duration `koanf:"train_timeout"`

	// MinItems skips training below this catalog size.
	MinItems int `koanf:"min_items"`

	// VocabularySize caps the TF-IDF vocabulary.
	VocabularySize int `koanf:"vocabulary_size"`

	// StopWords names the stop-word list: english or none.
	StopWords string `koanf:"stop_words"`

	Weights WeightsConfig `koanf:"weights"`
	Limits  LimitsConfig  `koanf:"limits"`
}

// WeightsConfig holds the flat hybrid weight of each signal.
type WeightsConfig struct {
	Content       float64 `koanf:"content"`
	Franchise     float64 `koanf:"franchise"`
	Crew          float64 `koanf:"crew"`
	Collaborative float64 `koanf:"collaborative"`
	Popularity    float64 `koanf:"popularity"`
}

// LimitsConfig holds per-signal result counts used by the hybrid combiner.
type LimitsConfig struct {
	Content       int `koanf:"content"`
	Franchise     int `koanf:"franchise"`
	Crew          int `koanf:"crew"`
	Collaborative int `koanf:"collaborative"`
	Popular       int `koanf:"popular"`
	Neighbors     int `koanf:"neighbors"`
	DefaultTopN   int `koanf:"default_top_n"`
	MaxTopN       int `koanf:"max_top_n"`
}

// TMDBConfig holds The Movie Database API settings used for seeding and the
// similar-movies fallback.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`

	// BreakerFailures consecutive failures open the circuit for
	// BreakerTimeout.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// EngineConfig converts the recommend section into engine configuration.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Weights: recommend.SignalWeights{
			Content:       r.Weights.Content,
			Franchise:     r.Weights.Franchise,
			Crew:          r.Weights.Crew,
			Collaborative: r.Weights.Collaborative,
			Popularity:    r.Weights.Popularity,
		},
		Limits: recommend.LimitsConfig{
			Content:       r.Limits.Content,
			Franchise:     r.Limits.Franchise,
			Crew:          r.Limits.Crew,
			Collaborative: r.Limits.Collaborative,
			Popular:       r.Limits.Popular,
			Neighbors:     r.Limits.Neighbors,
			DefaultTopN:   r.Limits.DefaultTopN,
		},
		Training: recommend.TrainingConfig{
			VocabularySize: r.VocabularySize,
			MinItems:       r.MinItems,
			Timeout:        r.TrainTimeout,
		},
	}
}
