// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "port zero", modify: func(c *Config) { c.Server.Port = 0 }, wantErr: "HTTP_PORT"},
		{name: "port too large", modify: func(c *Config) { c.Server.Port = 70000 }, wantErr: "HTTP_PORT"},
		{name: "zero read timeout", modify: func(c *Config) { c.Server.ReadTimeout = 0 }, wantErr: "HTTP_READ_TIMEOUT"},
		{name: "zero rate limit", modify: func(c *Config) { c.Server.RateLimitReqs = 0 }, wantErr: "RATE_LIMIT_REQUESTS"},
		{
			name: "rate limit ignored when disabled",
			modify: func(c *Config) {
				c.Server.RateLimitDisabled = true
				c.Server.RateLimitReqs = 0
			},
		},
		{name: "empty db path", modify: func(c *Config) { c.Database.Path = "" }, wantErr: "DUCKDB_PATH"},
		{name: "negative threads", modify: func(c *Config) { c.Database.Threads = -1 }, wantErr: "DUCKDB_THREADS"},
		{name: "zero query timeout", modify: func(c *Config) { c.Database.QueryTimeout = 0 }, wantErr: "DUCKDB_QUERY_TIMEOUT"},
		{name: "empty artifact dir", modify: func(c *Config) { c.Recommend.ArtifactDir = "" }, wantErr: "ARTIFACT_DIR"},
		{name: "unknown backend", modify: func(c *Config) { c.Recommend.ArtifactBackend = "s3" }, wantErr: "ARTIFACT_BACKEND"},
		{name: "badger backend", modify: func(c *Config) { c.Recommend.ArtifactBackend = "badger" }},
		{name: "retraining disabled", modify: func(c *Config) { c.Recommend.TrainInterval = 0 }},
		{name: "negative interval", modify: func(c *Config) { c.Recommend.TrainInterval = -time.Hour }, wantErr: "RECOMMEND_TRAIN_INTERVAL"},
		{name: "unknown stop words", modify: func(c *Config) { c.Recommend.StopWords = "french" }, wantErr: "RECOMMEND_STOP_WORDS"},
		{name: "negative weight", modify: func(c *Config) { c.Recommend.Weights.Crew = -1 }, wantErr: "weights.crew"},
		{name: "zero neighbors", modify: func(c *Config) { c.Recommend.Limits.Neighbors = 0 }, wantErr: "limits.neighbors"},
		{name: "max below default", modify: func(c *Config) { c.Recommend.Limits.MaxTopN = 5 }, wantErr: "max_top_n"},
		{name: "zero vocabulary", modify: func(c *Config) { c.Recommend.VocabularySize = 0 }, wantErr: "vocabulary_size"},
		{name: "bad tmdb scheme", modify: func(c *Config) { c.TMDB.BaseURL = "ftp://api.themoviedb.org/3" }, wantErr: "TMDB_BASE_URL"},
		{name: "tmdb query string", modify: func(c *Config) { c.TMDB.BaseURL = "https://api.themoviedb.org/3?x=1" }, wantErr: "TMDB_BASE_URL"},
		{name: "zero tmdb rate", modify: func(c *Config) { c.TMDB.RequestsPerSecond = 0 }, wantErr: "TMDB_REQUESTS_PER_SECOND"},
		{name: "zero burst", modify: func(c *Config) { c.TMDB.Burst = 0 }, wantErr: "TMDB_BURST"},
		{name: "zero breaker failures", modify: func(c *Config) { c.TMDB.BreakerFailures = 0 }, wantErr: "breaker_failures"},
		{name: "bad log level", modify: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "bad log format", modify: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "empty log format", modify: func(c *Config) { c.Logging.Format = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRecommendConfig_EngineConfig(t *testing.T) {
	r := recommendDefaults()
	r.Weights.Franchise = 0.7
	r.Limits.Crew = 3
	r.TrainTimeout = time.Minute

	ec := r.EngineConfig()
	if ec.Weights.Franchise != 0.7 || ec.Weights.Content != 0.4 {
		t.Errorf("weights = %+v", ec.Weights)
	}
	if ec.Limits.Crew != 3 || ec.Limits.Content != 15 || ec.Limits.Neighbors != 5 {
		t.Errorf("limits = %+v", ec.Limits)
	}
	if ec.Training.Timeout != time.Minute || ec.Training.VocabularySize != 5000 {
		t.Errorf("training = %+v", ec.Training)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("engine config invalid: %v", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8000, "0.0.0.0:8000"},
		{"", 9090, ":9090"},
		{"::1", 8000, "[::1]:8000"},
	}
	for _, tt := range tests {
		s := ServerConfig{Host: tt.host, Port: tt.port}
		if got := s.Addr(); got != tt.want {
			t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestValidateAPIURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://api.themoviedb.org/3", false},
		{"http://localhost:8080", false},
		{"", true},
		{"api.themoviedb.org/3", true},
		{"https://", true},
		{"https://api.themoviedb.org/3?api_key=x", true},
	}
	for _, tt := range tests {
		err := validateAPIURL(tt.url, "TMDB_BASE_URL")
		if (err != nil) != tt.wantErr {
			t.Errorf("validateAPIURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}
