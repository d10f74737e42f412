// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	weights := map[string]float64{
		StrategyContent:       0.4,
		StrategyFranchise:     0.3,
		StrategyCrew:          0.25,
		StrategyCollaborative: 0.2,
		StrategyPopular:       0.1,
	}
	for name, want := range cfg.Weights.ToMap() {
		if weights[name] != want {
			t.Errorf("weight %s = %f, want %f", name, want, weights[name])
		}
	}

	if cfg.Limits.Content != 15 || cfg.Limits.Franchise != 10 || cfg.Limits.Crew != 10 ||
		cfg.Limits.Collaborative != 10 || cfg.Limits.Popular != 10 {
		t.Errorf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.Limits.Neighbors != 5 {
		t.Errorf("neighbors = %d, want 5", cfg.Limits.Neighbors)
	}
	if cfg.Training.VocabularySize != 5000 {
		t.Errorf("vocabulary size = %d, want 5000", cfg.Training.VocabularySize)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "zero weight allowed", modify: func(c *Config) { c.Weights.Popularity = 0 }},
		{name: "zero min items allowed", modify: func(c *Config) { c.Training.MinItems = 0 }},
		{name: "negative weight", modify: func(c *Config) { c.Weights.Franchise = -0.1 }, wantErr: true},
		{name: "zero content limit", modify: func(c *Config) { c.Limits.Content = 0 }, wantErr: true},
		{name: "zero neighbors", modify: func(c *Config) { c.Limits.Neighbors = 0 }, wantErr: true},
		{name: "zero default top n", modify: func(c *Config) { c.Limits.DefaultTopN = 0 }, wantErr: true},
		{name: "zero vocabulary", modify: func(c *Config) { c.Training.VocabularySize = 0 }, wantErr: true},
		{name: "negative min items", modify: func(c *Config) { c.Training.MinItems = -1 }, wantErr: true},
		{name: "zero timeout", modify: func(c *Config) { c.Training.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Weights.Content = 0.9
	clone.Limits.Crew = 99
	clone.Training.Timeout = time.Second

	if cfg.Weights.Content != 0.4 || cfg.Limits.Crew != 10 || cfg.Training.Timeout != 30*time.Minute {
		t.Errorf("clone shares state with original: %+v", cfg)
	}
}
