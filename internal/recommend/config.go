// Reelmatch - Multi-Strategy Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines the flat per-membership contribution of each signal
	// to the hybrid score. Weights are not normalized.
	Weights SignalWeights `json:"weights"`

	// Limits defines how many results each sub-scorer contributes.
	Limits LimitsConfig `json:"limits"`

	// Training contains artifact build parameters.
	Training TrainingConfig `json:"training"`
}

// SignalWeights defines the hybrid contribution of each signal.
type SignalWeights struct {
	Content       float64 `json:"content"`
	Franchise     float64 `json:"franchise"`
	Crew          float64 `json:"crew"`
	Collaborative float64 `json:"collaborative"`
	Popularity    float64 `json:"popularity"`
}

// ToMap returns the weights keyed by strategy name.
func (w SignalWeights) ToMap() map[string]float64 {
	return map[string]float64{
		StrategyContent:       w.Content,
		StrategyFranchise:     w.Franchise,
		StrategyCrew:          w.Crew,
		StrategyCollaborative: w.Collaborative,
		StrategyPopular:       w.Popularity,
	}
}

// LimitsConfig contains per-signal result counts used inside the hybrid
// combiner, plus the collaborative neighbourhood size.
type LimitsConfig struct {
	Content       int `json:"content"`
	Franchise     int `json:"franchise"`
	Crew          int `json:"crew"`
	Collaborative int `json:"collaborative"`
	Popular       int `json:"popular"`

	// Neighbors is the number of co-rating neighbours the collaborative
	// scorer draws from.
	Neighbors int `json:"neighbors"`

	// DefaultTopN is the result size the HTTP and CLI layers use when no
	// limit is given. The engine itself returns nothing for top_n <= 0.
	DefaultTopN int `json:"default_top_n"`
}

// TrainingConfig contains artifact build parameters.
type TrainingConfig struct {
	// VocabularySize caps the number of TF-IDF terms.
	VocabularySize int `json:"vocabulary_size"`

	// MinItems skips training when the catalog is smaller.
	MinItems int `json:"min_items"`

	// Timeout bounds a single training run.
	Timeout time.Duration `json:"timeout"`
}

// Strategy names used for logging and metrics labels.
const (
	StrategyContent       = "content"
	StrategyFranchise     = "franchise"
	StrategyCrew          = "crew"
	StrategyCollaborative = "collaborative"
	StrategyPopular       = "popular"
	StrategyHybrid        = "hybrid"
)

// DefaultConfig returns the hand-tuned hybrid configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: SignalWeights{
			Content:       0.4,
			Franchise:     0.3,
			Crew:          0.25,
			Collaborative: 0.2,
			Popularity:    0.1,
		},
		Limits: LimitsConfig{
			Content:       15,
			Franchise:     10,
			Crew:          10,
			Collaborative: 10,
			Popular:       10,
			Neighbors:     5,
			DefaultTopN:   10,
		},
		Training: TrainingConfig{
			VocabularySize: 5000,
			MinItems:       1,
			Timeout:        30 * time.Minute,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	for name, w := range c.Weights.ToMap() {
		if w < 0 {
			return fmt.Errorf("weights.%s must be non-negative, got %f", name, w)
		}
	}

	limits := []struct {
		name  string
		value int
	}{
		{"limits.content", c.Limits.Content},
		{"limits.franchise", c.Limits.Franchise},
		{"limits.crew", c.Limits.Crew},
		{"limits.collaborative", c.Limits.Collaborative},
		{"limits.popular", c.Limits.Popular},
		{"limits.neighbors", c.Limits.Neighbors},
		{"limits.default_top_n", c.Limits.DefaultTopN},
	}
	for _, l := range limits {
		if l.value < 1 {
			return fmt.Errorf("%s must be positive, got %d", l.name, l.value)
		}
	}

	if c.Training.VocabularySize < 1 {
		return fmt.Errorf("training.vocabulary_size must be positive, got %d", c.Training.VocabularySize)
	}
	if c.Training.MinItems < 0 {
		return fmt.Errorf("training.min_items must be non-negative, got %d", c.Training.MinItems)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive, got %v", c.Training.Timeout)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
