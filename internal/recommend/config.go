// Nurture - Wellness Activity Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nurture

package recommend

import (
	"fmt"
	"math"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Weights defines how similarity and popularity are blended.
	Weights BlendWeights `json:"weights" koanf:"weights"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Feedback controls how interactions are accepted.
	Feedback FeedbackConfig `json:"feedback" koanf:"feedback"`
}

// BlendWeights defines the linear blend of the two score components:
//
//	score = Similarity*cosine + Popularity*(p/(1+p)),  p = ln(1+count)
//
// Weights are used as given, not normalized.
type BlendWeights struct {
	// Similarity is the weight of cosine similarity between the user
	// vector and the activity tag vector.
	// Default: 0.8.
	Similarity float64 `json:"similarity" koanf:"similarity"`

	// Popularity is the weight of the squashed popularity bonus.
	// Default: 0.2.
	Popularity float64 `json:"popularity" koanf:"popularity"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is used when a request asks for zero items.
	// Default: 5.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK caps the number of items a request may ask for.
	// Default: 50.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// FeedbackConfig controls LogInteraction.
type FeedbackConfig struct {
	// RequireKnownItem rejects interactions whose item id is not in the
	// catalog with ErrUnknownActivity. When false, any item id is logged
	// and counted, which is what the CSV tooling has always done.
	// Default: false.
	RequireKnownItem bool `json:"require_known_item" koanf:"require_known_item"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: BlendWeights{
			Similarity: 0.8,
			Popularity: 0.2,
		},
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !validWeight(c.Weights.Similarity) {
		return fmt.Errorf("weights.similarity must be a non-negative number, got %f", c.Weights.Similarity)
	}
	if !validWeight(c.Weights.Popularity) {
		return fmt.Errorf("weights.popularity must be a non-negative number, got %f", c.Weights.Popularity)
	}
	if c.Weights.Similarity == 0 && c.Weights.Popularity == 0 {
		return fmt.Errorf("weights.similarity and weights.popularity cannot both be zero")
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

func validWeight(w float64) bool {
	return w >= 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}
