// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import (
	"fmt"
	"math"
)

// Config contains the tunables for the recommendation models and blender.
type Config struct {
	// DefaultTopN is the result count used when a request does not specify one.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the per-request result count.
	MaxTopN int `json:"max_top_n"`

	// Neighbors is the number of most-similar users blended per
	// collaborative prediction.
	Neighbors int `json:"neighbors"`

	// ContentWeight and CollabWeight are the fixed blend coefficients.
	// They must sum to 1.
	ContentWeight float64 `json:"content_weight"`
	CollabWeight  float64 `json:"collaborative_weight"`

	// DynamicWeights replaces the fixed coefficients with per-user-tier
	// weights based on rating history depth.
	DynamicWeights bool `json:"dynamic_weights"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTopN:    10,
		MaxTopN:        100,
		Neighbors:      10,
		ContentWeight:  0.6,
		CollabWeight:   0.4,
		DynamicWeights: false,
	}
}

// Validate checks the config for internally consistent values.
func (c Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n must be at least default_top_n, got %d < %d", c.MaxTopN, c.DefaultTopN)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}
	if c.ContentWeight < 0 || c.ContentWeight > 1 {
		return fmt.Errorf("content_weight must be in [0, 1], got %f", c.ContentWeight)
	}
	if c.CollabWeight < 0 || c.CollabWeight > 1 {
		return fmt.Errorf("collaborative_weight must be in [0, 1], got %f", c.CollabWeight)
	}
	if math.Abs(c.ContentWeight+c.CollabWeight-1) > 1e-9 {
		return fmt.Errorf("content_weight and collaborative_weight must sum to 1, got %f", c.ContentWeight+c.CollabWeight)
	}
	return nil
}

// ClampTopN bounds a requested result count to [1, MaxTopN], substituting
// DefaultTopN for non-positive requests.
func (c Config) ClampTopN(n int) int {
	if n < 1 {
		return c.DefaultTopN
	}
	if n > c.MaxTopN {
		return c.MaxTopN
	}
	return n
}
