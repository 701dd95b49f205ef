// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero default top n", func(c *Config) { c.DefaultTopN = 0 }},
		{"max below default", func(c *Config) { c.MaxTopN = 5; c.DefaultTopN = 10 }},
		{"zero neighbors", func(c *Config) { c.Neighbors = 0 }},
		{"negative content weight", func(c *Config) { c.ContentWeight = -0.1; c.CollabWeight = 1.1 }},
		{"content weight above one", func(c *Config) { c.ContentWeight = 1.5; c.CollabWeight = -0.5 }},
		{"weights not summing to one", func(c *Config) { c.ContentWeight = 0.5; c.CollabWeight = 0.4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestClampTopN(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"negative falls back to default", -1, cfg.DefaultTopN},
		{"zero falls back to default", 0, cfg.DefaultTopN},
		{"in range passes through", 25, 25},
		{"above max is capped", 5000, cfg.MaxTopN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.ClampTopN(tt.n); got != tt.want {
				t.Errorf("ClampTopN(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}
}
