// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{
			name:    "weights not summing to 1",
			mutate:  func(c *Config) { c.Recommender.ContentWeight = 0.9 },
			wantSub: "sum to 1",
		},
		{
			name:    "top_n above max",
			mutate:  func(c *Config) { c.Recommender.TopN = 500 },
			wantSub: "exceeds max_top_n",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantSub: "validation",
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantSub: "validation",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantSub: "validation",
		},
		{
			name:    "zero cache ttl",
			mutate:  func(c *Config) { c.Recommender.CacheTTL = 0 },
			wantSub: "cache_ttl",
		},
		{
			name:    "negative neighbors",
			mutate:  func(c *Config) { c.Recommender.Neighbors = 0 },
			wantSub: "validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"KINOGRAPHUS_SERVER_PORT", "server.port"},
		{"KINOGRAPHUS_DATA_DIR", "data.dir"},
		{"KINOGRAPHUS_RECOMMENDER_DYNAMIC_WEIGHTS", "recommender.dynamic_weights"},
		{"KINOGRAPHUS_LOGGING_LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 9100
recommender:
  top_n: 7
  neighbors: 15
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("KINOGRAPHUS_SERVER_PORT", "9200") // env wins over file
	t.Setenv("KINOGRAPHUS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want 9200 (env override)", cfg.Server.Port)
	}
	if cfg.Recommender.TopN != 7 {
		t.Errorf("Recommender.TopN = %d, want 7 (file override)", cfg.Recommender.TopN)
	}
	if cfg.Recommender.Neighbors != 15 {
		t.Errorf("Recommender.Neighbors = %d, want 15", cfg.Recommender.Neighbors)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched values keep defaults
	if cfg.Recommender.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m default", cfg.Recommender.CacheTTL)
	}
}

func TestLoadRejectsInvalidFileValues(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
recommender:
  content_weight: 0.9
  collab_weight: 0.9
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for weights summing to 1.8")
	}
}

func TestCORSOriginsFromEnv(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("KINOGRAPHUS_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Server.CORSOrigins[i], want[i])
		}
	}
}
