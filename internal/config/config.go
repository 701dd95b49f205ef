// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

// Package config provides layered configuration for Kinographus.
//
// Configuration is resolved from three sources, lowest precedence first:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML config file (config.yaml, /etc/kinographus/config.yaml,
//     or the path in KINOGRAPHUS_CONFIG)
//  3. Environment variables with the KINOGRAPHUS_ prefix
//     (KINOGRAPHUS_SERVER_PORT=8080 -> server.port)
//
// Loading and layering is handled by koanf v2; see koanf.go.
package config

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the application.
type Config struct {
	Data        DataConfig        `koanf:"data"`
	Server      ServerConfig      `koanf:"server"`
	Recommender RecommenderConfig `koanf:"recommender"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// DataConfig locates the flat-file dataset consumed at startup.
type DataConfig struct {
	// Dir is the directory containing the CSV tables.
	Dir string `koanf:"dir" validate:"required"`

	// MoviesFile, RatingsFile and TagsFile are file names inside Dir.
	MoviesFile  string `koanf:"movies_file" validate:"required"`
	RatingsFile string `koanf:"ratings_file" validate:"required"`
	TagsFile    string `koanf:"tags_file" validate:"required"`

	// MaxMemory caps DuckDB memory usage for CSV scanning (e.g. "512MB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 uses runtime.NumCPU().
	Threads int `koanf:"threads" validate:"min=0"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host" validate:"required"`
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment" validate:"oneof=development production"`

	// CORSOrigins lists allowed CORS origins; "*" permits all.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs requests per RateLimitWindow per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// RecommenderConfig tunes the recommendation models and blender.
//
// Both similarity matrices are computed fully and eagerly at build time:
// O(movies²) for content and O(users²) for collaborative. This is fine for
// MovieLens-scale catalogs but is a scaling constraint; there is no
// incremental update path.
type RecommenderConfig struct {
	// TopN is the default result count per request; MaxTopN bounds it.
	TopN    int `koanf:"top_n" validate:"min=1"`
	MaxTopN int `koanf:"max_top_n" validate:"min=1"`

	// Neighbors is the number of most-similar users whose ratings are
	// blended into a collaborative prediction.
	Neighbors int `koanf:"neighbors" validate:"min=1"`

	// ContentWeight and CollabWeight form the fixed hybrid blend; they
	// must sum to 1.
	ContentWeight float64 `koanf:"content_weight" validate:"min=0,max=1"`
	CollabWeight  float64 `koanf:"collab_weight" validate:"min=0,max=1"`

	// DynamicWeights switches the blend from the fixed split to
	// rating-count tier weights (cold start / growing / established).
	DynamicWeights bool `koanf:"dynamic_weights"`

	// CacheTTL and CacheSize control the in-memory response cache.
	CacheTTL  time.Duration `koanf:"cache_ttl"`
	CacheSize int           `koanf:"cache_size" validate:"min=1"`

	// RebuildMinInterval throttles admin-triggered model rebuilds.
	RebuildMinInterval time.Duration `koanf:"rebuild_min_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Default returns a Config with all default values applied.
func Default() *Config {
	return defaultConfig()
}

// defaultConfig returns a Config with all default values applied.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         "/data/movielens",
			MoviesFile:  "movies.csv",
			RatingsFile: "ratings.csv",
			TagsFile:    "tags.csv",
			MaxMemory:   "512MB",
			Threads:     0,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8954,
			Timeout:         30 * time.Second,
			Environment:     "development",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Recommender: RecommenderConfig{
			TopN:               10,
			MaxTopN:            100,
			Neighbors:          10,
			ContentWeight:      0.6,
			CollabWeight:       0.4,
			DynamicWeights:     false,
			CacheTTL:           5 * time.Minute,
			CacheSize:          1000,
			RebuildMinInterval: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// validate is the shared validator instance; struct tag validation only.
var validate = validator.New()

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Recommender.TopN > c.Recommender.MaxTopN {
		return fmt.Errorf("recommender.top_n %d exceeds max_top_n %d",
			c.Recommender.TopN, c.Recommender.MaxTopN)
	}

	weightSum := c.Recommender.ContentWeight + c.Recommender.CollabWeight
	if math.Abs(weightSum-1.0) > 1e-9 {
		return fmt.Errorf("recommender weights must sum to 1, got %g", weightSum)
	}

	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Recommender.CacheTTL <= 0 {
		return fmt.Errorf("recommender.cache_ttl must be positive")
	}

	return nil
}
