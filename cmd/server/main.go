// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

// Package main is the entry point for the Kinographus server.
//
// Kinographus is a self-hosted movie recommendation service. It loads a
// MovieLens-style CSV dataset into an in-memory DuckDB instance, builds a
// TF-IDF genre model and a user-based collaborative filtering model, and
// serves blended hybrid recommendations over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Dataset: Open an in-memory DuckDB instance over the CSV tables
//  3. Models: Build the content, collaborative and hybrid models eagerly
//  4. HTTP Server: REST API with Prometheus metrics, managed by a supervisor tree
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (KINOGRAPHUS_ prefix, e.g. KINOGRAPHUS_SERVER_PORT=8080)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// The dataset directory must contain movies.csv, ratings.csv and tags.csv
// (file names are configurable under the data section).
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the dataset connection
//
// # Example Usage
//
//	export KINOGRAPHUS_DATA_DIR=/data/movielens
//	export KINOGRAPHUS_SERVER_PORT=8080
//	./kinographus
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/kinographus/internal/api"
	"github.com/tomtom215/kinographus/internal/cache"
	"github.com/tomtom215/kinographus/internal/config"
	"github.com/tomtom215/kinographus/internal/dataset"
	"github.com/tomtom215/kinographus/internal/logging"
	"github.com/tomtom215/kinographus/internal/recommend"
	"github.com/tomtom215/kinographus/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("data_dir", cfg.Data.Dir).
		Str("environment", cfg.Server.Environment).
		Bool("dynamic_weights", cfg.Recommender.DynamicWeights).
		Msg("Starting Kinographus")

	// Open the dataset (in-memory DuckDB over the CSV tables)
	store, err := dataset.Open(cfg.Data)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open dataset")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing dataset")
		}
	}()
	logging.Info().Msg("Dataset opened")

	engine, err := recommend.NewEngine(store, recommend.Config{
		DefaultTopN:    cfg.Recommender.TopN,
		MaxTopN:        cfg.Recommender.MaxTopN,
		Neighbors:      cfg.Recommender.Neighbors,
		ContentWeight:  cfg.Recommender.ContentWeight,
		CollabWeight:   cfg.Recommender.CollabWeight,
		DynamicWeights: cfg.Recommender.DynamicWeights,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// Root context canceled on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Build models eagerly so the server starts ready
	if err := engine.Build(ctx); err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation models")
	}

	respCache := cache.NewLRU(cfg.Recommender.CacheSize, cfg.Recommender.CacheTTL)

	handler := api.NewHandler(engine, store, respCache, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeConfig)
	tree.AddAPIService(supervisor.NewHTTPService(server, treeConfig.ShutdownTimeout))
	tree.AddAPIService(supervisor.NewCacheJanitor(respCache, cfg.Recommender.CacheTTL))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
		// Run deferred cleanup before exiting nonzero
		cancel()
		if closeErr := store.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing dataset")
		}
		os.Exit(1)
	}

	logging.Info().Msg("Application stopped gracefully")
}
