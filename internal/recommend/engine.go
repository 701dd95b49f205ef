// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/kinographus/internal/metrics"
)

// Note: This package does not import the dataset package. The DataProvider
// interface allows integration with the dataset layer without creating
// circular imports.

// DataProvider defines the interface for fetching the model training data.
// This is typically implemented by the dataset layer.
type DataProvider interface {
	// Movies returns all movie metadata rows.
	Movies(ctx context.Context) ([]Movie, error)

	// Ratings returns all rating rows.
	Ratings(ctx context.Context) ([]Rating, error)

	// Tags returns all user-applied tag rows.
	Tags(ctx context.Context) ([]Tag, error)
}

// ModelSet is one immutable generation of trained models. Requests read a
// single ModelSet for their whole lifetime, so a concurrent rebuild never
// mixes generations within one request.
type ModelSet struct {
	Content *ContentModel
	Collab  *CollaborativeModel
	Hybrid  *HybridModel
	Stats   []MovieStats
	Movies  []Movie
	BuiltAt time.Time
	Version int32

	// RatingCount and TagCount record the table sizes this generation was
	// trained from, for health and stats reporting.
	RatingCount int
	TagCount    int
}

// Engine owns the model lifecycle: it builds ModelSets from the data
// provider and swaps them in atomically. Safe for concurrent use.
type Engine struct {
	provider DataProvider
	cfg      Config
	logger   zerolog.Logger

	models  atomic.Pointer[ModelSet]
	version atomic.Int32

	// buildMu serializes rebuilds; readers never block.
	buildMu sync.Mutex
}

// NewEngine creates an engine with no models loaded. Call Build before
// serving requests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(provider DataProvider, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if provider == nil {
		return nil, fmt.Errorf("data provider is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Engine{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Build loads the full dataset and trains a fresh ModelSet, swapping it in
// on success. The previous generation keeps serving until the swap, so a
// failed rebuild leaves the engine unchanged.
func (e *Engine) Build(ctx context.Context) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	start := time.Now()

	movies, err := e.provider.Movies(ctx)
	if err != nil {
		return fmt.Errorf("loading movies: %w", err)
	}
	ratings, err := e.provider.Ratings(ctx)
	if err != nil {
		return fmt.Errorf("loading ratings: %w", err)
	}
	tags, err := e.provider.Tags(ctx)
	if err != nil {
		return fmt.Errorf("loading tags: %w", err)
	}
	if len(movies) == 0 {
		return fmt.Errorf("movie table is empty")
	}
	if len(ratings) == 0 {
		return fmt.Errorf("rating table is empty")
	}
	metrics.RecordDatasetLoad(len(movies), len(ratings), len(tags), time.Since(start))

	if err := ctx.Err(); err != nil {
		return err
	}

	contentStart := time.Now()
	content := NewContentModel(movies)
	metrics.RecordModelBuild("content", content.MovieCount(), time.Since(contentStart))

	collabStart := time.Now()
	collab := NewCollaborativeModel(ratings, movies, e.cfg.Neighbors)
	metrics.RecordModelBuild("collaborative", collab.UserCount(), time.Since(collabStart))

	hybrid := NewHybridModel(content, collab, e.cfg)
	stats := ComputeMovieStats(movies, ratings)
	metrics.ModelBuilds.Inc()

	set := &ModelSet{
		Content:     content,
		Collab:      collab,
		Hybrid:      hybrid,
		Stats:       stats,
		Movies:      movies,
		BuiltAt:     time.Now(),
		Version:     e.version.Add(1),
		RatingCount: len(ratings),
		TagCount:    len(tags),
	}
	e.models.Store(set)

	e.logger.Info().
		Int("movies", len(movies)).
		Int("ratings", len(ratings)).
		Int("tags", len(tags)).
		Int("users", collab.UserCount()).
		Int32("version", set.Version).
		Dur("duration", time.Since(start)).
		Msg("Recommendation models built")
	return nil
}

// Models returns the current model generation, or nil before the first
// successful Build.
func (e *Engine) Models() *ModelSet {
	return e.models.Load()
}

// Ready reports whether a model generation is available to serve requests.
func (e *Engine) Ready() bool {
	return e.models.Load() != nil
}
