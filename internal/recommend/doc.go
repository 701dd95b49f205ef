// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

// Package recommend implements the hybrid movie recommendation core.
//
// # Architecture
//
// Two independent similarity models are built eagerly from the full dataset:
//
//   - Content model: TF-IDF vectors over movie genre tags and a pairwise
//     cosine similarity matrix over all movies.
//   - Collaborative model: a user×movie rating matrix and a pairwise cosine
//     similarity matrix over users, producing rating predictions from the
//     ratings of a user's nearest neighbors.
//
// The hybrid blender invokes both models per request, converts each source's
// rank positions into linear rank-decay scores, merges the two result sets,
// deduplicates by movie ID, and produces one ranked list.
//
// # Design Principles
//
//   - Deterministic: same inputs produce identical ordered outputs; all ties
//     are broken by load order or matrix column order.
//   - Immutable after build: models are read-only once constructed, so
//     concurrent reads need no locking. Rebuilds swap a fresh model set in
//     atomically via the Engine.
//   - Tagged outcomes: expected misses (unknown title, unknown user, no
//     candidates) are reported through the Outcome type, never as errors.
//
// # Usage
//
//	engine := recommend.NewEngine(provider, cfg, logger)
//	if err := engine.Build(ctx); err != nil { ... }
//
//	set := engine.Models()
//	result := set.Hybrid.Recommend(userID, "Toy Story (1995)", 10)
//
// # Thread Safety
//
// All model methods are safe for concurrent use without synchronization
// because models never mutate after construction. Engine.Build serializes
// rebuilds and publishes the new model set with an atomic pointer swap.
//
// The DataProvider interface decouples this package from the dataset layer,
// so the core stays testable with in-memory fixtures.
package recommend
