// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/kinographus/internal/logging"
	"github.com/tomtom215/kinographus/internal/metrics"
)

// Rebuild retrains all models from the data directory. Throttled to one
// rebuild per configured interval because a rebuild recomputes both O(n²)
// similarity matrices. The response cache is cleared on success so stale
// results are never served against the new generation.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if !h.rebuildLimiter.Allow() {
		respondError(w, http.StatusTooManyRequests, ErrCodeTooManyRequests,
			"Rebuild already triggered recently, try again later", nil)
		return
	}

	start := time.Now()
	if err := h.engine.Build(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternalError,
			"Model rebuild failed", err)
		return
	}

	if h.respCache != nil {
		h.respCache.Clear()
		metrics.CacheEntries.Set(0)
	}

	set := h.engine.Models()
	logger := logging.Ctx(r.Context())
	logger.Info().
		Int32("version", set.Version).
		Dur("duration", time.Since(start)).
		Msg("Models rebuilt via admin endpoint")

	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"model_version": set.Version,
			"built_at":      set.BuiltAt,
			"duration_ms":   time.Since(start).Milliseconds(),
		},
		Metadata: Metadata{
			Timestamp:    time.Now(),
			ModelVersion: set.Version,
		},
	})
}
