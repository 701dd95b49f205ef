// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package api

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/kinographus/internal/cache"
	"github.com/tomtom215/kinographus/internal/config"
	"github.com/tomtom215/kinographus/internal/logging"
	"github.com/tomtom215/kinographus/internal/metrics"
	"github.com/tomtom215/kinographus/internal/recommend"
)

// Pinger reports dataset backend liveness for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	engine    *recommend.Engine
	store     Pinger
	respCache *cache.LRU
	config    *config.Config
	startTime time.Time

	// rebuildLimiter throttles admin-triggered model rebuilds; a rebuild
	// is O(n²) and must not be triggerable in a tight loop.
	rebuildLimiter *rate.Limiter
}

// NewHandler creates a handler with all dependencies wired.
func NewHandler(engine *recommend.Engine, store Pinger, respCache *cache.LRU, cfg *config.Config) *Handler {
	minInterval := cfg.Recommender.RebuildMinInterval
	if minInterval <= 0 {
		minInterval = time.Minute
	}
	return &Handler{
		engine:         engine,
		store:          store,
		respCache:      respCache,
		config:         cfg,
		startTime:      time.Now(),
		rebuildLimiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// serveCached writes a previously cached response body verbatim.
func (h *Handler) serveCached(w http.ResponseWriter, body []byte) {
	metrics.CacheHits.Inc()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")
	w.Header().Set("ETag", generateETag(body))
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write cached response")
	}
}

// cacheableJSON marshals, caches and writes a success response. Only 200
// responses are cached; errors and degraded results stay uncached.
func (h *Handler) cacheableJSON(w http.ResponseWriter, key string, response *APIResponse) {
	data, err := marshalResponse(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if h.respCache != nil {
		h.respCache.Set(key, data)
		metrics.CacheEntries.Set(float64(h.respCache.Len()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	w.Header().Set("Vary", "Accept-Encoding")
	w.Header().Set("ETag", generateETag(data))
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// lookupCache checks the response cache, recording hit/miss metrics.
func (h *Handler) lookupCache(key string) ([]byte, bool) {
	if h.respCache == nil {
		return nil, false
	}
	body, ok := h.respCache.Get(key)
	if !ok {
		metrics.CacheMisses.Inc()
	}
	return body, ok
}

// models returns the current generation, or nil with a 503 already written.
func (h *Handler) models(w http.ResponseWriter) *recommend.ModelSet {
	set := h.engine.Models()
	if set == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Models are not built yet", nil)
		return nil
	}
	return set
}
