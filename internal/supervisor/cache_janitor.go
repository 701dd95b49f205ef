// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package supervisor

import (
	"context"
	"time"

	"github.com/tomtom215/kinographus/internal/cache"
	"github.com/tomtom215/kinographus/internal/logging"
	"github.com/tomtom215/kinographus/internal/metrics"
)

// CacheJanitor periodically sweeps expired entries out of the response
// cache so memory tracks the live working set instead of the TTL horizon.
type CacheJanitor struct {
	cache    *cache.LRU
	interval time.Duration
}

// NewCacheJanitor creates a janitor sweeping at the given interval.
func NewCacheJanitor(respCache *cache.LRU, interval time.Duration) *CacheJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitor{cache: respCache, interval: interval}
}

// Serve implements suture.Service.
func (j *CacheJanitor) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed := j.cache.CleanupExpired()
			metrics.CacheEntries.Set(float64(j.cache.Len()))
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Swept expired cache entries")
			}
		}
	}
}

// String identifies the service in supervisor log messages.
func (j *CacheJanitor) String() string {
	return "cache-janitor"
}
