// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of the aggregate health endpoint.
type HealthStatus struct {
	Status           string         `json:"status"`
	Version          string         `json:"version"`
	DatasetConnected bool           `json:"dataset_connected"`
	ModelsReady      bool           `json:"models_ready"`
	ModelVersion     int32          `json:"model_version,omitempty"`
	ModelsBuiltAt    *time.Time     `json:"models_built_at,omitempty"`
	Dataset          *DatasetCounts `json:"dataset,omitempty"`
	Uptime           float64        `json:"uptime_seconds"`
}

// DatasetCounts reports the table sizes the serving models were built from.
type DatasetCounts struct {
	Movies  int `json:"movies"`
	Ratings int `json:"ratings"`
	Tags    int `json:"tags"`
}

// Health reports aggregate service health: dataset connectivity plus model
// readiness. Degraded states still return 200 so load balancers keep the
// instance for the endpoints that do work.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	datasetConnected := h.store != nil && h.store.Ping(r.Context()) == nil
	set := h.engine.Models()

	status := "healthy"
	if !datasetConnected || set == nil {
		status = "degraded"
	}

	health := HealthStatus{
		Status:           status,
		Version:          "1.0.0",
		DatasetConnected: datasetConnected,
		ModelsReady:      set != nil,
		Uptime:           time.Since(h.startTime).Seconds(),
	}
	if set != nil {
		health.ModelVersion = set.Version
		builtAt := set.BuiltAt
		health.ModelsBuiltAt = &builtAt
		health.Dataset = &DatasetCounts{
			Movies:  len(set.Movies),
			Ratings: set.RatingCount,
			Tags:    set.TagCount,
		}
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: Metadata{Timestamp: time.Now()},
	})
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}

// HealthReady is the readiness probe: returns 503 until the first model
// build completes and the dataset backend responds.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || h.store.Ping(r.Context()) != nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Dataset backend unavailable", nil)
		return
	}
	if !h.engine.Ready() {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Models are not built yet", nil)
		return
	}

	respondJSON(w, http.StatusOK, &APIResponse{
		Status:   "success",
		Data:     map[string]interface{}{"ready": true},
		Metadata: Metadata{Timestamp: time.Now()},
	})
}
