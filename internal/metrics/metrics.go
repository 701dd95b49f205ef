// Kinographus - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/kinographus

// Package metrics provides Prometheus instrumentation for Kinographus.
//
// Exposed metric families cover:
//   - Model construction (build duration, matrix dimensions)
//   - Recommendation serving (request counts by source and outcome, latency)
//   - Response cache efficiency
//   - Dataset table sizes
//   - API endpoint latency and throughput
//
// All metrics are registered with the default registry via promauto and
// served by promhttp on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Model Build Metrics
	ModelBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_model_build_duration_seconds",
			Help:    "Time spent building a similarity model",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"model"}, // "content", "collaborative"
	)

	ModelMatrixSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recommend_model_matrix_dimension",
			Help: "Dimension of a model's square similarity matrix",
		},
		[]string{"model"},
	)

	ModelBuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_model_builds_total",
			Help: "Total number of model set builds (startup plus rebuilds)",
		},
	)

	// Recommendation Serving Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests by source and outcome",
		},
		[]string{"source", "outcome"}, // source: hybrid/content/collaborative
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Recommendation computation latency",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"source"},
	)

	JoinDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_join_dropped_total",
			Help: "Scored movies dropped because no movie-table row matched their ID",
		},
	)

	// Response Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total recommendation cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_cache_entries",
			Help: "Current number of cached recommendation responses",
		},
	)

	// Dataset Metrics
	DatasetRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dataset_rows",
			Help: "Row counts of the loaded dataset tables",
		},
		[]string{"table"}, // "movies", "ratings", "tags"
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Time spent loading the CSV tables through DuckDB",
			Buckets: prometheus.DefBuckets,
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation call.
func RecordRecommendation(source, outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(source, outcome).Inc()
	RecommendDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordModelBuild records the construction of one similarity model.
func RecordModelBuild(model string, dimension int, duration time.Duration) {
	ModelBuildDuration.WithLabelValues(model).Observe(duration.Seconds())
	ModelMatrixSize.WithLabelValues(model).Set(float64(dimension))
}

// RecordDatasetLoad records the sizes of freshly loaded tables.
func RecordDatasetLoad(movies, ratings, tags int, duration time.Duration) {
	DatasetRows.WithLabelValues("movies").Set(float64(movies))
	DatasetRows.WithLabelValues("ratings").Set(float64(ratings))
	DatasetRows.WithLabelValues("tags").Set(float64(tags))
	DatasetLoadDuration.Observe(duration.Seconds())
}

// FormatStatusCode converts an HTTP status to its label string.
func FormatStatusCode(code int) string {
	return strconv.Itoa(code)
}
