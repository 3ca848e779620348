// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

// Package metrics holds the Prometheus instrumentation for Coursewise.
//
// The command entry point is short-lived, so metrics are not scraped over
// HTTP; WriteTextfile dumps the default registry in text exposition format
// for the node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursewise_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"result"}, // "success", "canceled"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coursewise_recommend_duration_seconds",
			Help:    "Time spent scoring and ranking the catalog for one request",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	RecommendConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coursewise_recommend_confidence",
			Help:    "Confidence scores of returned recommendations",
			Buckets: prometheus.LinearBuckets(10, 10, 10), // 10, 20, ... 100
		},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coursewise_recommend_results",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coursewise_recommend_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coursewise_recommend_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Catalog Metrics
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursewise_catalog_loads_total",
			Help: "Total number of catalog loads by source and result",
		},
		[]string{"source", "result"}, // result: "success", "error", "empty", "fallback"
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coursewise_catalog_load_duration_seconds",
			Help:    "Duration of catalog loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CatalogCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coursewise_catalog_courses",
			Help: "Number of courses in the active catalog",
		},
	)

	CatalogSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursewise_catalog_skipped_total",
			Help: "Course records dropped during normalization",
		},
		[]string{"reason"}, // "missing_code", "duplicate_code"
	)

	// Circuit Breaker Metrics (HTTP catalog source)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coursewise_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursewise_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "coursewise_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coursewise_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordRecommend records one completed recommendation request.
func RecordRecommend(duration time.Duration, confidences []float64) {
	RecommendRequests.WithLabelValues("success").Inc()
	RecommendDuration.Observe(duration.Seconds())
	RecommendResults.Observe(float64(len(confidences)))
	for _, c := range confidences {
		RecommendConfidence.Observe(c)
	}
}

// RecordRecommendCanceled records a request abandoned because its context ended.
func RecordRecommendCanceled() {
	RecommendRequests.WithLabelValues("canceled").Inc()
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
		return
	}
	RecommendCacheMisses.Inc()
}

// RecordCatalogLoad records one attempt to load a catalog source.
func RecordCatalogLoad(source, result string, duration time.Duration) {
	CatalogLoads.WithLabelValues(source, result).Inc()
	CatalogLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordCatalogSkipped records a course record dropped during normalization.
func RecordCatalogSkipped(reason string) {
	CatalogSkipped.WithLabelValues(reason).Inc()
}

// SetCatalogSize records the number of courses in the active catalog.
func SetCatalogSize(n int) {
	CatalogCourses.Set(float64(n))
}

// WriteTextfile writes every registered metric to path in Prometheus text
// format. The file is written atomically (temp file plus rename).
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
