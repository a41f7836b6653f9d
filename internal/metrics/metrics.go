// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Optimization Pipeline Metrics
	OptimizedResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimization_responses_total",
			Help: "Total number of responses run through the optimization pipeline",
		},
		[]string{"device_class", "network_quality"},
	)

	OptimizationStagesApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimization_stages_applied_total",
			Help: "Total number of times each pipeline stage mutated a response",
		},
		[]string{"stage"}, // "field-selection", "adaptive-response", "image-optimization", "compression"
	)

	OptimizationBytesSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "optimization_bytes_saved_total",
			Help: "Total bytes saved across optimized responses (original minus optimized)",
		},
	)

	OptimizationRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optimization_compression_ratio_percent",
			Help:    "Per-response size reduction as a percentage of the original",
			Buckets: []float64{0, 10, 25, 50, 60, 70, 80, 90, 95, 99},
		},
	)

	OptimizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "optimization_duration_seconds",
			Help:    "Time spent inside the optimization pipeline per response",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	OptimizationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimization_fallbacks_total",
			Help: "Total number of responses served unoptimized after a pipeline failure",
		},
		[]string{"reason"}, // "error", "panic"
	)
)

// TrackActiveRequest adjusts the active request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAPIRequest records metrics for an HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordOptimization records metrics for a successfully optimized response.
func RecordOptimization(deviceClass, networkQuality string, stages []string, originalSize, optimizedSize int64, duration time.Duration) {
	OptimizedResponses.WithLabelValues(deviceClass, networkQuality).Inc()
	for _, stage := range stages {
		OptimizationStagesApplied.WithLabelValues(stage).Inc()
	}
	if saved := originalSize - optimizedSize; saved > 0 {
		OptimizationBytesSaved.Add(float64(saved))
	}
	if originalSize > 0 {
		ratio := float64(originalSize-optimizedSize) / float64(originalSize) * 100
		OptimizationRatio.Observe(ratio)
	}
	OptimizationDuration.Observe(duration.Seconds())
}

// RecordOptimizationFallback records a response served unoptimized after a
// pipeline failure.
func RecordOptimizationFallback(reason string) {
	OptimizationFallbacks.WithLabelValues(reason).Inc()
}
