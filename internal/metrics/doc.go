// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the application using the Prometheus client library,
exposing metrics for request handling and the response optimization pipeline.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Requests rejected by rate limiting (counter)
    Labels: endpoint

Optimization Metrics:
  - optimization_responses_total: Optimized responses served (counter)
    Labels: device_class, network_quality
  - optimization_stages_applied_total: Pipeline stage activations (counter)
    Labels: stage
  - optimization_bytes_saved_total: Bytes shaved off responses (counter)
  - optimization_compression_ratio_percent: Size reduction distribution (histogram)
  - optimization_duration_seconds: Pipeline transform latency (histogram)
  - optimization_fallbacks_total: Transformations that fell back to the
    original response (counter)
    Labels: reason

# Usage

Record helpers wrap the raw collectors so call sites stay terse:

	metrics.RecordAPIRequest("GET", "/api/v1/events", 200, duration)
	metrics.RecordOptimization("mobile", "slow", stages, origSize, optSize, elapsed)
	metrics.RecordOptimizationFallback("error")

All collectors are registered via promauto at package init and are safe for
concurrent use.
*/
package metrics
