// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/farelane/mobileopt/internal/metrics"
)

func TestPrometheusMetrics_RecordsStatusCode(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/metrics-test", "418"))

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test", nil))

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/metrics-test", "418"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestPrometheusMetrics_DefaultsTo200(t *testing.T) {
	before := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/metrics-ok", "200"))

	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-ok", nil))

	after := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues("GET", "/metrics-ok", "200"))
	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}
