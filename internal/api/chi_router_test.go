// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package api

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/farelane/mobileopt/internal/optimize"
)

const testMobileUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

func newTestRouter() http.Handler {
	pipeline := optimize.New(optimize.Config{
		CompressionEnabled:       true,
		CompressionLevel:         6,
		FieldSelectionEnabled:    true,
		AdaptiveResponseEnabled:  true,
		ImageOptimizationEnabled: true,
		MaxResponseSize:          10 << 20,
		FieldRules: map[string][]string{
			"/api/v1/events": {"status", "data.id", "data.name", "data.image_url", "data.venue.name", "data.venue.city", "data.sections.name", "data.sections.price_from", "data.sections.currency"},
		},
	})
	mw := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitDisabled:  true,
	})
	return NewRouter(NewHandler(), mw, pipeline).SetupChi()
}

func TestRouter_HealthEndpoints(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready", "/api/v1/health/"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
			}
			var payload map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if payload["status"] != "success" {
				t.Errorf("status = %v, want success", payload["status"])
			}
		})
	}
}

func TestRouter_EventsOptimizedForMobile(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	req.Header.Set("User-Agent", testMobileUA)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Client-Type"); got != "mobile" {
		t.Errorf("X-Client-Type = %q, want mobile", got)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}

	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	decoded, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("gunzip: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(decoded, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	events, ok := payload["data"].([]any)
	if !ok || len(events) == 0 {
		t.Fatalf("data = %v, want event list", payload["data"])
	}
	first := events[0].(map[string]any)
	if _, present := first["description"]; present {
		t.Error("description should be projected away for mobile clients")
	}
	if _, present := first["organizer"]; present {
		t.Error("organizer should be projected away for mobile clients")
	}
	if name, ok := first["name"].(string); !ok || name == "" {
		t.Errorf("name missing from projected event: %v", first["name"])
	}
}

func TestRouter_EventByID(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-2001", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events/evt-missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	errObj, ok := payload["error"].(map[string]any)
	if !ok || errObj["code"] != "NOT_FOUND" {
		t.Errorf("error = %v, want NOT_FOUND", payload["error"])
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
