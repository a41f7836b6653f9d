// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

import (
	"bytes"
	"compress/gzip"
	"io"
	"reflect"
	"testing"

	"github.com/andybalholm/brotli"
	json "github.com/goccy/go-json"
)

func fullConfig() Config {
	return Config{
		CompressionEnabled:       true,
		CompressionLevel:         6,
		FieldSelectionEnabled:    true,
		AdaptiveResponseEnabled:  true,
		ImageOptimizationEnabled: true,
		MaxResponseSize:          10 << 20,
		FieldRules: map[string][]string{
			"/api/v1/users/me": {"id", "name", "email"},
			"/api/v1/feed":     {"items"},
		},
	}
}

func hasStage(r *Result, stage string) bool {
	for _, s := range r.StagesApplied {
		if s == stage {
			return true
		}
	}
	return false
}

func gunzip(t *testing.T, data []byte) []byte {
	t.Helper()
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("gzip.NewReader: %v", err)
	}
	defer gz.Close()
	out, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("gunzip: %v", err)
	}
	return out
}

func TestPipeline_EndToEnd(t *testing.T) {
	pipe := New(fullConfig())
	profile := ClientProfile{
		DeviceClass:       DeviceMobile,
		ScreenBucket:      ScreenSmall,
		NetworkQuality:    NetworkSlow,
		AcceptedEncodings: []string{"gzip"},
	}
	body := []byte(`{"id":42,"name":"Aino","email":"aino@example.com","password":"hunter2","metadata":{"internal":true,"flags":["a","b"]}}`)

	out, result, err := pipe.Transform(body, "/api/v1/users/me", profile)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if result.Encoding != EncodingGzip {
		t.Fatalf("Encoding = %q, want gzip", result.Encoding)
	}
	var payload map[string]any
	if err := json.Unmarshal(gunzip(t, out), &payload); err != nil {
		t.Fatalf("unmarshal optimized payload: %v", err)
	}
	for _, key := range []string{"password", "metadata"} {
		if _, present := payload[key]; present {
			t.Errorf("%s should have been projected away", key)
		}
	}
	for _, key := range []string{"id", "name", "email"} {
		if _, present := payload[key]; !present {
			t.Errorf("%s missing from optimized payload", key)
		}
	}

	if !hasStage(result, StageFieldSelection) {
		t.Error("field-selection stage not recorded")
	}
	if result.FieldsRemoved < 1 {
		t.Errorf("FieldsRemoved = %d, want >= 1", result.FieldsRemoved)
	}
	if result.OriginalSize != len(body) {
		t.Errorf("OriginalSize = %d, want %d", result.OriginalSize, len(body))
	}
	if result.OptimizedSize != len(out) {
		t.Errorf("OptimizedSize = %d, want %d", result.OptimizedSize, len(out))
	}
}

func TestPipeline_UnknownEndpointSkipsProjection(t *testing.T) {
	pipe := New(fullConfig())
	profile := ClientProfile{DeviceClass: DeviceMobile, NetworkQuality: NetworkSlow}
	body := []byte(`{"id":1,"secret":"keep"}`)

	out, result, err := pipe.Transform(body, "/api/v1/unconfigured", profile)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, present := payload["secret"]; !present {
		t.Error("endpoint without a rule must keep all fields")
	}
	if hasStage(result, StageFieldSelection) {
		t.Error("field-selection recorded without a matching rule")
	}
	if result.FieldsRemoved != 0 {
		t.Errorf("FieldsRemoved = %d, want 0", result.FieldsRemoved)
	}
}

func TestPipeline_StageOrder(t *testing.T) {
	pipe := New(fullConfig())
	profile := ClientProfile{
		DeviceClass:          DeviceMobile,
		ScreenBucket:         ScreenSmall,
		NetworkQuality:       NetworkSlow,
		AcceptedEncodings:    []string{"br"},
		AcceptsWebP:          true,
		PreferredImageFormat: ImageFormatWebP,
	}

	items := make([]any, 30)
	for i := range items {
		items[i] = map[string]any{"id": i, "image": "/img/a.jpg", "debug": "drop"}
	}
	body, err := json.Marshal(map[string]any{"items": items, "trace": "drop"})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	out, result, err := pipe.Transform(body, "/api/v1/feed", profile)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	want := []string{StageFieldSelection, StageAdaptiveResponse, StageImageOptimization, StageCompression}
	if !reflect.DeepEqual(result.StagesApplied, want) {
		t.Fatalf("StagesApplied = %v, want %v", result.StagesApplied, want)
	}
	if result.Encoding != EncodingBrotli {
		t.Errorf("Encoding = %q, want br", result.Encoding)
	}

	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(out)))
	if err != nil {
		t.Fatalf("brotli decode: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(decoded, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := payload["items"].([]any)
	if len(got) != 10 {
		t.Errorf("items = %d, want 10 after slow-network truncation", len(got))
	}
}

func TestPipeline_StagesCanBeDisabled(t *testing.T) {
	cfg := fullConfig()
	cfg.CompressionEnabled = false
	cfg.FieldSelectionEnabled = false
	cfg.AdaptiveResponseEnabled = false
	cfg.ImageOptimizationEnabled = false
	pipe := New(cfg)
	profile := ClientProfile{
		DeviceClass:       DeviceMobile,
		NetworkQuality:    NetworkSlow,
		AcceptedEncodings: []string{"gzip"},
	}
	body := []byte(`{"id":1,"name":"a","image":"/img/a.jpg","secret":"s"}`)

	out, result, err := pipe.Transform(body, "/api/v1/users/me", profile)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if len(result.StagesApplied) != 0 {
		t.Errorf("StagesApplied = %v, want none", result.StagesApplied)
	}
	if result.Encoding != EncodingIdentity {
		t.Errorf("Encoding = %q, want identity", result.Encoding)
	}
	var payload map[string]any
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload) != 4 {
		t.Errorf("payload has %d keys, want all 4 intact", len(payload))
	}
}

func TestPipeline_NonJSONBodyCompressesOnly(t *testing.T) {
	pipe := New(fullConfig())
	profile := ClientProfile{
		DeviceClass:       DeviceMobile,
		NetworkQuality:    NetworkSlow,
		AcceptedEncodings: []string{"gzip"},
	}
	body := []byte("<html><body>not json</body></html>")

	out, result, err := pipe.Transform(body, "/api/v1/users/me", profile)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	want := []string{StageCompression}
	if !reflect.DeepEqual(result.StagesApplied, want) {
		t.Errorf("StagesApplied = %v, want %v", result.StagesApplied, want)
	}
	if !bytes.Equal(gunzip(t, out), body) {
		t.Error("non-JSON body must survive unchanged apart from compression")
	}
}

func TestPipeline_EncoderFailureSurfaces(t *testing.T) {
	cfg := fullConfig()
	cfg.CompressionLevel = 42
	pipe := New(cfg)
	profile := ClientProfile{
		DeviceClass:       DeviceMobile,
		NetworkQuality:    NetworkSlow,
		AcceptedEncodings: []string{"gzip"},
	}

	if _, _, err := pipe.Transform([]byte(`{"id":1}`), "/api/v1/users/me", profile); err == nil {
		t.Error("expected an error from an invalid compression level")
	}
}

func TestResult_CompressionRatio(t *testing.T) {
	tests := []struct {
		name        string
		original    int
		optimized   int
		wantRatio   float64
		wantPercent int
	}{
		{"half the size", 1000, 500, 0.5, 50},
		{"no change", 1000, 1000, 0, 0},
		{"empty original", 0, 0, 0, 0},
		{"grew", 1000, 1500, -0.5, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Result{OriginalSize: tt.original, OptimizedSize: tt.optimized}
			if got := r.CompressionRatio(); got != tt.wantRatio {
				t.Errorf("CompressionRatio() = %v, want %v", got, tt.wantRatio)
			}
			if got := r.RatioPercent(); got != tt.wantPercent {
				t.Errorf("RatioPercent() = %v, want %v", got, tt.wantPercent)
			}
		})
	}
}
