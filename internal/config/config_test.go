// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.Optimization.Compression || cfg.Optimization.CompressionLevel != 6 {
		t.Errorf("compression defaults wrong: %+v", cfg.Optimization)
	}
	if cfg.Optimization.MaxResponseSize != 10<<20 {
		t.Errorf("MaxResponseSize = %d, want %d", cfg.Optimization.MaxResponseSize, 10<<20)
	}
	if cfg.Security.RateLimitReqs != 100 || cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("rate limit defaults wrong: %+v", cfg.Security)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults wrong: %+v", cfg.Logging)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
optimization:
  compression_level: 4
  field_rules:
    /api/v1/events:
      - id
      - name
      - venue.name
logging:
  level: debug
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Optimization.CompressionLevel != 4 {
		t.Errorf("CompressionLevel = %d, want 4", cfg.Optimization.CompressionLevel)
	}
	want := []string{"id", "name", "venue.name"}
	if got := cfg.Optimization.FieldRules["/api/v1/events"]; !reflect.DeepEqual(got, want) {
		t.Errorf("FieldRules = %v, want %v", got, want)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9090\n")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("OPT_COMPRESSION_LEVEL", "2")
	t.Setenv("CORS_ORIGINS", "https://app.farelane.com, https://admin.farelane.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, env must win over file", cfg.Server.Port)
	}
	if cfg.Optimization.CompressionLevel != 2 {
		t.Errorf("CompressionLevel = %d, want 2", cfg.Optimization.CompressionLevel)
	}
	wantOrigins := []string{"https://app.farelane.com", "https://admin.farelane.com"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
}

func TestLoad_UnmappedEnvIgnored(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PATH_INFO", "/should/not/leak")

	if _, err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestValidate_CompressionLevel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Optimization.CompressionLevel = 12

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for compression level 12")
	}
	if !strings.Contains(err.Error(), "compression_level") {
		t.Errorf("error does not name the field: %v", err)
	}
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name  string
		rules map[string][]string
		ok    bool
	}{
		{"valid rule", map[string][]string{"/api/v1/users/me": {"id", "name"}}, true},
		{"empty endpoint", map[string][]string{"": {"id"}}, false},
		{"empty field list", map[string][]string{"/api/v1/feed": {}}, false},
		{"empty field path", map[string][]string{"/api/v1/feed": {"items", ""}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Optimization.FieldRules = tt.rules
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidate_ServerPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"OPT_COMPRESSION", "optimization.compression"},
		{"LOG_LEVEL", "logging.level"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
