// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables, in that precedence
// order (env highest).
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Optimization OptimizationConfig `koanf:"optimization"`
	Security     SecurityConfig     `koanf:"security"`
	Logging      LoggingConfig      `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
type ServerConfig struct {
	Port    int           `koanf:"port" validate:"required,min=1,max=65535"`
	Host    string        `koanf:"host" validate:"required"`
	Timeout time.Duration `koanf:"timeout"`
}

// OptimizationConfig controls the response optimization pipeline.
//
// Environment Variables:
//   - OPT_COMPRESSION: Enable the compression stage (default: true)
//   - OPT_COMPRESSION_LEVEL: Codec level 1-9 (default: 6)
//   - OPT_FIELD_SELECTION: Enable field projection (default: true)
//   - OPT_IMAGE_OPTIMIZATION: Enable image URL rewriting (default: true)
//   - OPT_ADAPTIVE_RESPONSE: Enable array truncation for mobile (default: true)
//   - OPT_MAX_RESPONSE_SIZE: Advisory response size ceiling in bytes
//
// FieldRules maps an endpoint route path to the allow-list of dot-notation
// field paths served to optimized clients. Rules are only expressible in the
// YAML config file; there is no flat env encoding for them.
type OptimizationConfig struct {
	Compression       bool                `koanf:"compression"`
	CompressionLevel  int                 `koanf:"compression_level" validate:"min=1,max=9"`
	FieldSelection    bool                `koanf:"field_selection"`
	ImageOptimization bool                `koanf:"image_optimization"`
	AdaptiveResponse  bool                `koanf:"adaptive_response"`
	MaxResponseSize   int64               `koanf:"max_response_size" validate:"min=0"`
	FieldRules        map[string][]string `koanf:"field_rules"`
}

// SecurityConfig holds request admission settings.
//
// Environment Variables:
//   - RATE_LIMIT_REQUESTS: Requests allowed per window (default: 100)
//   - RATE_LIMIT_WINDOW: Window duration (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting entirely (default: false)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Validate checks cross-field constraints that struct tags cannot express.
// Tag-level constraints are enforced separately by validateStruct.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}

	if c.Optimization.Compression && (c.Optimization.CompressionLevel < 1 || c.Optimization.CompressionLevel > 9) {
		return fmt.Errorf("optimization.compression_level must be 1-9, got %d", c.Optimization.CompressionLevel)
	}

	for endpoint, fields := range c.Optimization.FieldRules {
		if endpoint == "" {
			return fmt.Errorf("optimization.field_rules contains an empty endpoint key")
		}
		if len(fields) == 0 {
			return fmt.Errorf("optimization.field_rules[%s] has no field paths; remove the rule or add paths", endpoint)
		}
		for _, f := range fields {
			if f == "" {
				return fmt.Errorf("optimization.field_rules[%s] contains an empty field path", endpoint)
			}
		}
	}

	return nil
}
