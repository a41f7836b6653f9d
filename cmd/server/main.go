// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

// Package main is the entry point for the Mobileopt server application.
//
// Mobileopt sits in front of the Farelane ticketing API and adapts JSON
// responses for mobile clients: field projection per endpoint, payload
// truncation on slow networks, CDN image URL rewriting, and response
// compression, all driven by capability detection from request headers.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: zerolog with configurable level, format, and caller info
//  3. Optimization pipeline: field selection, adaptive response, image
//     rewriting, and compression stages built from configuration
//  4. HTTP Server: REST API with Prometheus metrics and health probes
//  5. Supervisor: suture v4 tree managing the HTTP server lifecycle
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//
// # Example Usage
//
// Development with console logs:
//
//	export LOG_FORMAT=console
//	export LOG_LEVEL=debug
//	./mobileopt
//
// Production with field rules from a config file:
//
//	export CONFIG_PATH=/etc/mobileopt/config.yaml
//	export CORS_ORIGINS=https://app.farelane.com
//	./mobileopt
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farelane/mobileopt/internal/api"
	"github.com/farelane/mobileopt/internal/config"
	"github.com/farelane/mobileopt/internal/logging"
	"github.com/farelane/mobileopt/internal/optimize"
	"github.com/farelane/mobileopt/internal/supervisor"
	"github.com/farelane/mobileopt/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting Mobileopt with supervisor tree")
	logging.Info().
		Int("field_rules", len(cfg.Optimization.FieldRules)).
		Bool("compression", cfg.Optimization.Compression).
		Bool("field_selection", cfg.Optimization.FieldSelection).
		Bool("image_optimization", cfg.Optimization.ImageOptimization).
		Bool("adaptive_response", cfg.Optimization.AdaptiveResponse).
		Msg("Configuration loaded")

	// Build the optimization pipeline from configuration
	pipeline := optimize.New(optimize.Config{
		CompressionEnabled:       cfg.Optimization.Compression,
		CompressionLevel:         cfg.Optimization.CompressionLevel,
		FieldSelectionEnabled:    cfg.Optimization.FieldSelection,
		AdaptiveResponseEnabled:  cfg.Optimization.AdaptiveResponse,
		ImageOptimizationEnabled: cfg.Optimization.ImageOptimization,
		MaxResponseSize:          cfg.Optimization.MaxResponseSize,
		FieldRules:               cfg.Optimization.FieldRules,
	})

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for CI/CD testing!")
	}

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled
	chiMiddleware := api.NewChiMiddleware(mwConfig)

	handler := api.NewHandler()
	router := api.NewRouter(handler, chiMiddleware, pipeline)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
