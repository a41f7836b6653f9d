// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

// Package logging provides centralized zerolog-based structured logging for Mobileopt.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for development.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for development (human-readable)
//   - Context-aware logging with request ID propagation
//   - slog adapter for suture v4 integration
//
// # Quick Start
//
//	import "github.com/farelane/mobileopt/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("endpoint", "/api/v1/events").Msg("Request served")
//	logging.Error().Err(err).Int("code", 500).Msg("Request failed")
//
//	// Context-aware logging (attaches request_id when present)
//	logging.Ctx(ctx).Info().Msg("Processing")
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//
// # Thread Safety
//
// The global logger is guarded by a read-write mutex. Init and SetLogger may
// be called at any time; the event constructors take the read lock.
package logging
