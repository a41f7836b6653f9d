// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

// Package middleware provides HTTP middleware for the Mobileopt server.
//
// The centerpiece is Optimization, which detects client capabilities from
// request headers and rewrites qualifying responses through the optimize
// pipeline. RequestID and PrometheusMetrics supply request tracing and
// instrumentation for every route.
package middleware
