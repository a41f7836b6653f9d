// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

/*
Package api provides the HTTP REST API layer for Mobileopt.

This package wires the Chi router, the middleware stack, and the request
handlers that demonstrate the response optimization pipeline end to end.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - Handler: Request handlers for health probes and ticketing endpoints
  - ChiMiddleware: CORS, rate limiting, and security header factories
  - Response formatting: Standardized JSON responses with ETag support

Route Groups:

 1. Health (/api/v1/health): liveness and readiness probes. Rate limited
    generously and never passed through the optimization pipeline, so
    orchestrator probes always see the raw payload.

 2. Ticketing (/api/v1/events): event listing and detail endpoints wrapped
    in the full optimization chain. Responses to capable mobile clients are
    field-projected, truncated, image-rewritten, and compressed; desktop
    clients receive the original payload untouched.

 3. Metrics (/metrics): Prometheus exposition, outside both the rate
    limiter and the optimization chain.

Clients influence optimization through request headers (User-Agent,
X-Viewport-Width, X-Connection-Type, Accept, Accept-Encoding) and observe
the outcome through the X-Optimization-* diagnostic response headers.
*/
package api
