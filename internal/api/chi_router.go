// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farelane/mobileopt/internal/middleware"
	"github.com/farelane/mobileopt/internal/optimize"
)

// Router wires handlers, middleware factories, and the optimization
// pipeline into an http.Handler.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	pipeline      *optimize.Pipeline
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, mw *ChiMiddleware, pipeline *optimize.Pipeline) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		pipeline:      pipeline,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so existing middleware works with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints get permissive rate limiting for monitoring tools
	// and skip the optimization pipeline entirely.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Catalog endpoints run through the full optimization pipeline.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(middleware.Optimization(router.pipeline))

		r.Get("/events", router.handler.Events)
		r.Get("/events/{id}", router.handler.EventByID)
	})

	// Prometheus scrape endpoint, outside the optimized group.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
