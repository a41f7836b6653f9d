// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/farelane/mobileopt/internal/logging"
	"github.com/farelane/mobileopt/internal/metrics"
	"github.com/farelane/mobileopt/internal/optimize"
)

// Diagnostic headers set by the optimization middleware.
const (
	HeaderClientType          = "X-Client-Type"
	HeaderScreenSize          = "X-Screen-Size"
	HeaderNetworkType         = "X-Network-Type"
	HeaderOptimizationApplied = "X-Optimization-Applied"
	HeaderOriginalSize        = "X-Original-Size"
	HeaderOptimizedSize       = "X-Optimized-Size"
	HeaderCompressionRatio    = "X-Compression-Ratio"
	HeaderFieldsRemoved       = "X-Fields-Removed"
)

// Optimization returns middleware that runs every response through the
// optimization pipeline for clients that warrant it.
//
// Client capabilities are detected on every request and echoed back in
// diagnostic headers regardless of whether optimization runs. For qualifying
// clients the response body is buffered, transformed, and re-emitted; any
// pipeline failure falls back to the unmodified body so a broken optimizer
// can never break the API.
func Optimization(pipe *optimize.Pipeline) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := optimize.Detect(r.Header)

			w.Header().Set(HeaderClientType, string(profile.DeviceClass))
			w.Header().Set(HeaderScreenSize, string(profile.ScreenBucket))
			w.Header().Set(HeaderNetworkType, string(profile.NetworkQuality))

			if !profile.ShouldOptimize() {
				next.ServeHTTP(w, r)
				return
			}

			buf := &bufferingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(buf, r)

			start := time.Now()
			out, result, err := transform(pipe, buf.body.Bytes(), r.URL.Path, profile)
			if err != nil {
				reason := "error"
				if _, panicked := err.(pipelinePanicError); panicked {
					reason = "panic"
				}
				metrics.RecordOptimizationFallback(reason)
				logging.Ctx(r.Context()).Warn().
					Err(err).
					Str("endpoint", r.URL.Path).
					Msg("optimization failed, serving original response")
				buf.flushOriginal()
				return
			}

			h := w.Header()
			if len(result.StagesApplied) > 0 {
				h.Set(HeaderOptimizationApplied, strings.Join(result.StagesApplied, ", "))
			}
			h.Set(HeaderOriginalSize, strconv.Itoa(result.OriginalSize))
			h.Set(HeaderOptimizedSize, strconv.Itoa(result.OptimizedSize))
			h.Set(HeaderCompressionRatio, strconv.Itoa(result.RatioPercent())+"%")
			if result.FieldsRemoved > 0 {
				h.Set(HeaderFieldsRemoved, strconv.Itoa(result.FieldsRemoved))
			}
			if result.Encoding != optimize.EncodingIdentity {
				h.Set("Content-Encoding", result.Encoding)
				// Handlers may have set Vary themselves; never duplicate the entry.
				if !slices.Contains(h.Values("Vary"), "Accept-Encoding") {
					h.Add("Vary", "Accept-Encoding")
				}
			}
			h.Set("Content-Length", strconv.Itoa(len(out)))

			w.WriteHeader(buf.statusCode)
			if _, err := w.Write(out); err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("client went away mid-response")
			}

			metrics.RecordOptimization(
				string(profile.DeviceClass),
				string(profile.NetworkQuality),
				result.StagesApplied,
				int64(result.OriginalSize),
				int64(result.OptimizedSize),
				time.Since(start),
			)

			logging.Ctx(r.Context()).Debug().
				Str("endpoint", r.URL.Path).
				Str("device", string(profile.DeviceClass)).
				Str("network", string(profile.NetworkQuality)).
				Strs("stages", result.StagesApplied).
				Int("original_bytes", result.OriginalSize).
				Int("optimized_bytes", result.OptimizedSize).
				Msg("response optimized")
		})
	}
}

// pipelinePanicError marks a transform failure caused by a recovered panic.
type pipelinePanicError struct {
	value any
}

func (e pipelinePanicError) Error() string {
	return fmt.Sprintf("optimization pipeline panicked: %v", e.value)
}

// transform runs the pipeline with panic containment. A panic in any stage
// is converted into an error so the caller can fall back.
func transform(pipe *optimize.Pipeline, body []byte, endpoint string, profile optimize.ClientProfile) (out []byte, result *optimize.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = pipelinePanicError{value: rec}
		}
	}()
	return pipe.Transform(body, endpoint, profile)
}

// bufferingResponseWriter captures the downstream handler's response so it
// can be transformed before reaching the client.
type bufferingResponseWriter struct {
	http.ResponseWriter
	body        bytes.Buffer
	statusCode  int
	wroteHeader bool
}

// WriteHeader records the status code without forwarding it; the real
// header write happens after the pipeline has run.
func (b *bufferingResponseWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.statusCode = code
}

func (b *bufferingResponseWriter) Write(p []byte) (int, error) {
	return b.body.Write(p)
}

// flushOriginal emits the captured response untouched.
func (b *bufferingResponseWriter) flushOriginal() {
	b.ResponseWriter.Header().Set("Content-Length", strconv.Itoa(b.body.Len()))
	b.ResponseWriter.WriteHeader(b.statusCode)
	_, _ = b.ResponseWriter.Write(b.body.Bytes())
}
