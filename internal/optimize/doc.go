// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

/*
Package optimize implements the per-response transformation pipeline that
adapts API payloads to the capabilities of the requesting client.

The pipeline is composed of five stages, driven by a ClientProfile derived
once per request from inbound headers:

  - Capability Detector: classifies the client (device class, screen bucket,
    network quality, accepted encodings, image format support) from request
    headers. Pure and total; malformed input degrades to defaults.
  - Field Projector: reduces a decoded JSON value to a declarative allow-list
    of dot-path fields configured per endpoint.
  - Payload Adapter: truncates array-valued fields to a ceiling tied to the
    client's network quality. Mobile clients only.
  - Image URL Rewriter: appends format/quality/width query parameters to
    image-like URLs found anywhere in the payload.
  - Encoder: compresses the serialized payload using the best mutually
    supported content encoding (br > gzip > deflate).

Stage order is fixed: projection, adaptation, rewriting, then encoding.
The Pipeline type composes the stages; the HTTP-facing orchestration lives
in internal/middleware.

All stages are pure functions over decoded JSON values (map[string]any,
[]any, string, float64, bool, nil). The pipeline holds no per-request state
and is safe for concurrent use across in-flight requests.

Usage:

	pipe := optimize.New(optimize.Config{
	    CompressionEnabled: true,
	    CompressionLevel:   6,
	    FieldRules: map[string][]string{
	        "/api/v1/events": {"id", "name", "venue.name"},
	    },
	})

	profile := optimize.Detect(r.Header)
	if profile.ShouldOptimize() {
	    body, result, err := pipe.Transform(raw, r.URL.Path, profile)
	    ...
	}
*/
package optimize
