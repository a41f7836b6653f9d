// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Config is the plain-data configuration surface of the pipeline, handed in
// by the config package. Each stage can be toggled independently.
type Config struct {
	// CompressionEnabled toggles the encoder stage.
	CompressionEnabled bool

	// CompressionLevel is the codec level, 1-9.
	CompressionLevel int

	// FieldSelectionEnabled toggles the field projector stage.
	FieldSelectionEnabled bool

	// AdaptiveResponseEnabled toggles the payload adapter stage.
	AdaptiveResponseEnabled bool

	// ImageOptimizationEnabled toggles the image URL rewriter stage.
	ImageOptimizationEnabled bool

	// MaxResponseSize is advisory only; it is surfaced on the client profile
	// and never enforced by any stage.
	MaxResponseSize int64

	// FieldRules maps an endpoint identifier (route path) to the ordered
	// field-path allow-list the projector applies to that endpoint's
	// responses. Endpoints without a rule skip projection entirely.
	FieldRules map[string][]string
}

// Pipeline composes the transformation stages. It is immutable after New
// and safe for concurrent use; every transformation is scoped to the request
// that triggered it.
type Pipeline struct {
	cfg     Config
	encoder Encoder
}

// New builds a Pipeline from configuration. Components are constructed once
// at process startup and injected into the request path; there is no global
// pipeline instance.
func New(cfg Config) *Pipeline {
	return &Pipeline{
		cfg: cfg,
		encoder: Encoder{
			Enabled: cfg.CompressionEnabled,
			Level:   cfg.CompressionLevel,
		},
	}
}

// Rules returns the field allow-list configured for an endpoint, if any.
func (p *Pipeline) Rules(endpoint string) ([]string, bool) {
	fields, ok := p.cfg.FieldRules[endpoint]
	return fields, ok
}

// Transform runs the enabled stages over one serialized response body:
// field projection, payload adaptation and image rewriting on the decoded
// JSON value (in that fixed order), then re-serialization and encoding.
//
// Bodies that do not decode as JSON bypass the structural stages and go
// straight to the encoder. Any error aborts the whole transformation; the
// caller falls back to the original body, so no partially transformed
// response is ever visible.
func (p *Pipeline) Transform(body []byte, endpoint string, profile ClientProfile) ([]byte, *Result, error) {
	result := &Result{OriginalSize: len(body)}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		// Non-JSON payload: compression only.
		return p.encode(body, profile, result)
	}

	if p.cfg.FieldSelectionEnabled {
		if fields, ok := p.Rules(endpoint); ok {
			before := CountFields(value)
			value = Project(value, fields)
			if removed := before - CountFields(value); removed > 0 {
				result.FieldsRemoved = removed
				result.StagesApplied = append(result.StagesApplied, StageFieldSelection)
			}
		}
	}

	if p.cfg.AdaptiveResponseEnabled {
		adapted, truncated := Adapt(value, profile)
		if truncated > 0 {
			result.StagesApplied = append(result.StagesApplied, StageAdaptiveResponse)
		}
		value = adapted
	}

	if p.cfg.ImageOptimizationEnabled {
		rewritten, count := RewriteImages(value, profile)
		if count > 0 {
			result.StagesApplied = append(result.StagesApplied, StageImageOptimization)
		}
		value = rewritten
	}

	serialized, err := json.Marshal(value)
	if err != nil {
		return nil, nil, fmt.Errorf("serialize transformed payload: %w", err)
	}

	return p.encode(serialized, profile, result)
}

func (p *Pipeline) encode(body []byte, profile ClientProfile, result *Result) ([]byte, *Result, error) {
	encoded, token, err := p.encoder.Encode(body, profile)
	if err != nil {
		return nil, nil, fmt.Errorf("encode payload: %w", err)
	}

	result.Encoding = token
	result.OptimizedSize = len(encoded)
	if token != EncodingIdentity {
		result.StagesApplied = append(result.StagesApplied, StageCompression)
	}

	return encoded, result, nil
}
