// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

// Stage name tokens reported in X-Optimization-Applied. They match the
// per-stage configuration toggles.
const (
	StageFieldSelection    = "field-selection"
	StageAdaptiveResponse  = "adaptive-response"
	StageImageOptimization = "image-optimization"
	StageCompression       = "compression"
)

// Result captures what one run of the pipeline did to one response. It is
// created fresh per request, consumed when the response headers are written,
// and never persisted.
type Result struct {
	// OriginalSize and OptimizedSize are byte counts of the serialized body
	// before and after the pipeline ran.
	OriginalSize  int
	OptimizedSize int

	// FieldsRemoved is the number of object keys the field projector dropped.
	FieldsRemoved int

	// StagesApplied lists, in execution order, the stages that actually
	// mutated the payload. A stage that ran but changed nothing is absent.
	StagesApplied []string

	// Encoding is the chosen Content-Encoding token (identity when the body
	// was not compressed).
	Encoding string
}

// CompressionRatio is the fraction of bytes saved, (original-optimized)/original.
// Zero when the original body was empty.
func (r Result) CompressionRatio() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-r.OptimizedSize) / float64(r.OriginalSize)
}

// RatioPercent is CompressionRatio as a truncated integer percentage, the
// form reported in the X-Compression-Ratio header.
func (r Result) RatioPercent() int {
	return int(r.CompressionRatio() * 100)
}
