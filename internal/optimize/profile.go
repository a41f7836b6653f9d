// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

// DeviceClass categorizes the requesting client hardware.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceTablet  DeviceClass = "tablet"
	DeviceDesktop DeviceClass = "desktop"
	DeviceUnknown DeviceClass = "unknown"
)

// ScreenBucket is a coarse viewport size classification.
type ScreenBucket string

const (
	ScreenSmall  ScreenBucket = "small"
	ScreenMedium ScreenBucket = "medium"
	ScreenLarge  ScreenBucket = "large"
)

// NetworkQuality is a heuristic connection quality classification.
// It is derived from client hints, not measured.
type NetworkQuality string

const (
	NetworkSlow    NetworkQuality = "slow"
	NetworkFast    NetworkQuality = "fast"
	NetworkUnknown NetworkQuality = "unknown"
)

// Content-Encoding tokens recognized by the encoder.
const (
	EncodingGzip     = "gzip"
	EncodingDeflate  = "deflate"
	EncodingBrotli   = "br"
	EncodingIdentity = "identity"
)

// Image format tokens used by the URL rewriter.
const (
	ImageFormatWebP = "webp"
	ImageFormatJPEG = "jpeg"
)

// Response size ceilings by client tier. Informational only: no pipeline
// stage rejects or truncates payloads that exceed the ceiling. The value is
// exported on the profile for external consumers to apply their own policy.
const (
	ceilingMobileSlow = 1 << 20  // 1 MiB
	ceilingMobile     = 5 << 20  // 5 MiB
	ceilingDefault    = 10 << 20 // 10 MiB
)

// ClientProfile describes the detected capabilities of a requesting client.
// It is computed exactly once per request by Detect and never mutated; all
// transformation stages read it but do not write to it.
type ClientProfile struct {
	DeviceClass    DeviceClass
	ScreenBucket   ScreenBucket
	NetworkQuality NetworkQuality

	// AcceptedEncodings lists the content encodings the client accepts,
	// in detection order (gzip, deflate, br), not client preference order.
	AcceptedEncodings []string

	// AcceptsWebP is true when the Accept header names image/webp.
	AcceptsWebP bool

	// ResponseSizeCeiling is the advisory payload ceiling in bytes for this
	// client tier. Not enforced by the pipeline.
	ResponseSizeCeiling int64

	// PreferredImageFormat is webp when the client accepts it, jpeg otherwise.
	PreferredImageFormat string
}

// ShouldOptimize reports whether the transformation pipeline applies to this
// client. Only mobile devices and slow networks qualify; everything else
// takes the unmodified response path.
func (p ClientProfile) ShouldOptimize() bool {
	return p.DeviceClass == DeviceMobile || p.NetworkQuality == NetworkSlow
}

// AcceptsEncoding reports whether the client accepts the given encoding token.
func (p ClientProfile) AcceptsEncoding(token string) bool {
	for _, e := range p.AcceptedEncodings {
		if e == token {
			return true
		}
	}
	return false
}
