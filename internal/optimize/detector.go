// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

import (
	"net/http"
	"strconv"
	"strings"
)

// Request headers consumed by the detector. Header lookup is case-insensitive
// via http.Header. The viewport and connection hints are custom headers set
// by the mobile apps.
const (
	headerUserAgent      = "User-Agent"
	headerAcceptEncoding = "Accept-Encoding"
	headerAccept         = "Accept"
	headerViewportWidth  = "X-Viewport-Width"
	headerConnectionType = "X-Connection-Type"
)

// tabletPatterns are checked before mobilePatterns: a tablet user agent
// (e.g. Android tablets, Kindle Fire) often also matches the generic mobile
// patterns, so tablet is a refinement that must win.
var tabletPatterns = []string{
	"ipad",
	"tablet",
	"kindle",
	"silk",
	"playbook",
}

var mobilePatterns = []string{
	"mobile",
	"android",
	"iphone",
	"ipod",
	"blackberry",
	"windows phone",
	"opera mini",
	"iemobile",
	"webos",
}

// slowConnectionTypes are the connection-type hint tokens classified as slow.
var slowConnectionTypes = map[string]bool{
	"slow-2g": true,
	"2g":      true,
	"3g":      true,
}

// Viewport width thresholds for explicit screen bucketing.
const (
	viewportSmallMax  = 768
	viewportMediumMax = 1024
)

// Detect derives a ClientProfile from request headers. It is a pure function
// and never fails: absent or malformed headers degrade to unknown/defaulted
// values rather than producing an error.
func Detect(h http.Header) ClientProfile {
	device := detectDeviceClass(h.Get(headerUserAgent))

	p := ClientProfile{
		DeviceClass:    device,
		ScreenBucket:   detectScreenBucket(h.Get(headerViewportWidth), device),
		NetworkQuality: detectNetworkQuality(h.Get(headerConnectionType), device),
		AcceptsWebP:    strings.Contains(h.Get(headerAccept), "image/webp"),
	}
	p.AcceptedEncodings = detectAcceptedEncodings(h.Get(headerAcceptEncoding))
	p.ResponseSizeCeiling = sizeCeiling(p.DeviceClass, p.NetworkQuality)

	if p.AcceptsWebP {
		p.PreferredImageFormat = ImageFormatWebP
	} else {
		p.PreferredImageFormat = ImageFormatJPEG
	}

	return p
}

// detectDeviceClass classifies a user agent string. Tablet patterns are
// tested first (see tabletPatterns). A present user agent that matches
// neither tablet nor mobile patterns is desktop; an absent user agent is
// unknown.
func detectDeviceClass(userAgent string) DeviceClass {
	if userAgent == "" {
		return DeviceUnknown
	}

	ua := strings.ToLower(userAgent)

	for _, pattern := range tabletPatterns {
		if strings.Contains(ua, pattern) {
			return DeviceTablet
		}
	}
	for _, pattern := range mobilePatterns {
		if strings.Contains(ua, pattern) {
			return DeviceMobile
		}
	}

	return DeviceDesktop
}

// detectScreenBucket uses the explicit viewport width hint when present and
// parseable, otherwise falls back to a default bucket per device class.
func detectScreenBucket(viewportWidth string, device DeviceClass) ScreenBucket {
	if viewportWidth != "" {
		if width, err := strconv.Atoi(strings.TrimSpace(viewportWidth)); err == nil && width > 0 {
			switch {
			case width < viewportSmallMax:
				return ScreenSmall
			case width < viewportMediumMax:
				return ScreenMedium
			default:
				return ScreenLarge
			}
		}
	}

	switch device {
	case DeviceMobile:
		return ScreenSmall
	case DeviceTablet:
		return ScreenMedium
	case DeviceDesktop:
		return ScreenLarge
	default:
		return ScreenMedium
	}
}

// detectNetworkQuality uses the explicit connection-type hint when present,
// otherwise assumes mobile devices are on slow networks. This is a heuristic,
// not a measurement.
func detectNetworkQuality(connectionType string, device DeviceClass) NetworkQuality {
	if ct := strings.ToLower(strings.TrimSpace(connectionType)); ct != "" {
		if slowConnectionTypes[ct] {
			return NetworkSlow
		}
		return NetworkFast
	}

	if device == DeviceMobile {
		return NetworkSlow
	}
	return NetworkFast
}

// detectAcceptedEncodings scans the Accept-Encoding value for supported
// tokens by substring match, deliberately not parsing quality values. All
// matches are recorded; the slice order reflects detection order (gzip,
// deflate, br), not client preference.
func detectAcceptedEncodings(acceptEncoding string) []string {
	if acceptEncoding == "" {
		return nil
	}

	ae := strings.ToLower(acceptEncoding)
	var encodings []string
	for _, token := range []string{EncodingGzip, EncodingDeflate, EncodingBrotli} {
		if strings.Contains(ae, token) {
			encodings = append(encodings, token)
		}
	}
	return encodings
}

func sizeCeiling(device DeviceClass, network NetworkQuality) int64 {
	switch {
	case device == DeviceMobile && network == NetworkSlow:
		return ceilingMobileSlow
	case device == DeviceMobile:
		return ceilingMobile
	default:
		return ceilingDefault
	}
}
