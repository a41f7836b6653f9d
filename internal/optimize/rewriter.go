// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// imageURLPattern matches strings that look like image URLs: a path ending
// in a known image extension, optionally followed by a query string.
var imageURLPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp|svg)(\?.*)?$`)

// Image quality query parameter values by client tier.
const (
	imageQualityMobileSlow = 60
	imageQualityMobile     = 75
	imageQualityDefault    = 85
)

// Image width query parameter values by screen bucket. Large screens get no
// width hint at all.
const (
	imageWidthSmall  = 400
	imageWidthMedium = 800
)

// RewriteImages walks a decoded JSON value and rewrites every string that
// looks like an image URL, appending format/quality/width query parameters
// tuned to the client profile. Pre-existing query parameters are preserved.
// Non-image strings and non-string values pass through untouched.
//
// The second return value is the number of URLs rewritten.
func RewriteImages(value any, profile ClientProfile) (any, int) {
	rewritten := 0
	out := rewriteValue(value, profile, &rewritten)
	return out, rewritten
}

func rewriteValue(value any, profile ClientProfile, rewritten *int) any {
	switch v := value.(type) {
	case string:
		if !imageURLPattern.MatchString(v) {
			return v
		}
		out, ok := rewriteImageURL(v, profile)
		if !ok {
			return v
		}
		*rewritten++
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = rewriteValue(elem, profile, rewritten)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = rewriteValue(elem, profile, rewritten)
		}
		return out
	default:
		return value
	}
}

// rewriteImageURL appends optimization parameters to a single image URL.
// Relative references parse and serialize as path+query, so they round-trip
// without needing a base URL. Unparseable strings are left alone.
func rewriteImageURL(raw string, profile ClientProfile) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return raw, false
	}

	q := u.Query()

	// Only upgrade the format when the URL does not already declare webp,
	// either by extension or by an explicit format parameter.
	if profile.AcceptsWebP && !declaresWebP(u, q) {
		q.Set("format", ImageFormatWebP)
	}

	q.Set("quality", strconv.Itoa(imageQuality(profile)))

	switch profile.ScreenBucket {
	case ScreenSmall:
		q.Set("width", strconv.Itoa(imageWidthSmall))
	case ScreenMedium:
		q.Set("width", strconv.Itoa(imageWidthMedium))
	case ScreenLarge:
		// Full-size assets for large screens.
	}

	u.RawQuery = q.Encode()
	return u.String(), true
}

func declaresWebP(u *url.URL, q url.Values) bool {
	return strings.HasSuffix(strings.ToLower(u.Path), "."+ImageFormatWebP) ||
		strings.EqualFold(q.Get("format"), ImageFormatWebP)
}

func imageQuality(profile ClientProfile) int {
	switch {
	case profile.DeviceClass == DeviceMobile && profile.NetworkQuality == NetworkSlow:
		return imageQualityMobileSlow
	case profile.DeviceClass == DeviceMobile:
		return imageQualityMobile
	default:
		return imageQualityDefault
	}
}
