// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

// Array truncation ceilings by network quality. Applied to every array the
// recursive walk finds, at any depth. Fixed-cardinality arrays (coordinate
// pairs and the like) are deliberately not exempted; the blanket rule keeps
// the stage predictable.
const (
	maxArrayItemsSlow = 10
	maxArrayItemsFast = 25
)

// Adapt truncates array-valued fields to a ceiling tied to the client's
// network quality. It is a no-op for anything but mobile devices. The walk
// recurses into retained array elements and object fields, so nested arrays
// inside truncated elements are truncated too. Element order is never
// changed and short arrays are never padded.
//
// The second return value is the number of arrays that were actually
// truncated; zero means the payload came back unchanged.
func Adapt(value any, profile ClientProfile) (any, int) {
	if profile.DeviceClass != DeviceMobile {
		return value, 0
	}

	limit := maxArrayItemsFast
	if profile.NetworkQuality == NetworkSlow {
		limit = maxArrayItemsSlow
	}

	truncated := 0
	out := adaptValue(value, limit, &truncated)
	return out, truncated
}

func adaptValue(value any, limit int, truncated *int) any {
	switch v := value.(type) {
	case []any:
		elems := v
		if len(elems) > limit {
			elems = elems[:limit]
			*truncated++
		}
		out := make([]any, len(elems))
		for i, elem := range elems {
			out[i] = adaptValue(elem, limit, truncated)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = adaptValue(elem, limit, truncated)
		}
		return out
	default:
		return value
	}
}
