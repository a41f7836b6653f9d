// Mobileopt - Mobile Response Optimization for the Farelane Ticketing Platform
// Copyright 2026 Farelane Oy
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/farelane/mobileopt

package optimize

import "strings"

// Project reduces a decoded JSON value to the fields named in fieldPaths.
//
// Scalars pass through unchanged. Arrays are projected element-wise,
// preserving length and order. Objects are rebuilt from an empty map by
// copying each requested field:
//
//   - A bare key ("name") is copied only when the key is present in the
//     source object. A key holding an explicit null IS present and is
//     copied; a key that does not exist is skipped.
//   - A dotted path ("venue.name") descends into the named value. Objects
//     are descended directly; arrays apply the remaining path to every
//     element, so "sections.name" keeps just the name of each section. A
//     path whose segment lands on a scalar is skipped silently.
//
// Multiple dotted paths sharing a parent accumulate into the same nested
// result rather than overwriting each other. A bare key and dotted paths may
// name the same parent; the bare copy keeps the full value and the narrower
// dotted selections add nothing further. Project never fails on shape
// mismatches; paths that do not resolve are simply omitted.
func Project(value any, fieldPaths []string) any {
	switch v := value.(type) {
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Project(elem, fieldPaths)
		}
		return out
	case map[string]any:
		return projectObject(v, fieldPaths)
	default:
		return value
	}
}

func projectObject(obj map[string]any, fieldPaths []string) map[string]any {
	result := make(map[string]any, len(fieldPaths))

	// Dotted paths are grouped by head segment, preserving first-seen
	// order, so sibling paths project their shared parent exactly once.
	var heads []string
	groups := make(map[string][]string)

	for _, path := range fieldPaths {
		head, rest, nested := strings.Cut(path, ".")
		if !nested {
			// Presence check, not nil check: explicit nulls survive projection.
			if v, ok := obj[path]; ok {
				result[path] = v
			}
			continue
		}
		if _, seen := groups[head]; !seen {
			heads = append(heads, head)
		}
		groups[head] = append(groups[head], rest)
	}

	for _, head := range heads {
		parentVal, ok := obj[head]
		if !ok {
			continue
		}
		// A bare key already copied this parent wholesale; the full value
		// supersedes any narrower dotted selection.
		if _, taken := result[head]; taken {
			continue
		}
		if projected, ok := projectNested(parentVal, groups[head]); ok {
			result[head] = projected
		}
	}

	return result
}

// projectNested applies the remaining paths below a dotted segment. Objects
// recurse into projectObject; arrays apply the paths to every element. A
// scalar cannot satisfy a nested path, so the branch reports false and is
// dropped by the caller.
func projectNested(value any, paths []string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return projectObject(v, paths), true
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			if projected, ok := projectNested(elem, paths); ok {
				out[i] = projected
			} else {
				out[i] = elem
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// CountFields counts the total number of object keys in a decoded JSON
// value, recursively. Arrays contribute the counts of their elements. The
// pipeline uses the before/after delta to report how many fields a
// projection removed.
func CountFields(value any) int {
	switch v := value.(type) {
	case map[string]any:
		count := len(v)
		for _, elem := range v {
			count += CountFields(elem)
		}
		return count
	case []any:
		count := 0
		for _, elem := range v {
			count += CountFields(elem)
		}
		return count
	default:
		return 0
	}
}
