// Package dotpath implements dot-separated path access over nested
// map/slice trees (the decoded-JSON shape: map[string]any and []any).
//
// A path is a string of dot-separated segments. A purely numeric segment
// addresses a slice index, any other segment addresses a map key.
// Traversal fails soft: reading through a missing or non-container
// intermediate yields nil, writing materializes the missing intermediates.
package dotpath

import (
	"strconv"
	"strings"

	"formstate/utils"
)

// Split breaks a path into its segments. The empty path has no segments.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Join assembles a path from segments.
func Join(segments ...string) string {
	return strings.Join(segments, ".")
}

// Index reports whether a segment is purely numeric and returns its value.
func Index(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	idx, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Get resolves a path against root. The empty path returns root itself.
// Any missing or non-traversable intermediate yields nil.
func Get(root any, path string) any {
	cur := root
	for _, seg := range Split(path) {
		switch c := cur.(type) {
		case map[string]any:
			cur = c[seg]
		case []any:
			idx, ok := Index(seg)
			if !ok || !utils.IsInRange(0, idx, len(c)-1) {
				return nil
			}
			cur = c[idx]
		default:
			return nil
		}
	}
	return cur
}

// Has reports whether every segment of the path actually exists. A key
// present with a nil value exists; an unreachable path does not.
func Has(root any, path string) bool {
	cur := root
	for _, seg := range Split(path) {
		switch c := cur.(type) {
		case map[string]any:
			val, ok := c[seg]
			if !ok {
				return false
			}
			cur = val
		case []any:
			idx, ok := Index(seg)
			if !ok || !utils.IsInRange(0, idx, len(c)-1) {
				return false
			}
			cur = c[idx]
		default:
			return false
		}
	}
	return true
}

// Set writes value at path, materializing missing intermediates: a segment
// is created as a slice when the next segment is purely numeric, as a map
// otherwise. A non-container intermediate is overwritten with the
// appropriate container. Slices are extended (nil-padded) up to the
// addressed index. Returns the possibly replaced root; the empty path
// replaces root with value.
func Set(root any, path string, value any) any {
	return assign(root, Split(path), value)
}

func assign(cur any, segments []string, value any) any {
	if len(segments) == 0 {
		return value
	}

	seg := segments[0]
	if idx, ok := Index(seg); ok {
		seq, _ := cur.([]any)
		for len(seq) <= idx {
			seq = append(seq, nil)
		}
		seq[idx] = assign(seq[idx], segments[1:], value)
		return seq
	}

	m, ok := cur.(map[string]any)
	if !ok {
		m = make(map[string]any)
	}
	m[seg] = assign(m[seg], segments[1:], value)
	return m
}

// Remove deletes the map key or nils out the slice slot addressed by path.
// Slice slots are holed, not shifted; the slice keeps its length. Removing
// an unreachable path is a no-op.
func Remove(root any, path string) {
	segments := Split(path)
	if len(segments) == 0 {
		return
	}

	parent := Get(root, Join(segments[:len(segments)-1]...))
	last := segments[len(segments)-1]

	switch p := parent.(type) {
	case map[string]any:
		delete(p, last)
	case []any:
		if idx, ok := Index(last); ok && utils.IsInRange(0, idx, len(p)-1) {
			p[idx] = nil
		}
	}
}
