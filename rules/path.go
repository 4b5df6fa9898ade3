package rules

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"formstate/datasource"
	"formstate/dotpath"
)

// PathSegment is one segment of a field path pattern. A slice segment
// additionally consumes one numeric index segment of the concrete path.
type PathSegment struct {
	Name    string
	IsSlice bool
}

// FieldPath is a parsed field path pattern.
type FieldPath struct {
	Segments []PathSegment
}

// ParsePath parses a field path pattern into a FieldPath.
// Supports: "field", "nested.field", "items[]", "items[].name".
func ParsePath(path string) (FieldPath, error) {
	if path == "" {
		return FieldPath{}, errors.New("empty path")
	}

	var segments []PathSegment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return FieldPath{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		isSlice := false
		name := part

		if strings.HasSuffix(part, "[]") {
			isSlice = true
			name = strings.TrimSuffix(part, "[]")

			if name == "" {
				return FieldPath{}, fmt.Errorf("invalid path %q: slice without field name", path)
			}
		}

		segments = append(segments, PathSegment{
			Name:    name,
			IsSlice: isSlice,
		})
	}

	return FieldPath{Segments: segments}, nil
}

// String renders the pattern back to its textual form.
func (p FieldPath) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Name)
		if seg.IsSlice {
			b.WriteString("[]")
		}
	}
	return b.String()
}

// Match reports whether the concrete path segments are covered by the
// pattern; each slice segment requires a purely numeric index segment.
func (p FieldPath) Match(segments []string) bool {
	i := 0
	for _, seg := range p.Segments {
		if i >= len(segments) || segments[i] != seg.Name {
			return false
		}
		i++
		if seg.IsSlice {
			if i >= len(segments) {
				return false
			}
			if _, ok := dotpath.Index(segments[i]); !ok {
				return false
			}
			i++
		}
	}
	return i == len(segments)
}

// Indices extracts the concrete array indices a matching path binds to the
// pattern's slice segments, in order.
func (p FieldPath) Indices(segments []string) []int {
	var indices []int
	i := 0
	for _, seg := range p.Segments {
		if i >= len(segments) || segments[i] != seg.Name {
			return indices
		}
		i++
		if seg.IsSlice {
			if i >= len(segments) {
				return indices
			}
			if idx, ok := dotpath.Index(segments[i]); ok {
				indices = append(indices, idx)
			}
			i++
		}
	}
	return indices
}

// Concretize substitutes indices for the pattern's slice segments and
// returns the resulting concrete dot path. It fails when fewer indices
// are supplied than the pattern has slice segments.
func (p FieldPath) Concretize(indices []int) (string, bool) {
	var b strings.Builder
	next := 0
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Name)
		if seg.IsSlice {
			if next >= len(indices) {
				return "", false
			}
			b.WriteByte('.')
			b.WriteString(strconv.Itoa(indices[next]))
			next++
		}
	}
	return b.String(), true
}

// Expand enumerates every concrete path the pattern covers in the given
// data, walking actual array lengths for slice segments.
func (p FieldPath) Expand(data *datasource.DataSource) []string {
	paths := []string{""}
	for _, seg := range p.Segments {
		var next []string
		for _, base := range paths {
			cur := seg.Name
			if base != "" {
				cur = base + "." + seg.Name
			}
			if !seg.IsSlice {
				next = append(next, cur)
				continue
			}
			for i := range data.Len(cur) {
				next = append(next, cur+"."+strconv.Itoa(i))
			}
		}
		paths = next
	}
	return paths
}
