package dotpath

import "reflect"

// Clone deep-copies a nested map/slice tree. Values reachable from
// themselves (cyclic references) are reproduced as cycles in the copy
// instead of recursing forever; re-encountered containers are deduplicated
// by reference identity. Non-container values are copied as-is.
func Clone(value any) any {
	return cloneSeen(value, make(map[uintptr]any))
}

func cloneSeen(value any, seen map[uintptr]any) any {
	switch src := value.(type) {
	case map[string]any:
		if src == nil {
			return src
		}
		ptr := reflect.ValueOf(src).Pointer()
		if dup, ok := seen[ptr]; ok {
			return dup
		}
		dup := make(map[string]any, len(src))
		seen[ptr] = dup
		for k, v := range src {
			dup[k] = cloneSeen(v, seen)
		}
		return dup

	case []any:
		if src == nil {
			return src
		}
		ptr := reflect.ValueOf(src).Pointer()
		if dup, ok := seen[ptr]; ok {
			// Reuse only full-length aliases; overlapping sub-slices get
			// their own copy.
			if s, ok := dup.([]any); ok && len(s) == len(src) {
				return s
			}
		}
		dup := make([]any, len(src))
		seen[ptr] = dup
		for i, v := range src {
			dup[i] = cloneSeen(v, seen)
		}
		return dup

	default:
		return value
	}
}
