// Package listops provides the in-place insert/remove/move primitives used
// for array-valued form fields and for index remapping. All three are
// single-pass manual shifts without intermediate allocation.
package listops

import "formstate/utils"

// Insert places item at index, shifting later elements one slot right.
// The index is clamped into [0, len]; inserting at or past the end appends.
// The (possibly grown) slice is returned.
func Insert[T any](s []T, index int, item T) []T {
	index = utils.Clamp(0, index, len(s))

	var zero T
	s = append(s, zero)
	for i := len(s) - 1; i > index; i-- {
		s[i] = s[i-1]
	}
	s[index] = item
	return s
}

// Remove deletes the element at index, shifting later elements one slot
// left and shortening the slice by one. An out-of-range index is a no-op.
func Remove[T any](s []T, index int) []T {
	if !utils.IsInRange(0, index, len(s)-1) {
		return s
	}

	for i := index; i < len(s)-1; i++ {
		s[i] = s[i+1]
	}
	var zero T
	s[len(s)-1] = zero
	return s[:len(s)-1]
}

// Move extracts the element at from and reinserts it at to; every element
// strictly between the two positions shifts by exactly one slot toward the
// vacated end (drag-and-drop semantics). Equal or out-of-range indices are
// a no-op.
func Move[T any](s []T, from, to int) []T {
	if from == to ||
		!utils.IsInRange(0, from, len(s)-1) ||
		!utils.IsInRange(0, to, len(s)-1) {
		return s
	}

	item := s[from]
	if from < to {
		for i := from; i < to; i++ {
			s[i] = s[i+1]
		}
	} else {
		for i := from; i > to; i-- {
			s[i] = s[i-1]
		}
	}
	s[to] = item
	return s
}
