// Package datasource owns the canonical form value: one nested map/slice
// tree addressed by dot paths, with the array primitives needed for
// repeatable fields. It composes dotpath traversal with listops shifting.
package datasource

import (
	"formstate/dotpath"
	"formstate/listops"
)

// DataSource wraps a root value. The zero root is an empty map; mutation
// happens in place except where a container must be replaced, in which
// case the new root is kept internally.
//
// A DataSource is not safe for concurrent mutation; the form layer
// confines it to a single goroutine.
type DataSource struct {
	root any
}

// New creates a DataSource over initial. A nil initial starts empty.
func New(initial map[string]any) *DataSource {
	if initial == nil {
		initial = make(map[string]any)
	}
	return &DataSource{root: initial}
}

// All returns the root value.
func (d *DataSource) All() any {
	return d.root
}

// Get resolves a path; unreachable paths yield nil.
func (d *DataSource) Get(path string) any {
	return dotpath.Get(d.root, path)
}

// Has reports whether the path exists, including keys holding nil.
func (d *DataSource) Has(path string) bool {
	return dotpath.Has(d.root, path)
}

// Set writes a value, materializing missing intermediates.
func (d *DataSource) Set(path string, value any) {
	d.root = dotpath.Set(d.root, path, value)
}

// Remove deletes the addressed map key or holes the addressed slice slot.
func (d *DataSource) Remove(path string) {
	dotpath.Remove(d.root, path)
}

// Len returns the length of the slice at path, or 0 if the path does not
// hold a slice.
func (d *DataSource) Len(path string) int {
	seq, _ := d.Get(path).([]any)
	return len(seq)
}

// Append inserts item after the last element of the slice at path.
func (d *DataSource) Append(path string, item any) {
	d.Insert(path, d.Len(path), item)
}

// Prepend inserts item before the first element of the slice at path.
func (d *DataSource) Prepend(path string, item any) {
	d.Insert(path, 0, item)
}

// Insert places item at index in the slice at path, shifting later
// elements right. If the path does not currently hold a slice, a new
// single-element slice is created and the requested index is ignored.
func (d *DataSource) Insert(path string, index int, item any) {
	seq, ok := d.Get(path).([]any)
	if !ok {
		d.Set(path, []any{item})
		return
	}
	d.Set(path, listops.Insert(seq, index, item))
}

// RemoveAt deletes the element at index from the slice at path, shifting
// later elements left. A non-slice path or out-of-range index is a no-op.
func (d *DataSource) RemoveAt(path string, index int) {
	seq, ok := d.Get(path).([]any)
	if !ok {
		return
	}
	d.Set(path, listops.Remove(seq, index))
}

// Move relocates the element at from to position to in the slice at path.
// A non-slice path, equal indices, or out-of-range indices are a no-op.
func (d *DataSource) Move(path string, from, to int) {
	seq, ok := d.Get(path).([]any)
	if !ok {
		return
	}
	d.Set(path, listops.Move(seq, from, to))
}

// Clone returns a new DataSource over a deep copy of the current value.
// Used to snapshot the reset baseline; the copy shares nothing with the
// original.
func (d *DataSource) Clone() *DataSource {
	return &DataSource{root: dotpath.Clone(d.root)}
}
