package form

import (
	"context"

	"formstate/utils"
)

// ArrayAppend adds item after the last element of the array at path and
// relocates dependent field state.
func (f *Form) ArrayAppend(ctx context.Context, path string, item any) {
	f.ArrayInsert(ctx, path, f.data.Len(path), item)
}

// ArrayPrepend adds item before the first element of the array at path and
// relocates dependent field state.
func (f *Form) ArrayPrepend(ctx context.Context, path string, item any) {
	f.ArrayInsert(ctx, path, 0, item)
}

// ArrayInsert places item at index in the array at path, shifting later
// elements right, then relocates dependent field state. A non-array path
// gains a new single-element array; the index is clamped into range.
func (f *Form) ArrayInsert(ctx context.Context, path string, index int, item any) {
	if _, ok := f.data.Get(path).([]any); ok {
		index = utils.Clamp(0, index, f.data.Len(path))
	} else {
		index = 0
	}

	f.data.Insert(path, index, item)
	bump(f.dataVersion)
	f.reindex(ctx, path, opInsert, index, 0)
}

// ArrayRemove deletes the element at index from the array at path, shifting
// later elements left, then relocates dependent field state. A non-array
// path or out-of-range index is a no-op.
func (f *Form) ArrayRemove(ctx context.Context, path string, index int) {
	if !utils.IsInRange(0, index, f.data.Len(path)-1) {
		return
	}

	f.data.RemoveAt(path, index)
	bump(f.dataVersion)
	f.reindex(ctx, path, opRemove, index, 0)
}

// ArrayMove drags the element at from to position to within the array at
// path, then relocates dependent field state. Equal or out-of-range
// indices are a no-op.
func (f *Form) ArrayMove(ctx context.Context, path string, from, to int) {
	n := f.data.Len(path)
	if from == to ||
		!utils.IsInRange(0, from, n-1) ||
		!utils.IsInRange(0, to, n-1) {
		return
	}

	f.data.Move(path, from, to)
	bump(f.dataVersion)
	f.reindex(ctx, path, opMove, from, to)
}
