package form

import "formstate/signal"

// Field is the reactive record for one path: a derived value, four
// interaction flags, and a derived error list. At most one Field exists
// per path at any time; the Form caches them so external subscribers keep
// a live handle across resets and reindexing.
type Field struct {
	path string
	form *Form

	value  *signal.Computed[any]
	errors *signal.Computed[[]string]

	modified     *signal.Value[bool]
	visited      *signal.Value[bool]
	validating   *signal.Value[bool]
	wasValidated *signal.Value[bool]
}

// flagSnapshot carries a field's flags across an array reindex.
type flagSnapshot struct {
	modified     bool
	visited      bool
	validating   bool
	wasValidated bool
}

func newField(f *Form, path string) *Field {
	fld := &Field{
		path:         path,
		form:         f,
		modified:     signal.NewValue(false),
		visited:      signal.NewValue(false),
		validating:   signal.NewValue(false),
		wasValidated: signal.NewValue(false),
	}
	fld.value = signal.NewComputed(func() any {
		f.dataVersion.Get()
		return f.data.Get(path)
	})
	fld.errors = signal.NewComputed(func() []string {
		f.errorsVersion.Get()
		return f.validator.FieldErrors(path)
	})
	return fld
}

// Path returns the field's dot path.
func (fld *Field) Path() string {
	return fld.path
}

// Value returns the current value at the field's path.
func (fld *Field) Value() any {
	return fld.value.Get()
}

// Errors returns the validation errors currently attached to the field.
func (fld *Field) Errors() []string {
	return fld.errors.Get()
}

// IsValid reports whether the field has no errors.
func (fld *Field) IsValid() bool {
	return len(fld.errors.Get()) == 0
}

// Modified reports whether the value was changed through SetValue.
func (fld *Field) Modified() bool {
	return fld.modified.Get()
}

// Visited reports whether the field was touched.
func (fld *Field) Visited() bool {
	return fld.visited.Get()
}

// Validating reports whether a validator call for the field is in flight.
func (fld *Field) Validating() bool {
	return fld.validating.Get()
}

// WasValidated reports whether the field was explicitly validated at least
// once. It gates re-validation when array elements relocate.
func (fld *Field) WasValidated() bool {
	return fld.wasValidated.Get()
}

// SetVisited marks or unmarks the field as touched.
func (fld *Field) SetVisited(v bool) {
	fld.visited.Set(v)
}

// SetModified marks or unmarks the field as dirty.
func (fld *Field) SetModified(v bool) {
	fld.modified.Set(v)
}

func (fld *Field) snapshot() flagSnapshot {
	return flagSnapshot{
		modified:     fld.modified.Peek(),
		visited:      fld.visited.Peek(),
		validating:   fld.validating.Peek(),
		wasValidated: fld.wasValidated.Peek(),
	}
}

func (fld *Field) applySnapshot(snap flagSnapshot) {
	fld.modified.Set(snap.modified)
	fld.visited.Set(snap.visited)
	fld.validating.Set(snap.validating)
	fld.wasValidated.Set(snap.wasValidated)
}

func (fld *Field) reset() {
	fld.applySnapshot(flagSnapshot{})
}
