package form

import (
	"context"
	"log/slog"

	"formstate/datasource"
	"formstate/signal"
)

// Form is the top-level controller: it owns the data source, the validator
// collaborator, and the field registry, and exposes the operation surface
// plus form-level reactive aggregates.
//
// A Form must be confined to a single goroutine.
type Form struct {
	data      *datasource.DataSource
	baseline  *datasource.DataSource
	validator Validator
	logger    *slog.Logger

	fields        map[string]*Field
	fieldsVersion *signal.Value[int]
	dataVersion   *signal.Value[int]
	errorsVersion *signal.Value[int]

	submitting *signal.Value[bool]
	validating *signal.Value[bool]

	anyModified *signal.Computed[bool]
	anyVisited  *signal.Computed[bool]
	valid       *signal.Computed[bool]
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used at the fail-open validation boundary.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) { f.logger = l }
}

// New creates a Form over a deep-cloned copy-independent baseline of
// initial. The baseline is retained immutably and restored by Reset.
func New(initial map[string]any, v Validator, opts ...Option) *Form {
	f := &Form{
		data:          datasource.New(initial),
		validator:     v,
		logger:        slog.Default(),
		fields:        make(map[string]*Field),
		fieldsVersion: signal.NewValue(0),
		dataVersion:   signal.NewValue(0),
		errorsVersion: signal.NewValue(0),
		submitting:    signal.NewValue(false),
		validating:    signal.NewValue(false),
	}
	f.baseline = f.data.Clone()

	for _, opt := range opts {
		opt(f)
	}

	// Every flag is read even after a hit so each one stays a tracked
	// dependency of the aggregate.
	f.anyModified = signal.NewComputed(func() bool {
		f.fieldsVersion.Get()
		found := false
		for _, fld := range f.fields {
			if fld.modified.Get() {
				found = true
			}
		}
		return found
	})
	f.anyVisited = signal.NewComputed(func() bool {
		f.fieldsVersion.Get()
		found := false
		for _, fld := range f.fields {
			if fld.visited.Get() {
				found = true
			}
		}
		return found
	})
	f.valid = signal.NewComputed(func() bool {
		f.errorsVersion.Get()
		return f.validator.IsValid()
	})

	return f
}

// Field returns the Field for path, creating it on first access. The
// returned instance is identity-stable for the life of the path.
func (f *Form) Field(path string) *Field {
	if fld, ok := f.fields[path]; ok {
		return fld
	}
	fld := newField(f, path)
	f.fields[path] = fld
	bump(f.fieldsVersion)
	return fld
}

// Value returns the current value at path.
func (f *Form) Value(path string) any {
	return f.Field(path).Value()
}

// Values returns the whole data tree.
func (f *Form) Values() any {
	f.dataVersion.Get()
	return f.data.All()
}

// Data exposes the underlying data source, e.g. for submit handlers.
func (f *Form) Data() *datasource.DataSource {
	return f.data
}

// SetValueOptions tunes a single SetValue call. Nil pointers take the
// defaults documented per field.
type SetValueOptions struct {
	// Validate forces or suppresses the single-field validation that
	// follows the write. Defaults to the resolved value of Dirty, so a
	// silent programmatic set (Dirty: false) skips validation unless
	// explicitly requested.
	Validate *bool
	// Touch marks the field visited. Defaults to true.
	Touch *bool
	// Dirty marks the field modified. Defaults to true.
	Dirty *bool
}

// Bool returns a pointer to v, for use in SetValueOptions.
func Bool(v bool) *bool {
	return &v
}

// SetValue writes value at path, updates the field's flags per opts, and —
// when validation resolves true — runs a single-field validation before
// returning. It never fails; validator trouble is absorbed fail-open.
func (f *Form) SetValue(ctx context.Context, path string, value any, opts *SetValueOptions) {
	if opts == nil {
		opts = &SetValueOptions{}
	}
	touch := resolve(opts.Touch, true)
	dirty := resolve(opts.Dirty, true)
	validate := resolve(opts.Validate, dirty)

	f.data.Set(path, value)
	bump(f.dataVersion)

	fld := f.Field(path)
	if touch {
		fld.visited.Set(true)
	}
	if dirty {
		fld.modified.Set(true)
	}

	if validate {
		f.ValidateField(ctx, path)
	}
}

// ValidateField validates a single field, then one round of its dependent
// fields, and reports whether the field is valid. Validator failures are
// logged and treated as "no errors" (fail-open).
func (f *Form) ValidateField(ctx context.Context, path string) bool {
	f.runValidations(ctx, []string{path})
	if deps := f.validator.DependentFields(path); len(deps) > 0 {
		f.runValidations(ctx, deps)
	}
	return f.validator.IsFieldValid(path)
}

// Validate runs full-form validation, replaces the cached error map with
// the result, marks every registered field as validated, and reports
// overall validity. A validator failure is logged and treated as a fully
// valid result (fail-open).
func (f *Form) Validate(ctx context.Context) bool {
	f.validating.Set(true)
	errs, err := f.validator.Validate(ctx, f.data)
	if err != nil {
		f.logger.Warn("form validation failed, treating form as valid",
			"error", err)
		errs = nil
	}
	f.validator.SetErrors(errs)
	bump(f.errorsVersion)
	for _, fld := range f.fields {
		fld.wasValidated.Set(true)
	}
	f.validating.Set(false)
	return f.validator.IsValid()
}

// Submit validates the whole form and, only when it is valid, invokes
// onValid with the current data. IsSubmitting is true for the whole
// duration, validation included. The return value reports whether
// validation and the handler both succeeded; a handler error is logged,
// never propagated.
func (f *Form) Submit(ctx context.Context, onValid func(context.Context, *datasource.DataSource) error) bool {
	f.submitting.Set(true)
	defer f.submitting.Set(false)

	if !f.Validate(ctx) {
		return false
	}
	if onValid == nil {
		return true
	}
	if err := onValid(ctx, f.data); err != nil {
		f.logger.Warn("submit handler failed", "error", err)
		return false
	}
	return true
}

// Reset restores the initial data from the baseline snapshot, resets all
// field flags to defaults (field identity survives), and clears the error
// map.
func (f *Form) Reset() {
	f.data = f.baseline.Clone()
	bump(f.dataVersion)

	for _, fld := range f.fields {
		fld.reset()
	}
	f.validator.ClearAllErrors()
	bump(f.errorsVersion)

	f.submitting.Set(false)
	f.validating.Set(false)
}

// Errors returns the errors currently attached to path.
func (f *Form) Errors(path string) []string {
	return f.Field(path).Errors()
}

// AllErrors returns the full error map.
func (f *Form) AllErrors() map[string][]string {
	f.errorsVersion.Get()
	return f.validator.AllErrors()
}

// SetFieldErrors pushes manually assigned errors (e.g. server-side ones)
// onto a field.
func (f *Form) SetFieldErrors(path string, errs []string) {
	f.validator.SetFieldErrors(path, errs)
	bump(f.errorsVersion)
}

// SetErrors replaces the whole error map with manually assigned errors.
func (f *Form) SetErrors(errs map[string][]string) {
	f.validator.SetErrors(errs)
	bump(f.errorsVersion)
}

// AnyModified reports whether any field was modified.
func (f *Form) AnyModified() bool {
	return f.anyModified.Get()
}

// AnyVisited reports whether any field was visited.
func (f *Form) AnyVisited() bool {
	return f.anyVisited.Get()
}

// IsValid reports whether the error map is empty.
func (f *Form) IsValid() bool {
	return f.valid.Get()
}

// IsSubmitting reports whether a Submit call is in flight.
func (f *Form) IsSubmitting() bool {
	return f.submitting.Get()
}

// IsValidating reports whether full-form validation is in flight.
func (f *Form) IsValidating() bool {
	return f.validating.Get()
}

func resolve(opt *bool, def bool) bool {
	if opt != nil {
		return *opt
	}
	return def
}

func bump(v *signal.Value[int]) {
	v.Set(v.Peek() + 1)
}
