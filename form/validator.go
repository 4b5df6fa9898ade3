package form

import (
	"context"

	"formstate/datasource"
)

// Validator is the contract a validation collaborator satisfies. The two
// Validate methods compute errors against a data snapshot; the remaining
// methods read and mutate the validator's cached error state. The Form
// pushes computed results back through SetFieldErrors/SetErrors, so
// implementations may keep ValidateField and Validate pure.
//
// ValidateField and Validate may be invoked from multiple goroutines at
// once during array re-validation; implementations must tolerate
// concurrent reads of the data snapshot.
type Validator interface {
	// ValidateField computes the errors for a single field.
	ValidateField(ctx context.Context, path string, data *datasource.DataSource) ([]string, error)

	// Validate computes the full-form error map.
	Validate(ctx context.Context, data *datasource.DataSource) (map[string][]string, error)

	// FieldErrors returns the cached errors for a path; a path absent from
	// the cache is implicitly valid.
	FieldErrors(path string) []string

	// AllErrors returns a copy of the cached error map.
	AllErrors() map[string][]string

	// IsFieldValid reports whether the cache holds no errors for a path.
	IsFieldValid(path string) bool

	// IsValid reports whether the cache holds no errors at all.
	IsValid() bool

	// DependentFields returns paths whose validity may change when path
	// changes. Implementations without cross-field rules return nil.
	DependentFields(path string) []string

	ClearFieldErrors(path string)
	ClearAllErrors()

	// SetFieldErrors replaces the cached errors for one path; an empty
	// list removes the entry.
	SetFieldErrors(path string, errs []string)

	// SetErrors replaces the cached error map wholesale.
	SetErrors(errs map[string][]string)
}
