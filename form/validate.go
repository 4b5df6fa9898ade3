package form

import (
	"context"
	"sync"
)

// runValidations validates the given paths. The validator calls fan out to
// goroutines and their results are collected; every flag and error write
// happens on the calling goroutine after all calls finish, so the signal
// graph only ever sees single-threaded writes. Each path ends with
// Validating false and WasValidated true; a failed call is logged and its
// field treated as having no errors.
func (f *Form) runValidations(ctx context.Context, paths []string) {
	if len(paths) == 0 {
		return
	}

	for _, path := range paths {
		f.Field(path).validating.Set(true)
	}

	results := make([][]string, len(paths))
	failures := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], failures[i] = f.validator.ValidateField(ctx, path, f.data)
		}()
	}
	wg.Wait()

	for i, path := range paths {
		if failures[i] != nil {
			f.logger.Warn("field validation failed, treating field as valid",
				"path", path, "error", failures[i])
			results[i] = nil
		}
		f.validator.SetFieldErrors(path, results[i])

		fld := f.Field(path)
		fld.validating.Set(false)
		fld.wasValidated.Set(true)
	}
	bump(f.errorsVersion)
}
