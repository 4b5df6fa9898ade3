package form

import "sync"

// ErrorStore is a mutex-guarded path → errors map implementing the cached
// half of the Validator contract. Validator implementations embed it and
// add the two compute methods.
type ErrorStore struct {
	mu     sync.RWMutex
	errors map[string][]string
}

// NewErrorStore creates an empty store.
func NewErrorStore() *ErrorStore {
	return &ErrorStore{errors: make(map[string][]string)}
}

// FieldErrors returns a copy of the errors cached for path.
func (s *ErrorStore) FieldErrors(path string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	errs := s.errors[path]
	if len(errs) == 0 {
		return nil
	}
	return append([]string(nil), errs...)
}

// AllErrors returns a copy of the whole error map.
func (s *ErrorStore) AllErrors() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make(map[string][]string, len(s.errors))
	for path, errs := range s.errors {
		all[path] = append([]string(nil), errs...)
	}
	return all
}

// IsFieldValid reports whether no errors are cached for path.
func (s *ErrorStore) IsFieldValid(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.errors[path]) == 0
}

// IsValid reports whether the store caches no errors at all.
func (s *ErrorStore) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, errs := range s.errors {
		if len(errs) > 0 {
			return false
		}
	}
	return true
}

// ClearFieldErrors removes the entry for path.
func (s *ErrorStore) ClearFieldErrors(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errors, path)
}

// ClearAllErrors empties the store.
func (s *ErrorStore) ClearAllErrors() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string][]string)
}

// SetFieldErrors replaces the errors for path; an empty list removes the
// entry, keeping "absent means valid" true.
func (s *ErrorStore) SetFieldErrors(path string, errs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(errs) == 0 {
		delete(s.errors, path)
		return
	}
	s.errors[path] = append([]string(nil), errs...)
}

// SetErrors replaces the cached map wholesale. Empty lists are dropped.
func (s *ErrorStore) SetErrors(errs map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.errors = make(map[string][]string, len(errs))
	for path, list := range errs {
		if len(list) == 0 {
			continue
		}
		s.errors[path] = append([]string(nil), list...)
	}
}
