package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formstate/datasource"
	"formstate/form"
	"formstate/signal"
)

// stubValidator is a scriptable Validator that counts per-field calls.
type stubValidator struct {
	*form.ErrorStore

	mu    sync.Mutex
	calls map[string]int

	fieldResults map[string][]string
	fieldErr     error
	formResults  map[string][]string
	formErr      error
	deps         map[string][]string
}

func newStub() *stubValidator {
	return &stubValidator{
		ErrorStore: form.NewErrorStore(),
		calls:      make(map[string]int),
	}
}

func (s *stubValidator) ValidateField(ctx context.Context, path string, data *datasource.DataSource) ([]string, error) {
	s.mu.Lock()
	s.calls[path]++
	s.mu.Unlock()

	if s.fieldErr != nil {
		return nil, s.fieldErr
	}
	return s.fieldResults[path], nil
}

func (s *stubValidator) Validate(ctx context.Context, data *datasource.DataSource) (map[string][]string, error) {
	if s.formErr != nil {
		return nil, s.formErr
	}
	return s.formResults, nil
}

func (s *stubValidator) DependentFields(path string) []string {
	return s.deps[path]
}

func (s *stubValidator) callCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func TestSetValueWritesAndFlags(t *testing.T) {
	ctx := context.Background()
	f := form.New(map[string]any{"user": map[string]any{"name": "Ada"}}, newStub())

	f.SetValue(ctx, "user.name", "Bob", nil)

	assert.Equal(t, "Bob", f.Value("user.name"))
	fld := f.Field("user.name")
	assert.True(t, fld.Modified())
	assert.True(t, fld.Visited())
	assert.True(t, fld.WasValidated(), "default SetValue validates")
	assert.True(t, f.AnyModified())
	assert.True(t, f.AnyVisited())
}

func TestSetValueValidateDefaultsToDirty(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	f := form.New(nil, stub)

	// Silent programmatic set: not dirty, so no validation.
	f.SetValue(ctx, "a", 1, &form.SetValueOptions{Dirty: form.Bool(false)})
	assert.Equal(t, 0, stub.callCount("a"))
	assert.False(t, f.Field("a").Modified())
	assert.False(t, f.AnyModified())

	// Explicit validate wins over dirty=false.
	f.SetValue(ctx, "a", 2, &form.SetValueOptions{
		Dirty:    form.Bool(false),
		Validate: form.Bool(true),
	})
	assert.Equal(t, 1, stub.callCount("a"))

	// Dirty set validates by default.
	f.SetValue(ctx, "a", 3, nil)
	assert.Equal(t, 2, stub.callCount("a"))

	// Validation can be suppressed for a dirty set.
	f.SetValue(ctx, "a", 4, &form.SetValueOptions{Validate: form.Bool(false)})
	assert.Equal(t, 2, stub.callCount("a"))
}

func TestSetValueTouchOption(t *testing.T) {
	ctx := context.Background()
	f := form.New(nil, newStub())

	f.SetValue(ctx, "a", 1, &form.SetValueOptions{Touch: form.Bool(false)})
	assert.False(t, f.Field("a").Visited())
	assert.True(t, f.Field("a").Modified())
}

func TestSetValueValidationDrivesDependents(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.deps = map[string][]string{"password": {"confirm"}}
	f := form.New(nil, stub)

	f.SetValue(ctx, "password", "s3cret", nil)

	assert.Equal(t, 1, stub.callCount("password"))
	assert.Equal(t, 1, stub.callCount("confirm"))
	assert.True(t, f.Field("confirm").WasValidated())
}

func TestValidateFieldRecordsErrors(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.fieldResults = map[string][]string{"a": {"broken"}}
	f := form.New(nil, stub)

	ok := f.ValidateField(ctx, "a")

	assert.False(t, ok)
	assert.Equal(t, []string{"broken"}, f.Errors("a"))
	assert.False(t, f.Field("a").IsValid())
	assert.False(t, f.IsValid())
	assert.False(t, f.Field("a").Validating())
	assert.True(t, f.Field("a").WasValidated())
}

func TestFailOpenOnFieldValidatorError(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.fieldErr = errors.New("validator blew up")
	f := form.New(nil, stub)

	ok := f.ValidateField(ctx, "a")

	assert.True(t, ok, "a broken validator must not lock the field invalid")
	assert.Empty(t, f.Errors("a"))
	assert.False(t, f.Field("a").Validating())
	assert.True(t, f.IsValid())
}

func TestFailOpenOnFormValidatorError(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.formErr = errors.New("validator blew up")
	f := form.New(nil, stub)

	assert.True(t, f.Validate(ctx))
	assert.True(t, f.IsValid())
	assert.False(t, f.IsValidating())
}

func TestValidateMarksRegisteredFieldsValidated(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.formResults = map[string][]string{"a": {"bad"}}
	f := form.New(nil, stub)

	fld := f.Field("a")
	assert.False(t, fld.WasValidated())

	ok := f.Validate(ctx)

	assert.False(t, ok)
	assert.True(t, fld.WasValidated())
	assert.Equal(t, []string{"bad"}, fld.Errors())
	assert.Equal(t, map[string][]string{"a": {"bad"}}, f.AllErrors())
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	f := form.New(map[string]any{"a": 1}, stub)

	var sawSubmitting bool
	var submitted any
	ok := f.Submit(ctx, func(ctx context.Context, data *datasource.DataSource) error {
		sawSubmitting = f.IsSubmitting()
		submitted = data.Get("a")
		return nil
	})

	require.True(t, ok)
	assert.True(t, sawSubmitting, "IsSubmitting covers the handler")
	assert.Equal(t, 1, submitted)
	assert.False(t, f.IsSubmitting())
}

func TestSubmitSkipsHandlerWhenInvalid(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.formResults = map[string][]string{"a": {"bad"}}
	f := form.New(nil, stub)

	called := false
	ok := f.Submit(ctx, func(context.Context, *datasource.DataSource) error {
		called = true
		return nil
	})

	assert.False(t, ok)
	assert.False(t, called)
	assert.False(t, f.IsSubmitting())
}

func TestSubmitHandlerErrorIsSwallowed(t *testing.T) {
	ctx := context.Background()
	f := form.New(nil, newStub())

	ok := f.Submit(ctx, func(context.Context, *datasource.DataSource) error {
		return errors.New("server rejected")
	})

	assert.False(t, ok)
	assert.False(t, f.IsSubmitting())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.fieldResults = map[string][]string{"user.name": {"bad"}}
	f := form.New(map[string]any{"user": map[string]any{"name": "Ada"}}, stub)

	fld := f.Field("user.name")
	f.SetValue(ctx, "user.name", "Bob", nil)
	require.True(t, fld.Modified())
	require.NotEmpty(t, fld.Errors())

	f.Reset()

	assert.Equal(t, "Ada", f.Value("user.name"), "data restored from baseline")
	assert.False(t, fld.Modified())
	assert.False(t, fld.Visited())
	assert.False(t, fld.WasValidated())
	assert.Empty(t, fld.Errors())
	assert.True(t, f.IsValid())
	assert.False(t, f.AnyModified())

	assert.Same(t, fld, f.Field("user.name"), "field identity survives reset")
}

func TestResetBaselineIsDetached(t *testing.T) {
	ctx := context.Background()
	initial := map[string]any{"items": []any{map[string]any{"n": 1}}}
	f := form.New(initial, newStub())

	// Mutations after construction must not leak into the baseline,
	// including through the caller's original map.
	f.SetValue(ctx, "items.0.n", 99, nil)
	initial["items"].([]any)[0].(map[string]any)["n"] = 42

	f.Reset()
	assert.Equal(t, 1, f.Value("items.0.n"))
}

func TestFieldIdentityIsStable(t *testing.T) {
	f := form.New(nil, newStub())
	assert.Same(t, f.Field("a.b"), f.Field("a.b"))
}

func TestManualErrors(t *testing.T) {
	f := form.New(nil, newStub())

	f.SetFieldErrors("a", []string{"server says no"})
	assert.Equal(t, []string{"server says no"}, f.Errors("a"))
	assert.False(t, f.IsValid())

	f.SetErrors(map[string][]string{"b": {"nope"}})
	assert.Empty(t, f.Errors("a"), "SetErrors replaces wholesale")
	assert.Equal(t, []string{"nope"}, f.Errors("b"))

	f.SetFieldErrors("b", nil)
	assert.True(t, f.IsValid())
}

func TestReactiveValueAndErrors(t *testing.T) {
	ctx := context.Background()
	stub := newStub()
	stub.fieldResults = map[string][]string{"a": {"bad"}}
	f := form.New(map[string]any{"a": 1}, stub)

	var values []any
	var errLens []int
	e := signal.NewEffect(func() {
		fld := f.Field("a")
		values = append(values, fld.Value())
		errLens = append(errLens, len(fld.Errors()))
	})
	defer e.Dispose()

	require.Equal(t, []any{1}, values)

	f.SetValue(ctx, "a", 2, &form.SetValueOptions{Validate: form.Bool(false)})
	assert.Equal(t, 2, values[len(values)-1])

	f.ValidateField(ctx, "a")
	assert.Equal(t, 1, errLens[len(errLens)-1])
}

func TestAggregatesAreReactive(t *testing.T) {
	ctx := context.Background()
	f := form.New(nil, newStub())

	var seen []bool
	e := signal.NewEffect(func() {
		seen = append(seen, f.AnyModified())
	})
	defer e.Dispose()

	require.Equal(t, []bool{false}, seen)

	f.SetValue(ctx, "a", 1, &form.SetValueOptions{Validate: form.Bool(false)})
	assert.True(t, seen[len(seen)-1])

	f.Reset()
	assert.False(t, seen[len(seen)-1])
}
