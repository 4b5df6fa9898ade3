package rules

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"unicode/utf8"

	"formstate/datasource"
	"formstate/dotpath"
	"formstate/form"
)

// Validator evaluates a compiled Ruleset. It satisfies the form package's
// Validator contract: the Validate methods are pure computations over a
// data snapshot, the embedded ErrorStore carries the cached error state.
type Validator struct {
	*form.ErrorStore
	fields []fieldChecks
}

type fieldChecks struct {
	path  FieldPath
	rules []compiledRule
}

type compiledRule struct {
	rule    Rule
	pattern *regexp.Regexp
	equals  *FieldPath
}

// New compiles a Ruleset into a Validator. Invalid path patterns and
// regular expressions are reported up front.
func New(rs Ruleset) (*Validator, error) {
	v := &Validator{ErrorStore: form.NewErrorStore()}

	for _, fr := range rs.Fields {
		fp, err := ParsePath(fr.Path)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fr.Path, err)
		}

		var compiled []compiledRule
		for _, r := range fr.Rules {
			cr := compiledRule{rule: r}

			if r.Pattern != "" {
				re, err := regexp.Compile(r.Pattern)
				if err != nil {
					return nil, fmt.Errorf("field %q: invalid pattern: %w", fr.Path, err)
				}
				cr.pattern = re
			}
			if r.Equals != "" {
				ep, err := ParsePath(r.Equals)
				if err != nil {
					return nil, fmt.Errorf("field %q: invalid equals path: %w", fr.Path, err)
				}
				cr.equals = &ep
			}
			compiled = append(compiled, cr)
		}

		v.fields = append(v.fields, fieldChecks{path: fp, rules: compiled})
	}

	return v, nil
}

// ValidateField computes the errors for one concrete path. Rules whose
// pattern does not cover the path are skipped.
func (v *Validator) ValidateField(ctx context.Context, path string, data *datasource.DataSource) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	segments := dotpath.Split(path)
	var errs []string
	for _, fc := range v.fields {
		if !fc.path.Match(segments) {
			continue
		}
		errs = append(errs, fc.check(path, fc.path.Indices(segments), data)...)
	}
	return errs, nil
}

// Validate computes the full-form error map, expanding array patterns
// against the actual data.
func (v *Validator) Validate(ctx context.Context, data *datasource.DataSource) (map[string][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string][]string)
	for _, fc := range v.fields {
		for _, path := range fc.path.Expand(data) {
			indices := fc.path.Indices(dotpath.Split(path))
			if errs := fc.check(path, indices, data); len(errs) > 0 {
				out[path] = append(out[path], errs...)
			}
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// DependentFields returns the concrete paths whose equals rules reference
// path, index-bound to the same array elements.
func (v *Validator) DependentFields(path string) []string {
	segments := dotpath.Split(path)

	var out []string
	seen := make(map[string]struct{})
	for _, fc := range v.fields {
		for _, cr := range fc.rules {
			if cr.equals == nil || !cr.equals.Match(segments) {
				continue
			}
			dep, ok := fc.path.Concretize(cr.equals.Indices(segments))
			if !ok {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			out = append(out, dep)
		}
	}
	return out
}

func (fc fieldChecks) check(path string, indices []int, data *datasource.DataSource) []string {
	value := data.Get(path)

	var errs []string
	for _, cr := range fc.rules {
		errs = append(errs, cr.check(value, indices, data)...)
	}
	return errs
}

func (cr compiledRule) check(value any, indices []int, data *datasource.DataSource) []string {
	r := cr.rule

	var errs []string
	fail := func(def string) {
		if r.Message != "" {
			errs = append(errs, r.Message)
			return
		}
		errs = append(errs, def)
	}

	if r.Required && isEmpty(value) {
		fail("value is required")
	}

	if s, ok := value.(string); ok {
		length := utf8.RuneCountInString(s)
		if r.MinLength != nil && length < *r.MinLength {
			fail(fmt.Sprintf("must be at least %d characters", *r.MinLength))
		}
		if r.MaxLength != nil && length > *r.MaxLength {
			fail(fmt.Sprintf("must be at most %d characters", *r.MaxLength))
		}
		if cr.pattern != nil && !cr.pattern.MatchString(s) {
			fail("has invalid format")
		}
	}

	if n, ok := toFloat(value); ok {
		if r.Min != nil && n < *r.Min {
			fail(fmt.Sprintf("must be at least %v", *r.Min))
		}
		if r.Max != nil && n > *r.Max {
			fail(fmt.Sprintf("must be at most %v", *r.Max))
		}
	}

	if cr.equals != nil {
		if other, ok := cr.equals.Concretize(indices); ok {
			if !reflect.DeepEqual(value, data.Get(other)) {
				fail(fmt.Sprintf("must match %s", cr.equals))
			}
		}
	}

	return errs
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
