package rules

// Ruleset is the root of a YAML ruleset definition.
type Ruleset struct {
	// Version of the ruleset schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Fields lists the per-path rule groups.
	Fields []FieldRules `yaml:"fields"`
}

// FieldRules binds a list of rules to one field path pattern.
type FieldRules struct {
	// Path is a dot path; array elements use `[]` notation,
	// e.g. "orderItems[].name".
	Path string `yaml:"path"`

	// Rules to evaluate against the addressed value.
	Rules []Rule `yaml:"rules"`
}

// Rule describes one or more checks on a field value. Unset checks are
// skipped; a zero Rule always passes.
type Rule struct {
	// Required rejects missing, nil, and empty-string values.
	Required bool `yaml:"required,omitempty"`

	// Min / Max bound numeric values, both inclusive.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`

	// MinLength / MaxLength bound string length in runes, both inclusive.
	MinLength *int `yaml:"minLength,omitempty"`
	MaxLength *int `yaml:"maxLength,omitempty"`

	// Pattern is a regular expression a string value must match.
	Pattern string `yaml:"pattern,omitempty"`

	// Equals names another field path pattern whose value must equal this
	// field's value. Inside arrays the comparison resolves within the same
	// element. Feeds DependentFields.
	Equals string `yaml:"equals,omitempty"`

	// Message replaces the default message of every check in this rule.
	Message string `yaml:"message,omitempty"`
}
