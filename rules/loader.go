package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML ruleset file from the given path.
func LoadFile(path string) (Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("failed to read ruleset file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Ruleset.
func Parse(data []byte) (Ruleset, error) {
	var rs Ruleset

	err := yaml.Unmarshal(data, &rs)
	if err != nil {
		return Ruleset{}, fmt.Errorf("failed to parse ruleset YAML: %w", err)
	}

	applyDefaults(&rs)

	return rs, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(rs *Ruleset) {
	if rs.Version == "" {
		rs.Version = "1"
	}
}

// Marshal serializes a Ruleset to YAML.
func Marshal(rs Ruleset) ([]byte, error) {
	return yaml.Marshal(rs)
}
