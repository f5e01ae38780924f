package model

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var defaultTable []byte

// Default returns the built-in model table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(fmt.Sprintf("built-in model table is invalid: %v", err))
	}

	return t
}

// LoadFile loads and validates a YAML model table from the given path.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model table %s: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Parse parses and validates YAML data into a Table.
func Parse(data []byte) (*Table, error) {
	var t Table

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to parse model table YAML: %w", err)
	}

	applyDefaults(&t)

	if err := Validate(&t); err != nil {
		return nil, err
	}

	return &t, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(t *Table) {
	if t.Version == "" {
		t.Version = "1"
	}

	for i := range t.Models {
		if len(t.Models[i].Ranges) == 0 {
			t.Models[i].Ranges = []string{DefaultRange}
		}
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints, that model names are unique ignoring
// case, and that every policy entry names a declared range variant.
func Validate(t *Table) error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid model table: %w", err)
	}

	seen := make(map[string]string, len(t.Models))

	for _, m := range t.Models {
		key := strings.ToUpper(m.Name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("invalid model table: model names %s and %s differ only in case", prev, m.Name)
		}

		seen[key] = m.Name

		for _, r := range m.Ranges {
			if _, ok := t.Range(r); !ok {
				return fmt.Errorf("invalid model table: model %s uses undeclared range variant %q", m.Name, r)
			}
		}
	}

	return nil
}
