package model

import (
	"slices"
	"strings"
)

// DefaultRange is the name of the identity range variant (unit bound 1.0).
const DefaultRange = ""

// Table is the full color model enumeration together with its range policy.
type Table struct {
	// Version is the schema version of the table file.
	Version string `yaml:"version" validate:"required"`
	// Ranges declares every range variant the generator knows about.
	Ranges []RangeVariant `yaml:"ranges" validate:"required,unique=Name,dive"`
	// Models lists the color models in declaration order.
	Models []Model `yaml:"models" validate:"required,unique=Name,dive"`
}

// RangeVariant is a numeric scale convention for channel values.
type RangeVariant struct {
	// Name is the class name suffix ("" for the identity range).
	Name string `yaml:"name" validate:"omitempty,alphanum"`
	// Bound is the upper channel value.
	Bound float64 `yaml:"bound" validate:"gt=0"`
}

// Model is a color model with exactly three channel names.
type Model struct {
	Name     string   `yaml:"name" validate:"required,alphanum"`
	Channels []string `yaml:"channels" validate:"len=3,unique,dive,required"`
	// Ranges names the range variants this model is generated for.
	Ranges []string `yaml:"ranges" validate:"required,unique"`
	// Tiny marks the model as part of the reduced iteration subset.
	Tiny bool `yaml:"tiny,omitempty"`
}

// Range returns the declared variant with the given name.
func (t *Table) Range(name string) (RangeVariant, bool) {
	for _, r := range t.Ranges {
		if r.Name == name {
			return r, true
		}
	}

	return RangeVariant{}, false
}

// Model looks up a model by name, ignoring case.
func (t *Table) Model(name string) (Model, bool) {
	for _, m := range t.Models {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}

	return Model{}, false
}

// Names returns the model names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.Models))
	for _, m := range t.Models {
		names = append(names, m.Name)
	}

	return names
}

// Policy returns the model -> allowed range variants table.
func (t *Table) Policy() map[string][]string {
	policy := make(map[string][]string, len(t.Models))
	for _, m := range t.Models {
		policy[m.Name] = slices.Clone(m.Ranges)
	}

	return policy
}

// Allows reports whether the policy generates model m with range variant r.
func (m Model) Allows(r string) bool {
	return slices.Contains(m.Ranges, r)
}
