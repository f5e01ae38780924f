package plan

import (
	"fmt"
	"slices"

	"timedata-generator/internal/diagnostic"
	"timedata-generator/internal/model"
	"timedata-generator/internal/shape"
)

// Build enumerates the model × range product allowed by the table's policy
// and returns the checked plan. Combinations the policy does not list are
// skipped, not reported.
func Build(table *model.Table, opts Options) (*Plan, error) {
	models, diags := selectModels(table, opts)
	if err := diags.Error(); err != nil {
		return nil, err
	}

	p := &Plan{Warnings: diags.Warnings}

	for _, m := range models {
		for _, r := range table.Ranges {
			if !m.Allows(r.Name) {
				continue
			}

			if opts.Tiny && r.Name != model.DefaultRange {
				continue
			}

			entity := EntityContext(m, r)
			p.Entities = append(p.Entities, entity)
			p.Collections = append(p.Collections, CollectionContext(m, r, entity.Class()))
		}
	}

	if err := Check(p); err != nil {
		return nil, err
	}

	return p, nil
}

// EntityContext builds the entity context for one model and range variant.
func EntityContext(m model.Model, r model.RangeVariant) shape.Context {
	return shape.Context{
		shape.KeyClass:      EntityPrefix + m.Name + r.Name,
		shape.KeyModel:      m.Name,
		shape.KeyRange:      r.Bound,
		shape.KeyProperties: slices.Clone(m.Channels),
	}
}

// CollectionContext builds the collection context paired with sampleClass.
func CollectionContext(m model.Model, r model.RangeVariant, sampleClass string) shape.Context {
	return shape.Context{
		shape.KeyClass:       CollectionPrefix + m.Name + r.Name,
		shape.KeyModel:       m.Name,
		shape.KeyRange:       r.Bound,
		shape.KeyProperties:  slices.Clone(m.Channels),
		shape.KeySampleClass: sampleClass,
	}
}

// selectModels applies the tiny flag and the model filter, keeping the
// table's declaration order. Unknown names are errors. Repeated names and
// names the tiny flag excludes are warnings.
func selectModels(table *model.Table, opts Options) ([]model.Model, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	wanted := make(map[string]bool, len(opts.Models))

	for _, name := range opts.Models {
		m, ok := table.Model(name)
		if !ok {
			diags.AddError(diagnostic.CodeUnknownModel, "",
				&diagnostic.UnknownModelError{Model: name, Known: table.Names(), Suggestion: table.Suggest(name)})

			continue
		}

		switch {
		case wanted[m.Name]:
			diags.AddWarning(diagnostic.CodeRepeatedModel,
				fmt.Sprintf("model %q is selected more than once", name), "")
		case opts.Tiny && !m.Tiny:
			diags.AddWarning(diagnostic.CodeNotTiny,
				fmt.Sprintf("model %q is not part of the tiny set and is skipped", m.Name), "")
		}

		wanted[m.Name] = true
	}

	if diags.HasErrors() {
		return nil, diags
	}

	var res []model.Model

	for _, m := range table.Models {
		if opts.Tiny && !m.Tiny {
			continue
		}

		if len(wanted) > 0 && !wanted[m.Name] {
			continue
		}

		res = append(res, m)
	}

	return res, diags
}

// Check verifies that class names are unique across the plan and that
// every collection's sample class is one of the plan's entities.
func Check(p *Plan) error {
	var diags diagnostic.Diagnostics

	diags.Merge(uniqueness(p.Contexts()))

	entities := make(map[string]bool, len(p.Entities))
	for _, e := range p.Entities {
		entities[e.Class()] = true
	}

	for _, c := range p.Collections {
		if !entities[c.SampleClass()] {
			diags.AddError(diagnostic.CodeUndefinedSample, c.Class(),
				&diagnostic.UndefinedSampleError{Collection: c.Class(), SampleClass: c.SampleClass()})
		}
	}

	return diags.Error()
}

// CheckUnique fails with a DuplicateClassNameError for every class name
// that more than one context resolves to.
func CheckUnique(contexts []shape.Context) error {
	diags := uniqueness(contexts)

	return diags.Error()
}

func uniqueness(contexts []shape.Context) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	seen := make(map[string][]string, len(contexts))

	var order []string

	for _, ctx := range contexts {
		name := ctx.Class()
		if _, ok := seen[name]; !ok {
			order = append(order, name)
		}

		seen[name] = append(seen[name], ctx.Model())
	}

	for _, name := range order {
		if models := seen[name]; len(models) > 1 {
			diags.AddError(diagnostic.CodeDuplicateClass, name,
				&diagnostic.DuplicateClassNameError{Class: name, Models: models})
		}
	}

	return diags
}
