package plan

import (
	"timedata-generator/internal/diagnostic"
	"timedata-generator/internal/shape"
)

// Class name prefixes for the two template kinds.
const (
	EntityPrefix     = "Color"
	CollectionPrefix = "ColorList"
)

// Options narrow the enumeration before the plan is built.
type Options struct {
	// Tiny restricts the run to the models flagged tiny and to the default
	// range variant.
	Tiny bool
	// Models, when non-empty, restricts the run to the named models
	// (case-insensitive).
	Models []string
}

// Plan is the full set of contexts for one generation run.
type Plan struct {
	// Entities hold one context per generated entity class.
	Entities []shape.Context
	// Collections hold one context per generated collection class. Each
	// references an entry of Entities through its sample class.
	Collections []shape.Context
	// Warnings report filter entries that selected nothing.
	Warnings []diagnostic.Diagnostic
}

// Contexts returns every context of the plan, entities first.
func (p *Plan) Contexts() []shape.Context {
	all := make([]shape.Context, 0, len(p.Entities)+len(p.Collections))
	all = append(all, p.Entities...)

	return append(all, p.Collections...)
}

// ClassNames returns the class names of every context, entities first.
func (p *Plan) ClassNames() []string {
	var names []string
	for _, ctx := range p.Contexts() {
		names = append(names, ctx.Class())
	}

	return names
}
