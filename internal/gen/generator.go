package gen

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"timedata-generator/internal/diagnostic"
	"timedata-generator/internal/model"
	"timedata-generator/internal/plan"
	"timedata-generator/internal/shape"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputRoot is the directory every generated path is relative to.
	OutputRoot string
	// ClassDir is the directory, relative to OutputRoot, of class fragments.
	ClassDir string
	// ManifestPath is the manifest location relative to OutputRoot.
	ManifestPath string
	// StructFiles lists the struct layouts to emit.
	StructFiles []string
	// Table is the color model enumeration. Nil means the built-in table.
	Table *model.Table
	// Plan narrows the enumeration.
	Plan plan.Options
	// DryRun computes write statuses without touching the output tree.
	DryRun bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputRoot:   "build/genfiles",
		ClassDir:     "timedata/color",
		ManifestPath: "timedata/genfiles.pyx",
		StructFiles:  slices.Clone(StructFiles),
	}
}

// Generator turns a plan into class fragments and drives a generation run.
type Generator struct {
	config   GeneratorConfig
	registry *shape.Registry
	log      logrus.FieldLogger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for progress and per-file messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, opts ...Option) *Generator {
	g := &Generator{config: config, registry: shape.MustNewRegistry()}
	for _, opt := range opts {
		opt(g)
	}

	if g.config.Table == nil {
		g.config.Table = model.Default()
	}

	if g.log == nil {
		g.log = discardLogger()
	}

	return g
}

// Artifact is one generated file, addressed relative to the output root.
type Artifact struct {
	// Path is slash-separated and relative to the output root.
	Path    string
	Content []byte
}

// Instantiation is one template applied to one context.
type Instantiation struct {
	Artifact

	Class string
	Model string
	Kind  shape.Kind
}

// Result holds every instantiation of a run.
type Result struct {
	// Classes maps each class name to its instantiation.
	Classes map[string]Instantiation
	// Files lists the instantiations sorted by path.
	Files []Artifact
}

// ClassPath returns the output path of a generated class.
func (g *Generator) ClassPath(class string) string {
	return path.Join(g.config.ClassDir, class+".pyx")
}

// Instantiate applies the entity template to every entity context and the
// collection template to every collection context. Contexts are visited in
// class-name order, except that a collection always waits for the entity it
// holds.
func (g *Generator) Instantiate(p *plan.Plan) (*Result, error) {
	type job struct {
		kind shape.Kind
		ctx  shape.Context
	}

	jobs := make([]job, 0, len(p.Entities)+len(p.Collections))
	for _, ctx := range p.Entities {
		jobs = append(jobs, job{shape.KindEntity, ctx})
	}

	for _, ctx := range p.Collections {
		jobs = append(jobs, job{shape.KindCollection, ctx})
	}

	slices.SortStableFunc(jobs, func(a, b job) int { return strings.Compare(a.ctx.Class(), b.ctx.Class()) })

	entityIndex := make(map[string]int, len(p.Entities))
	for i, j := range jobs {
		if j.kind == shape.KindEntity {
			entityIndex[j.ctx.Class()] = i
		}
	}

	order, err := dependencyOrder(len(jobs), func(i int) []int {
		if jobs[i].kind != shape.KindCollection {
			return nil
		}

		if e, ok := entityIndex[jobs[i].ctx.SampleClass()]; ok {
			return []int{e}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Classes: make(map[string]Instantiation, len(jobs))}

	for _, i := range order {
		tmpl, err := g.registry.Template(jobs[i].kind)
		if err != nil {
			return nil, err
		}

		inst, err := g.instantiateOne(tmpl, jobs[i].ctx, res)
		if err != nil {
			return nil, err
		}

		res.Classes[inst.Class] = *inst
		res.Files = append(res.Files, inst.Artifact)
	}

	slices.SortFunc(res.Files, func(a, b Artifact) int { return strings.Compare(a.Path, b.Path) })

	return res, nil
}

func (g *Generator) instantiateOne(tmpl *shape.Template, ctx shape.Context, res *Result) (*Instantiation, error) {
	class := ctx.Class()

	if prev, ok := res.Classes[class]; ok {
		return nil, &diagnostic.DuplicateClassNameError{Class: class, Models: []string{prev.Model, ctx.Model()}}
	}

	text, err := shape.Instantiate(tmpl, ctx)
	if err != nil {
		return nil, fmt.Errorf("instantiating %s: %w", tmpl.Kind, err)
	}

	if tmpl.Kind == shape.KindCollection {
		sample, ok := res.Classes[ctx.SampleClass()]
		if !ok || sample.Kind != shape.KindEntity {
			return nil, &diagnostic.UndefinedSampleError{Collection: class, SampleClass: ctx.SampleClass()}
		}
	}

	g.log.WithFields(logrus.Fields{
		"class": class,
		"kind":  tmpl.Kind.String(),
	}).Debug("Instantiated class")

	return &Instantiation{
		Artifact: Artifact{Path: g.ClassPath(class), Content: []byte(text)},
		Class:    class,
		Model:    ctx.Model(),
		Kind:     tmpl.Kind,
	}, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
