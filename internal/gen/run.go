package gen

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"timedata-generator/internal/plan"
)

// FileReport is the write outcome of one emitted file.
type FileReport struct {
	Path   string
	Status WriteStatus
}

// Report summarizes a generation run.
type Report struct {
	// Classes lists the generated class names, sorted.
	Classes []string
	// Files lists the class and struct fragments in manifest order.
	Files []FileReport
	// Manifest is the outcome for the manifest itself.
	Manifest FileReport
	// DryRun is set when nothing was written.
	DryRun bool
}

// Changed returns the paths, manifest included, that were (or in a dry run
// would be) created or updated.
func (r *Report) Changed() []string {
	var res []string

	for _, f := range append(slices.Clone(r.Files), r.Manifest) {
		if f.Status == StatusCreated || f.Status == StatusUpdated {
			res = append(res, f.Path)
		}
	}

	return res
}

// Run performs one full generation: enumerate contexts, instantiate, emit
// structs, write every fragment, then write the manifest. Every file is
// rendered in memory before the first write, so enumeration and template
// errors leave the output tree untouched. A write error aborts the run
// before the manifest is written.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	p, err := plan.Build(g.config.Table, g.config.Plan)
	if err != nil {
		return nil, fmt.Errorf("enumerating contexts: %w", err)
	}

	for _, w := range p.Warnings {
		g.log.WithField("code", w.Code).Warn(w.Message)
	}

	g.log.WithField("contexts", len(p.Entities)+len(p.Collections)).Debug("Enumerated contexts")

	return g.RunPlan(ctx, p)
}

// RunPlan performs the stages of Run that follow enumeration.
func (g *Generator) RunPlan(ctx context.Context, p *plan.Plan) (*Report, error) {
	log := g.log.WithField("root", g.config.OutputRoot)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := g.Instantiate(p)
	if err != nil {
		return nil, fmt.Errorf("instantiating classes: %w", err)
	}

	structs, err := EmitStructs(g.config.StructFiles)
	if err != nil {
		return nil, fmt.Errorf("emitting structs: %w", err)
	}

	files := slices.Concat(res.Files, structs)
	slices.SortFunc(files, func(a, b Artifact) int { return strings.Compare(a.Path, b.Path) })

	for i := 1; i < len(files); i++ {
		if files[i].Path == files[i-1].Path {
			return nil, fmt.Errorf("two fragments map to the same path %s", files[i].Path)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var wopts []WriterOption
	if g.config.DryRun {
		wopts = append(wopts, WithDryRun())
	}

	w := NewWriter(g.config.OutputRoot, append(wopts, WithWriterLogger(log))...)

	report := &Report{DryRun: g.config.DryRun}
	for name := range res.Classes {
		report.Classes = append(report.Classes, name)
	}

	slices.Sort(report.Classes)

	paths := make([]string, 0, len(files))

	for _, f := range files {
		status, err := w.WriteIfDifferent(f.Path, f.Content)
		if err != nil {
			return nil, fmt.Errorf("writing fragments: %w", err)
		}

		report.Files = append(report.Files, FileReport{Path: f.Path, Status: status})
		paths = append(paths, f.Path)
	}

	status, err := w.WriteIfDifferent(g.config.ManifestPath, BuildManifest(paths))
	if err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}

	report.Manifest = FileReport{Path: g.config.ManifestPath, Status: status}

	stats := w.Stats()
	log.WithFields(logrus.Fields{
		"classes":   len(report.Classes),
		"created":   stats[StatusCreated],
		"updated":   stats[StatusUpdated],
		"unchanged": stats[StatusUnchanged],
	}).Info("Generation finished")

	return report, nil
}
