// Package importer runs the phases of one exchange-file import: recordize,
// build the reference graph, resolve units, schedule construction and
// assemble the volume model.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/vk/brepstep/internal/assembler"
	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/refgraph"
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/internal/scheduler"
	"github.com/vk/brepstep/internal/stepfile"
	"github.com/vk/brepstep/internal/units"
)

// Options tune an import run.
type Options struct {
	Workers            int
	MaxRetries         int
	DefaultUncertainty float64
	// Strict turns any reference from a supported record to an unsupported
	// one into a fatal fault, even when the referencing record is pruned or
	// its constructor would not need the reference.
	Strict bool
}

// Importer turns exchange files into volume models. It is safe for
// concurrent use; every import owns its own tables.
type Importer struct {
	registry *registry.Registry
	opts     Options
}

// New creates an importer dispatching through reg.
func New(reg *registry.Registry, opts Options) *Importer {
	return &Importer{registry: reg, opts: opts}
}

// Result is the outcome of one successful import.
type Result struct {
	Name      string
	Model     *geom.VolumeModel
	Objects   *objtable.Table
	Graph     *refgraph.Graph
	Units     units.Context
	Stats     scheduler.Stats
	Records   int
	Malformed int
	Duration  time.Duration
}

// ImportFile reads and imports the file at path. The model is named after
// the file.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open exchange file: %w", err)
	}
	defer f.Close()
	return im.Import(ctx, filepath.Base(path), f)
}

// Import decodes r as ISO-8859-1 and imports it.
func (im *Importer) Import(ctx context.Context, name string, r io.Reader) (*Result, error) {
	res, err := stepfile.Read(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to recordize %s: %w", name, err)
	}
	return im.ImportRecords(ctx, name, res)
}

// ImportRecords runs every phase after recordizing. A fatal fault returns no
// result.
func (im *Importer) ImportRecords(ctx context.Context, name string, res *stepfile.Result) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("file", name)
	ctx = ctxlog.WithLogger(ctx, logger)
	start := time.Now()

	g, err := refgraph.Build(ctx, res, im.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build reference graph: %w", err)
	}

	if im.opts.Strict {
		if err := checkUnsupported(g); err != nil {
			return nil, err
		}
	}

	objects := objtable.New()
	sch := scheduler.New(g, im.registry, objects, scheduler.Options{
		Workers:            im.opts.Workers,
		MaxRetries:         im.opts.MaxRetries,
		DefaultUncertainty: im.opts.DefaultUncertainty,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, err := sch.ResolveUnits(ctx)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sch.Run(ctx); err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	model, err := assembler.Assemble(ctx, name, g.Roots(), objects)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble %s: %w", name, err)
	}

	out := &Result{
		Name:      name,
		Model:     model,
		Objects:   objects,
		Graph:     g,
		Units:     u,
		Stats:     sch.Stats(),
		Records:   res.Table.Len(),
		Malformed: res.Malformed,
		Duration:  time.Since(start),
	}
	logger.Info("Import complete.",
		"records", out.Records,
		"built", out.Stats.Built,
		"shells", len(model.Shells),
		"faces", model.FaceCount(),
		"duration", out.Duration)
	return out, nil
}

// checkUnsupported fails on the lowest-id unsupported record referenced by a
// supported one.
func checkUnsupported(g *refgraph.Graph) error {
	var found *registry.UnsupportedEntityError
	for _, ref := range g.Unsupported() {
		if found != nil && found.ID < ref.To {
			continue
		}
		rec, _ := g.Table().Get(ref.To)
		found = &registry.UnsupportedEntityError{Type: rec.Type(), ID: ref.To}
	}
	if found != nil {
		return found
	}
	return nil
}

// Unsupported returns the distinct type names of res that have no
// constructor, sorted. Relationships elided by the graph's shortcut pass are
// not listed.
func (im *Importer) Unsupported(res *stepfile.Result) []string {
	seen := make(map[string]bool)
	for _, rec := range res.Table.Records() {
		t := rec.Type()
		if t == refgraph.ShapeRepresentationRelationship || im.registry.Supported(t) {
			continue
		}
		seen[t] = true
	}
	names := make([]string, 0, len(seen))
	for t := range seen {
		names = append(names, t)
	}
	sort.Strings(names)
	return names
}
