package scheduler

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/refgraph"
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/internal/units"
)

// Dispatcher builds the object of one record. *registry.Registry implements it.
type Dispatcher interface {
	Construct(ctx context.Context, c *registry.Call) (objtable.Object, error)
}

// Options tune a scheduler run.
type Options struct {
	// Workers is the number of connected components built concurrently.
	// Values below 2 build everything sequentially.
	Workers int
	// MaxRetries bounds the construction attempts of a single record. Zero
	// means the record count plus one.
	MaxRetries int
	// DefaultUncertainty is used when the file declares no uncertainty.
	DefaultUncertainty float64
}

// Scheduler builds the records of one import run into an object table.
type Scheduler struct {
	graph      *refgraph.Graph
	dispatcher Dispatcher
	objects    *objtable.Table
	opts       Options
	maxRetries int
	scope      map[record.ID]bool
	units      units.Context
	stats      *statsCollector
}

// New prepares a scheduler over g. Objects are stored in objects.
func New(g *refgraph.Graph, d Dispatcher, objects *objtable.Table, opts Options) *Scheduler {
	s := &Scheduler{
		graph:      g,
		dispatcher: d,
		objects:    objects,
		opts:       opts,
		maxRetries: opts.MaxRetries,
		scope:      make(map[record.ID]bool),
		units:      units.Identity(),
		stats:      newStatsCollector(),
	}
	if s.maxRetries <= 0 {
		s.maxRetries = g.Table().Len() + 1
	}
	if opts.DefaultUncertainty > 0 {
		s.units.Uncertainty = opts.DefaultUncertainty
	}
	for _, id := range g.Reachable() {
		s.scope[id] = true
	}
	return s
}

// Units returns the unit context constructors are called with.
func (s *Scheduler) Units() units.Context { return s.units }

// Stats returns the construction statistics gathered so far.
func (s *Scheduler) Stats() Stats { return s.stats.snapshot() }

// InScope reports whether id belongs to the build set.
func (s *Scheduler) InScope(id record.ID) bool { return s.scope[id] }

// Run builds every record of the build set. ResolveUnits should be called
// first; Run alone builds with the identity unit context.
func (s *Scheduler) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	order, err := s.Order()
	if err != nil {
		return err
	}
	logger.Debug("Scheduler: build order derived", "records", len(order), "workers", s.opts.Workers)

	if s.opts.Workers < 2 {
		if err := s.buildAll(ctx, order); err != nil {
			return err
		}
	} else if err := s.runComponents(ctx, order); err != nil {
		return err
	}

	st := s.Stats()
	logger.Debug("Scheduler: complete", "built", st.Built, "attempts", st.Attempts, "retries", st.Retries)
	return nil
}

func (s *Scheduler) buildAll(ctx context.Context, order []record.ID) error {
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.build(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// runComponents builds independent components on an errgroup. The first
// failure cancels the remaining components.
func (s *Scheduler) runComponents(ctx context.Context, order []record.ID) error {
	components := s.components(order)
	ctxlog.FromContext(ctx).Debug("Scheduler: building components in parallel", "components", len(components))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, comp := range components {
		i, comp := i, comp
		g.Go(func() error {
			if err := s.buildAll(gctx, comp); err != nil {
				return fmt.Errorf("component %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
