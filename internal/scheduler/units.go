package scheduler

import (
	"context"
	"fmt"

	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/units"
)

// UncertaintyRecord is the record type carrying the file's global tolerance.
const UncertaintyRecord = "UNCERTAINTY_MEASURE_WITH_UNIT"

// ResolveUnits builds the lowest-id uncertainty record and its unit with an
// identity unit context. Its value becomes the run's uncertainty and the
// value of its unit (argument 1) the length factor. A file without such a
// record keeps factor 1 and the default uncertainty.
func (s *Scheduler) ResolveUnits(ctx context.Context) (units.Context, error) {
	logger := ctxlog.FromContext(ctx)

	rec, ok := s.graph.Table().FirstOfType(UncertaintyRecord)
	if !ok {
		logger.Debug("Units: no uncertainty record, using defaults",
			"factor", s.units.LengthFactor, "uncertainty", s.units.Uncertainty)
		return s.units, nil
	}
	if len(rec.Args) < 2 || rec.Args[1].Kind != record.KindRef {
		return s.units, fmt.Errorf("%s %s: argument 1 is not a unit reference", rec.Type(), rec.ID)
	}

	if err := s.build(ctx, rec.ID); err != nil {
		return s.units, fmt.Errorf("failed to resolve units: %w", err)
	}
	uncertainty, err := scalar(s.objects, rec.ID)
	if err != nil {
		return s.units, err
	}
	factor, err := scalar(s.objects, rec.Args[1].Ref)
	if err != nil {
		return s.units, err
	}

	s.units = units.Context{LengthFactor: factor, Uncertainty: uncertainty}
	logger.Debug("Units: resolved", "record", rec.ID.String(), "factor", factor, "uncertainty", uncertainty)
	return s.units, nil
}

func scalar(objects *objtable.Table, id record.ID) (float64, error) {
	obj, err := objects.Get(id)
	if err != nil {
		return 0, err
	}
	v, ok := objtable.As[float64](obj)
	if !ok || obj.Kind != objtable.KindScalar {
		return 0, fmt.Errorf("unit record %s resolved to %s, want a scalar", id, obj.Kind)
	}
	return v, nil
}
