package importer

import (
	"context"

	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/refgraph"
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/internal/scheduler"
	"github.com/vk/brepstep/internal/stepfile"
)

const cartesianPoint = "CARTESIAN_POINT"

// Points returns every three-dimensional cartesian point of res in id order,
// scaled by the file's length unit. The first point is left out when it is
// the origin, which most exporters write as the world placement's location.
func (im *Importer) Points(ctx context.Context, res *stepfile.Result) ([]geom.Point3, error) {
	g, err := refgraph.Build(ctx, res, im.registry)
	if err != nil {
		return nil, err
	}
	objects := objtable.New()
	sch := scheduler.New(g, im.registry, objects, scheduler.Options{
		MaxRetries:         im.opts.MaxRetries,
		DefaultUncertainty: im.opts.DefaultUncertainty,
	})
	u, err := sch.ResolveUnits(ctx)
	if err != nil {
		return nil, err
	}

	var points []geom.Point3
	for _, rec := range res.Table.Records() {
		if rec.Type() != cartesianPoint {
			continue
		}
		obj, err := im.registry.Construct(ctx, registry.NewCall(rec, objects, u))
		if err != nil {
			return nil, err
		}
		if p, ok := objtable.As[geom.Point3](obj); ok {
			points = append(points, p)
		}
	}
	if len(points) > 0 && points[0].IsClose(geom.Origin, geom.Tolerance) {
		points = points[1:]
	}
	return points, nil
}
