package geometry

import (
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/registry"
)

// knotScheme derives the knot vector of a B-spline written without one.
type knotScheme func(count, degree int) (mults []int, knots []float64)

// bezier: one span, clamped at both ends.
func bezier(count, degree int) ([]int, []float64) {
	return []int{degree + 1, degree + 1}, []float64{0, 1}
}

// uniform: count+degree+1 distinct, equally spaced knots.
func uniform(count, degree int) ([]int, []float64) {
	n := count + degree + 1
	mults := make([]int, n)
	knots := make([]float64, n)
	for i := range knots {
		mults[i] = 1
		knots[i] = float64(i)
	}
	return mults, knots
}

// quasiUniform: clamped ends, equally spaced interior knots.
func quasiUniform(count, degree int) ([]int, []float64) {
	spans := count - degree
	if spans < 1 {
		return bezier(count, degree)
	}
	mults := make([]int, spans+1)
	knots := make([]float64, spans+1)
	for i := range knots {
		mults[i] = 1
		knots[i] = float64(i) / float64(spans)
	}
	mults[0], mults[spans] = degree+1, degree+1
	return mults, knots
}

// decodeCurve reads the B_SPLINE_CURVE attributes starting at the degree,
// which sits at argument first.
func decodeCurve(c *registry.Call, first int) (*geom.BSplineCurve3, error) {
	degree, err := c.Int(first)
	if err != nil {
		return nil, err
	}
	points, err := registry.Values[geom.Point3](c, first+1)
	if err != nil {
		return nil, err
	}
	closed, err := c.Bool(first + 3)
	if err != nil {
		return nil, err
	}
	return &geom.BSplineCurve3{Degree: degree, ControlPoints: points, Closed: closed}, nil
}

// decodeKnots reads multiplicities and knots at arguments i and i+1.
func decodeKnots(c *registry.Call, i int) ([]int, []float64, error) {
	mults, err := c.Ints(i)
	if err != nil {
		return nil, nil, err
	}
	knots, err := c.Numbers(i + 1)
	if err != nil {
		return nil, nil, err
	}
	if len(mults) != len(knots) {
		return nil, nil, c.Errorf(i, "%d multiplicities for %d knots", len(mults), len(knots))
	}
	return mults, knots, nil
}

func BSplineCurveWithKnots(c *registry.Call) (objtable.Object, error) {
	bs, err := decodeCurve(c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	if bs.Multiplicities, bs.Knots, err = decodeKnots(c, 6); err != nil {
		return objtable.Object{}, err
	}
	return curve(bs), nil
}

func implicitKnotCurve(scheme knotScheme) registry.Constructor {
	return func(c *registry.Call) (objtable.Object, error) {
		bs, err := decodeCurve(c, 1)
		if err != nil {
			return objtable.Object{}, err
		}
		bs.Multiplicities, bs.Knots = scheme(len(bs.ControlPoints), bs.Degree)
		return curve(bs), nil
	}
}

// RationalBSplineCurveSimple handles the standalone rational entity, whose
// weights follow the curve attributes and whose knots are implicit.
func RationalBSplineCurveSimple(c *registry.Call) (objtable.Object, error) {
	bs, err := decodeCurve(c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	bs.Multiplicities, bs.Knots = quasiUniform(len(bs.ControlPoints), bs.Degree)
	if bs.Weights, err = c.Numbers(6); err != nil {
		return objtable.Object{}, err
	}
	return curve(bs), nil
}

// RationalBSplineCurveComplex handles the complex instance. It has no name
// argument: the degree comes first and the weights last.
func RationalBSplineCurveComplex(c *registry.Call) (objtable.Object, error) {
	bs, err := decodeCurve(c, 0)
	if err != nil {
		return objtable.Object{}, err
	}
	if bs.Multiplicities, bs.Knots, err = decodeKnots(c, 5); err != nil {
		return objtable.Object{}, err
	}
	if bs.Weights, err = c.Numbers(8); err != nil {
		return objtable.Object{}, err
	}
	if len(bs.Weights) != len(bs.ControlPoints) {
		return objtable.Object{}, c.Errorf(8, "%d weights for %d control points", len(bs.Weights), len(bs.ControlPoints))
	}
	return curve(bs), nil
}

// pointGrid resolves a list of lists of point references.
func pointGrid(c *registry.Call, i int) ([][]geom.Point3, error) {
	p, err := c.Arg(i)
	if err != nil {
		return nil, err
	}
	if p.Kind != record.KindList {
		return nil, c.Errorf(i, "expected a list of point lists, got %s", p.Kind)
	}
	grid := make([][]geom.Point3, len(p.Items))
	for r, row := range p.Items {
		if row.Kind != record.KindList {
			return nil, c.Errorf(i, "row %d: expected a list, got %s", r, row.Kind)
		}
		grid[r] = make([]geom.Point3, len(row.Items))
		for k, it := range row.Items {
			if it.Kind != record.KindRef {
				return nil, c.Errorf(i, "row %d item %d: expected a reference, got %s", r, k, it.Kind)
			}
			obj, err := c.Objects.Get(it.Ref)
			if err != nil {
				return nil, err
			}
			pt, ok := objtable.As[geom.Point3](obj)
			if !ok {
				return nil, c.Errorf(i, "row %d item %d: %T is not a point", r, k, obj.Value)
			}
			grid[r][k] = pt
		}
	}
	return grid, nil
}

// decodeSurface reads the B_SPLINE_SURFACE attributes starting at the u
// degree, which sits at argument first.
func decodeSurface(c *registry.Call, first int) (*geom.BSplineSurface3, error) {
	du, err := c.Int(first)
	if err != nil {
		return nil, err
	}
	dv, err := c.Int(first + 1)
	if err != nil {
		return nil, err
	}
	grid, err := pointGrid(c, first+2)
	if err != nil {
		return nil, err
	}
	return &geom.BSplineSurface3{DegreeU: du, DegreeV: dv, ControlPoints: grid}, nil
}

// decodeSurfaceKnots reads u and v multiplicities then u and v knots,
// starting at argument i.
func decodeSurfaceKnots(c *registry.Call, bs *geom.BSplineSurface3, i int) error {
	var err error
	if bs.MultiplicitiesU, err = c.Ints(i); err != nil {
		return err
	}
	if bs.MultiplicitiesV, err = c.Ints(i + 1); err != nil {
		return err
	}
	if bs.KnotsU, err = c.Numbers(i + 2); err != nil {
		return err
	}
	if bs.KnotsV, err = c.Numbers(i + 3); err != nil {
		return err
	}
	if len(bs.MultiplicitiesU) != len(bs.KnotsU) || len(bs.MultiplicitiesV) != len(bs.KnotsV) {
		return c.Errorf(i, "knot multiplicities do not match knots")
	}
	return nil
}

func BSplineSurfaceWithKnots(c *registry.Call) (objtable.Object, error) {
	bs, err := decodeSurface(c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	if err := decodeSurfaceKnots(c, bs, 8); err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(geom.Surface(bs)), nil
}

func implicitKnotSurface(scheme knotScheme) registry.Constructor {
	return func(c *registry.Call) (objtable.Object, error) {
		bs, err := decodeSurface(c, 1)
		if err != nil {
			return objtable.Object{}, err
		}
		rows := len(bs.ControlPoints)
		cols := 0
		if rows > 0 {
			cols = len(bs.ControlPoints[0])
		}
		bs.MultiplicitiesU, bs.KnotsU = scheme(rows, bs.DegreeU)
		bs.MultiplicitiesV, bs.KnotsV = scheme(cols, bs.DegreeV)
		return objtable.Other(geom.Surface(bs)), nil
	}
}

// RationalBSplineSurfaceComplex handles the complex instance: degrees
// first, weights last.
func RationalBSplineSurfaceComplex(c *registry.Call) (objtable.Object, error) {
	bs, err := decodeSurface(c, 0)
	if err != nil {
		return objtable.Object{}, err
	}
	if err := decodeSurfaceKnots(c, bs, 7); err != nil {
		return objtable.Object{}, err
	}
	if bs.Weights, err = c.NumberGrid(12); err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(geom.Surface(bs)), nil
}
