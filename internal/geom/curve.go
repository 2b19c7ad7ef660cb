package geom

// Curve is any 3D curve the importer can build.
type Curve interface {
	FrameMapping(f Frame3, side Side) Curve
}

// Line3 is an unbounded line through Origin along Direction. Direction keeps
// the magnitude of the source vector.
type Line3 struct {
	Origin    Point3
	Direction Vector3
}

func (l *Line3) FrameMapping(f Frame3, side Side) Curve {
	return &Line3{Origin: f.MapPoint(l.Origin, side), Direction: f.MapVector(l.Direction, side)}
}

// Circle3 lies in the UV plane of Frame, centred on its origin.
type Circle3 struct {
	Frame  Frame3
	Radius float64
}

func (c *Circle3) FrameMapping(f Frame3, side Side) Curve {
	return &Circle3{Frame: c.Frame.FrameMapping(f, side), Radius: c.Radius}
}

// Ellipse3 has its major axis along Frame.U.
type Ellipse3 struct {
	Frame                Frame3
	MajorAxis, MinorAxis float64
}

func (e *Ellipse3) FrameMapping(f Frame3, side Side) Curve {
	return &Ellipse3{Frame: e.Frame.FrameMapping(f, side), MajorAxis: e.MajorAxis, MinorAxis: e.MinorAxis}
}

// BSplineCurve3 is a (possibly rational) B-spline curve. Knots are stored
// as distinct values with their multiplicities. Weights is nil for
// non-rational curves. Closed mirrors the closed-curve flag of the source.
type BSplineCurve3 struct {
	Degree         int
	ControlPoints  []Point3
	Multiplicities []int
	Knots          []float64
	Weights        []float64
	Closed         bool
}

func (b *BSplineCurve3) FrameMapping(f Frame3, side Side) Curve {
	out := *b
	out.ControlPoints = mapPoints(f, side, b.ControlPoints)
	return &out
}

// TrimmedCurve3 is the portion of Basis between Start and End.
type TrimmedCurve3 struct {
	Basis      Curve
	Start, End Point3
}

func (t *TrimmedCurve3) FrameMapping(f Frame3, side Side) Curve {
	return &TrimmedCurve3{
		Basis: t.Basis.FrameMapping(f, side),
		Start: f.MapPoint(t.Start, side),
		End:   f.MapPoint(t.End, side),
	}
}

// Trim bounds c between two points. Trimming an already trimmed curve
// trims its basis.
func Trim(c Curve, start, end Point3) *TrimmedCurve3 {
	if tc, ok := c.(*TrimmedCurve3); ok {
		c = tc.Basis
	}
	return &TrimmedCurve3{Basis: c, Start: start, End: end}
}
