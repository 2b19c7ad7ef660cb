package geom

// Surface is any 3D surface the importer can build.
type Surface interface {
	FrameMapping(f Frame3, side Side) Surface
}

type Plane3 struct {
	Frame Frame3
}

func (p *Plane3) FrameMapping(f Frame3, side Side) Surface {
	return &Plane3{Frame: p.Frame.FrameMapping(f, side)}
}

// CylindricalSurface3 has its axis along Frame.W.
type CylindricalSurface3 struct {
	Frame  Frame3
	Radius float64
}

func (c *CylindricalSurface3) FrameMapping(f Frame3, side Side) Surface {
	return &CylindricalSurface3{Frame: c.Frame.FrameMapping(f, side), Radius: c.Radius}
}

// ConicalSurface3 has its axis along Frame.W. Radius is measured in the UV
// plane of Frame; SemiAngle is in radians.
type ConicalSurface3 struct {
	Frame     Frame3
	Radius    float64
	SemiAngle float64
}

func (c *ConicalSurface3) FrameMapping(f Frame3, side Side) Surface {
	return &ConicalSurface3{Frame: c.Frame.FrameMapping(f, side), Radius: c.Radius, SemiAngle: c.SemiAngle}
}

type SphericalSurface3 struct {
	Frame  Frame3
	Radius float64
}

func (s *SphericalSurface3) FrameMapping(f Frame3, side Side) Surface {
	return &SphericalSurface3{Frame: s.Frame.FrameMapping(f, side), Radius: s.Radius}
}

type ToroidalSurface3 struct {
	Frame                    Frame3
	MajorRadius, MinorRadius float64
}

func (t *ToroidalSurface3) FrameMapping(f Frame3, side Side) Surface {
	return &ToroidalSurface3{Frame: t.Frame.FrameMapping(f, side), MajorRadius: t.MajorRadius, MinorRadius: t.MinorRadius}
}

// BSplineSurface3 stores control points row by row along u. Weights is nil
// for non-rational surfaces.
type BSplineSurface3 struct {
	DegreeU, DegreeV                 int
	ControlPoints                    [][]Point3
	MultiplicitiesU, MultiplicitiesV []int
	KnotsU, KnotsV                   []float64
	Weights                          [][]float64
}

func (b *BSplineSurface3) FrameMapping(f Frame3, side Side) Surface {
	out := *b
	out.ControlPoints = make([][]Point3, len(b.ControlPoints))
	for i, row := range b.ControlPoints {
		out.ControlPoints[i] = mapPoints(f, side, row)
	}
	return &out
}

// RevolutionSurface3 sweeps Profile around Axis.
type RevolutionSurface3 struct {
	Profile Curve
	Axis    Axis1
}

func (r *RevolutionSurface3) FrameMapping(f Frame3, side Side) Surface {
	return &RevolutionSurface3{Profile: r.Profile.FrameMapping(f, side), Axis: r.Axis.FrameMapping(f, side)}
}

// ExtrusionSurface3 sweeps Profile along Direction, whose norm is the
// extrusion depth.
type ExtrusionSurface3 struct {
	Profile   Curve
	Direction Vector3
}

func (e *ExtrusionSurface3) FrameMapping(f Frame3, side Side) Surface {
	return &ExtrusionSurface3{Profile: e.Profile.FrameMapping(f, side), Direction: f.MapVector(e.Direction, side)}
}
