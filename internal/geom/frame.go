package geom

import (
	"gonum.org/v1/gonum/mat"
)

// Side selects the direction of a frame mapping.
type Side int

const (
	// SideOld reads the input as coordinates local to the frame and returns
	// them in the enclosing (global) space.
	SideOld Side = iota
	// SideNew reads the input as global coordinates and returns them local
	// to the frame.
	SideNew
)

func (s Side) String() string {
	if s == SideNew {
		return "new"
	}
	return "old"
}

// Axis1 is a located direction.
type Axis1 struct {
	Origin    Point3
	Direction Vector3
}

func (a Axis1) FrameMapping(f Frame3, side Side) Axis1 {
	return Axis1{Origin: f.MapPoint(a.Origin, side), Direction: f.MapVector(a.Direction, side)}
}

// Frame3 is a coordinate frame: an origin and three basis vectors.
type Frame3 struct {
	Origin  Point3
	U, V, W Vector3
}

// OXYZ is the world frame.
var OXYZ = Frame3{Origin: Origin, U: XAxis, V: YAxis, W: ZAxis}

// PlacementFrame builds the frame of an axis placement. The primary axis w
// defaults to Z; u is the reference direction made orthogonal to w, or an
// arbitrary deterministic perpendicular when the reference is missing or
// parallel to w; v completes the right-handed basis.
func PlacementFrame(origin Point3, axis, refDirection *Vector3) Frame3 {
	w := ZAxis
	if axis != nil && axis.Norm() > 0 {
		w = axis.Normalize()
	}
	var u Vector3
	if refDirection != nil {
		u = refDirection.Sub(w.Scale(refDirection.Dot(w)))
	}
	if u.Norm() < Tolerance {
		u = w.Perpendicular()
	}
	u = u.Normalize()
	return Frame3{Origin: origin, U: u, V: w.Cross(u), W: w}
}

// IsClose reports whether the two frames coincide within tol.
func (f Frame3) IsClose(g Frame3, tol float64) bool {
	return f.Origin.IsClose(g.Origin, tol) &&
		f.U.IsClose(g.U, tol) &&
		f.V.IsClose(g.V, tol) &&
		f.W.IsClose(g.W, tol)
}

// basis returns the matrix whose columns are u, v and w.
func (f Frame3) basis() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		f.U.X, f.V.X, f.W.X,
		f.U.Y, f.V.Y, f.W.Y,
		f.U.Z, f.V.Z, f.W.Z,
	})
}

// MapVector maps a direction; the origin does not take part.
func (f Frame3) MapVector(v Vector3, side Side) Vector3 {
	if side == SideOld {
		return f.U.Scale(v.X).Add(f.V.Scale(v.Y)).Add(f.W.Scale(v.Z))
	}
	var x mat.VecDense
	if err := x.SolveVec(f.basis(), mat.NewVecDense(3, v.Components())); err != nil {
		// Degenerate basis: fall back to projection.
		return Vector3{v.Dot(f.U), v.Dot(f.V), v.Dot(f.W)}
	}
	return Vector3{x.AtVec(0), x.AtVec(1), x.AtVec(2)}
}

// MapPoint maps a position.
func (f Frame3) MapPoint(p Point3, side Side) Point3 {
	if side == SideOld {
		return f.Origin.Add(f.MapVector(p, SideOld))
	}
	return f.MapVector(p.Sub(f.Origin), SideNew)
}

// FrameMapping re-expresses the receiver through frame by.
func (f Frame3) FrameMapping(by Frame3, side Side) Frame3 {
	return Frame3{
		Origin: by.MapPoint(f.Origin, side),
		U:      by.MapVector(f.U, side),
		V:      by.MapVector(f.V, side),
		W:      by.MapVector(f.W, side),
	}
}

func mapPoints(f Frame3, side Side, pts []Point3) []Point3 {
	out := make([]Point3, len(pts))
	for i, p := range pts {
		out[i] = f.MapPoint(p, side)
	}
	return out
}
