package geom

import (
	"fmt"
	"math"
)

// Vector3 is a 3D vector. Points share the representation.
type Vector3 struct {
	X, Y, Z float64
}

// Point3 is a position in model space.
type Point3 = Vector3

// Vector2 is a 2D vector, used for parametric-space points.
type Vector2 struct {
	X, Y float64
}

var (
	Origin = Vector3{}
	XAxis  = Vector3{X: 1}
	YAxis  = Vector3{Y: 1}
	ZAxis  = Vector3{Z: 1}
)

// Tolerance is the absolute tolerance used by IsClose comparisons.
const Tolerance = 1e-9

func (a Vector3) Add(b Vector3) Vector3 { return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vector3) Sub(b Vector3) Vector3 { return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vector3) Scale(f float64) Vector3 {
	return Vector3{a.X * f, a.Y * f, a.Z * f}
}
func (a Vector3) Dot(b Vector3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vector3) Norm() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector with the direction of a. The zero vector
// is returned unchanged.
func (a Vector3) Normalize() Vector3 {
	n := a.Norm()
	if n == 0 {
		return a
	}
	return a.Scale(1 / n)
}

// IsClose reports whether every component of a and b differs by at most tol.
func (a Vector3) IsClose(b Vector3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// Perpendicular returns a unit vector orthogonal to a. The choice is
// deterministic: a is crossed with the world axis it is least aligned with.
func (a Vector3) Perpendicular() Vector3 {
	ax, ay, az := math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)
	ref := XAxis
	switch {
	case ay <= ax && ay <= az:
		ref = YAxis
	case az <= ax && az <= ay:
		ref = ZAxis
	}
	return ref.Cross(a).Normalize()
}

func (a Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", a.X, a.Y, a.Z)
}

// Components returns the coordinates as a slice.
func (a Vector3) Components() []float64 { return []float64{a.X, a.Y, a.Z} }
