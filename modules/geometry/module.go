// Package geometry builds the geometric entities of an exchange file:
// points, directions, placements, curves and surfaces.
package geometry

import (
	"github.com/vk/brepstep/internal/registry"
)

// Composite names of the rational B-spline complex instances.
const (
	RationalBSplineCurve   = "BOUNDED_CURVE, B_SPLINE_CURVE, B_SPLINE_CURVE_WITH_KNOTS, CURVE, GEOMETRIC_REPRESENTATION_ITEM, RATIONAL_B_SPLINE_CURVE, REPRESENTATION_ITEM"
	RationalBSplineSurface = "BOUNDED_SURFACE, B_SPLINE_SURFACE, B_SPLINE_SURFACE_WITH_KNOTS, GEOMETRIC_REPRESENTATION_ITEM, RATIONAL_B_SPLINE_SURFACE, REPRESENTATION_ITEM, SURFACE"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the geometry constructors and handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterConstructor("CARTESIAN_POINT", CartesianPoint)
	r.RegisterConstructor("DIRECTION", Direction)
	r.RegisterConstructor("VECTOR", Vector)
	r.RegisterConstructor("AXIS1_PLACEMENT", Axis1Placement)
	r.RegisterConstructor("AXIS2_PLACEMENT_3D", Axis2Placement3D)

	r.RegisterConstructor("LINE", Line)
	r.RegisterConstructor("CIRCLE", Circle)
	r.RegisterConstructor("ELLIPSE", Ellipse)
	r.RegisterConstructor("B_SPLINE_CURVE_WITH_KNOTS", BSplineCurveWithKnots)
	r.RegisterConstructor("B_SPLINE_CURVE", implicitKnotCurve(quasiUniform))
	r.RegisterConstructor("BEZIER_CURVE", implicitKnotCurve(bezier))
	r.RegisterConstructor("UNIFORM_CURVE", implicitKnotCurve(uniform))
	r.RegisterConstructor("QUASI_UNIFORM_CURVE", implicitKnotCurve(quasiUniform))
	r.RegisterConstructor("RATIONAL_B_SPLINE_CURVE", RationalBSplineCurveSimple)
	r.RegisterConstructor(RationalBSplineCurve, RationalBSplineCurveComplex)

	r.RegisterHandler("trimmed_curve", TrimmedCurve)
	r.Route("TRIMMED_CURVE", "trimmed_curve")
	r.RegisterHandler("curve_on_surface", CurveOnSurface)
	r.Route("SURFACE_CURVE", "curve_on_surface")
	r.Route("SEAM_CURVE", "curve_on_surface")
	r.RegisterConstructor("PCURVE", PCurve)

	r.RegisterConstructor("PLANE", Plane)
	r.RegisterConstructor("CYLINDRICAL_SURFACE", CylindricalSurface)
	r.RegisterConstructor("CONICAL_SURFACE", ConicalSurface)
	r.RegisterConstructor("SPHERICAL_SURFACE", SphericalSurface)
	r.RegisterConstructor("TOROIDAL_SURFACE", ToroidalSurface)
	r.RegisterConstructor("B_SPLINE_SURFACE_WITH_KNOTS", BSplineSurfaceWithKnots)
	r.RegisterConstructor("B_SPLINE_SURFACE", implicitKnotSurface(quasiUniform))
	r.RegisterConstructor("BEZIER_SURFACE", implicitKnotSurface(bezier))
	r.RegisterConstructor("UNIFORM_SURFACE", implicitKnotSurface(uniform))
	r.RegisterConstructor("QUASI_UNIFORM_SURFACE", implicitKnotSurface(quasiUniform))
	r.RegisterConstructor(RationalBSplineSurface, RationalBSplineSurfaceComplex)
	r.RegisterConstructor("SURFACE_OF_REVOLUTION", SurfaceOfRevolution)
	r.RegisterConstructor("SURFACE_OF_LINEAR_EXTRUSION", SurfaceOfLinearExtrusion)
}
