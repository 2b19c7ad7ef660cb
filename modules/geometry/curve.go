package geometry

import (
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/registry"
)

func curve(v geom.Curve) objtable.Object { return objtable.Other(v) }

func Line(c *registry.Call) (objtable.Object, error) {
	origin, err := registry.Value[geom.Point3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	dir, err := registry.Value[geom.Vector3](c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	return curve(&geom.Line3{Origin: origin, Direction: dir}), nil
}

func Circle(c *registry.Call) (objtable.Object, error) {
	frame, err := registry.Value[geom.Frame3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	radius, err := c.Length(2)
	if err != nil {
		return objtable.Object{}, err
	}
	return curve(&geom.Circle3{Frame: frame, Radius: radius}), nil
}

func Ellipse(c *registry.Call) (objtable.Object, error) {
	frame, err := registry.Value[geom.Frame3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	major, err := c.Length(2)
	if err != nil {
		return objtable.Object{}, err
	}
	minor, err := c.Length(3)
	if err != nil {
		return objtable.Object{}, err
	}
	return curve(&geom.Ellipse3{Frame: frame, MajorAxis: major, MinorAxis: minor}), nil
}

// TrimmedCurve trims the basis curve in argument 1 between the points
// referenced first in the trim selects of arguments 2 and 3.
func TrimmedCurve(c *registry.Call) (objtable.Object, error) {
	basis, err := registry.Value[geom.Curve](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	start, err := trimPoint(c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	end, err := trimPoint(c, 3)
	if err != nil {
		return objtable.Object{}, err
	}
	return curve(geom.Trim(basis, start, end)), nil
}

// trimPoint returns the point of a trim select list. Parameter values are
// skipped; only a point reference can trim.
func trimPoint(c *registry.Call, i int) (geom.Point3, error) {
	p, err := c.Arg(i)
	if err != nil {
		return geom.Point3{}, err
	}
	if p.Kind != record.KindList {
		return geom.Point3{}, c.Errorf(i, "expected a trim select list, got %s", p.Kind)
	}
	for _, it := range p.Items {
		if it.Kind != record.KindRef {
			continue
		}
		obj, err := c.Objects.Get(it.Ref)
		if err != nil {
			return geom.Point3{}, err
		}
		pt, ok := objtable.As[geom.Point3](obj)
		if !ok {
			return geom.Point3{}, c.Errorf(i, "trim reference %s is %T, want a point", it.Ref, obj.Value)
		}
		return pt, nil
	}
	return geom.Point3{}, c.Errorf(i, "trim select has no point reference")
}

// CurveOnSurface returns the 3D curve of a SURFACE_CURVE or SEAM_CURVE;
// the associated parametric curves are ignored.
func CurveOnSurface(c *registry.Call) (objtable.Object, error) {
	basis, err := registry.Value[geom.Curve](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return curve(basis), nil
}
