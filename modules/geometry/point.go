package geometry

import (
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/registry"
)

// CartesianPoint builds a geom.Point3, or a geom.Vector2 for 2D points.
// Coordinates are lengths and get scaled.
func CartesianPoint(c *registry.Call) (objtable.Object, error) {
	coords, err := c.Numbers(1)
	if err != nil {
		return objtable.Object{}, err
	}
	for i := range coords {
		coords[i] = c.Units.Length(coords[i])
	}
	switch len(coords) {
	case 2:
		return objtable.Other(geom.Vector2{X: coords[0], Y: coords[1]}), nil
	case 3:
		return objtable.Other(geom.Point3{X: coords[0], Y: coords[1], Z: coords[2]}), nil
	}
	return objtable.Object{}, c.Errorf(1, "expected 2 or 3 coordinates, got %d", len(coords))
}

// Direction builds a unit geom.Vector3, or a geom.Vector2 for 2D directions.
// Direction ratios are not lengths and are never scaled.
func Direction(c *registry.Call) (objtable.Object, error) {
	ratios, err := c.Numbers(1)
	if err != nil {
		return objtable.Object{}, err
	}
	switch len(ratios) {
	case 2:
		return objtable.Other(geom.Vector2{X: ratios[0], Y: ratios[1]}), nil
	case 3:
		return objtable.Other(geom.Vector3{X: ratios[0], Y: ratios[1], Z: ratios[2]}.Normalize()), nil
	}
	return objtable.Object{}, c.Errorf(1, "expected 2 or 3 direction ratios, got %d", len(ratios))
}

// Vector is a direction times a scaled magnitude.
func Vector(c *registry.Call) (objtable.Object, error) {
	dir, err := registry.Value[geom.Vector3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	magnitude, err := c.Length(2)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(dir.Normalize().Scale(magnitude)), nil
}

// optionalVector returns the vector referenced by argument i, or nil when
// the argument is omitted.
func optionalVector(c *registry.Call, i int) (*geom.Vector3, error) {
	if c.Omitted(i) {
		return nil, nil
	}
	v, err := registry.Value[geom.Vector3](c, i)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Axis1Placement builds a geom.Axis1. The axis defaults to Z.
func Axis1Placement(c *registry.Call) (objtable.Object, error) {
	origin, err := registry.Value[geom.Point3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	axis, err := optionalVector(c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	dir := geom.ZAxis
	if axis != nil {
		dir = axis.Normalize()
	}
	return objtable.Other(geom.Axis1{Origin: origin, Direction: dir}), nil
}

// Axis2Placement3D builds a frame: origin from the location, primary axis
// from the axis direction, first basis vector from the reference direction.
func Axis2Placement3D(c *registry.Call) (objtable.Object, error) {
	origin, err := registry.Value[geom.Point3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	axis, err := optionalVector(c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	ref, err := optionalVector(c, 3)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Object{Kind: objtable.KindFrame, Value: geom.PlacementFrame(origin, axis, ref)}, nil
}
