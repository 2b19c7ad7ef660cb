package geometry

import (
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/registry"
)

func surface(v geom.Surface) objtable.Object { return objtable.Other(v) }

// placedRadii reads the placement at argument 1 and the lengths after it.
func placedRadii(c *registry.Call, n int) (geom.Frame3, []float64, error) {
	frame, err := registry.Value[geom.Frame3](c, 1)
	if err != nil {
		return geom.Frame3{}, nil, err
	}
	radii := make([]float64, n)
	for i := range radii {
		if radii[i], err = c.Length(2 + i); err != nil {
			return geom.Frame3{}, nil, err
		}
	}
	return frame, radii, nil
}

// PCurve returns the basis surface of a PCURVE; the parametric curve in its
// definitional representation is not read.
func PCurve(c *registry.Call) (objtable.Object, error) {
	basis, err := registry.Value[geom.Surface](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(basis), nil
}

func Plane(c *registry.Call) (objtable.Object, error) {
	frame, _, err := placedRadii(c, 0)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(&geom.Plane3{Frame: frame}), nil
}

func CylindricalSurface(c *registry.Call) (objtable.Object, error) {
	frame, r, err := placedRadii(c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(&geom.CylindricalSurface3{Frame: frame, Radius: r[0]}), nil
}

// ConicalSurface reads the semi-angle in radians.
func ConicalSurface(c *registry.Call) (objtable.Object, error) {
	frame, r, err := placedRadii(c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	angle, err := c.Number(3)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(&geom.ConicalSurface3{Frame: frame, Radius: r[0], SemiAngle: angle}), nil
}

func SphericalSurface(c *registry.Call) (objtable.Object, error) {
	frame, r, err := placedRadii(c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(&geom.SphericalSurface3{Frame: frame, Radius: r[0]}), nil
}

func ToroidalSurface(c *registry.Call) (objtable.Object, error) {
	frame, r, err := placedRadii(c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(&geom.ToroidalSurface3{Frame: frame, MajorRadius: r[0], MinorRadius: r[1]}), nil
}

func SurfaceOfRevolution(c *registry.Call) (objtable.Object, error) {
	profile, err := registry.Value[geom.Curve](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	axis, err := registry.Value[geom.Axis1](c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(&geom.RevolutionSurface3{Profile: profile, Axis: axis}), nil
}

func SurfaceOfLinearExtrusion(c *registry.Call) (objtable.Object, error) {
	profile, err := registry.Value[geom.Curve](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	dir, err := registry.Value[geom.Vector3](c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	return surface(&geom.ExtrusionSurface3{Profile: profile, Direction: dir}), nil
}
