// Package measure builds unit, measure and context records: the records the
// importer resolves before anything else to learn the file's length unit and
// tolerance.
package measure

import (
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/internal/units"
)

// Type names handled by this module.
const (
	UncertaintyMeasureWithUnit = "UNCERTAINTY_MEASURE_WITH_UNIT"
	LengthMeasureWithUnit      = "LENGTH_MEASURE_WITH_UNIT"
	SILengthUnit               = "LENGTH_UNIT, NAMED_UNIT, SI_UNIT"
	ConversionBasedLengthUnit  = "CONVERSION_BASED_UNIT, LENGTH_UNIT, NAMED_UNIT"
	PlaneAngleMeasureWithUnit  = "PLANE_ANGLE_MEASURE_WITH_UNIT"
	SIPlaneAngleUnit           = "NAMED_UNIT, PLANE_ANGLE_UNIT, SI_UNIT"
	SISolidAngleUnit           = "NAMED_UNIT, SI_UNIT, SOLID_ANGLE_UNIT"
	ConversionBasedAngleUnit   = "CONVERSION_BASED_UNIT, NAMED_UNIT, PLANE_ANGLE_UNIT"
	DimensionalExponents       = "DIMENSIONAL_EXPONENTS"
	RepresentationContext      = "GEOMETRIC_REPRESENTATION_CONTEXT, GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT, GLOBAL_UNIT_ASSIGNED_CONTEXT, REPRESENTATION_CONTEXT"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the unit constructors.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterConstructor(UncertaintyMeasureWithUnit, MeasureWithUnit)
	r.RegisterConstructor(LengthMeasureWithUnit, MeasureWithUnit)
	r.RegisterConstructor(SILengthUnit, SIUnit)
	r.RegisterConstructor(ConversionBasedLengthUnit, ConversionBasedUnit)
	r.RegisterConstructor(RepresentationContext, Context)

	// Angle units only need to resolve so contexts referencing them build.
	r.RegisterConstructor(PlaneAngleMeasureWithUnit, MeasureWithUnit)
	r.RegisterConstructor(SIPlaneAngleUnit, SIUnit)
	r.RegisterConstructor(SISolidAngleUnit, SIUnit)
	r.RegisterConstructor(ConversionBasedAngleUnit, ConversionBasedUnit)
	r.RegisterConstructor(DimensionalExponents, Exponents)
}

// MeasureWithUnit multiplies the measure in argument 0 by the factor of the
// unit in argument 1. The result is in metres.
func MeasureWithUnit(c *registry.Call) (objtable.Object, error) {
	v, err := c.Number(0)
	if err != nil {
		return objtable.Object{}, err
	}
	factor, err := registry.Value[float64](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Scalar(v * factor), nil
}

// SIUnit returns the multiplier of the unit's prefix, `$` being 1.
func SIUnit(c *registry.Call) (objtable.Object, error) {
	prefix, err := c.Enum(1)
	if err != nil {
		return objtable.Object{}, err
	}
	f, err := units.Prefix(prefix)
	if err != nil {
		return objtable.Object{}, c.Errorf(1, "%v", err)
	}
	return objtable.Scalar(f), nil
}

// ConversionBasedUnit returns the factor of its conversion measure, e.g.
// 0.0254 for an inch.
func ConversionBasedUnit(c *registry.Call) (objtable.Object, error) {
	f, err := registry.Value[float64](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Scalar(f), nil
}

// Context returns the factor of the first unit the context assigns.
func Context(c *registry.Call) (objtable.Object, error) {
	ids, err := c.Refs(2)
	if err != nil {
		return objtable.Object{}, err
	}
	if len(ids) == 0 {
		return objtable.Object{}, c.Errorf(2, "context assigns no unit")
	}
	obj, err := c.Objects.Get(ids[0])
	if err != nil {
		return objtable.Object{}, err
	}
	f, ok := objtable.As[float64](obj)
	if !ok {
		return objtable.Object{}, c.Errorf(2, "first unit is %T, want a scalar", obj.Value)
	}
	return objtable.Scalar(f), nil
}

// Exponents returns the seven dimensional exponents as a []float64.
func Exponents(c *registry.Call) (objtable.Object, error) {
	exps := make([]float64, c.Len())
	for i := range exps {
		v, err := c.Number(i)
		if err != nil {
			return objtable.Object{}, err
		}
		exps[i] = v
	}
	return objtable.Other(exps), nil
}
