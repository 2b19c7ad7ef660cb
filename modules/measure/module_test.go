package measure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/internal/stepfile"
	"github.com/vk/brepstep/internal/units"
)

// build constructs ids in order from the given file text.
func build(t *testing.T, text string, ids ...record.ID) *objtable.Table {
	t.Helper()
	res, err := stepfile.ParseString(context.Background(), text)
	require.NoError(t, err)

	r := registry.New()
	(&Module{}).Register(r)
	tbl := objtable.New()
	for _, id := range ids {
		rec, ok := res.Table.Get(id)
		require.True(t, ok, "record %s", id)
		obj, err := r.Construct(context.Background(), registry.NewCall(rec, tbl, units.Identity()))
		require.NoError(t, err, "record %s", id)
		require.NoError(t, tbl.Put(id, obj))
	}
	return tbl
}

func scalar(t *testing.T, tbl *objtable.Table, id record.ID) float64 {
	t.Helper()
	obj, err := tbl.Get(id)
	require.NoError(t, err)
	require.Equal(t, objtable.KindScalar, obj.Kind)
	return obj.Value.(float64)
}

func TestLengthMeasureWithMilliUnit(t *testing.T) {
	tbl := build(t, `
#1=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.));
#2=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(5.0),#1);
`, 1, 2)

	assert.Equal(t, 1e-3, scalar(t, tbl, 1))
	assert.InDelta(t, 5.0*1e-3, scalar(t, tbl, 2), 1e-15)
}

func TestUncertaintyAndContext(t *testing.T) {
	tbl := build(t, `
#1=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT($,.METRE.));
#2=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(1.E-07),#1,'distance_accuracy_value','');
#3=(GEOMETRIC_REPRESENTATION_CONTEXT(3)GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT((#2))GLOBAL_UNIT_ASSIGNED_CONTEXT((#1))REPRESENTATION_CONTEXT('',''));
`, 1, 2, 3)

	assert.Equal(t, 1.0, scalar(t, tbl, 1))
	assert.InDelta(t, 1e-7, scalar(t, tbl, 2), 1e-20)
	assert.Equal(t, 1.0, scalar(t, tbl, 3))
}

func TestConversionBasedInch(t *testing.T) {
	tbl := build(t, `
#1=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.));
#2=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(25.4),#1);
#3=DIMENSIONAL_EXPONENTS(1.,0.,0.,0.,0.,0.,0.);
#4=(CONVERSION_BASED_UNIT('INCH',#2)LENGTH_UNIT()NAMED_UNIT(#3));
`, 1, 2, 4)

	assert.InDelta(t, 0.0254, scalar(t, tbl, 4), 1e-15)
}

func TestMeasureWithUnitMissingDependency(t *testing.T) {
	res, err := stepfile.ParseString(context.Background(), "#2=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(5.0),#1);")
	require.NoError(t, err)
	rec, _ := res.Table.Get(2)

	r := registry.New()
	(&Module{}).Register(r)
	_, err = r.Construct(context.Background(), registry.NewCall(rec, objtable.New(), units.Identity()))

	var missing *objtable.MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, record.ID(1), missing.ID)
}

func TestConversionBasedDegree(t *testing.T) {
	tbl := build(t, `
#1=(NAMED_UNIT(*)PLANE_ANGLE_UNIT()SI_UNIT($,.RADIAN.));
#2=PLANE_ANGLE_MEASURE_WITH_UNIT(PLANE_ANGLE_MEASURE(0.0174532925),#1);
#3=DIMENSIONAL_EXPONENTS(0.,0.,0.,0.,0.,0.,0.);
#4=(CONVERSION_BASED_UNIT('DEGREE',#2)NAMED_UNIT(#3)PLANE_ANGLE_UNIT());
`, 1, 2, 3, 4)

	assert.Equal(t, 1.0, scalar(t, tbl, 1))
	assert.InDelta(t, 0.0174532925, scalar(t, tbl, 4), 1e-12)
	exps, err := tbl.Get(3)
	require.NoError(t, err)
	assert.Len(t, exps.Value, 7)
}
