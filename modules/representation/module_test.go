package representation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/internal/units"
)

func refs(ids ...record.ID) record.Param {
	items := make([]record.Param, len(ids))
	for i, id := range ids {
		items[i] = record.NewRef(id)
	}
	return record.NewList(items...)
}

func call(tbl *objtable.Table, typeName string, args ...record.Param) *registry.Call {
	return &registry.Call{ID: 100, Type: typeName, Args: args, Objects: tbl, Units: units.Identity()}
}

func squareShell() *geom.Shell3 {
	contour := geom.PolygonContour([]geom.Point3{geom.Origin, geom.XAxis, {X: 1, Y: 1}, geom.YAxis})
	face := geom.NewFace(&geom.Plane3{Frame: geom.OXYZ}, []geom.Bound3{{Contour: contour, Outer: true}}, true)
	return &geom.Shell3{Faces: []*geom.Face3{face}, Closed: true}
}

// fixture holds a shell (#1), two frames (#2 world, #3 moved) and the
// item-defined transformations built from them.
func fixture(t *testing.T) (*objtable.Table, *geom.Shell3) {
	t.Helper()
	tbl := objtable.New()
	shell := squareShell()
	moved := geom.Frame3{Origin: geom.Vector3{X: 4}, U: geom.XAxis, V: geom.YAxis, W: geom.ZAxis}

	require.NoError(t, tbl.Put(1, objtable.Object{Kind: objtable.KindShell, Value: shell}))
	require.NoError(t, tbl.Put(2, objtable.Object{Kind: objtable.KindFrame, Value: geom.OXYZ}))
	require.NoError(t, tbl.Put(3, objtable.Object{Kind: objtable.KindFrame, Value: moved}))
	require.NoError(t, tbl.Put(4, objtable.Other(geom.Point3{})))
	return tbl, shell
}

func TestShapeRepresentation(t *testing.T) {
	tbl, shell := fixture(t)

	t.Run("shells win over frames", func(t *testing.T) {
		obj, err := ShapeRepresentation(call(tbl, "SHAPE_REPRESENTATION", record.NewString(""), refs(1, 2, 4), record.NewRef(99)))
		require.NoError(t, err)
		assert.Equal(t, objtable.KindShells, obj.Kind)
		require.Len(t, objtable.ShellsOf(obj), 1)
		assert.Same(t, shell, objtable.ShellsOf(obj)[0])
	})

	t.Run("frames only", func(t *testing.T) {
		obj, err := ShapeRepresentation(call(tbl, "SHAPE_REPRESENTATION", record.NewString(""), refs(2, 3), record.NewRef(99)))
		require.NoError(t, err)
		assert.Equal(t, objtable.KindFrames, obj.Kind)
		assert.Len(t, objtable.FramesOf(obj), 2)
	})

	t.Run("shortcut argument wins", func(t *testing.T) {
		obj, err := ShapeRepresentation(call(tbl, "SHAPE_REPRESENTATION", record.NewString(""), refs(2), record.NewRef(99), record.NewRef(1)))
		require.NoError(t, err)
		assert.Equal(t, objtable.KindShell, obj.Kind)
	})

	t.Run("unbuilt item is a missing dependency", func(t *testing.T) {
		_, err := ShapeRepresentation(call(tbl, "SHAPE_REPRESENTATION", record.NewString(""), refs(1, 50), record.NewRef(99)))
		var missing *objtable.MissingDependencyError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, record.ID(50), missing.ID)
	})

	t.Run("out of scope item is skipped", func(t *testing.T) {
		c := call(tbl, "SHAPE_REPRESENTATION", record.NewString(""), refs(1, 50), record.NewRef(99))
		c.InScope = func(id record.ID) bool { return id != 50 }
		obj, err := ShapeRepresentation(c)
		require.NoError(t, err)
		assert.Len(t, objtable.ShellsOf(obj), 1)
	})
}

func TestFrameMapping(t *testing.T) {
	tbl, shell := fixture(t)
	require.NoError(t, tbl.Put(10, objtable.Object{Kind: objtable.KindShells, Value: []*geom.Shell3{shell}}))
	require.NoError(t, tbl.Put(11, objtable.Object{Kind: objtable.KindFrames, Value: []geom.Frame3{geom.OXYZ}}))

	t.Run("identity transformation keeps the shells", func(t *testing.T) {
		idt, err := ItemDefinedTransformation(call(tbl, "ITEM_DEFINED_TRANSFORMATION", record.NewString(""), record.NewString(""), record.NewRef(2), record.NewRef(2)))
		require.NoError(t, err)
		require.NoError(t, tbl.Put(20, idt))

		obj, err := FrameMapping(call(tbl, FrameMappingRelationship,
			record.NewString(""), record.NewString(""), record.NewRef(10), record.NewRef(11), record.NewRef(20)))
		require.NoError(t, err)
		require.Len(t, objtable.ShellsOf(obj), 1)
		assert.Same(t, shell, objtable.ShellsOf(obj)[0])
	})

	t.Run("translation in either argument order", func(t *testing.T) {
		idt, err := ItemDefinedTransformation(call(tbl, "ITEM_DEFINED_TRANSFORMATION", record.NewString(""), record.NewString(""), record.NewRef(2), record.NewRef(3)))
		require.NoError(t, err)
		require.NoError(t, tbl.Put(21, idt))

		for _, order := range [][2]record.ID{{10, 11}, {11, 10}} {
			obj, err := FrameMapping(call(tbl, FrameMappingRelationship,
				record.NewString(""), record.NewString(""), record.NewRef(order[0]), record.NewRef(order[1]), record.NewRef(21)))
			require.NoError(t, err)
			mapped := objtable.ShellsOf(obj)
			require.Len(t, mapped, 1)
			assert.NotSame(t, shell, mapped[0])
			assert.Equal(t, geom.Point3{X: 4}, mapped[0].Faces[0].Outer.Edges[0].Start)
		}
	})

	t.Run("two shell sides yield nothing", func(t *testing.T) {
		obj, err := FrameMapping(call(tbl, FrameMappingRelationship,
			record.NewString(""), record.NewString(""), record.NewRef(10), record.NewRef(10), record.NewRef(21)))
		require.NoError(t, err)
		assert.Equal(t, objtable.KindShells, obj.Kind)
		assert.Empty(t, objtable.ShellsOf(obj))
	})
}

func TestSolidsAndModels(t *testing.T) {
	tbl, shell := fixture(t)

	obj, err := OuterShell(call(tbl, "BREP_WITH_VOIDS", record.NewString(""), record.NewRef(1), refs(1)))
	require.NoError(t, err)
	assert.Equal(t, objtable.KindShell, obj.Kind)

	_, err = OuterShell(call(tbl, "MANIFOLD_SOLID_BREP", record.NewString(""), record.NewRef(2)))
	require.ErrorIs(t, err, registry.ErrArgument)

	obj, err = ShellBasedSurfaceModel(call(tbl, "SHELL_BASED_SURFACE_MODEL", record.NewString(""), refs(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, []*geom.Shell3{shell, shell}, objtable.ShellsOf(obj))

	obj, err = ShellRepresentation(call(tbl, "ADVANCED_BREP_SHAPE_REPRESENTATION", record.NewString(""), refs(2, 1), record.NewRef(99)))
	require.NoError(t, err)
	assert.Len(t, objtable.ShellsOf(obj), 1)

	obj, err = GeometricCurveSet(call(tbl, "GEOMETRIC_CURVE_SET", record.NewString(""), refs(4)))
	require.NoError(t, err)
	assert.Equal(t, []any{geom.Point3{}}, obj.Value)
}
