package refgraph

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/stepfile"
)

type typeSet map[string]bool

func (s typeSet) Supported(typeName string) bool { return s[typeName] }

var supported = typeSet{
	"CARTESIAN_POINT":                    true,
	"DIRECTION":                          true,
	"AXIS2_PLACEMENT_3D":                 true,
	"PLANE":                              true,
	"ADVANCED_FACE":                      true,
	"CLOSED_SHELL":                       true,
	"ORIENTED_CLOSED_SHELL":              true,
	"MANIFOLD_SOLID_BREP":                true,
	"BREP_WITH_VOIDS":                    true,
	"SHAPE_REPRESENTATION":               true,
	"ADVANCED_BREP_SHAPE_REPRESENTATION": true,
	"ITEM_DEFINED_TRANSFORMATION":        true,
	FrameMappingRelationship:             true,
	"GEOMETRIC_REPRESENTATION_CONTEXT":   true,
}

// solid is a single-face shell #1 wrapped in a brep #6 and two
// representations joined by a relationship shortcut.
const solid = `
#1=CLOSED_SHELL('',(#2));
#2=ADVANCED_FACE('',(),#3,.T.);
#3=PLANE('',#4);
#4=AXIS2_PLACEMENT_3D('',#5,$,$);
#5=CARTESIAN_POINT('',(0.,0.,0.));
#6=MANIFOLD_SOLID_BREP('',#1);
#7=ADVANCED_BREP_SHAPE_REPRESENTATION('',(#6,#4),#9);
#8=SHAPE_REPRESENTATION('',(#4),#9);
#9=GEOMETRIC_REPRESENTATION_CONTEXT(3);
#20=SHAPE_REPRESENTATION_RELATIONSHIP('','',#8,#7);
#21=PRODUCT_DEFINITION_SHAPE('','',#22);
`

func build(t *testing.T, text string) (*stepfile.Result, *Graph) {
	t.Helper()
	res, err := stepfile.ParseString(context.Background(), text)
	require.NoError(t, err)
	g, err := Build(context.Background(), res, supported)
	require.NoError(t, err)
	return res, g
}

func TestShortcutRewrite(t *testing.T) {
	// --- Arrange & Act ---
	res, g := build(t, solid)

	// --- Assert ---
	assert.False(t, g.Has(20), "relationship record must be elided")
	assert.Contains(t, g.References(8), record.ID(7))
	assert.NotContains(t, g.Neighbors(8), record.ID(20))
	assert.NotContains(t, g.Neighbors(7), record.ID(20))

	rewritten, ok := g.Table().Get(8)
	require.True(t, ok)
	require.Len(t, rewritten.Args, 4)
	assert.Equal(t, record.KindRef, rewritten.Args[3].Kind)
	assert.Equal(t, record.ID(7), rewritten.Args[3].Ref)

	original, _ := res.Table.Get(8)
	assert.Len(t, original.Args, 3, "recordizer table must not be mutated")
}

func TestPruning(t *testing.T) {
	_, g := build(t, solid+"#50=CARTESIAN_POINT('',(1.,2.,3.));\n")

	assert.False(t, g.Has(21), "unsupported record")
	assert.False(t, g.Has(50), "isolated record")
	want := []record.ID{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if diff := cmp.Diff(want, g.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestRootsAndLevels(t *testing.T) {
	_, g := build(t, solid)

	assert.Equal(t, []record.ID{1}, g.Roots().Shells)
	assert.Empty(t, g.Roots().FrameMappings)
	assert.Equal(t, []record.ID{1}, g.References(record.Root))

	want := map[record.ID]int{
		record.Root: 0,
		1:           1,
		2:           2,
		6:           2,
		3:           3,
		7:           3,
		4:           4,
		8:           4,
		9:           4,
		5:           5,
	}
	if diff := cmp.Diff(want, g.Levels()); diff != "" {
		t.Errorf("Levels() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []record.ID{1, 2, 3, 4, 5, 6, 7, 8, 9}, g.Reachable())
}

func TestFrameMappedShellsLeavePlainRoots(t *testing.T) {
	_, g := build(t, solid+`
#30=(REPRESENTATION_RELATIONSHIP('','',#7,#8)REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION(#31)SHAPE_REPRESENTATION_RELATIONSHIP());
#31=ITEM_DEFINED_TRANSFORMATION('','',#4,#4);
`)

	roots := g.Roots()
	assert.Empty(t, roots.Shells)
	assert.Equal(t, []record.ID{30}, roots.FrameMappings)
	assert.Equal(t, []record.ID{30}, g.References(record.Root))
	assert.Equal(t, FrameMappingRelationship, g.Type(30))
}

func TestVoidCarriersExcluded(t *testing.T) {
	_, g := build(t, solid+`
#40=BREP_WITH_VOIDS('',#1,(#41));
#41=ORIENTED_CLOSED_SHELL('',*,#42,.F.);
#42=CLOSED_SHELL('',(#2));
`)

	roots := g.Roots()
	assert.Equal(t, []record.ID{40}, roots.Shells)
	assert.Equal(t, []record.ID{1, 41, 42}, roots.VoidCarriers)
}

func TestLooseGeometryIsRooted(t *testing.T) {
	_, g := build(t, `
#1=CARTESIAN_POINT('',(0.,0.,0.));
#2=DIRECTION('',(0.,0.,1.));
#3=AXIS2_PLACEMENT_3D('',#1,#2,$);
`)

	assert.Equal(t, []record.ID{1, 2, 3}, g.References(record.Root))
	for _, id := range []record.ID{1, 2, 3} {
		l, ok := g.Level(id)
		assert.True(t, ok)
		assert.Equal(t, 1, l, "level of %s", id)
	}
}

func TestUnsupportedReferences(t *testing.T) {
	_, g := build(t, `
#1=CLOSED_SHELL('',(#2));
#2=FOOBAR_WIDGET('',#3);
#3=CARTESIAN_POINT('',(0.,0.,0.));
`)

	assert.Equal(t, []stepfile.Reference{{From: 1, To: 2}}, g.Unsupported())
	assert.False(t, g.Has(1), "shell lost its only edge")
}

func TestExportReduced(t *testing.T) {
	_, g := build(t, solid)

	full := g.Export(false)
	reduced := g.Export(true)
	assert.Len(t, full.Nodes, 9)
	assert.Len(t, reduced.Nodes, 8)
	for _, e := range reduced.Edges {
		assert.NotEqual(t, 5, e.To)
	}
	assert.Equal(t, []int{1}, reduced.Roots)

	var buf bytes.Buffer
	require.NoError(t, g.WriteYAML(&buf, true))
	assert.Contains(t, buf.String(), "type: CLOSED_SHELL")
	assert.NotContains(t, buf.String(), "CARTESIAN_POINT")
}
