package stepfile

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brepstep/internal/record"
)

const placementFile = `ISO-10303-21;
HEADER;
FILE_NAME('part.step','2020-01-01',(''),(''),'','','');
ENDSEC;
DATA;
#1=CARTESIAN_POINT('',(0.,0.,0.));
#2=DIRECTION('',(0.,0.,1.));
#3=AXIS2_PLACEMENT_3D('',#1,#2,$);
ENDSEC;
END-ISO-10303-21;
`

func TestParseStringSimpleRecords(t *testing.T) {
	res, err := ParseString(context.Background(), placementFile)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Table.Len())
	assert.Equal(t, 3, res.Statements)
	assert.Zero(t, res.Malformed)

	p, ok := res.Table.Get(1)
	require.True(t, ok)
	assert.Equal(t, "CARTESIAN_POINT", p.Type())
	require.Len(t, p.Args, 2)
	assert.True(t, p.Args[0].IsEmptyString())
	require.Equal(t, record.KindList, p.Args[1].Kind)
	require.Len(t, p.Args[1].Items, 3)
	assert.Equal(t, 0.0, p.Args[1].Items[0].Number)

	a, ok := res.Table.Get(3)
	require.True(t, ok)
	require.Len(t, a.Args, 4)
	assert.Equal(t, record.KindRef, a.Args[1].Kind)
	assert.Equal(t, record.ID(1), a.Args[1].Ref)
	assert.Equal(t, record.KindOmitted, a.Args[3].Kind)

	expectedRefs := []Reference{{From: 3, To: 1}, {From: 3, To: 2}}
	if diff := cmp.Diff(expectedRefs, res.References); diff != "" {
		t.Errorf("references mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStringArguments(t *testing.T) {
	res, err := ParseString(context.Background(),
		"#10=ORIENTED_EDGE('',*,*,#11,.F.);"+
			"#12=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(1.E-07),#13,'distance_accuracy_value','');"+
			"#14=EDGE_LOOP('a #99 b',(#15,#16));")
	require.NoError(t, err)

	oe, _ := res.Table.Get(10)
	require.NotNil(t, oe)
	assert.Equal(t, record.KindDerived, oe.Args[1].Kind)
	flag, ok := oe.Args[4].Bool()
	require.True(t, ok)
	assert.False(t, flag)

	um, _ := res.Table.Get(12)
	require.NotNil(t, um)
	require.Equal(t, record.KindTyped, um.Args[0].Kind)
	assert.Equal(t, "LENGTH_MEASURE", um.Args[0].Text)
	v, ok := um.Args[0].Float()
	require.True(t, ok)
	assert.InDelta(t, 1e-7, v, 1e-20)

	loop, _ := res.Table.Get(14)
	require.NotNil(t, loop)
	assert.Equal(t, []record.ID{15, 16}, loop.Refs(), "quoted text never yields a reference")
}

func TestComplexEntity(t *testing.T) {
	t.Run("composite type keeps order of appearance", func(t *testing.T) {
		res, err := ParseString(context.Background(),
			"#5=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.));")
		require.NoError(t, err)

		u, ok := res.Table.Get(5)
		require.True(t, ok)
		assert.Equal(t, []string{"LENGTH_UNIT", "NAMED_UNIT", "SI_UNIT"}, u.Types)
		assert.Equal(t, "LENGTH_UNIT, NAMED_UNIT, SI_UNIT", u.Type())
		require.Len(t, u.Args, 3)
		assert.Equal(t, "MILLI", u.Args[1].Text)
	})

	t.Run("matches the equivalent direct record", func(t *testing.T) {
		complexRes, err := ParseString(context.Background(),
			"#7=(A(1.,#2)B('x')REPRESENTATION_ITEM(''));")
		require.NoError(t, err)
		directRes, err := ParseString(context.Background(),
			"#7=A(1.,#2,'x');")
		require.NoError(t, err)

		c, _ := complexRes.Table.Get(7)
		d, _ := directRes.Table.Get(7)
		require.NotNil(t, c)
		require.NotNil(t, d)
		assert.Equal(t, "A, B, REPRESENTATION_ITEM", c.Type())
		if diff := cmp.Diff(d.Args, c.Args); diff != "" {
			t.Errorf("complex args mismatch (-direct +complex):\n%s", diff)
		}
	})

	t.Run("placeholder is dropped when argument-less groups follow it", func(t *testing.T) {
		res, err := ParseString(context.Background(),
			"#8=(BOUNDED_SURFACE()B_SPLINE_SURFACE(1,1,((#1,#2),(#3,#4)),.UNSPECIFIED.,.F.,.F.,.F.)"+
				"REPRESENTATION_ITEM('')SURFACE());")
		require.NoError(t, err)

		s, ok := res.Table.Get(8)
		require.True(t, ok)
		assert.Equal(t, "BOUNDED_SURFACE, B_SPLINE_SURFACE, REPRESENTATION_ITEM, SURFACE", s.Type())
		require.Len(t, s.Args, 7)
		assert.Equal(t, record.KindEnum, s.Args[6].Kind)
	})

	t.Run("non-empty representation item name is kept", func(t *testing.T) {
		res, err := ParseString(context.Background(), "#9=(A(1.)REPRESENTATION_ITEM('named'));")
		require.NoError(t, err)
		s, _ := res.Table.Get(9)
		require.NotNil(t, s)
		require.Len(t, s.Args, 2)
		assert.Equal(t, "named", s.Args[1].Text)
	})
}

func TestMalformedStatementsAreDropped(t *testing.T) {
	res, err := ParseString(context.Background(),
		"#1=CARTESIAN_POINT('',(0.,0.,0.));\n"+
			"#2=DIRECTION('',(0.,0.,1.);\n"+ // unbalanced
			"#1=DIRECTION('',(1.,0.,0.));\n"+ // duplicate id
			"#4=VERTEX_POINT('',#1);\n"+
			"#5=VERTEX_POINT('',#1)") // unterminated
	require.NoError(t, err)

	assert.Equal(t, []record.ID{1, 4}, res.Table.IDs())
	assert.Equal(t, 3, res.Malformed)
	first, _ := res.Table.Get(1)
	assert.Equal(t, "CARTESIAN_POINT", first.Type(), "the earlier definition wins")
}

func TestReadDecodesLatin1(t *testing.T) {
	// 0xE9 is 'é' in ISO-8859-1.
	input := []byte("#1=PRODUCT('caf\xe9','');\r\n")
	res, err := Read(context.Background(), bytes.NewReader(input))
	require.NoError(t, err)

	p, ok := res.Table.Get(1)
	require.True(t, ok)
	assert.Equal(t, "café", p.Args[0].Text)
}

func TestParseStringHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseString(ctx, placementFile)
	require.ErrorIs(t, err, context.Canceled)
}
