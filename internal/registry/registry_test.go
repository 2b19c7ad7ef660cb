package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/units"
)

func constant(v string) Constructor {
	return func(*Call) (objtable.Object, error) { return objtable.Other(v), nil }
}

func TestRegistry_Resolve(t *testing.T) {
	r := New()
	r.RegisterConstructor("ADVANCED_FACE", constant("face"))
	r.RegisterHandler("oriented_edge", constant("oriented"))
	r.Route("ORIENTED_EDGE", "oriented_edge")
	r.Alias("FACE_SURFACE", "ADVANCED_FACE")

	testCases := []struct {
		name      string
		typeName  string
		expected  string
		supported bool
	}{
		{name: "plain constructor", typeName: "ADVANCED_FACE", expected: "face", supported: true},
		{name: "routed handler", typeName: "ORIENTED_EDGE", expected: "oriented", supported: true},
		{name: "alias", typeName: "FACE_SURFACE", expected: "face", supported: true},
		{name: "unknown", typeName: "FOOBAR_WIDGET", supported: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fn, ok := r.Resolve(tc.typeName)
			require.Equal(t, tc.supported, ok)
			assert.Equal(t, tc.supported, r.Supported(tc.typeName))
			if !ok {
				return
			}
			obj, err := fn(&Call{})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, obj.Value)
		})
	}

	assert.Equal(t, []string{"ADVANCED_FACE", "FACE_SURFACE", "ORIENTED_EDGE"}, r.TypeNames())
}

func TestRegistry_DuplicateRegistrationPanics(t *testing.T) {
	r := New()
	r.RegisterConstructor("LINE", constant("a"))

	assert.Panics(t, func() { r.RegisterConstructor("LINE", constant("b")) })
	assert.Panics(t, func() { r.Route("LINE", "x") })
	assert.Panics(t, func() { r.Alias("LINE", "CIRCLE") })

	r.RegisterHandler("h", constant("h"))
	assert.Panics(t, func() { r.RegisterHandler("h", constant("h")) })
}

func TestRegistry_ConstructUnsupported(t *testing.T) {
	r := New()
	tbl := objtable.New()
	rec := &record.Record{ID: 9, Types: []string{"FOOBAR_WIDGET"}}

	_, err := r.Construct(context.Background(), NewCall(rec, tbl, units.Identity()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))

	var unsupported *UnsupportedEntityError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "FOOBAR_WIDGET", unsupported.Type)
	assert.Equal(t, record.ID(9), unsupported.ID)
}

func TestRegistry_AddAliases(t *testing.T) {
	r := New()
	r.RegisterConstructor("OPEN_SHELL", constant("shell"))

	require.NoError(t, r.AddAliases(map[string]string{"CONNECTED_FACE_SET": "OPEN_SHELL"}))
	assert.True(t, r.Supported("CONNECTED_FACE_SET"))

	err := r.AddAliases(map[string]string{"X": "NOT_THERE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOT_THERE")

	err = r.AddAliases(map[string]string{"OPEN_SHELL": "CONNECTED_FACE_SET"})
	require.Error(t, err)
}

func TestRegistry_Validate(t *testing.T) {
	t.Run("valid registry", func(t *testing.T) {
		r := New()
		r.RegisterConstructor("LINE", constant("line"))
		r.RegisterHandler("trimmed_curve", constant("t"))
		r.Route("TRIMMED_CURVE", "trimmed_curve")
		r.Alias("POLYLINE_SEGMENT", "LINE")
		require.NoError(t, r.Validate(context.Background()))
	})

	t.Run("dangling route and looping alias", func(t *testing.T) {
		r := New()
		r.Route("TRIMMED_CURVE", "missing_handler")
		r.Alias("A", "B")
		r.Alias("B", "A")

		err := r.Validate(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing_handler")
		assert.Contains(t, err.Error(), "loops back")
	})
}

func TestCallAccessors(t *testing.T) {
	tbl := objtable.New()
	require.NoError(t, tbl.Put(1, objtable.Other("point")))

	c := &Call{
		ID:   5,
		Type: "TEST",
		Args: []record.Param{
			record.NewString("name"),
			record.NewRef(1),
			record.NewNumber(5),
			record.NewList(record.NewRef(1), record.NewRef(2)),
			record.NewEnum("T"),
			{Kind: record.KindOmitted, Raw: "$"},
		},
		Objects: tbl,
		Units:   units.Context{LengthFactor: 1e-3},
	}

	s, err := c.String(0)
	require.NoError(t, err)
	assert.Equal(t, "name", s)

	v, err := Value[string](c, 1)
	require.NoError(t, err)
	assert.Equal(t, "point", v)

	l, err := c.Length(2)
	require.NoError(t, err)
	assert.InDelta(t, 5.0*1e-3, l, 1e-15)

	_, err = Values[string](c, 3)
	var missing *objtable.MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, record.ID(2), missing.ID)

	b, err := c.Bool(4)
	require.NoError(t, err)
	assert.True(t, b)

	assert.True(t, c.Omitted(5))
	assert.True(t, c.Omitted(99))

	_, err = c.Ref(0)
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 0, argErr.Index)

	_, err = Value[int](c, 1)
	require.ErrorIs(t, err, ErrArgument)
}
