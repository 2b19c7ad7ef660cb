package representation

import (
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/registry"
)

// OuterShell resolves a solid to its outer shell. Voids are left out.
func OuterShell(c *registry.Call) (objtable.Object, error) {
	obj, err := c.Object(1)
	if err != nil {
		return objtable.Object{}, err
	}
	if obj.Kind != objtable.KindShell {
		return objtable.Object{}, c.Errorf(1, "outer shell resolved to %s", obj.Kind)
	}
	return obj, nil
}

// ShellBasedSurfaceModel groups every shell it lists.
func ShellBasedSurfaceModel(c *registry.Call) (objtable.Object, error) {
	items, err := c.ObjectList(1)
	if err != nil {
		return objtable.Object{}, err
	}
	var shells []*geom.Shell3
	for _, it := range items {
		shells = append(shells, objtable.ShellsOf(it)...)
	}
	return objtable.Shells(shells), nil
}

// GeometricCurveSet collects the built values of its elements.
func GeometricCurveSet(c *registry.Call) (objtable.Object, error) {
	items, err := c.ObjectList(1)
	if err != nil {
		return objtable.Object{}, err
	}
	values := make([]any, len(items))
	for i, it := range items {
		values[i] = it.Value
	}
	return objtable.Other(values), nil
}

// ItemDefinedTransformation yields its two frames in order.
func ItemDefinedTransformation(c *registry.Call) (objtable.Object, error) {
	first, err := registry.Value[geom.Frame3](c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	second, err := registry.Value[geom.Frame3](c, 3)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Frames([]geom.Frame3{first, second}), nil
}

// itemObjects returns the built items of argument 1, skipping references
// that will never be built in this run.
func itemObjects(c *registry.Call) ([]objtable.Object, error) {
	ids, err := c.Refs(1)
	if err != nil {
		return nil, err
	}
	var out []objtable.Object
	for _, id := range ids {
		if !c.Buildable(id) {
			continue
		}
		obj, err := c.Objects.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// ShellRepresentation keeps the shells among its items.
func ShellRepresentation(c *registry.Call) (objtable.Object, error) {
	items, err := itemObjects(c)
	if err != nil {
		return objtable.Object{}, err
	}
	var shells []*geom.Shell3
	for _, it := range items {
		shells = append(shells, objtable.ShellsOf(it)...)
	}
	return objtable.Shells(shells), nil
}

// ShapeRepresentation denotes either shells or frames depending on what its
// items resolved to. A fourth argument, appended by the relationship
// shortcut, points at the representation that holds the actual shells and
// wins over the items.
func ShapeRepresentation(c *registry.Call) (objtable.Object, error) {
	if c.Len() == 4 {
		return c.Object(3)
	}
	items, err := itemObjects(c)
	if err != nil {
		return objtable.Object{}, err
	}
	var (
		shells []*geom.Shell3
		frames []geom.Frame3
	)
	for _, it := range items {
		shells = append(shells, objtable.ShellsOf(it)...)
		frames = append(frames, objtable.FramesOf(it)...)
	}
	if len(shells) == 0 && len(frames) > 0 {
		return objtable.Frames(frames), nil
	}
	return objtable.Shells(shells), nil
}
