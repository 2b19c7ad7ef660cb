package representation

import (
	"fmt"

	"github.com/vk/brepstep/internal/assembly"
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/registry"
)

// FrameMapping resolves an assembly relationship. One of the two related
// representations must denote shells and the other frames; the shells are
// re-expressed through the item-defined transformation in argument 4.
// Any other combination yields no shells.
func FrameMapping(c *registry.Call) (objtable.Object, error) {
	rep1, err := c.Object(2)
	if err != nil {
		return objtable.Object{}, err
	}
	rep2, err := c.Object(3)
	if err != nil {
		return objtable.Object{}, err
	}
	transformObj, err := c.Object(4)
	if err != nil {
		return objtable.Object{}, err
	}
	transform := objtable.FramesOf(transformObj)
	if len(transform) != 2 {
		return objtable.Object{}, c.Errorf(4, "transformation resolved to %d frames, want 2", len(transform))
	}

	var (
		shells []*geom.Shell3
		frames []geom.Frame3
	)
	switch {
	case len(objtable.ShellsOf(rep1)) > 0 && rep2.Kind == objtable.KindFrames:
		shells, frames = objtable.ShellsOf(rep1), objtable.FramesOf(rep2)
	case rep1.Kind == objtable.KindFrames && len(objtable.ShellsOf(rep2)) > 0:
		shells, frames = objtable.ShellsOf(rep2), objtable.FramesOf(rep1)
	default:
		c.Log().Debug("Assembly relationship relates no shells to frames.",
			"id", c.ID.String(), "rep1", rep1.Kind.String(), "rep2", rep2.Kind.String())
		return objtable.Shells(nil), nil
	}

	mapped, err := assembly.MapShells(shells, [2]geom.Frame3{transform[0], transform[1]}, frames)
	if err != nil {
		return objtable.Object{}, fmt.Errorf("%s %s: %w", c.Type, c.ID, err)
	}
	return objtable.Shells(mapped), nil
}
