// Package assembler collects the top-level shells of an import run into the
// resulting volume model.
package assembler

import (
	"context"
	"fmt"

	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/refgraph"
)

// Assemble builds the volume model from the roots' objects. Shells produced
// by frame-mapping roots take precedence; only when they produce none are
// the plain shell roots used. Roots are visited in id order.
func Assemble(ctx context.Context, name string, roots refgraph.Roots, objects *objtable.Table) (*geom.VolumeModel, error) {
	logger := ctxlog.FromContext(ctx)

	shells, err := collect(objects, roots.FrameMappings)
	if err != nil {
		return nil, err
	}
	source := "frame_mappings"
	if len(shells) == 0 {
		if shells, err = collect(objects, roots.Shells); err != nil {
			return nil, err
		}
		source = "shells"
	}

	model := &geom.VolumeModel{Name: name, Shells: shells}
	logger.Debug("Assembler: volume model complete",
		"source", source,
		"shells", len(model.Shells),
		"faces", model.FaceCount())
	return model, nil
}

func collect(objects *objtable.Table, ids []record.ID) ([]*geom.Shell3, error) {
	var shells []*geom.Shell3
	for _, id := range ids {
		obj, err := objects.Get(id)
		if err != nil {
			return nil, fmt.Errorf("root %s was not built: %w", id, err)
		}
		shells = append(shells, objtable.ShellsOf(obj)...)
	}
	return shells, nil
}
