// Package representation builds the records that group shells into solids
// and shape representations, and resolves assembly relationships.
package representation

import (
	"github.com/vk/brepstep/internal/registry"
)

// FrameMappingRelationship is the composite relationship that places one
// shape representation in another through an item-defined transformation.
const FrameMappingRelationship = "REPRESENTATION_RELATIONSHIP, REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION, SHAPE_REPRESENTATION_RELATIONSHIP"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the representation constructors and handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterConstructor("MANIFOLD_SOLID_BREP", OuterShell)
	r.RegisterConstructor("BREP_WITH_VOIDS", OuterShell)
	r.RegisterConstructor("SHELL_BASED_SURFACE_MODEL", ShellBasedSurfaceModel)
	r.RegisterConstructor("GEOMETRIC_CURVE_SET", GeometricCurveSet)
	r.RegisterConstructor("ITEM_DEFINED_TRANSFORMATION", ItemDefinedTransformation)

	r.RegisterHandler("shape_representation", ShapeRepresentation)
	r.Route("SHAPE_REPRESENTATION", "shape_representation")
	r.RegisterHandler("shell_representation", ShellRepresentation)
	r.Route("ADVANCED_BREP_SHAPE_REPRESENTATION", "shell_representation")
	r.Route("MANIFOLD_SURFACE_SHAPE_REPRESENTATION", "shell_representation")
	r.RegisterHandler("frame_mapping", FrameMapping)
	r.Route(FrameMappingRelationship, "frame_mapping")
}
