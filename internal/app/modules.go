package app

import (
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/modules/geometry"
	"github.com/vk/brepstep/modules/measure"
	"github.com/vk/brepstep/modules/representation"
	"github.com/vk/brepstep/modules/topology"
)

// coreModules is the definitive list of all entity modules that are compiled
// into the brepstep binary.
var coreModules = []registry.Module{
	&measure.Module{},
	&geometry.Module{},
	&topology.Module{},
	&representation.Module{},
}
