package refgraph

import (
	"github.com/vk/brepstep/internal/record"
)

// computeLevels runs a breadth-first search from the root over the undirected
// adjacency. Neighbors are visited in id order so levels are deterministic.
func (g *Graph) computeLevels() map[record.ID]int {
	levels := map[record.ID]int{record.Root: 0}
	queue := []record.ID{record.Root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(id) {
			if _, ok := levels[next]; ok {
				continue
			}
			levels[next] = levels[id] + 1
			queue = append(queue, next)
		}
	}
	return levels
}

// Levels returns the distance of every node reachable from the root. The
// root itself is at level 0. Unreachable nodes are absent.
func (g *Graph) Levels() map[record.ID]int {
	out := make(map[record.ID]int, len(g.levels))
	for id, l := range g.levels {
		out[id] = l
	}
	return out
}

// Level returns the level of id and whether it is reachable from the root.
func (g *Graph) Level(id record.ID) (int, bool) {
	l, ok := g.levels[id]
	return l, ok
}

// Reachable returns the ids reachable from the root, ascending, root
// excluded. This is the build set of the run.
func (g *Graph) Reachable() []record.ID {
	ids := make([]record.ID, 0, len(g.levels))
	for id := range g.levels {
		if !id.IsRoot() {
			ids = append(ids, id)
		}
	}
	return sortIDs(ids)
}
