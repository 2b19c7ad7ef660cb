package refgraph

import (
	"github.com/vk/brepstep/internal/record"
)

// connectRoots identifies the top-level records and links them to the
// synthetic root. When the file has no shell and no assembly relationship,
// every node is linked so loose geometry still gets built.
func (g *Graph) connectRoots() {
	var shells, fms []record.ID
	carriers := make(map[record.ID]bool)
	for _, id := range g.IDs() {
		n := g.nodes[id]
		switch n.typeName {
		case ClosedShell, OpenShell:
			shells = append(shells, id)
		case BrepWithVoids:
			shells = append(shells, id)
			for ref := range g.reachableFrom([]record.ID{id}) {
				if isShell(g.nodes[ref].typeName) {
					carriers[ref] = true
				}
			}
		case FrameMappingRelationship:
			fms = append(fms, id)
		}
	}

	mapped := g.reachableFrom(fms)
	var plain []record.ID
	for _, id := range shells {
		if carriers[id] || mapped[id] {
			continue
		}
		plain = append(plain, id)
	}

	g.roots = Roots{
		Shells:        plain,
		FrameMappings: fms,
		VoidCarriers:  sortIDs(keysOf(carriers)),
	}

	top := append(append([]record.ID(nil), plain...), fms...)
	if len(shells) == 0 && len(fms) == 0 {
		top = g.IDs()
	}
	g.addNode(record.Root, "")
	for _, id := range top {
		g.addEdge(record.Root, id)
	}
}

// reachableFrom returns the nodes reachable from starts over directed edges,
// starts excluded unless reached again.
func (g *Graph) reachableFrom(starts []record.ID) map[record.ID]bool {
	seen := make(map[record.ID]bool)
	stack := make([]*node, 0, len(starts))
	for _, id := range starts {
		stack = append(stack, g.nodes[id])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for id, dst := range n.refs {
			if seen[id] {
				continue
			}
			seen[id] = true
			stack = append(stack, dst)
		}
	}
	return seen
}

func isShell(typeName string) bool {
	switch typeName {
	case ClosedShell, OpenShell, "ORIENTED_CLOSED_SHELL", "ORIENTED_OPEN_SHELL":
		return true
	}
	return false
}

func keysOf(m map[record.ID]bool) []record.ID {
	ids := make([]record.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}
