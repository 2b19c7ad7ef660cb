package refgraph

import (
	"sort"

	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/stepfile"
)

// Type names the graph builder treats specially.
const (
	ShapeRepresentationRelationship = "SHAPE_REPRESENTATION_RELATIONSHIP"
	FrameMappingRelationship        = "REPRESENTATION_RELATIONSHIP, REPRESENTATION_RELATIONSHIP_WITH_TRANSFORMATION, SHAPE_REPRESENTATION_RELATIONSHIP"
	ClosedShell                     = "CLOSED_SHELL"
	OpenShell                       = "OPEN_SHELL"
	BrepWithVoids                   = "BREP_WITH_VOIDS"
)

// Capability reports whether a type name can be dispatched.
type Capability interface {
	Supported(typeName string) bool
}

type node struct {
	id        record.ID
	typeName  string
	refs      map[record.ID]*node
	referrers map[record.ID]*node
}

func (n *node) degree() int {
	return len(n.refs) + len(n.referrers)
}

// Roots are the records connected to the synthetic root, in id order.
type Roots struct {
	// Shells are plain top-level shells and breps with voids.
	Shells []record.ID
	// FrameMappings are the assembly relationships.
	FrameMappings []record.ID
	// VoidCarriers are shells owned by a brep with voids. They are built but
	// never reported as top-level shells.
	VoidCarriers []record.ID
}

// Graph is the pruned reference graph of one file.
type Graph struct {
	nodes       map[record.ID]*node
	table       *record.Table
	roots       Roots
	unsupported []stepfile.Reference
	levels      map[record.ID]int
}

func newGraph(table *record.Table) *Graph {
	return &Graph{
		nodes: make(map[record.ID]*node),
		table: table,
	}
}

func (g *Graph) addNode(id record.ID, typeName string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:        id,
		typeName:  typeName,
		refs:      make(map[record.ID]*node),
		referrers: make(map[record.ID]*node),
	}
}

// addEdge records that from references to. It reports false when either end
// is not a node or the edge would be a self-reference.
func (g *Graph) addEdge(from, to record.ID) bool {
	if from == to {
		return false
	}
	src, ok := g.nodes[from]
	if !ok {
		return false
	}
	dst, ok := g.nodes[to]
	if !ok {
		return false
	}
	src.refs[to] = dst
	dst.referrers[from] = src
	return true
}

func (g *Graph) removeNode(id record.ID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	for other := range n.refs {
		delete(g.nodes[other].referrers, id)
	}
	for other := range n.referrers {
		delete(g.nodes[other].refs, id)
	}
	delete(g.nodes, id)
}

// Table returns the rewritten record table. Records changed by the shortcut
// pass are copies; the recordizer's table is left untouched.
func (g *Graph) Table() *record.Table { return g.table }

// Has reports whether id is a node. The root is always a node.
func (g *Graph) Has(id record.ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes, not counting the root.
func (g *Graph) Len() int {
	if g.Has(record.Root) {
		return len(g.nodes) - 1
	}
	return len(g.nodes)
}

// IDs returns the node ids in ascending order, root excluded.
func (g *Graph) IDs() []record.ID {
	ids := make([]record.ID, 0, len(g.nodes))
	for id := range g.nodes {
		if !id.IsRoot() {
			ids = append(ids, id)
		}
	}
	return sortIDs(ids)
}

// Type returns the type name of node id.
func (g *Graph) Type(id record.ID) string {
	if n, ok := g.nodes[id]; ok {
		return n.typeName
	}
	return ""
}

// References returns the ids node id references, ascending.
func (g *Graph) References(id record.ID) []record.ID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return keys(n.refs)
}

// Referrers returns the ids referencing node id, ascending.
func (g *Graph) Referrers(id record.ID) []record.ID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return keys(n.referrers)
}

// Neighbors returns the undirected adjacency of node id, ascending.
func (g *Graph) Neighbors(id record.ID) []record.ID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	seen := make(map[record.ID]*node, n.degree())
	for k, v := range n.refs {
		seen[k] = v
	}
	for k, v := range n.referrers {
		seen[k] = v
	}
	return keys(seen)
}

// Roots returns the top-level records.
func (g *Graph) Roots() Roots { return g.roots }

// Unsupported returns the references from supported records to existing
// records whose type has no constructor, recorded before pruning. Such edges
// are dropped from the graph.
func (g *Graph) Unsupported() []stepfile.Reference { return g.unsupported }

func keys(m map[record.ID]*node) []record.ID {
	ids := make([]record.ID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return sortIDs(ids)
}

func sortIDs(ids []record.ID) []record.ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
