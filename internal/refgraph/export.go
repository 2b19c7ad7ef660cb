package refgraph

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vk/brepstep/internal/record"
)

// reducedTypes are left out of a reduced dump; they make up most of a
// file's nodes and carry no structure.
var reducedTypes = map[string]bool{
	"CARTESIAN_POINT": true,
	"DIRECTION":       true,
}

// Dump is a serializable snapshot of the graph.
type Dump struct {
	Roots []int      `yaml:"roots"`
	Nodes []DumpNode `yaml:"nodes"`
	Edges []DumpEdge `yaml:"edges"`
}

// DumpNode is one node of a Dump.
type DumpNode struct {
	ID    int    `yaml:"id"`
	Type  string `yaml:"type"`
	Level int    `yaml:"level"`
}

// DumpEdge is one directed reference of a Dump.
type DumpEdge struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Export snapshots the graph. With reduced set, point and direction nodes
// and their edges are omitted. Unreachable nodes have level -1.
func (g *Graph) Export(reduced bool) Dump {
	keep := func(id record.ID) bool {
		return !reduced || !reducedTypes[g.Type(id)]
	}

	d := Dump{Roots: []int{}, Nodes: []DumpNode{}, Edges: []DumpEdge{}}
	for _, id := range g.References(record.Root) {
		d.Roots = append(d.Roots, int(id))
	}
	for _, id := range g.IDs() {
		if !keep(id) {
			continue
		}
		level, ok := g.Level(id)
		if !ok {
			level = -1
		}
		d.Nodes = append(d.Nodes, DumpNode{ID: int(id), Type: g.Type(id), Level: level})
		for _, to := range g.References(id) {
			if keep(to) {
				d.Edges = append(d.Edges, DumpEdge{From: int(id), To: int(to)})
			}
		}
	}
	return d
}

// WriteYAML writes Export(reduced) to w.
func (g *Graph) WriteYAML(w io.Writer, reduced bool) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g.Export(reduced)); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return enc.Close()
}
