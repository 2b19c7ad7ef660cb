package refgraph

import (
	"context"

	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/stepfile"
)

// shortcut is the result of the relationship rewrite pass.
type shortcut struct {
	table  *record.Table
	elided map[record.ID]bool
	edges  []stepfile.Reference
}

// rewriteShortcuts elides every SHAPE_REPRESENTATION_RELATIONSHIP record: its
// first representation gains a reference to the second one, and the edge
// between them replaces the relationship's own edges. The input table is
// not modified.
func rewriteShortcuts(ctx context.Context, table *record.Table) shortcut {
	logger := ctxlog.FromContext(ctx)

	sc := shortcut{elided: make(map[record.ID]bool)}
	replacements := make(map[record.ID]*record.Record)
	for _, rec := range table.Records() {
		if rec.Type() != ShapeRepresentationRelationship {
			continue
		}
		if len(rec.Args) < 4 || rec.Args[2].Kind != record.KindRef || rec.Args[3].Kind != record.KindRef {
			logger.Debug("Graph: relationship without two representations, not shortcut", "id", rec.ID.String())
			continue
		}
		from, to := rec.Args[2].Ref, rec.Args[3].Ref
		sc.elided[rec.ID] = true
		sc.edges = append(sc.edges, stepfile.Reference{From: from, To: to})

		base, ok := replacements[from]
		if !ok {
			if base, ok = table.Get(from); !ok {
				continue
			}
		}
		replacements[from] = base.WithExtraArg(record.NewRef(to))
		logger.Debug("Graph: shortcut relationship", "id", rec.ID.String(), "from", from.String(), "to", to.String())
	}
	sc.table = table.Replace(replacements)
	return sc
}

// Build derives the pruned reference graph from a recordized file.
func Build(ctx context.Context, res *stepfile.Result, caps Capability) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	sc := rewriteShortcuts(ctx, res.Table)
	g := newGraph(sc.table)

	for _, rec := range sc.table.Records() {
		if sc.elided[rec.ID] || !caps.Supported(rec.Type()) {
			continue
		}
		g.addNode(rec.ID, rec.Type())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dropped := 0
	refs := make([]stepfile.Reference, 0, len(res.References)+len(sc.edges))
	refs = append(refs, res.References...)
	refs = append(refs, sc.edges...)
	for _, ref := range refs {
		if sc.elided[ref.From] || sc.elided[ref.To] {
			continue
		}
		if g.addEdge(ref.From, ref.To) {
			continue
		}
		dropped++
		if target, ok := sc.table.Get(ref.To); ok && g.Has(ref.From) && !g.Has(ref.To) {
			g.unsupported = append(g.unsupported, ref)
			logger.Debug("Graph: dropping reference to unsupported record",
				"from", ref.From.String(), "to", ref.To.String(), "type", target.Type())
		}
	}

	isolated := 0
	for _, id := range g.IDs() {
		if g.nodes[id].degree() == 0 {
			g.removeNode(id)
			isolated++
		}
	}

	g.connectRoots()
	g.levels = g.computeLevels()

	logger.Debug("Graph: complete",
		"nodes", g.Len(),
		"shortcuts", len(sc.edges),
		"dropped_edges", dropped,
		"isolated", isolated,
		"shell_roots", len(g.roots.Shells),
		"frame_mapping_roots", len(g.roots.FrameMappings))
	return g, nil
}
