// Package topology builds vertices, edges, loops, faces and shells from
// already built geometry.
package topology

import (
	"github.com/vk/brepstep/internal/geom"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the topology constructors, handlers and aliases.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterConstructor("VERTEX_POINT", VertexPoint)
	r.RegisterConstructor("EDGE_CURVE", EdgeCurve)
	r.RegisterConstructor("EDGE_LOOP", EdgeLoop)
	r.RegisterConstructor("POLY_LOOP", PolyLoop)
	r.RegisterConstructor("VERTEX_LOOP", VertexLoop)
	r.RegisterConstructor("ADVANCED_FACE", AdvancedFace)
	r.RegisterConstructor("CLOSED_SHELL", shell(true))
	r.RegisterConstructor("OPEN_SHELL", shell(false))

	r.RegisterHandler("oriented_edge", OrientedEdge)
	r.Route("ORIENTED_EDGE", "oriented_edge")
	r.RegisterHandler("face_bound", FaceBound)
	r.Route("FACE_BOUND", "face_bound")
	r.Route("FACE_OUTER_BOUND", "face_bound")
	r.RegisterHandler("oriented_shell", OrientedShell)
	r.Route("ORIENTED_CLOSED_SHELL", "oriented_shell")
	r.Route("ORIENTED_OPEN_SHELL", "oriented_shell")

	r.Alias("FACE_SURFACE", "ADVANCED_FACE")
	r.Alias("CONNECTED_FACE_SET", "OPEN_SHELL")
}

// VertexPoint resolves to its point.
func VertexPoint(c *registry.Call) (objtable.Object, error) {
	p, err := registry.Value[geom.Point3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(p), nil
}

func EdgeCurve(c *registry.Call) (objtable.Object, error) {
	start, err := registry.Value[geom.Point3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	end, err := registry.Value[geom.Point3](c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	curve, err := registry.Value[geom.Curve](c, 3)
	if err != nil {
		return objtable.Object{}, err
	}
	sameSense, err := c.Bool(4)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(&geom.Edge3{Start: start, End: end, Curve: curve, SameSense: sameSense}), nil
}

// OrientedEdge returns the edge element as is for `.T.` and reversed
// otherwise.
func OrientedEdge(c *registry.Call) (objtable.Object, error) {
	edge, err := registry.Value[*geom.Edge3](c, 3)
	if err != nil {
		return objtable.Object{}, err
	}
	forward, err := c.Bool(4)
	if err != nil {
		return objtable.Object{}, err
	}
	if forward {
		return objtable.Other(edge), nil
	}
	return objtable.Other(edge.Reverse()), nil
}

func EdgeLoop(c *registry.Call) (objtable.Object, error) {
	edges, err := registry.Values[*geom.Edge3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(&geom.Contour3{Edges: edges}), nil
}

func PolyLoop(c *registry.Call) (objtable.Object, error) {
	pts, err := registry.Values[geom.Point3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	if len(pts) < 3 {
		return objtable.Object{}, c.Errorf(1, "poly loop needs at least 3 points, got %d", len(pts))
	}
	return objtable.Other(geom.PolygonContour(pts)), nil
}

// VertexLoop is a degenerate loop around a single vertex.
func VertexLoop(c *registry.Call) (objtable.Object, error) {
	p, err := registry.Value[geom.Point3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(&geom.Contour3{Vertex: &p}), nil
}

// FaceBound orients its loop by the flag in argument 2 and marks it outer
// when the record is a FACE_OUTER_BOUND.
func FaceBound(c *registry.Call) (objtable.Object, error) {
	contour, err := registry.Value[*geom.Contour3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	orientation, err := c.Bool(2)
	if err != nil {
		return objtable.Object{}, err
	}
	if !orientation {
		contour = contour.Reverse()
	}
	return objtable.Other(geom.Bound3{Contour: contour, Outer: c.Type == "FACE_OUTER_BOUND"}), nil
}

// AdvancedFace builds a face from its bounds and surface; the outer bound
// is picked by geom.NewFace.
func AdvancedFace(c *registry.Call) (objtable.Object, error) {
	bounds, err := registry.Values[geom.Bound3](c, 1)
	if err != nil {
		return objtable.Object{}, err
	}
	surface, err := registry.Value[geom.Surface](c, 2)
	if err != nil {
		return objtable.Object{}, err
	}
	sameSense, err := c.Bool(3)
	if err != nil {
		return objtable.Object{}, err
	}
	return objtable.Other(geom.NewFace(surface, bounds, sameSense)), nil
}

func shell(closed bool) registry.Constructor {
	return func(c *registry.Call) (objtable.Object, error) {
		name, err := c.String(0)
		if err != nil {
			return objtable.Object{}, err
		}
		faces, err := registry.Values[*geom.Face3](c, 1)
		if err != nil {
			return objtable.Object{}, err
		}
		return objtable.Object{Kind: objtable.KindShell, Value: &geom.Shell3{Name: name, Faces: faces, Closed: closed}}, nil
	}
}

// OrientedShell resolves to the shell element of argument 2, reversed when
// the orientation flag is `.F.`.
func OrientedShell(c *registry.Call) (objtable.Object, error) {
	obj, err := c.Object(2)
	if err != nil {
		return objtable.Object{}, err
	}
	sh, ok := objtable.As[*geom.Shell3](obj)
	if !ok || obj.Kind != objtable.KindShell {
		return objtable.Object{}, c.Errorf(2, "expected a shell, got %s", obj.Kind)
	}
	forward, err := c.Bool(3)
	if err != nil {
		return objtable.Object{}, err
	}
	if !forward {
		sh = sh.Reverse()
	}
	return objtable.Object{Kind: objtable.KindShell, Value: sh}, nil
}
