package geom

// Edge3 joins two vertices along a curve. SameSense tells whether the edge
// runs in the direction of its curve.
type Edge3 struct {
	Start, End Point3
	Curve      Curve
	SameSense  bool
}

// Reverse returns a new edge running from End to Start.
func (e *Edge3) Reverse() *Edge3 {
	return &Edge3{Start: e.End, End: e.Start, Curve: e.Curve, SameSense: !e.SameSense}
}

func (e *Edge3) FrameMapping(f Frame3, side Side) *Edge3 {
	out := &Edge3{Start: f.MapPoint(e.Start, side), End: f.MapPoint(e.End, side), SameSense: e.SameSense}
	if e.Curve != nil {
		out.Curve = e.Curve.FrameMapping(f, side)
	}
	return out
}

// Contour3 is an ordered loop of edges. A degenerate loop made of a single
// vertex has no edges and a non-nil Vertex.
type Contour3 struct {
	Edges  []*Edge3
	Vertex *Point3
}

// Reverse returns the loop traversed backwards: edge order is inverted and
// every edge is reversed.
func (c *Contour3) Reverse() *Contour3 {
	out := &Contour3{Vertex: c.Vertex, Edges: make([]*Edge3, len(c.Edges))}
	for i, e := range c.Edges {
		out.Edges[len(c.Edges)-1-i] = e.Reverse()
	}
	return out
}

func (c *Contour3) FrameMapping(f Frame3, side Side) *Contour3 {
	out := &Contour3{Edges: make([]*Edge3, len(c.Edges))}
	for i, e := range c.Edges {
		out.Edges[i] = e.FrameMapping(f, side)
	}
	if c.Vertex != nil {
		v := f.MapPoint(*c.Vertex, side)
		out.Vertex = &v
	}
	return out
}

// PolygonContour closes the polyline through pts into a loop of line edges.
func PolygonContour(pts []Point3) *Contour3 {
	c := &Contour3{}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		c.Edges = append(c.Edges, &Edge3{
			Start:     p,
			End:       q,
			Curve:     &Line3{Origin: p, Direction: q.Sub(p)},
			SameSense: true,
		})
	}
	return c
}

// Bound3 is a face boundary already oriented for its face.
type Bound3 struct {
	Contour *Contour3
	Outer   bool
}

// Face3 is a bounded patch of a surface.
type Face3 struct {
	Surface   Surface
	Outer     *Contour3
	Inners    []*Contour3
	SameSense bool
}

// NewFace picks the outer boundary among bounds: the first bound flagged
// outer, otherwise the first bound. Every other bound becomes an inner one.
func NewFace(surface Surface, bounds []Bound3, sameSense bool) *Face3 {
	face := &Face3{Surface: surface, SameSense: sameSense}
	outer := -1
	for i, b := range bounds {
		if b.Outer {
			outer = i
			break
		}
	}
	if outer < 0 && len(bounds) > 0 {
		outer = 0
	}
	for i, b := range bounds {
		if i == outer {
			face.Outer = b.Contour
			continue
		}
		face.Inners = append(face.Inners, b.Contour)
	}
	return face
}

func (fc *Face3) FrameMapping(f Frame3, side Side) *Face3 {
	out := &Face3{SameSense: fc.SameSense}
	if fc.Surface != nil {
		out.Surface = fc.Surface.FrameMapping(f, side)
	}
	if fc.Outer != nil {
		out.Outer = fc.Outer.FrameMapping(f, side)
	}
	for _, in := range fc.Inners {
		out.Inners = append(out.Inners, in.FrameMapping(f, side))
	}
	return out
}

// Shell3 is a connected set of faces. Closed shells bound a volume.
type Shell3 struct {
	Name   string
	Faces  []*Face3
	Closed bool
}

func (s *Shell3) FrameMapping(f Frame3, side Side) *Shell3 {
	out := &Shell3{Name: s.Name, Closed: s.Closed, Faces: make([]*Face3, len(s.Faces))}
	for i, fc := range s.Faces {
		out.Faces[i] = fc.FrameMapping(f, side)
	}
	return out
}

// Reverse returns a copy of the shell with every face's sense flipped.
func (s *Shell3) Reverse() *Shell3 {
	out := &Shell3{Name: s.Name, Closed: s.Closed, Faces: make([]*Face3, len(s.Faces))}
	for i, fc := range s.Faces {
		flipped := *fc
		flipped.SameSense = !fc.SameSense
		out.Faces[i] = &flipped
	}
	return out
}

// VolumeModel is the ordered set of shells an import produces.
type VolumeModel struct {
	Name   string
	Shells []*Shell3
}

// FaceCount returns the number of faces over all shells.
func (m *VolumeModel) FaceCount() int {
	n := 0
	for _, s := range m.Shells {
		n += len(s.Faces)
	}
	return n
}
