// Package assembly re-expresses component shells in assembly space.
//
// An assembly relationship carries two frames (the item-defined
// transformation) and the frames found in the representations it links.
// MapShells picks which of them is the global frame, solves the basis
// change between the global and the transformed frame, and maps every face
// of every shell through the resulting frame.
package assembly

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/vk/brepstep/internal/geom"
)

// Tolerance is used to compare frames and origins.
const Tolerance = 1e-9

// ErrDegenerateBasis is returned when the global basis cannot be inverted.
var ErrDegenerateBasis = errors.New("degenerate frame basis")

// Mapping is the basis change between a global and a local frame.
type Mapping struct {
	Global geom.Frame3
	Local  geom.Frame3
	// Basis holds the rows u, v and w of the mapped frame.
	Basis *mat.Dense
}

// NewMapping solves A·X = B where the rows of A are the global basis vectors
// and the rows of B the local ones.
func NewMapping(global, local geom.Frame3) (*Mapping, error) {
	a := mat.NewDense(3, 3, append(append(global.U.Components(), global.V.Components()...), global.W.Components()...))
	b := mat.NewDense(3, 3, append(append(local.U.Components(), local.V.Components()...), local.W.Components()...))

	if det := mat.Det(a); math.Abs(det) < Tolerance {
		return nil, fmt.Errorf("%w: determinant %g", ErrDegenerateBasis, det)
	}

	var x mat.Dense
	if err := x.Solve(a, b); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, fmt.Errorf("failed to solve basis change: %w", err)
		}
		if math.IsInf(float64(cond), 1) || float64(cond) > 1/Tolerance {
			return nil, fmt.Errorf("%w: condition number %g", ErrDegenerateBasis, float64(cond))
		}
		slog.Debug("Basis change is ill-conditioned.", "condition", float64(cond))
	}
	return &Mapping{Global: global, Local: local, Basis: &x}, nil
}

// Frame returns the frame at the local origin whose basis is the solution.
func (m *Mapping) Frame() geom.Frame3 {
	row := func(i int) geom.Vector3 {
		return geom.Vector3{X: m.Basis.At(i, 0), Y: m.Basis.At(i, 1), Z: m.Basis.At(i, 2)}
	}
	return geom.Frame3{Origin: m.Local.Origin, U: row(0), V: row(1), W: row(2)}
}

// SelectFrames decides which frame is global and which is transformed.
//
// The global frame is the first representation frame when it sits at the
// model origin, otherwise the transform frame at the origin, otherwise the
// first transform frame. The transformed frame is the first transform frame
// that differs from the global one.
func SelectFrames(transform [2]geom.Frame3, representation []geom.Frame3) (global, transformed geom.Frame3) {
	switch {
	case len(representation) > 0 && representation[0].Origin.IsClose(geom.Origin, Tolerance):
		global = representation[0]
	case transform[0].Origin.IsClose(geom.Origin, Tolerance):
		global = transform[0]
	case transform[1].Origin.IsClose(geom.Origin, Tolerance):
		global = transform[1]
	default:
		global = transform[0]
	}

	transformed = transform[0]
	for _, f := range transform {
		if !f.IsClose(global, Tolerance) {
			transformed = f
			break
		}
	}
	return global, transformed
}

// MapShells returns shells re-expressed in assembly space. When both
// transform frames coincide the input slice itself is returned.
func MapShells(shells []*geom.Shell3, transform [2]geom.Frame3, representation []geom.Frame3) ([]*geom.Shell3, error) {
	if transform[0].IsClose(transform[1], Tolerance) {
		return shells, nil
	}

	global, transformed := SelectFrames(transform, representation)
	m, err := NewMapping(global, transformed)
	if err != nil {
		return nil, err
	}
	frame := m.Frame()

	out := make([]*geom.Shell3, len(shells))
	for i, s := range shells {
		out[i] = s.FrameMapping(frame, geom.SideOld)
	}
	return out, nil
}
