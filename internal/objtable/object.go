package objtable

import "github.com/vk/brepstep/internal/geom"

// Kind tags what a constructor produced.
type Kind int

const (
	KindOther Kind = iota
	KindShell
	KindShells
	KindFrame
	KindFrames
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindShell:
		return "shell"
	case KindShells:
		return "shells"
	case KindFrame:
		return "frame"
	case KindFrames:
		return "frames"
	case KindScalar:
		return "scalar"
	default:
		return "other"
	}
}

// Object is the tagged result of one constructor call.
type Object struct {
	Kind  Kind
	Value any
}

// Other wraps a value that is neither a shell, a frame nor a scalar.
func Other(v any) Object { return Object{Kind: KindOther, Value: v} }

// Scalar wraps a numeric result such as a measure or a unit factor.
func Scalar(f float64) Object { return Object{Kind: KindScalar, Value: f} }

// As returns the object's value as T.
func As[T any](o Object) (T, bool) {
	v, ok := o.Value.(T)
	return v, ok
}

// Shells wraps a list of shells.
func Shells(shells []*geom.Shell3) Object { return Object{Kind: KindShells, Value: shells} }

// Frames wraps a list of frames.
func Frames(frames []geom.Frame3) Object { return Object{Kind: KindFrames, Value: frames} }

// ShellsOf flattens a Shell or Shells object. Any other kind yields nil.
func ShellsOf(obj Object) []*geom.Shell3 {
	switch obj.Kind {
	case KindShell:
		if s, ok := obj.Value.(*geom.Shell3); ok {
			return []*geom.Shell3{s}
		}
	case KindShells:
		if s, ok := obj.Value.([]*geom.Shell3); ok {
			return s
		}
	}
	return nil
}

// FramesOf flattens a Frame or Frames object. Any other kind yields nil.
func FramesOf(obj Object) []geom.Frame3 {
	switch obj.Kind {
	case KindFrame:
		if f, ok := obj.Value.(geom.Frame3); ok {
			return []geom.Frame3{f}
		}
	case KindFrames:
		if f, ok := obj.Value.([]geom.Frame3); ok {
			return f
		}
	}
	return nil
}
