package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/units"
)

// Call carries everything a constructor may read: the record being built,
// the objects built so far and the run's unit context.
type Call struct {
	ID      record.ID
	Type    string
	Args    []record.Param
	Objects *objtable.Table
	Units   units.Context
	Logger  *slog.Logger
	// InScope reports whether an id will ever be built in this run. Handlers
	// that tolerate unbuildable references skip ids outside the scope. A nil
	// InScope treats every id as in scope.
	InScope func(record.ID) bool
}

// Log returns the call's logger, or slog.Default when none is set.
func (c *Call) Log() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Buildable reports whether id is in the call's scope.
func (c *Call) Buildable(id record.ID) bool {
	return c.InScope == nil || c.InScope(id)
}

// NewCall prepares the call for rec.
func NewCall(rec *record.Record, objects *objtable.Table, u units.Context) *Call {
	return &Call{ID: rec.ID, Type: rec.Type(), Args: rec.Args, Objects: objects, Units: u}
}

// Errorf builds an *ArgumentError for argument i.
func (c *Call) Errorf(i int, format string, args ...any) error {
	return &ArgumentError{Type: c.Type, ID: c.ID, Index: i, Reason: fmt.Sprintf(format, args...)}
}

// Len returns the number of arguments.
func (c *Call) Len() int { return len(c.Args) }

// Arg returns argument i.
func (c *Call) Arg(i int) (record.Param, error) {
	if i < 0 || i >= len(c.Args) {
		return record.Param{}, c.Errorf(i, "missing (record has %d arguments)", len(c.Args))
	}
	return c.Args[i], nil
}

// Omitted reports whether argument i is absent, `$` or `*`.
func (c *Call) Omitted(i int) bool {
	if i < 0 || i >= len(c.Args) {
		return true
	}
	k := c.Args[i].Kind
	return k == record.KindOmitted || k == record.KindDerived
}

// Ref returns the id referenced by argument i.
func (c *Call) Ref(i int) (record.ID, error) {
	p, err := c.Arg(i)
	if err != nil {
		return 0, err
	}
	if p.Kind != record.KindRef {
		return 0, c.Errorf(i, "expected a reference, got %s %q", p.Kind, p.Raw)
	}
	return p.Ref, nil
}

// Refs returns the ids of the reference list in argument i.
func (c *Call) Refs(i int) ([]record.ID, error) {
	p, err := c.Arg(i)
	if err != nil {
		return nil, err
	}
	if p.Kind != record.KindList {
		return nil, c.Errorf(i, "expected a list, got %s %q", p.Kind, p.Raw)
	}
	ids := make([]record.ID, len(p.Items))
	for j, it := range p.Items {
		if it.Kind != record.KindRef {
			return nil, c.Errorf(i, "list item %d: expected a reference, got %s", j, it.Kind)
		}
		ids[j] = it.Ref
	}
	return ids, nil
}

// Object returns the object built for the reference in argument i.
func (c *Call) Object(i int) (objtable.Object, error) {
	id, err := c.Ref(i)
	if err != nil {
		return objtable.Object{}, err
	}
	return c.Objects.Get(id)
}

// Number returns the numeric value of argument i, unwrapping typed measures.
func (c *Call) Number(i int) (float64, error) {
	p, err := c.Arg(i)
	if err != nil {
		return 0, err
	}
	f, ok := p.Float()
	if !ok {
		return 0, c.Errorf(i, "expected a number, got %s %q", p.Kind, p.Raw)
	}
	return f, nil
}

// Length returns argument i scaled by the run's length factor.
func (c *Call) Length(i int) (float64, error) {
	f, err := c.Number(i)
	if err != nil {
		return 0, err
	}
	return c.Units.Length(f), nil
}

// Int returns argument i as an integer.
func (c *Call) Int(i int) (int, error) {
	f, err := c.Number(i)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Numbers returns a list of numbers.
func (c *Call) Numbers(i int) ([]float64, error) {
	p, err := c.Arg(i)
	if err != nil {
		return nil, err
	}
	return c.numbers(i, p)
}

func (c *Call) numbers(i int, p record.Param) ([]float64, error) {
	if p.Kind != record.KindList {
		return nil, c.Errorf(i, "expected a list of numbers, got %s %q", p.Kind, p.Raw)
	}
	out := make([]float64, len(p.Items))
	for j, it := range p.Items {
		f, ok := it.Float()
		if !ok {
			return nil, c.Errorf(i, "list item %d: expected a number, got %s", j, it.Kind)
		}
		out[j] = f
	}
	return out, nil
}

// NumberGrid returns a list of lists of numbers, such as B-spline weights.
func (c *Call) NumberGrid(i int) ([][]float64, error) {
	p, err := c.Arg(i)
	if err != nil {
		return nil, err
	}
	if p.Kind != record.KindList {
		return nil, c.Errorf(i, "expected a list of lists, got %s %q", p.Kind, p.Raw)
	}
	out := make([][]float64, len(p.Items))
	for j, row := range p.Items {
		if out[j], err = c.numbers(i, row); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Ints returns a list of integers, such as knot multiplicities.
func (c *Call) Ints(i int) ([]int, error) {
	fs, err := c.Numbers(i)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fs))
	for j, f := range fs {
		out[j] = int(f)
	}
	return out, nil
}

// Bool returns a logical argument (`.T.`, `.F.`, `.U.`).
func (c *Call) Bool(i int) (bool, error) {
	p, err := c.Arg(i)
	if err != nil {
		return false, err
	}
	b, ok := p.Bool()
	if !ok {
		return false, c.Errorf(i, "expected a logical, got %s %q", p.Kind, p.Raw)
	}
	return b, nil
}

// Enum returns the bare name of an enumeration argument, or "$" when omitted.
func (c *Call) Enum(i int) (string, error) {
	p, err := c.Arg(i)
	if err != nil {
		return "", err
	}
	switch p.Kind {
	case record.KindEnum:
		return p.Text, nil
	case record.KindOmitted:
		return units.Omitted, nil
	}
	return "", c.Errorf(i, "expected an enumeration, got %s %q", p.Kind, p.Raw)
}

// String returns a string argument; `$` yields "".
func (c *Call) String(i int) (string, error) {
	p, err := c.Arg(i)
	if err != nil {
		return "", err
	}
	switch p.Kind {
	case record.KindString:
		return p.Text, nil
	case record.KindOmitted:
		return "", nil
	}
	return "", c.Errorf(i, "expected a string, got %s %q", p.Kind, p.Raw)
}

// Value returns the built object of the reference in argument i as T.
func Value[T any](c *Call, i int) (T, error) {
	var zero T
	obj, err := c.Object(i)
	if err != nil {
		return zero, err
	}
	v, ok := objtable.As[T](obj)
	if !ok {
		return zero, c.Errorf(i, "referenced object is %T, want %T", obj.Value, zero)
	}
	return v, nil
}

// Values returns the built objects of the reference list in argument i as T.
func Values[T any](c *Call, i int) ([]T, error) {
	ids, err := c.Refs(i)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(ids))
	for j, id := range ids {
		obj, err := c.Objects.Get(id)
		if err != nil {
			return nil, err
		}
		v, ok := objtable.As[T](obj)
		if !ok {
			var zero T
			return nil, c.Errorf(i, "list item %d: referenced object is %T, want %T", j, obj.Value, zero)
		}
		out[j] = v
	}
	return out, nil
}

// ObjectList returns the tagged objects of the reference list in argument i.
func (c *Call) ObjectList(i int) ([]objtable.Object, error) {
	ids, err := c.Refs(i)
	if err != nil {
		return nil, err
	}
	out := make([]objtable.Object, len(ids))
	for j, id := range ids {
		if out[j], err = c.Objects.Get(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}
