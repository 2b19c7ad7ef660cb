package objtable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/brepstep/internal/record"
)

// ErrAlreadyBuilt is returned by Put when the id already holds an object.
var ErrAlreadyBuilt = errors.New("object already built")

// ErrMissingDependency is the sentinel wrapped by MissingDependencyError.
var ErrMissingDependency = errors.New("missing dependency")

// MissingDependencyError reports a read of an id that has not been built yet.
type MissingDependencyError struct {
	ID record.ID
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency %s has not been built", e.ID)
}

func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }

// Table is a concurrent, write-once map from record id to Object.
type Table struct {
	objects sync.Map // Key: record.ID, Value: Object
	count   int
	mu      sync.Mutex
}

// New creates an empty table.
func New() *Table {
	return &Table{}
}

// Put stores obj under id. It fails if id already holds an object.
func (t *Table) Put(id record.ID, obj Object) error {
	if _, loaded := t.objects.LoadOrStore(id, obj); loaded {
		return fmt.Errorf("cannot store %s: %w", id, ErrAlreadyBuilt)
	}
	t.mu.Lock()
	t.count++
	t.mu.Unlock()
	return nil
}

// Get returns the object built for id, or a *MissingDependencyError.
func (t *Table) Get(id record.ID) (Object, error) {
	v, ok := t.objects.Load(id)
	if !ok {
		return Object{}, &MissingDependencyError{ID: id}
	}
	return v.(Object), nil
}

// Has reports whether id has been built.
func (t *Table) Has(id record.ID) bool {
	_, ok := t.objects.Load(id)
	return ok
}

// Len returns the number of built objects.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Range calls fn for every stored object in unspecified order until fn
// returns false.
func (t *Table) Range(fn func(id record.ID, obj Object) bool) {
	t.objects.Range(func(k, v any) bool {
		return fn(k.(record.ID), v.(Object))
	})
}
