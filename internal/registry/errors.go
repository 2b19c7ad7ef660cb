package registry

import (
	"errors"
	"fmt"

	"github.com/vk/brepstep/internal/record"
)

var (
	// ErrUnsupported is wrapped by UnsupportedEntityError.
	ErrUnsupported = errors.New("unsupported entity type")
	// ErrArgument is wrapped by ArgumentError.
	ErrArgument = errors.New("invalid argument")
)

// UnsupportedEntityError reports a record whose type has no constructor.
type UnsupportedEntityError struct {
	Type string
	ID   record.ID
}

func (e *UnsupportedEntityError) Error() string {
	return fmt.Sprintf("unsupported entity type '%s' (record %s)", e.Type, e.ID)
}

func (e *UnsupportedEntityError) Unwrap() error { return ErrUnsupported }

// ArgumentError reports an argument that does not have the shape its
// constructor expects.
type ArgumentError struct {
	Type   string
	ID     record.ID
	Index  int
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s %s: argument %d: %s", e.Type, e.ID, e.Index, e.Reason)
}

func (e *ArgumentError) Unwrap() error { return ErrArgument }
