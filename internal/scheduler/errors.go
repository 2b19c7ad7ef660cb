package scheduler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/brepstep/internal/record"
)

var (
	// ErrCycle is wrapped by CycleError.
	ErrCycle = errors.New("dependency cycle")
	// ErrRetryExhausted is wrapped by RetryExhaustedError.
	ErrRetryExhausted = errors.New("retry bound exhausted")
	// ErrDanglingReference is wrapped by DanglingReferenceError.
	ErrDanglingReference = errors.New("dangling reference")
)

// CycleError reports records that reference each other with no base case.
// IDs lists the cycle in reference order, the first id repeated at the end.
type CycleError struct {
	IDs []record.ID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = id.String()
	}
	return fmt.Sprintf("cycle detected involving %s", strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// RetryExhaustedError reports a record that kept failing on missing
// dependencies past the configured bound.
type RetryExhaustedError struct {
	ID       record.ID
	Type     string
	Attempts int
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s %s: gave up after %d construction attempts", e.Type, e.ID, e.Attempts)
}

func (e *RetryExhaustedError) Unwrap() error { return ErrRetryExhausted }

// DanglingReferenceError reports a reference to an id the file never defines.
type DanglingReferenceError struct {
	From record.ID
	To   record.ID
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s references undefined record %s", e.From, e.To)
}

func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }
