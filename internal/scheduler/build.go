package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/registry"
)

// build constructs id, building first any dependency its constructor reports
// missing. Already built ids are skipped.
func (s *Scheduler) build(ctx context.Context, id record.ID) error {
	if s.objects.Has(id) {
		return nil
	}
	logger := ctxlog.FromContext(ctx)

	stack := []record.ID{id}
	attempts := make(map[record.ID]int)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		if s.objects.Has(cur) {
			stack = stack[:len(stack)-1]
			continue
		}

		attempts[cur]++
		if attempts[cur] > s.maxRetries {
			return &RetryExhaustedError{ID: cur, Type: s.typeOf(cur), Attempts: attempts[cur] - 1}
		}
		s.stats.attempt(attempts[cur] > 1)

		err := s.construct(ctx, cur)
		var missing *objtable.MissingDependencyError
		switch {
		case err == nil:
			stack = stack[:len(stack)-1]
		case errors.As(err, &missing):
			dep := missing.ID
			for i, onStack := range stack {
				if onStack == dep {
					return &CycleError{IDs: append(append([]record.ID(nil), stack[i:]...), dep)}
				}
			}
			if _, ok := s.graph.Table().Get(dep); !ok {
				return &DanglingReferenceError{From: cur, To: dep}
			}
			logger.Debug("Scheduler: dependency not built yet, deferring", "id", cur.String(), "dependency", dep.String())
			stack = append(stack, dep)
		default:
			return err
		}
	}
	return nil
}

// construct dispatches one record and stores its object.
func (s *Scheduler) construct(ctx context.Context, id record.ID) error {
	rec, ok := s.graph.Table().Get(id)
	if !ok {
		return fmt.Errorf("record %s not in table", id)
	}

	call := registry.NewCall(rec, s.objects, s.units)
	call.InScope = s.InScope
	start := time.Now()
	obj, err := s.dispatcher.Construct(ctx, call)
	if err != nil {
		return err
	}
	if err := s.objects.Put(id, obj); err != nil {
		// Another component got there first.
		if errors.Is(err, objtable.ErrAlreadyBuilt) {
			return nil
		}
		return err
	}
	s.stats.observe(rec.Type(), time.Since(start))
	return nil
}

func (s *Scheduler) typeOf(id record.ID) string {
	if rec, ok := s.graph.Table().Get(id); ok {
		return rec.Type()
	}
	return ""
}
