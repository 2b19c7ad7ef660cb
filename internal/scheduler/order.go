package scheduler

import (
	"sort"

	"github.com/vk/brepstep/internal/record"
)

// priority sorts ids by level descending, then id ascending.
func (s *Scheduler) priority(ids []record.ID) []record.ID {
	out := append([]record.ID(nil), ids...)
	sort.Slice(out, func(i, j int) bool {
		li, _ := s.graph.Level(out[i])
		lj, _ := s.graph.Level(out[j])
		if li != lj {
			return li > lj
		}
		return out[i] < out[j]
	})
	return out
}

// inScope filters ids to the build set.
func (s *Scheduler) inScope(ids []record.ID) []record.ID {
	out := ids[:0:0]
	for _, id := range ids {
		if s.scope[id] {
			out = append(out, id)
		}
	}
	return out
}

type frame struct {
	id       record.ID
	children []record.ID
	next     int
}

// Order returns the build set in dependency order: every record comes after
// all the records it references. A reference cycle is a *CycleError.
func (s *Scheduler) Order() ([]record.ID, error) {
	const (
		unvisited = iota
		onStack
		done
	)
	state := make(map[record.ID]int, len(s.scope))
	order := make([]record.ID, 0, len(s.scope))

	var starts []record.ID
	for id := range s.scope {
		starts = append(starts, id)
	}
	for _, start := range s.priority(starts) {
		if state[start] != unvisited {
			continue
		}
		stack := []*frame{s.newFrame(start)}
		state[start] = onStack
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.next == len(top.children) {
				stack = stack[:len(stack)-1]
				state[top.id] = done
				order = append(order, top.id)
				continue
			}
			child := top.children[top.next]
			top.next++
			switch state[child] {
			case done:
			case onStack:
				return nil, cycleFrom(stack, child)
			default:
				state[child] = onStack
				stack = append(stack, s.newFrame(child))
			}
		}
	}
	return order, nil
}

func (s *Scheduler) newFrame(id record.ID) *frame {
	return &frame{id: id, children: s.priority(s.inScope(s.graph.References(id)))}
}

func cycleFrom(stack []*frame, id record.ID) *CycleError {
	var ids []record.ID
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].id == id {
			for _, f := range stack[i:] {
				ids = append(ids, f.id)
			}
			break
		}
	}
	return &CycleError{IDs: append(ids, id)}
}

// components splits order into the connected components of the build set,
// each keeping the relative order of its ids. Components are listed by
// their first id in order.
func (s *Scheduler) components(order []record.ID) [][]record.ID {
	comp := make(map[record.ID]int, len(order))
	n := 0
	for _, start := range order {
		if _, ok := comp[start]; ok {
			continue
		}
		comp[start] = n
		queue := []record.ID{start}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			for _, next := range s.graph.Neighbors(id) {
				if _, ok := comp[next]; ok || !s.scope[next] {
					continue
				}
				comp[next] = n
				queue = append(queue, next)
			}
		}
		n++
	}

	out := make([][]record.ID, n)
	for _, id := range order {
		out[comp[id]] = append(out[comp[id]], id)
	}
	return out
}
