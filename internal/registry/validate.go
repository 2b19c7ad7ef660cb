package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/brepstep/internal/ctxlog"
)

// Validate checks that every route names a registered handler and every
// alias lands on a resolvable type without looping.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for typeName, handlerName := range r.routes {
		if _, ok := r.handlers[handlerName]; !ok {
			errs = append(errs, fmt.Sprintf("type '%s': routed to unknown handler '%s'", typeName, handlerName))
		}
	}

	for from := range r.aliases {
		seen := map[string]bool{from: true}
		name := r.aliases[from]
		for {
			if seen[name] {
				errs = append(errs, fmt.Sprintf("alias '%s': loops back to '%s'", from, name))
				break
			}
			seen[name] = true
			next, ok := r.aliases[name]
			if !ok {
				break
			}
			name = next
		}
		if _, ok := r.Resolve(from); !ok {
			errs = append(errs, fmt.Sprintf("alias '%s': target '%s' is not registered", from, r.aliases[from]))
		}
	}

	used := make(map[string]bool, len(r.routes))
	for _, h := range r.routes {
		used[h] = true
	}
	for name := range r.handlers {
		if !used[name] {
			logger.Warn("Handler is registered but no type routes to it.", "handler", name)
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validated.",
		"constructors", len(r.constructors),
		"handlers", len(r.handlers),
		"aliases", len(r.aliases))
	return nil
}
