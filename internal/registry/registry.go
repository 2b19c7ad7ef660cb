package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/brepstep/internal/ctxlog"
	"github.com/vk/brepstep/internal/objtable"
)

// Module is the interface that every entity module implements to be registered.
type Module interface {
	Register(r *Registry)
}

// Constructor builds the object of one record.
type Constructor func(c *Call) (objtable.Object, error)

// Registry holds the constructors, handlers, routes and aliases of a single
// application instance.
type Registry struct {
	constructors map[string]Constructor
	handlers     map[string]Constructor
	routes       map[string]string
	aliases      map[string]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
		handlers:     make(map[string]Constructor),
		routes:       make(map[string]string),
		aliases:      make(map[string]string),
	}
}

// RegisterConstructor binds a (possibly composite) type name to fn.
func (r *Registry) RegisterConstructor(typeName string, fn Constructor) {
	if r.taken(typeName) {
		panic(fmt.Sprintf("entity type '%s' already registered", typeName))
	}
	slog.Debug("Registering constructor.", "type", typeName)
	r.constructors[typeName] = fn
}

// RegisterHandler registers a named special-case handler.
func (r *Registry) RegisterHandler(name string, fn Constructor) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.handlers[name] = fn
}

// Route dispatches typeName to the handler registered under handlerName.
// The handler may be registered before or after the route.
func (r *Registry) Route(typeName, handlerName string) {
	if r.taken(typeName) {
		panic(fmt.Sprintf("entity type '%s' already registered", typeName))
	}
	slog.Debug("Routing type to handler.", "type", typeName, "handler", handlerName)
	r.routes[typeName] = handlerName
}

// Alias makes from resolve like target.
func (r *Registry) Alias(from, target string) {
	if r.taken(from) {
		panic(fmt.Sprintf("entity type '%s' already registered", from))
	}
	slog.Debug("Registering alias.", "from", from, "target", target)
	r.aliases[from] = target
}

// AddAliases registers user-supplied aliases. Unlike Alias it reports
// conflicts and unknown targets as errors, since the input is not code.
func (r *Registry) AddAliases(aliases map[string]string) error {
	names := make([]string, 0, len(aliases))
	for from := range aliases {
		names = append(names, from)
	}
	sort.Strings(names)
	for _, from := range names {
		target := aliases[from]
		if r.taken(from) {
			return fmt.Errorf("alias '%s': type is already registered", from)
		}
		if _, ok := r.Resolve(target); !ok {
			return fmt.Errorf("alias '%s': target '%s' is not registered", from, target)
		}
		r.aliases[from] = target
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	_, c := r.constructors[name]
	_, rt := r.routes[name]
	_, a := r.aliases[name]
	return c || rt || a
}

// Resolve returns the constructor that builds records of typeName.
func (r *Registry) Resolve(typeName string) (Constructor, bool) {
	name := typeName
	for hops := 0; hops <= len(r.aliases); hops++ {
		target, ok := r.aliases[name]
		if !ok {
			break
		}
		name = target
	}
	if handlerName, ok := r.routes[name]; ok {
		fn, ok := r.handlers[handlerName]
		return fn, ok
	}
	fn, ok := r.constructors[name]
	return fn, ok
}

// Supported reports whether records of typeName can be built.
func (r *Registry) Supported(typeName string) bool {
	_, ok := r.Resolve(typeName)
	return ok
}

// TypeNames returns every resolvable type name, sorted.
func (r *Registry) TypeNames() []string {
	var names []string
	for _, m := range []map[string]string{r.routes, r.aliases} {
		for name := range m {
			if r.Supported(name) {
				names = append(names, name)
			}
		}
	}
	for name := range r.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Construct builds the object of one record. An unknown type name yields an
// *UnsupportedEntityError.
func (r *Registry) Construct(ctx context.Context, c *Call) (objtable.Object, error) {
	fn, ok := r.Resolve(c.Type)
	if !ok {
		return objtable.Object{}, &UnsupportedEntityError{Type: c.Type, ID: c.ID}
	}
	if c.Logger == nil {
		c.Logger = ctxlog.FromContext(ctx)
	}
	return fn(c)
}
