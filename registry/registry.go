// Package registry maps function names to the callables they invoke.
// Declarative graph definitions refer to functions by name only; a
// registry supplies the Go implementations at build time.
package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/computegraph/node"
)

// Module is implemented by packages that contribute named functions.
type Module interface {
	Register(r *Registry)
}

// Entry is one registered function together with its arity contract.
// Arity of -1 means variadic.
type Entry struct {
	Fn    node.Callable
	Arity int
}

// Registry holds named callables for one application instance. Register
// all functions at startup; lookups afterwards are read-only and safe for
// concurrent use.
type Registry struct {
	entries map[string]Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds a named function. Registering a name twice is a
// programmer error and panics.
func (r *Registry) Register(name string, e Entry) {
	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("function %q already registered", name))
	}
	slog.Debug("Registering graph function.", "name", name)
	r.entries[name] = e
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install applies every module in order.
func (r *Registry) Install(modules ...Module) *Registry {
	for _, m := range modules {
		m.Register(r)
	}
	return r
}
