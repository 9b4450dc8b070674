package dag

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/computegraph/internal/ctxlog"
	"github.com/vk/computegraph/node"
)

// Build constructs the DAG for a node dictionary. Every dictionary value
// must be a usable node specification; every local-source variable inside
// a node's arguments must name another key of the dictionary by exact
// match. An empty localSource means node.SourceLocals.
//
// Build creates all vertices first, then links edges, then computes the
// topological order, so error messages always refer to the finished node
// set.
func Build(ctx context.Context, dict node.Dict, localSource string) (*Graph, error) {
	if localSource == "" {
		localSource = node.SourceLocals
	}
	g := &Graph{
		nodes: make(map[string]*vertex, len(dict)),
		local: localSource,
	}

	for _, key := range dict.Keys() {
		spec := dict[key]
		if spec == nil {
			return nil, fmt.Errorf("node %q: specification is nil", key)
		}
		switch spec.Kind() {
		case node.KindVariable, node.KindData, node.KindFunc:
		default:
			return nil, fmt.Errorf("node %q: unsupported specification %s", key, spec)
		}
		g.nodes[key] = &vertex{
			key:        key,
			spec:       spec,
			deps:       make(map[string]*vertex),
			dependents: make(map[string]*vertex),
		}
	}

	if err := g.link(); err != nil {
		return nil, err
	}

	order, err := g.sortTopological()
	if err != nil {
		return nil, err
	}
	g.order = order

	ctxlog.From(ctx).Debug("Built computation DAG.", "nodes", len(g.nodes), "edges", len(g.Edges()))
	return g, nil
}

// link infers the dependency edges. Call arguments and keyword arguments
// both contribute; a dictionary entry that is itself a local variable
// depends on the key it aliases.
func (g *Graph) link() error {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		v := g.nodes[key]
		for _, ref := range v.spec.Refs(g.local) {
			producer, ok := g.nodes[ref]
			if !ok {
				return fmt.Errorf("node %q references %q, which is not in the graph: %w", key, ref, node.ErrKeyLookup)
			}
			if ref == key {
				return &CycleError{Keys: []string{key}}
			}
			v.deps[ref] = producer
			producer.dependents[key] = v
		}
	}
	return nil
}

// sortTopological returns a deterministic topological order: Kahn's
// algorithm with ready nodes taken in lexicographic key order. A shortfall
// means the leftover nodes form at least one cycle.
func (g *Graph) sortTopological() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	var ready []string
	for key, v := range g.nodes {
		indegree[key] = len(v.deps)
		if len(v.deps) == 0 {
			ready = append(ready, key)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		key := ready[0]
		ready = ready[1:]
		order = append(order, key)

		var unlocked []string
		for dep := range g.nodes[key].dependents {
			indegree[dep]--
			if indegree[dep] == 0 {
				unlocked = append(unlocked, dep)
			}
		}
		if len(unlocked) > 0 {
			ready = append(ready, unlocked...)
			sort.Strings(ready)
		}
	}

	if len(order) < len(g.nodes) {
		var stuck []string
		for key := range g.nodes {
			if indegree[key] > 0 {
				stuck = append(stuck, key)
			}
		}
		sort.Strings(stuck)
		return nil, &CycleError{Keys: stuck}
	}
	return order, nil
}
