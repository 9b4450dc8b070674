package dag

import (
	"fmt"
	"sort"

	"github.com/vk/computegraph/node"
)

// Graph is an immutable DAG over a named node dictionary. All methods are
// safe for concurrent use once Build has returned.
type Graph struct {
	// nodes stores every vertex, keyed by its dictionary name.
	nodes map[string]*vertex
	// order is the cached deterministic topological order.
	order []string
	// local is the source namespace whose variables produced the edges.
	local string
}

// vertex is one graph node together with its adjacency sets.
type vertex struct {
	key        string
	spec       *node.Node
	deps       map[string]*vertex
	dependents map[string]*vertex
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// LocalSource returns the namespace name used for edge inference.
func (g *Graph) LocalSource() string { return g.local }

// Has reports whether key names a node.
func (g *Graph) Has(key string) bool {
	_, ok := g.nodes[key]
	return ok
}

// Node returns the specification stored under key.
func (g *Graph) Node(key string) (*node.Node, bool) {
	v, ok := g.nodes[key]
	if !ok {
		return nil, false
	}
	return v.spec, true
}

// Keys returns every node key in sorted order.
func (g *Graph) Keys() []string {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Order returns the topological order computed at build time. Every
// producer precedes each of its consumers. The slice is a copy.
func (g *Graph) Order() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns every producer-to-consumer edge, sorted by producer then
// consumer.
func (g *Graph) Edges() [][2]string {
	var edges [][2]string
	for _, producer := range g.Keys() {
		v := g.nodes[producer]
		consumers := make([]string, 0, len(v.dependents))
		for c := range v.dependents {
			consumers = append(consumers, c)
		}
		sort.Strings(consumers)
		for _, c := range consumers {
			edges = append(edges, [2]string{producer, c})
		}
	}
	return edges
}

// Dependencies returns the sorted keys this node consumes.
func (g *Graph) Dependencies(key string) ([]string, error) {
	v, ok := g.nodes[key]
	if !ok {
		return nil, fmt.Errorf("node not found: %q: %w", key, node.ErrKeyLookup)
	}
	deps := make([]string, 0, len(v.deps))
	for d := range v.deps {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	return deps, nil
}

// Dependents returns the sorted keys that consume this node.
func (g *Graph) Dependents(key string) ([]string, error) {
	v, ok := g.nodes[key]
	if !ok {
		return nil, fmt.Errorf("node not found: %q: %w", key, node.ErrKeyLookup)
	}
	deps := make([]string, 0, len(v.dependents))
	for d := range v.dependents {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	return deps, nil
}

// Dict returns a fresh dictionary holding every key and its specification.
// Derived graphs start from this copy.
func (g *Graph) Dict() node.Dict {
	out := make(node.Dict, len(g.nodes))
	for k, v := range g.nodes {
		out[k] = v.spec
	}
	return out
}
