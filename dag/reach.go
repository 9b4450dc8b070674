package dag

import (
	"fmt"

	"github.com/vk/computegraph/node"
)

// Ancestors returns every node from which any of the given keys is
// reachable. The queried keys themselves are not included.
func (g *Graph) Ancestors(keys ...string) (map[string]bool, error) {
	return g.reach(keys, false)
}

// Descendants returns every node reachable from any of the given keys,
// excluding the keys themselves.
func (g *Graph) Descendants(keys ...string) (map[string]bool, error) {
	return g.reach(keys, true)
}

func (g *Graph) reach(keys []string, forward bool) (map[string]bool, error) {
	stack := make([]*vertex, 0, len(keys))
	for _, key := range keys {
		v, ok := g.nodes[key]
		if !ok {
			return nil, fmt.Errorf("node not found: %q: %w", key, node.ErrKeyLookup)
		}
		stack = append(stack, v)
	}

	seen := make(map[string]bool)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next := v.deps
		if forward {
			next = v.dependents
		}
		for key, n := range next {
			if !seen[key] {
				seen[key] = true
				stack = append(stack, n)
			}
		}
	}
	return seen, nil
}
