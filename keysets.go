package computegraph

import (
	"sort"

	"github.com/vk/computegraph/node"
)

func withKeys(set map[string]bool, keys []string) map[string]bool {
	out := make(map[string]bool, len(set)+len(keys))
	for k := range set {
		out[k] = true
	}
	for _, k := range keys {
		out[k] = true
	}
	return out
}

func intersect(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func subtract(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for k := range a {
		if !b[k] {
			out[k] = true
		}
	}
	return out
}

func restrict(dict node.Dict, set map[string]bool) node.Dict {
	out := make(node.Dict, len(set))
	for k := range set {
		if spec, ok := dict[k]; ok {
			out[k] = spec
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
