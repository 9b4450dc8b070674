package node

import (
	"sort"
	"strings"
)

// Qualify joins a source name and a key into the canonical dotted form
// under which a variable is addressed, e.g. "parameters.iso".
func Qualify(source, key string) string {
	return source + "." + key
}

// Segments splits a dotted key into its path segments.
func Segments(key string) []string {
	return strings.Split(key, ".")
}

// Prefixes returns the enclosing prefixes of a dotted key, longest first:
// Prefixes("a.b.c") is ["a.b", "a"]. A key without dots has none. Callers
// that resolve hierarchical names probe these explicitly; nothing else in
// the module treats a dot as structure.
func Prefixes(key string) []string {
	var out []string
	for i := strings.LastIndexByte(key, '.'); i > 0; i = strings.LastIndexByte(key[:i], '.') {
		out = append(out, key[:i])
	}
	return out
}

// Refs lists the keys of variables under the given source referenced
// anywhere in this node: the node itself if it is a variable, and the
// full argument tree of a call. An empty source matches every variable.
// The result is sorted and deduplicated.
func (n *Node) Refs(source string) []string {
	set := make(map[string]struct{})
	n.collectRefs(source, set)
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (n *Node) collectRefs(source string, set map[string]struct{}) {
	switch n.kind {
	case KindVariable:
		if source == "" || n.source == source {
			set[n.key] = struct{}{}
		}
	case KindFunc:
		for _, a := range n.args {
			if a.node != nil {
				a.node.collectRefs(source, set)
			}
		}
		for _, a := range n.kwargs {
			if a.node != nil {
				a.node.collectRefs(source, set)
			}
		}
	}
}
