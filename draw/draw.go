package draw

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vk/computegraph/dag"
	"github.com/vk/computegraph/node"
	"github.com/vk/computegraph/options"
)

// Node fill colors. Variables and data keep their color even when they
// are targets.
const (
	colorVariable = "lightgreen"
	colorData     = "red"
	colorTarget   = "#ee88ee"
	colorDefault  = "lightblue"
)

// Render writes the graph in the syntax selected by the store's backend
// option. A nil store reads the process-wide options.Drawing.
func Render(w io.Writer, g *dag.Graph, targets []string, opts *options.Store) error {
	if opts == nil {
		opts = options.Drawing
	}
	switch backend := opts.String(options.KeyBackend, options.BackendDot); backend {
	case options.BackendDot:
		return DOT(w, g, targets, opts)
	case options.BackendMermaid:
		return Mermaid(w, g, targets, opts)
	default:
		return fmt.Errorf("unknown drawing backend %q", backend)
	}
}

func color(spec *node.Node, isTarget bool) string {
	switch {
	case spec.Kind() == node.KindVariable:
		return colorVariable
	case spec.Kind() == node.KindData:
		return colorData
	case isTarget:
		return colorTarget
	}
	return colorDefault
}

func class(spec *node.Node, isTarget bool) string {
	switch {
	case spec.Kind() == node.KindVariable:
		return "variable"
	case spec.Kind() == node.KindData:
		return "data"
	case isTarget:
		return "target"
	}
	return "step"
}

// describe renders the hover text for one node: its key, and for call
// nodes the function label with its argument slots.
func describe(key string, spec *node.Node) string {
	if spec.Kind() != node.KindFunc {
		return fmt.Sprintf("%s: %s", key, spec)
	}
	slots := make([]string, 0, len(spec.Args())+len(spec.Kwargs()))
	for _, a := range spec.Args() {
		slots = append(slots, slotText(a))
	}
	for _, name := range spec.Kwargs() {
		a, _ := spec.Kwarg(name)
		slots = append(slots, name+"="+slotText(a))
	}
	return fmt.Sprintf("%s: %s(%s)", key, spec.FuncName(), strings.Join(slots, ", "))
}

func slotText(a node.Arg) string {
	if n := a.Node(); n != nil {
		return n.String()
	}
	return "const"
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// cluster groups node keys by their dotted name prefixes for the
// hierarchical layout. Children are keyed by full prefix path so
// sibling branches with equal leaf segments stay distinct.
type cluster struct {
	prefix   string
	children map[string]*cluster
	keys     []string
}

func (c *cluster) child(prefix string) *cluster {
	if c.children == nil {
		c.children = make(map[string]*cluster)
	}
	ch, ok := c.children[prefix]
	if !ok {
		ch = &cluster{prefix: prefix}
		c.children[prefix] = ch
	}
	return ch
}

func (c *cluster) childPrefixes() []string {
	out := make([]string, 0, len(c.children))
	for p := range c.children {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// label returns the last name segment of the cluster's prefix.
func (c *cluster) label() string {
	segs := node.Segments(c.prefix)
	return segs[len(segs)-1]
}

func buildClusters(g *dag.Graph) *cluster {
	root := &cluster{}
	for _, k := range g.Keys() {
		chain := node.Prefixes(k)
		c := root
		for i := len(chain) - 1; i >= 0; i-- {
			c = c.child(chain[i])
		}
		c.keys = append(c.keys, k)
	}
	return root
}
