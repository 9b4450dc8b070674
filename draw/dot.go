package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/computegraph/dag"
	"github.com/vk/computegraph/options"
)

// Graphviz assumes 96 dots per inch when converting pixel sizes.
const dotsPerInch = 96

// DOT writes Graphviz source for the graph. The layout option selects
// the "dot" engine with name-prefix clusters, or plain "fdp"; width and
// height map onto the drawing size attribute.
func DOT(w io.Writer, g *dag.Graph, targets []string, opts *options.Store) error {
	hier := opts.Bool(options.KeyUseHierarchy, true)
	engine := "fdp"
	if hier {
		engine = "dot"
	}
	width := opts.Int(options.KeyWidth, 800)
	height := opts.Int(options.KeyHeight, 800)

	var b strings.Builder
	b.WriteString("digraph computegraph {\n")
	fmt.Fprintf(&b, "  layout=%s;\n", engine)
	fmt.Fprintf(&b, "  size=%s;\n", dotQuote(fmt.Sprintf("%.2f,%.2f",
		float64(width)/dotsPerInch, float64(height)/dotsPerInch)))
	b.WriteString("  node [style=filled];\n")

	tset := keySet(targets)
	if hier {
		writeDotCluster(&b, g, buildClusters(g), tset, 1)
	} else {
		for _, k := range g.Keys() {
			writeDotNode(&b, g, k, tset, 1)
		}
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s -> %s;\n", dotQuote(e[0]), dotQuote(e[1]))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeDotCluster(b *strings.Builder, g *dag.Graph, c *cluster, targets map[string]bool, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, k := range c.keys {
		writeDotNode(b, g, k, targets, depth)
	}
	for _, p := range c.childPrefixes() {
		ch := c.children[p]
		fmt.Fprintf(b, "%ssubgraph cluster_%s {\n", indent, clusterID(p))
		fmt.Fprintf(b, "%s  label=%s;\n", indent, dotQuote(ch.label()))
		writeDotCluster(b, g, ch, targets, depth+1)
		fmt.Fprintf(b, "%s}\n", indent)
	}
}

func writeDotNode(b *strings.Builder, g *dag.Graph, key string, targets map[string]bool, depth int) {
	spec, _ := g.Node(key)
	fmt.Fprintf(b, "%s%s [label=%s, fillcolor=%s, tooltip=%s];\n",
		strings.Repeat("  ", depth),
		dotQuote(key), dotQuote(key),
		dotQuote(color(spec, targets[key])),
		dotQuote(describe(key, spec)))
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func clusterID(prefix string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, prefix)
}
