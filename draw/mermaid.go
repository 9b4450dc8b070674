package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/vk/computegraph/dag"
	"github.com/vk/computegraph/options"
)

// Mermaid writes the graph as a Mermaid flowchart. The hierarchical
// layout option nests name-prefix groups as subgraph blocks; Mermaid
// sizes its own canvas, so width and height are ignored.
func Mermaid(w io.Writer, g *dag.Graph, targets []string, opts *options.Store) error {
	ids := make(map[string]string, g.Len())
	for i, k := range g.Keys() {
		ids[k] = fmt.Sprintf("n%d", i)
	}

	var b strings.Builder
	b.WriteString("flowchart TD\n")

	tset := keySet(targets)
	if opts.Bool(options.KeyUseHierarchy, true) {
		writeMermaidCluster(&b, g, buildClusters(g), ids, tset, 1)
	} else {
		for _, k := range g.Keys() {
			writeMermaidNode(&b, g, k, ids, tset, 1)
		}
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "  %s --> %s\n", ids[e[0]], ids[e[1]])
	}
	fmt.Fprintf(&b, "  classDef variable fill:%s\n", colorVariable)
	fmt.Fprintf(&b, "  classDef data fill:%s\n", colorData)
	fmt.Fprintf(&b, "  classDef target fill:%s\n", colorTarget)
	fmt.Fprintf(&b, "  classDef step fill:%s\n", colorDefault)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMermaidCluster(b *strings.Builder, g *dag.Graph, c *cluster, ids map[string]string, targets map[string]bool, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, k := range c.keys {
		writeMermaidNode(b, g, k, ids, targets, depth)
	}
	for _, p := range c.childPrefixes() {
		ch := c.children[p]
		fmt.Fprintf(b, "%ssubgraph g_%s[%s]\n", indent, clusterID(p), mermaidLabel(ch.label()))
		writeMermaidCluster(b, g, ch, ids, targets, depth+1)
		fmt.Fprintf(b, "%send\n", indent)
	}
}

func writeMermaidNode(b *strings.Builder, g *dag.Graph, key string, ids map[string]string, targets map[string]bool, depth int) {
	spec, _ := g.Node(key)
	fmt.Fprintf(b, "%s%s[%s]:::%s\n",
		strings.Repeat("  ", depth),
		ids[key], mermaidLabel(key), class(spec, targets[key]))
}

func mermaidLabel(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "#quot;") + `"`
}
