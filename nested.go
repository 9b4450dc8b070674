package computegraph

import (
	"github.com/vk/computegraph/node"
)

// NestDict namespaces a whole dictionary under layer: every key becomes
// "layer.key" and local references are rewritten to match, so several
// copies of one dictionary can coexist in a single graph.
//
// With nestInputs set, variables reading external namespaces are also
// re-keyed under the layer, giving each copy its own slice of the input
// namespaces. paramMap overrides that per variable: an entry mapping a
// qualified "source.key" name to a node key replaces the variable with
// a local reference to that key, which is how a nested copy is wired to
// values produced by the enclosing graph.
func NestDict(dict node.Dict, layer string, nestInputs bool, paramMap map[string]string) node.Dict {
	out := make(node.Dict, len(dict))
	for _, k := range dict.Keys() {
		out[node.Qualify(layer, k)] = nestSpec(dict[k], layer, nestInputs, paramMap)
	}
	return out
}

func nestSpec(spec *node.Node, layer string, nestInputs bool, paramMap map[string]string) *node.Node {
	return spec.RewriteVars(func(key, source string) *node.Node {
		if source == node.SourceLocals {
			return node.Local(node.Qualify(layer, key))
		}
		if target, ok := paramMap[node.Qualify(source, key)]; ok {
			return node.Local(target)
		}
		if nestInputs {
			return node.Variable(node.Qualify(layer, key), source)
		}
		return nil
	})
}
