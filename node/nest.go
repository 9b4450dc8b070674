package node

// Nest returns a copy of n addressing a graph mounted under layer: every
// local variable reference "x" becomes "layer.x". Other sources are left
// alone. Composing a traced sub-expression into a larger dictionary under
// a prefixed namespace is the usual reason to do this.
func Nest(n *Node, layer string) *Node {
	return n.RewriteVars(func(key, source string) *Node {
		if source != SourceLocals {
			return nil
		}
		return Variable(Qualify(layer, key), SourceLocals)
	})
}
