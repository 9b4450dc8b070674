package node

// RewriteArgs returns a copy of a call node whose direct argument slots
// have been offered to f: every nested node argument is passed in, and a
// non-nil result replaces it. Constant slots are skipped and there is no
// recursion into grandchildren. Positional slots are offered in order,
// then keyword slots in sorted name order, so any naming side effects in
// f are deterministic. Non-call nodes, and calls where f replaced
// nothing, are returned unchanged.
func (n *Node) RewriteArgs(f func(*Node) *Node) *Node {
	if n.kind != KindFunc {
		return n
	}
	changed := false
	args := make([]Arg, len(n.args))
	for i, a := range n.args {
		if a.node == nil {
			args[i] = a
			continue
		}
		if repl := f(a.node); repl != nil {
			args[i] = Arg{node: repl}
			changed = true
		} else {
			args[i] = a
		}
	}
	var kwargs map[string]Arg
	if len(n.kwargs) > 0 {
		kwargs = make(map[string]Arg, len(n.kwargs))
		for _, k := range n.Kwargs() {
			a := n.kwargs[k]
			if a.node == nil {
				kwargs[k] = a
				continue
			}
			if repl := f(a.node); repl != nil {
				kwargs[k] = Arg{node: repl}
				changed = true
			} else {
				kwargs[k] = a
			}
		}
	}
	if !changed {
		return n
	}
	out := CallArgs(n.fnName, n.fn, args, kwargs)
	out.name = n.name
	return out
}

// RewriteVars returns a copy of the node tree in which every variable has
// been offered to f for replacement. f receives the variable's key and
// source and returns the substitute node, or nil to keep the variable as
// is. Subtrees containing no replaced variable are shared with the
// original, preserving their identity for tracing; rebuilt call nodes get
// fresh arena indices but keep label, callable and declared name.
func (n *Node) RewriteVars(f func(key, source string) *Node) *Node {
	switch n.kind {
	case KindVariable:
		if repl := f(n.key, n.source); repl != nil {
			return repl
		}
		return n

	case KindFunc:
		changed := false
		args := make([]Arg, len(n.args))
		for i, a := range n.args {
			if a.node == nil {
				args[i] = a
				continue
			}
			nn := a.node.RewriteVars(f)
			if nn != a.node {
				changed = true
			}
			args[i] = Arg{node: nn}
		}
		var kwargs map[string]Arg
		if len(n.kwargs) > 0 {
			kwargs = make(map[string]Arg, len(n.kwargs))
			for k, a := range n.kwargs {
				if a.node == nil {
					kwargs[k] = a
					continue
				}
				nn := a.node.RewriteVars(f)
				if nn != a.node {
					changed = true
				}
				kwargs[k] = Arg{node: nn}
			}
		}
		if !changed {
			return n
		}
		out := CallArgs(n.fnName, n.fn, args, kwargs)
		out.name = n.name
		return out

	default:
		return n
	}
}
