package node

import "reflect"

// Equal reports structural equality of two node specifications.
// Variables compare by (key, source); data nodes by cty raw equality,
// which is element-wise for collections and wrapper identity for opaque
// capsules; call nodes by callable identity, label, and argument-wise
// equality of args and kwargs. Arena indices never participate: two
// separately built but identical specifications are Equal.
func (n *Node) Equal(o *Node) bool {
	if n == o {
		return n != nil
	}
	if n == nil || o == nil || n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindVariable:
		return n.key == o.key && n.source == o.source
	case KindData:
		return n.value.RawEquals(o.value)
	case KindFunc:
		if n.fnName != o.fnName || !sameCallable(n.fn, o.fn) {
			return false
		}
		if len(n.args) != len(o.args) || len(n.kwargs) != len(o.kwargs) {
			return false
		}
		for i := range n.args {
			if !n.args[i].equal(o.args[i]) {
				return false
			}
		}
		for k, a := range n.kwargs {
			ob, ok := o.kwargs[k]
			if !ok || !a.equal(ob) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (a Arg) equal(b Arg) bool {
	if (a.node == nil) != (b.node == nil) {
		return false
	}
	if a.node != nil {
		return a.node.Equal(b.node)
	}
	return a.value.RawEquals(b.value)
}

// sameCallable compares function identity by code pointer. Closures built
// by separate calls are distinct even when behaviorally identical.
func sameCallable(a, b Callable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
