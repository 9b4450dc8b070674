package node

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/zclconf/go-cty/cty"
)

// Well-known source names. A traced dictionary binds its own entries under
// SourceLocals so sibling nodes can reference each other; SourceParams is
// the conventional namespace for caller-supplied parameters; SourceStatic
// is the namespace under which a frozen graph re-imports the outputs of
// its static half.
const (
	SourceLocals = "graph_locals"
	SourceParams = "parameters"
	SourceStatic = "static_inputs"
)

// Values holds the named values of a single input source.
type Values = map[string]cty.Value

// Sources groups input values by source name, e.g.
// Sources{"parameters": {"iso": cty.StringVal("AUS")}}.
type Sources = map[string]Values

// Callable is the signature of a Go function wrapped by a call node.
// Positional arguments arrive in declaration order; keyword arguments by
// name. A returned error aborts the surrounding evaluation unmodified.
type Callable func(ctx context.Context, args []cty.Value, kwargs map[string]cty.Value) (cty.Value, error)

// Kind discriminates the node variants.
type Kind int

const (
	// KindVariable is a symbolic reference to a key inside an input source.
	KindVariable Kind = iota + 1
	// KindData is an embedded constant.
	KindData
	// KindFunc is a deferred function call.
	KindFunc
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindData:
		return "data"
	case KindFunc:
		return "func"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// lastID hands out arena indices. Node identity, for tracing and
// memoization, is this index rather than the node contents: two
// structurally equal nodes built separately are still distinct vertices.
var lastID atomic.Uint64

// Node is a single vertex specification. Nodes are immutable after
// construction except for the optional declared name set via Named.
type Node struct {
	// id is the arena index assigned at construction.
	id uint64
	// kind selects which of the variant field groups below is meaningful.
	kind Kind
	// name is the optional declared name used when the node is traced.
	name string

	// key and source describe a KindVariable reference.
	key    string
	source string

	// value holds a KindData constant.
	value cty.Value

	// fnName, fn, args and kwargs describe a KindFunc call.
	fnName string
	fn     Callable
	args   []Arg
	kwargs map[string]Arg
}

// Arg is one argument slot of a call node: either a nested node or an
// inline constant. The zero Arg is an inline null constant.
type Arg struct {
	node  *Node
	value cty.Value
}

// NodeArg wraps a node as a call argument.
func NodeArg(n *Node) Arg { return Arg{node: n} }

// ValueArg wraps a constant as a call argument.
func ValueArg(v cty.Value) Arg { return Arg{value: v} }

// ToArg coerces v into an argument slot: a *Node becomes a node argument,
// an Arg passes through, a cty.Value becomes an inline constant, and any
// other Go value is converted with LitVal.
func ToArg(v any) Arg {
	switch tv := v.(type) {
	case Arg:
		return tv
	case *Node:
		if tv != nil {
			return Arg{node: tv}
		}
		return Arg{value: cty.NullVal(cty.DynamicPseudoType)}
	case cty.Value:
		return Arg{value: tv}
	default:
		return Arg{value: LitVal(v)}
	}
}

// Node returns the nested node of a node argument, or nil for a constant.
func (a Arg) Node() *Node { return a.node }

// Value returns the inline constant of a constant argument. It is
// meaningful only when Node returns nil.
func (a Arg) Value() cty.Value { return a.value }

func newNode(kind Kind) *Node {
	return &Node{id: lastID.Add(1), kind: kind}
}

// Variable declares a symbolic reference to sources[source][key].
func Variable(key, source string) *Node {
	n := newNode(KindVariable)
	n.key = key
	n.source = source
	return n
}

// Local declares a reference to a sibling entry of the enclosing
// dictionary, i.e. a variable under SourceLocals.
func Local(key string) *Node { return Variable(key, SourceLocals) }

// Param declares a reference to a caller-supplied parameter, i.e. a
// variable under SourceParams.
func Param(key string) *Node { return Variable(key, SourceParams) }

// Data embeds a constant value.
func Data(v cty.Value) *Node {
	n := newNode(KindData)
	n.value = v
	return n
}

// Call declares a deferred invocation of fn with positional arguments.
// Each argument is coerced with ToArg, so nodes and plain values mix
// freely. The name labels the call in traces, errors and drawings; it
// carries no binding semantics.
func Call(name string, fn Callable, args ...any) *Node {
	coerced := make([]Arg, len(args))
	for i, a := range args {
		coerced[i] = ToArg(a)
	}
	return CallArgs(name, fn, coerced, nil)
}

// CallKW declares a deferred invocation with positional and keyword
// arguments, both coerced with ToArg.
func CallKW(name string, fn Callable, args []any, kwargs map[string]any) *Node {
	ca := make([]Arg, len(args))
	for i, a := range args {
		ca[i] = ToArg(a)
	}
	var ck map[string]Arg
	if len(kwargs) > 0 {
		ck = make(map[string]Arg, len(kwargs))
		for k, a := range kwargs {
			ck[k] = ToArg(a)
		}
	}
	return CallArgs(name, fn, ca, ck)
}

// CallArgs is the no-coercion form of Call for callers that already hold
// Arg slots.
func CallArgs(name string, fn Callable, args []Arg, kwargs map[string]Arg) *Node {
	n := newNode(KindFunc)
	n.fnName = name
	n.fn = fn
	n.args = args
	if len(kwargs) > 0 {
		n.kwargs = kwargs
	}
	return n
}

// ID returns the arena index identifying this node object.
func (n *Node) ID() uint64 { return n.id }

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Named attaches a declared name and returns n for chaining. The tracer
// prefers a declared name over a generated one when naming nested nodes.
func (n *Node) Named(name string) *Node {
	n.name = name
	return n
}

// Name returns the name under which the tracer binds this node: the
// declared name if set, the qualified source.key form for variables, and
// otherwise the empty string (meaning a name must be generated).
func (n *Node) Name() string {
	if n.name != "" {
		return n.name
	}
	if n.kind == KindVariable {
		return Qualify(n.source, n.key)
	}
	return ""
}

// Key returns the referenced key of a variable node.
func (n *Node) Key() string { return n.key }

// Source returns the source namespace of a variable node.
func (n *Node) Source() string { return n.source }

// Value returns the constant of a data node.
func (n *Node) Value() cty.Value { return n.value }

// FuncName returns the label of a call node.
func (n *Node) FuncName() string { return n.fnName }

// Func returns the wrapped callable of a call node.
func (n *Node) Func() Callable { return n.fn }

// Args returns the positional argument slots of a call node. The slice is
// shared; callers must not modify it.
func (n *Node) Args() []Arg { return n.args }

// Kwargs returns the keyword argument names of a call node in sorted
// order. Look slots up with Kwarg.
func (n *Node) Kwargs() []string {
	if len(n.kwargs) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.kwargs))
	for k := range n.kwargs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Kwarg returns the keyword argument slot for name.
func (n *Node) Kwarg(name string) (Arg, bool) {
	a, ok := n.kwargs[name]
	return a, ok
}

// String renders a short human-readable description for errors and logs.
func (n *Node) String() string {
	if n == nil {
		return "<nil node>"
	}
	switch n.kind {
	case KindVariable:
		return fmt.Sprintf("variable %s", Qualify(n.source, n.key))
	case KindData:
		return "data"
	case KindFunc:
		return fmt.Sprintf("call %s/%d", n.fnName, len(n.args)+len(n.kwargs))
	default:
		return n.kind.String()
	}
}

// Dict is a named node dictionary: the mapping form in which graphs are
// declared and exchanged. Keys are node names; sibling references use
// variables under the dictionary's local source.
type Dict map[string]*Node

// Keys returns the dictionary keys in sorted order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of d. The nodes themselves are shared.
func (d Dict) Clone() Dict {
	out := make(Dict, len(d))
	for k, n := range d {
		out[k] = n
	}
	return out
}
