package node

import (
	"context"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Evaluate resolves the node against the given sources. Variables look up
// sources[source][key], data nodes return their constant, and call nodes
// first resolve every argument (recursing into nested nodes) and then
// invoke the wrapped callable. Errors from the callable propagate
// unmodified; resolution failures wrap ErrKeyLookup.
func (n *Node) Evaluate(ctx context.Context, sources Sources) (cty.Value, error) {
	switch n.kind {
	case KindVariable:
		vals, ok := sources[n.source]
		if !ok {
			return cty.NilVal, fmt.Errorf("source %q not supplied (needed for key %q): %w", n.source, n.key, ErrKeyLookup)
		}
		v, ok := vals[n.key]
		if !ok {
			return cty.NilVal, fmt.Errorf("source %q has no key %q: %w", n.source, n.key, ErrKeyLookup)
		}
		return v, nil

	case KindData:
		return n.value, nil

	case KindFunc:
		if n.fn == nil {
			return cty.NilVal, fmt.Errorf("call %q has no function bound", n.fnName)
		}
		args := make([]cty.Value, len(n.args))
		for i, a := range n.args {
			v, err := a.resolve(ctx, sources)
			if err != nil {
				return cty.NilVal, err
			}
			args[i] = v
		}
		var kwargs map[string]cty.Value
		if len(n.kwargs) > 0 {
			kwargs = make(map[string]cty.Value, len(n.kwargs))
			for k, a := range n.kwargs {
				v, err := a.resolve(ctx, sources)
				if err != nil {
					return cty.NilVal, err
				}
				kwargs[k] = v
			}
		}
		return n.fn(ctx, args, kwargs)

	default:
		return cty.NilVal, fmt.Errorf("cannot evaluate node of kind %s", n.kind)
	}
}

func (a Arg) resolve(ctx context.Context, sources Sources) (cty.Value, error) {
	if a.node != nil {
		return a.node.Evaluate(ctx, sources)
	}
	return a.value, nil
}
