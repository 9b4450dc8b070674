// Package trace flattens nested node expressions into named graph
// dictionaries. Anonymous sub-expressions receive stable generated names,
// shared node objects are traced once, and name collisions abort the
// trace.
package trace

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/computegraph/internal/ctxlog"
	"github.com/vk/computegraph/node"
)

// ErrKeyCollision marks two distinct node identities competing for one
// generated or user-supplied name.
var ErrKeyCollision = errors.New("name collision")

// Config adjusts a trace. The zero value uses node.SourceLocals as the
// local namespace and performs no output-key validation.
type Config struct {
	// LocalSource is the namespace under which traced nodes reference
	// each other. Empty means node.SourceLocals.
	LocalSource string
	// ValidateKeys rejects output keys that coincide with the name of an
	// internal traced node.
	ValidateKeys bool
}

func (c *Config) localSource() string {
	if c == nil || c.LocalSource == "" {
		return node.SourceLocals
	}
	return c.LocalSource
}

func (c *Config) validateKeys() bool {
	return c != nil && c.ValidateKeys
}

// identity is the pass-through bound to every output key. The
// indirection keeps user-chosen output keys distinct from internal node
// names.
var identity node.Callable = func(_ context.Context, args []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
	if len(args) != 1 {
		return cty.NilVal, fmt.Errorf("identity expects 1 argument, got %d", len(args))
	}
	return args[0], nil
}

// Expressions traces every output expression into one flat dictionary.
// Output keys are processed in sorted order so that generated names are
// stable across repeated traces of structurally equal input. The second
// result maps the arena index of each traced node to its assigned name.
func Expressions(ctx context.Context, exprs map[string]*node.Node, cfg *Config) (node.Dict, map[uint64]string, error) {
	t := &tracer{
		local:  cfg.localSource(),
		dict:   make(node.Dict),
		names:  make(map[uint64]string),
		owners: make(map[string]uint64),
	}

	keys := make([]string, 0, len(exprs))
	for k := range exprs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expr := exprs[key]
		if expr == nil {
			return nil, nil, fmt.Errorf("output %q: nil node", key)
		}
		rootName, err := t.trace(expr)
		if err != nil {
			return nil, nil, fmt.Errorf("output %q: %w", key, err)
		}
		if cfg.validateKeys() {
			if _, taken := t.owners[key]; taken {
				return nil, nil, fmt.Errorf("output key %q duplicates an internal node name: %w", key, ErrKeyCollision)
			}
		}
		bound := node.Call("identity", identity, node.Local(rootName))
		t.dict[key] = bound
		if cfg.validateKeys() {
			// Claim the output key so a later internal node cannot take it.
			t.names[bound.ID()] = key
			t.owners[key] = bound.ID()
		}
	}

	ctxlog.From(ctx).Debug("Traced expression graph.", "outputs", len(exprs), "nodes", len(t.dict))
	return t.dict, t.names, nil
}

type tracer struct {
	local string
	dict  node.Dict
	// names memoizes assigned names by arena index; owners inverts it to
	// detect two identities claiming one name.
	names   map[uint64]string
	owners  map[string]uint64
	counter int
}

// trace assigns the node a name, records its flattened form in the
// dictionary, and returns the name. Local variables are returned as the
// key they already reference, without recording anything.
func (t *tracer) trace(n *node.Node) (string, error) {
	if n.Kind() == node.KindVariable && n.Source() == t.local {
		return n.Key(), nil
	}
	if name, ok := t.names[n.ID()]; ok {
		return name, nil
	}

	name := n.Name()
	if name == "" {
		name = fmt.Sprintf("_var%d", t.counter)
		t.counter++
	}
	if ownerID, taken := t.owners[name]; taken && ownerID != n.ID() {
		return "", fmt.Errorf("name %q assigned to two distinct nodes: %w", name, ErrKeyCollision)
	}
	t.names[n.ID()] = name
	t.owners[name] = n.ID()

	flattened, err := t.flattenArgs(n)
	if err != nil {
		return "", err
	}
	t.dict[name] = flattened
	return name, nil
}

// flattenArgs replaces every nested node argument of a call with a local
// variable referencing the argument's traced name. Non-call nodes and
// constant arguments pass through untouched.
func (t *tracer) flattenArgs(n *node.Node) (*node.Node, error) {
	if n.Kind() != node.KindFunc {
		return n, nil
	}

	var firstErr error
	out := n.RewriteArgs(func(child *node.Node) *node.Node {
		if firstErr != nil {
			return nil
		}
		if child.Kind() == node.KindVariable && child.Source() == t.local {
			return nil
		}
		name, err := t.trace(child)
		if err != nil {
			firstErr = err
			return nil
		}
		return node.Variable(name, t.local)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
