package computegraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/computegraph/internal/ctxlog"
	"github.com/vk/computegraph/node"
)

// CallSpec configures compilation of an evaluation procedure.
type CallSpec struct {
	// Targets restricts the result to these keys. Empty falls back to
	// the graph's target set, or to every node if it has none.
	Targets []string

	// OutputAll returns every node even when the graph has a target
	// set. Mutually exclusive with Targets.
	OutputAll bool

	// IncludeInputs merges the supplied external sources into the
	// result. Computed values win on key conflicts.
	IncludeInputs bool

	// NestedSources expands nested mappings in each supplied source
	// into dotted keys (keeping the enclosing mappings) before
	// evaluation.
	NestedSources bool
}

// Plan is a compiled evaluation procedure. Plans are immutable and safe
// for concurrent Call invocations; every call evaluates against fresh
// per-call state.
type Plan struct {
	order   []string
	specs   []*node.Node
	local   string
	targets []string // nil projects every node
	include bool
	nested  bool
}

// Callable compiles the graph into a Plan. Target resolution order:
// spec.Targets, then the graph's target set, then every node;
// spec.OutputAll skips the graph's target set.
func (cg *ComputeGraph) Callable(spec CallSpec) (*Plan, error) {
	if spec.OutputAll && len(spec.Targets) > 0 {
		return nil, fmt.Errorf("output_all and explicit targets are mutually exclusive")
	}
	targets := spec.Targets
	if len(targets) == 0 && !spec.OutputAll {
		targets = cg.targets
	}
	var projected []string
	if len(targets) > 0 {
		projected = make([]string, len(targets))
		copy(projected, targets)
		sort.Strings(projected)
		for _, k := range projected {
			if !cg.g.Has(k) {
				return nil, fmt.Errorf("target %q is not in the graph: %w", k, node.ErrKeyLookup)
			}
		}
	}
	order := cg.g.Order()
	specs := make([]*node.Node, len(order))
	for i, k := range order {
		spec, ok := cg.g.Node(k)
		if !ok {
			return nil, fmt.Errorf("node %q vanished from the graph: %w", k, node.ErrKeyLookup)
		}
		specs[i] = spec
	}
	return &Plan{
		order:   order,
		specs:   specs,
		local:   cg.local,
		targets: projected,
		include: spec.IncludeInputs,
		nested:  spec.NestedSources,
	}, nil
}

// Targets returns the projection keys the plan was compiled with. Nil
// means the full node mapping.
func (p *Plan) Targets() []string {
	if p.targets == nil {
		return nil
	}
	out := make([]string, len(p.targets))
	copy(out, p.targets)
	return out
}

// Call evaluates every node in topological order against the supplied
// external sources and returns the projected results. A source entry
// named after the local namespace is ignored; that namespace always
// holds the current call's node results. Errors from node evaluation
// are returned as they occurred, with no partial results.
func (p *Plan) Call(ctx context.Context, sources node.Sources) (node.Values, error) {
	locals := make(node.Values, len(p.order))
	run := make(node.Sources, len(sources)+1)
	for name, vals := range sources {
		if name == p.local {
			continue
		}
		if p.nested {
			vals = node.ExpandNested(vals, true)
		}
		run[name] = vals
	}
	run[p.local] = locals

	for i, key := range p.order {
		v, err := p.specs[i].Evaluate(ctx, run)
		if err != nil {
			ctxlog.From(ctx).Error("Node evaluation failed.", "node", key, "error", err)
			return nil, err
		}
		locals[key] = v
	}
	ctxlog.From(ctx).Debug("Evaluated plan.", "nodes", len(p.order))

	var out node.Values
	if p.targets == nil {
		out = locals
	} else {
		out = make(node.Values, len(p.targets))
		for _, k := range p.targets {
			out[k] = locals[k]
		}
	}
	if !p.include {
		return out, nil
	}

	names := make([]string, 0, len(run))
	for name := range run {
		if name != p.local {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	merged := make(node.Values)
	for _, name := range names {
		for k, v := range run[name] {
			merged[k] = v
		}
	}
	for k, v := range out {
		merged[k] = v
	}
	return merged, nil
}
