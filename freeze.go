package computegraph

import (
	"context"
	"fmt"

	"github.com/vk/computegraph/internal/ctxlog"
	"github.com/vk/computegraph/node"
)

// FreezeResult carries the partition produced by Freeze.
type FreezeResult struct {
	// Dynamic is the region that re-computes whenever the dynamic
	// inputs change. When Freeze received concrete inputs it is
	// self-contained; otherwise its boundary nodes read from the
	// "static_inputs" namespace.
	Dynamic *ComputeGraph

	// Static produces the boundary values. Nil when Freeze received
	// concrete inputs, because the static region was evaluated
	// eagerly and spliced into Dynamic as constants.
	Static *ComputeGraph

	// Boundary lists the static keys the dynamic region consumes,
	// sorted. Static's target set when it is returned.
	Boundary []string
}

// Freeze partitions the graph relative to the targets into a static
// region, whose values cannot change between evaluations, and a dynamic
// region reachable from the given dynamic node keys. Targets default to
// the graph's target set.
//
// With a non-nil inputs mapping the static region is evaluated now and
// its boundary values are embedded in the dynamic graph as constants.
// With nil inputs both regions are returned; evaluate Static later and
// feed its results to Dynamic under the "static_inputs" namespace.
func (cg *ComputeGraph) Freeze(ctx context.Context, targets, dynamic []string, inputs node.Sources) (*FreezeResult, error) {
	if len(targets) == 0 {
		targets = cg.targets
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("freeze requires target keys and the graph has no target set")
	}
	if len(dynamic) == 0 {
		return nil, fmt.Errorf("freeze requires dynamic node keys")
	}

	anc, err := cg.g.Ancestors(targets...)
	if err != nil {
		return nil, err
	}
	fullTree := withKeys(anc, targets)

	desc, err := cg.g.Descendants(dynamic...)
	if err != nil {
		return nil, err
	}
	dynMust := withKeys(desc, dynamic)

	finalDyn := intersect(fullTree, dynMust)
	staticNodes := subtract(fullTree, finalDyn)

	dict := cg.g.Dict()
	dynDict := restrict(dict, finalDyn)
	staticDict := restrict(dict, staticNodes)

	boundarySet := make(map[string]bool)
	for k := range finalDyn {
		spec, ok := cg.g.Node(k)
		if !ok {
			return nil, fmt.Errorf("node %q vanished from the graph: %w", k, node.ErrKeyLookup)
		}
		for _, ref := range spec.Refs(cg.local) {
			if !finalDyn[ref] {
				boundarySet[ref] = true
			}
		}
	}
	for _, t := range targets {
		if !finalDyn[t] {
			boundarySet[t] = true
		}
	}
	boundary := sortedKeys(boundarySet)

	ctxlog.From(ctx).Debug("Froze computation graph.",
		"dynamic", len(finalDyn),
		"static", len(staticNodes),
		"boundary", len(boundary),
	)

	if inputs != nil {
		if len(boundary) > 0 {
			staticGraph, err := cg.derive(ctx, staticDict, nil)
			if err != nil {
				return nil, err
			}
			plan, err := staticGraph.Callable(CallSpec{Targets: boundary})
			if err != nil {
				return nil, err
			}
			vals, err := plan.Call(ctx, inputs)
			if err != nil {
				return nil, fmt.Errorf("evaluating static region: %w", err)
			}
			for _, k := range boundary {
				dynDict[k] = node.Data(vals[k])
			}
		}
		dynGraph, err := cg.derive(ctx, dynDict, targets)
		if err != nil {
			return nil, err
		}
		return &FreezeResult{Dynamic: dynGraph, Boundary: boundary}, nil
	}

	for _, k := range boundary {
		dynDict[k] = node.Variable(k, node.SourceStatic)
	}
	dynGraph, err := cg.derive(ctx, dynDict, targets)
	if err != nil {
		return nil, err
	}
	staticGraph, err := cg.derive(ctx, staticDict, boundary)
	if err != nil {
		return nil, err
	}
	return &FreezeResult{Dynamic: dynGraph, Static: staticGraph, Boundary: boundary}, nil
}
