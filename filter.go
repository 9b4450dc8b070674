package computegraph

import (
	"context"
	"fmt"
)

// Filter returns the sub-graph selected by the three key sets, any of
// which may be empty but not all. The kept set is targets plus sources
// plus everything downstream of sources, closed over ancestors; exclude
// then removes its keys and everything downstream of them. With only
// exclude given, everything outside the excluded subtree survives.
// The result keeps the original target set minus the dropped keys.
func (cg *ComputeGraph) Filter(ctx context.Context, targets, sources, exclude []string) (*ComputeGraph, error) {
	if len(targets) == 0 && len(sources) == 0 && len(exclude) == 0 {
		return nil, fmt.Errorf("filter requires at least one of targets, sources or exclude")
	}

	var keep map[string]bool
	if len(targets) == 0 && len(sources) == 0 {
		keep = make(map[string]bool, cg.g.Len())
		for _, k := range cg.g.Keys() {
			keep[k] = true
		}
	} else {
		keep = withKeys(nil, targets)
		if len(sources) > 0 {
			desc, err := cg.g.Descendants(sources...)
			if err != nil {
				return nil, err
			}
			keep = withKeys(desc, sources)
			for _, t := range targets {
				keep[t] = true
			}
		}
		anc, err := cg.g.Ancestors(sortedKeys(keep)...)
		if err != nil {
			return nil, err
		}
		keep = withKeys(anc, sortedKeys(keep))
	}

	if len(exclude) > 0 {
		drop, err := cg.g.Descendants(exclude...)
		if err != nil {
			return nil, err
		}
		drop = withKeys(drop, exclude)
		keep = subtract(keep, drop)
	}

	kept := make([]string, 0, len(cg.targets))
	for _, t := range cg.targets {
		if keep[t] {
			kept = append(kept, t)
		}
	}
	return cg.derive(ctx, restrict(cg.g.Dict(), keep), kept)
}
