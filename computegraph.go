package computegraph

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/vk/computegraph/dag"
	"github.com/vk/computegraph/node"
	"github.com/vk/computegraph/trace"
)

// DefaultTarget is the output key assigned by FromExpr.
const DefaultTarget = "out"

// Config adjusts graph construction. The zero value selects the default
// local namespace, no key validation and no default target set.
type Config struct {
	// LocalSource overrides the namespace nodes resolve each other
	// under. Empty means node.SourceLocals.
	LocalSource string

	// ValidateKeys makes tracing fail when a requested output key
	// collides with an internal node name.
	ValidateKeys bool

	// Targets sets the default output keys for compiled evaluation.
	// The tracing constructors fill this with their output keys when
	// unset.
	Targets []string
}

func (c *Config) orDefault() Config {
	if c == nil {
		return Config{}
	}
	return *c
}

// ComputeGraph wraps a built DAG together with its evaluation defaults.
// Graphs are immutable once constructed; the derivation methods return
// new graphs.
type ComputeGraph struct {
	g        *dag.Graph
	local    string
	targets  []string
	validate bool
}

// New builds a graph from a flat, already named dictionary.
func New(ctx context.Context, dict node.Dict, cfg *Config) (*ComputeGraph, error) {
	c := cfg.orDefault()
	g, err := dag.Build(ctx, dict, c.LocalSource)
	if err != nil {
		return nil, err
	}
	cg := &ComputeGraph{g: g, local: g.LocalSource(), validate: c.ValidateKeys}
	if err := cg.setTargets(c.Targets); err != nil {
		return nil, err
	}
	return cg, nil
}

// FromExpr traces a single expression tree into a graph with one output
// key, DefaultTarget.
func FromExpr(ctx context.Context, expr *node.Node, cfg *Config) (*ComputeGraph, error) {
	return FromExprs(ctx, map[string]*node.Node{DefaultTarget: expr}, cfg)
}

// FromExprs traces a dictionary of expression trees into a graph with
// one output key per entry. The output keys become the graph's target
// set unless cfg overrides it.
func FromExprs(ctx context.Context, exprs map[string]*node.Node, cfg *Config) (*ComputeGraph, error) {
	c := cfg.orDefault()
	dict, _, err := trace.Expressions(ctx, exprs, &trace.Config{
		LocalSource:  c.LocalSource,
		ValidateKeys: c.ValidateKeys,
	})
	if err != nil {
		return nil, err
	}
	targets := c.Targets
	if len(targets) == 0 {
		targets = make([]string, 0, len(exprs))
		for k := range exprs {
			targets = append(targets, k)
		}
	}
	g, err := dag.Build(ctx, dict, c.LocalSource)
	if err != nil {
		return nil, err
	}
	cg := &ComputeGraph{g: g, local: g.LocalSource(), validate: c.ValidateKeys}
	if err := cg.setTargets(targets); err != nil {
		return nil, err
	}
	return cg, nil
}

func (cg *ComputeGraph) setTargets(targets []string) error {
	if len(targets) == 0 {
		cg.targets = nil
		return nil
	}
	sorted := make([]string, len(targets))
	copy(sorted, targets)
	sort.Strings(sorted)
	for _, k := range sorted {
		if !cg.g.Has(k) {
			return fmt.Errorf("target %q is not in the graph: %w", k, node.ErrKeyLookup)
		}
	}
	cg.targets = sorted
	return nil
}

// derive builds a sibling graph from dict, carrying over the local
// namespace and validation setting. Target keys not present in dict are
// dropped rather than rejected.
func (cg *ComputeGraph) derive(ctx context.Context, dict node.Dict, targets []string) (*ComputeGraph, error) {
	g, err := dag.Build(ctx, dict, cg.local)
	if err != nil {
		return nil, err
	}
	out := &ComputeGraph{g: g, local: g.LocalSource(), validate: cg.validate}
	kept := make([]string, 0, len(targets))
	for _, k := range targets {
		if g.Has(k) {
			kept = append(kept, k)
		}
	}
	if err := out.setTargets(kept); err != nil {
		return nil, err
	}
	return out, nil
}

// DAG exposes the underlying graph structure.
func (cg *ComputeGraph) DAG() *dag.Graph { return cg.g }

// LocalSource returns the namespace nodes resolve each other under.
func (cg *ComputeGraph) LocalSource() string { return cg.local }

// Len returns the number of nodes.
func (cg *ComputeGraph) Len() int { return cg.g.Len() }

// Keys returns the node keys, sorted.
func (cg *ComputeGraph) Keys() []string { return cg.g.Keys() }

// Order returns the evaluation order.
func (cg *ComputeGraph) Order() []string { return cg.g.Order() }

// Targets returns the default output keys, sorted. Nil means every
// node is an output.
func (cg *ComputeGraph) Targets() []string {
	if cg.targets == nil {
		return nil
	}
	out := make([]string, len(cg.targets))
	copy(out, cg.targets)
	return out
}

// Dict returns a copy of the graph's node dictionary.
func (cg *ComputeGraph) Dict() node.Dict { return cg.g.Dict() }

// Query returns the node keys fully matched by the pattern, sorted.
func (cg *ComputeGraph) Query(pattern string) ([]string, error) {
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return nil, fmt.Errorf("query pattern %q: %w", pattern, err)
	}
	var out []string
	for _, k := range cg.g.Keys() {
		if re.MatchString(k) {
			out = append(out, k)
		}
	}
	return out, nil
}
