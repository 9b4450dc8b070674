package computegraph

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/computegraph/node"
	"github.com/vk/computegraph/ops"
)

func TestTargetRestrictionIsProjection(t *testing.T) {
	ctx := context.Background()
	g := scenarioGraph(t)
	params := scenarioParams("AUS", 10)

	all, err := g.Callable(CallSpec{OutputAll: true})
	require.NoError(t, err)
	full, err := all.Call(ctx, params)
	require.NoError(t, err)
	require.Len(t, full, g.Len())

	for _, targets := range [][]string{
		{"out_pop"},
		{"pop_sum"},
		{"norm_pop", "country_pop"},
		{"iso", "out_pop", "pop_data"},
	} {
		plan, err := g.Callable(CallSpec{Targets: targets})
		require.NoError(t, err)
		got, err := plan.Call(ctx, params)
		require.NoError(t, err)

		want := make(node.Values, len(targets))
		for _, k := range targets {
			want[k] = full[k]
		}
		if diff := cmp.Diff(want, got, ctyCmp); diff != "" {
			t.Errorf("projection of %v differs from full run (-want +got):\n%s", targets, diff)
		}
	}
}

func TestOutputAllConflictsWithTargets(t *testing.T) {
	g := scenarioGraph(t)

	_, err := g.Callable(CallSpec{Targets: []string{"out_pop"}, OutputAll: true})
	require.Error(t, err)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestCallableUnknownTarget(t *testing.T) {
	g := scenarioGraph(t)

	_, err := g.Callable(CallSpec{Targets: []string{"nope"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, node.ErrKeyLookup)
}

func TestIncludeInputs(t *testing.T) {
	ctx := context.Background()
	g := scenarioGraph(t)

	plan, err := g.Callable(CallSpec{Targets: []string{"pop_sum"}, IncludeInputs: true})
	require.NoError(t, err)

	sources := scenarioParams("AUS", 10)
	sources["overrides"] = node.Values{"pop_sum": num(999)}

	out, err := plan.Call(ctx, sources)
	require.NoError(t, err)

	want := node.Values{
		"iso":       node.LitVal("AUS"),
		"pop_scale": num(10),
		"pop_sum":   num(40),
	}
	if diff := cmp.Diff(want, out, ctyCmp); diff != "" {
		t.Errorf("computed values must win over supplied inputs (-want +got):\n%s", diff)
	}
}

func TestNestedSources(t *testing.T) {
	ctx := context.Background()
	g, err := New(ctx, node.Dict{
		"rate":  node.Variable("epi.contact.rate", node.SourceParams),
		"group": node.Variable("epi.contact", node.SourceParams),
	}, nil)
	require.NoError(t, err)

	plan, err := g.Callable(CallSpec{NestedSources: true})
	require.NoError(t, err)

	out, err := plan.Call(ctx, node.Sources{
		node.SourceParams: node.Values{
			"epi": node.LitVal(map[string]map[string]float64{"contact": {"rate": 0.3}}),
		},
	})
	require.NoError(t, err)
	assert.True(t, out["rate"].RawEquals(num(0.3)))
	assert.True(t, out["group"].RawEquals(node.LitVal(map[string]float64{"rate": 0.3})))

	flat, err := g.Callable(CallSpec{})
	require.NoError(t, err)
	_, err = flat.Call(ctx, node.Sources{
		node.SourceParams: node.Values{
			"epi": node.LitVal(map[string]map[string]float64{"contact": {"rate": 0.3}}),
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, node.ErrKeyLookup)
}

func TestCallableErrorsPropagateUnwrapped(t *testing.T) {
	ctx := context.Background()
	errBoom := errors.New("boom")
	boom := func(_ context.Context, _ []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
		return cty.NilVal, errBoom
	}

	g, err := New(ctx, node.Dict{
		"a": node.Lit(1.0),
		"b": node.Call("boom", boom, node.Local("a")),
	}, nil)
	require.NoError(t, err)

	plan, err := g.Callable(CallSpec{})
	require.NoError(t, err)

	out, err := plan.Call(ctx, nil)
	assert.Nil(t, out, "no partial results")
	assert.Equal(t, errBoom, err)
}

func TestMissingSourceFailsLookup(t *testing.T) {
	ctx := context.Background()
	g := scenarioGraph(t)

	plan, err := g.Callable(CallSpec{})
	require.NoError(t, err)

	_, err = plan.Call(ctx, node.Sources{})
	require.Error(t, err)
	assert.ErrorIs(t, err, node.ErrKeyLookup)
}

func TestPlanCallsAreIndependent(t *testing.T) {
	ctx := context.Background()
	g := scenarioGraph(t)

	plan, err := g.Callable(CallSpec{})
	require.NoError(t, err)

	aus, err := plan.Call(ctx, scenarioParams("AUS", 10))
	require.NoError(t, err)
	mys, err := plan.Call(ctx, scenarioParams("MYS", 1))
	require.NoError(t, err)

	assert.True(t, aus["out_pop"].RawEquals(list(2.5, 7.5)))
	assert.False(t, mys["out_pop"].RawEquals(aus["out_pop"]))

	again, err := plan.Call(ctx, scenarioParams("AUS", 10))
	require.NoError(t, err)
	assert.True(t, again["out_pop"].RawEquals(aus["out_pop"]))
}

func TestBackendParityOnScenario(t *testing.T) {
	ctx := context.Background()
	params := scenarioParams("MYS", 3)

	results := make([]node.Values, 0, 2)
	for _, b := range []*ops.Backend{ops.Scalar(), ops.Vector()} {
		g, err := New(ctx, scenarioDict(b), nil)
		require.NoError(t, err)
		plan, err := g.Callable(CallSpec{OutputAll: true})
		require.NoError(t, err)
		out, err := plan.Call(ctx, params)
		require.NoError(t, err)
		results = append(results, out)
	}

	if diff := cmp.Diff(results[0], results[1], ctyCmp); diff != "" {
		t.Errorf("scalar and vector backends disagree (-scalar +vector):\n%s", diff)
	}
}
