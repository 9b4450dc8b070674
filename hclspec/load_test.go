package hclspec

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/computegraph"
	"github.com/vk/computegraph/node"
	"github.com/vk/computegraph/ops"
)

const scenarioSrc = `
node "iso" {
  expr = param.iso
}

node "pop_data" {
  expr = {
    AUS = [10, 30]
    MYS = [5, 9, 1.4]
  }
}

node "country_pop" {
  expr = local.pop_data[local.iso]
}

node "pop_sum" {
  expr = sum(local.country_pop)
}

node "norm_pop" {
  expr = local.country_pop / local.pop_sum
}

node "out_pop" {
  expr = local.norm_pop * param.pop_scale
}
`

func evalScenario(t *testing.T, backend *ops.Backend) cty.Value {
	t.Helper()
	ctx := context.Background()

	dict, err := New(nil, backend).LoadSource(ctx, "scenario.hcl", []byte(scenarioSrc))
	require.NoError(t, err)
	require.Len(t, dict, 6)

	cg, err := computegraph.New(ctx, dict, &computegraph.Config{Targets: []string{"out_pop"}})
	require.NoError(t, err)

	run, err := cg.Callable(computegraph.CallSpec{})
	require.NoError(t, err)

	out, err := run.Call(ctx, node.Sources{
		node.SourceParams: node.Values{
			"iso":       cty.StringVal("AUS"),
			"pop_scale": cty.NumberFloatVal(10),
		},
	})
	require.NoError(t, err)
	return out["out_pop"]
}

func TestLoadSourceEndToEnd(t *testing.T) {
	got := evalScenario(t, ops.Vector())

	want := cty.ListVal([]cty.Value{
		cty.NumberFloatVal(2.5),
		cty.NumberFloatVal(7.5),
	})
	assert.True(t, want.RawEquals(got), "got %#v", got)
}

func TestLoadSourceBackendParity(t *testing.T) {
	vector := evalScenario(t, ops.Vector())
	scalar := evalScenario(t, ops.Scalar())
	assert.True(t, vector.RawEquals(scalar), "vector %#v, scalar %#v", vector, scalar)
}

func TestLoadSourceParseError(t *testing.T) {
	_, err := New(nil, nil).LoadSource(context.Background(), "broken.hcl", []byte(`node "x" {`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse broken.hcl")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.hcl")
	require.NoError(t, os.WriteFile(path, []byte(scenarioSrc), 0o644))

	dict, err := New(nil, nil).LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, dict, 6)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := New(nil, nil).LoadFile(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inputs.hcl"), []byte(`
node "iso" { expr = param.iso }

node "pop_data" {
  expr = {
    AUS = [10, 30]
    MYS = [5, 9, 1.4]
  }
}
`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "derived"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "derived", "pop.hcl"), []byte(`
node "country_pop" { expr = local.pop_data[local.iso] }
node "pop_sum" { expr = sum(local.country_pop) }
`), 0o644))

	dict, err := New(nil, nil).LoadDir(context.Background(), dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"iso", "pop_data", "country_pop", "pop_sum"}, dict.Keys())
}

func TestLoadDirDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`node "iso" { expr = param.iso }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`node "iso" { expr = param.iso }`), 0o644))

	_, err := New(nil, nil).LoadDir(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, `node "iso" defined in both`)
}

func TestLoadDirEmpty(t *testing.T) {
	dict, err := New(nil, nil).LoadDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, dict)
}
