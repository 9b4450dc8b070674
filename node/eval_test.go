package node

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestEvaluateVariable(t *testing.T) {
	ctx := context.Background()
	sources := Sources{"inputs": Values{"pop": num(21)}}

	t.Run("resolves against its source", func(t *testing.T) {
		v, err := Variable("pop", "inputs").Evaluate(ctx, sources)
		require.NoError(t, err)
		assert.True(t, v.RawEquals(num(21)))
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := Variable("pop", "absent").Evaluate(ctx, sources)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrKeyLookup)
		assert.ErrorContains(t, err, "absent")
	})

	t.Run("missing key names source and key", func(t *testing.T) {
		_, err := Variable("area", "inputs").Evaluate(ctx, sources)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrKeyLookup)
		assert.ErrorContains(t, err, "inputs")
		assert.ErrorContains(t, err, "area")
	})
}

func TestEvaluateData(t *testing.T) {
	v, err := Data(num(7)).Evaluate(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, v.RawEquals(num(7)))
}

func TestEvaluateCall(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves nested nodes and constants", func(t *testing.T) {
		c := Call("add", addVals, Variable("x", "inputs"), 2.0, Data(num(3)))
		v, err := c.Evaluate(ctx, Sources{"inputs": Values{"x": num(1)}})
		require.NoError(t, err)
		assert.True(t, v.RawEquals(num(6)))
	})

	t.Run("kwargs reach the callable by name", func(t *testing.T) {
		pick := func(_ context.Context, _ []cty.Value, kwargs map[string]cty.Value) (cty.Value, error) {
			return kwargs["wanted"], nil
		}
		c := CallKW("pick", pick, nil, map[string]any{"wanted": Variable("x", "inputs"), "other": 9.0})
		v, err := c.Evaluate(ctx, Sources{"inputs": Values{"x": num(4)}})
		require.NoError(t, err)
		assert.True(t, v.RawEquals(num(4)))
	})

	t.Run("argument lookup failures abort the call", func(t *testing.T) {
		c := Call("add", addVals, Variable("missing", "inputs"), 1.0)
		_, err := c.Evaluate(ctx, Sources{"inputs": Values{}})
		assert.ErrorIs(t, err, ErrKeyLookup)
	})

	t.Run("callable errors propagate unmodified", func(t *testing.T) {
		boom := errors.New("boom")
		fail := func(_ context.Context, _ []cty.Value, _ map[string]cty.Value) (cty.Value, error) {
			return cty.NilVal, boom
		}
		_, err := Call("fail", fail).Evaluate(ctx, nil)
		assert.Equal(t, boom, err)
	})

	t.Run("unbound callable is rejected", func(t *testing.T) {
		_, err := Call("ghost", nil).Evaluate(ctx, nil)
		require.Error(t, err)
		assert.ErrorContains(t, err, "ghost")
	})
}
