package dag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/computegraph/node"
)

// chain builds e -> d -> c -> b -> a with a side branch s -> c.
func chain() node.Dict {
	return node.Dict{
		"e": node.Data(node.LitVal(1.0)),
		"s": node.Data(node.LitVal(2.0)),
		"d": node.Call("f", passthrough, node.Local("e")),
		"c": node.Call("f", passthrough, node.Local("d"), node.Local("s")),
		"b": node.Call("f", passthrough, node.Local("c")),
		"a": node.Call("f", passthrough, node.Local("b")),
	}
}

func TestAncestors(t *testing.T) {
	g, err := Build(context.Background(), chain(), "")
	require.NoError(t, err)

	t.Run("full upstream closure", func(t *testing.T) {
		anc, err := g.Ancestors("b")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"c": true, "d": true, "e": true, "s": true}, anc)
	})

	t.Run("roots have none", func(t *testing.T) {
		anc, err := g.Ancestors("e")
		require.NoError(t, err)
		assert.Empty(t, anc)
	})

	t.Run("union over several keys", func(t *testing.T) {
		anc, err := g.Ancestors("d", "s")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"e": true}, anc)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := g.Ancestors("zz")
		assert.ErrorIs(t, err, node.ErrKeyLookup)
	})
}

func TestDescendants(t *testing.T) {
	g, err := Build(context.Background(), chain(), "")
	require.NoError(t, err)

	t.Run("full downstream closure", func(t *testing.T) {
		desc, err := g.Descendants("s")
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"c": true, "b": true, "a": true}, desc)
	})

	t.Run("sinks have none", func(t *testing.T) {
		desc, err := g.Descendants("a")
		require.NoError(t, err)
		assert.Empty(t, desc)
	})

	t.Run("queried keys reached from another query key are kept", func(t *testing.T) {
		desc, err := g.Descendants("d", "c")
		require.NoError(t, err)
		assert.True(t, desc["c"], "c is downstream of d")
		assert.True(t, desc["b"])
		assert.True(t, desc["a"])
		assert.False(t, desc["d"])
	})
}
