package node

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteVars(t *testing.T) {
	redirect := func(key, source string) *Node {
		if source == SourceLocals && key == "x" {
			return Variable("x", SourceStatic)
		}
		return nil
	}

	t.Run("replaces matching variables", func(t *testing.T) {
		c := Call("add", addVals, Local("x"), Local("y"))
		out := c.RewriteVars(redirect)
		require.NotSame(t, c, out)
		assert.Equal(t, SourceStatic, out.Args()[0].Node().Source())
		assert.Equal(t, SourceLocals, out.Args()[1].Node().Source())
	})

	t.Run("shares untouched subtrees", func(t *testing.T) {
		inner := Call("add", addVals, Local("y"), 1.0)
		c := Call("add", addVals, inner, Local("x"))
		out := c.RewriteVars(redirect)
		require.NotSame(t, c, out)
		assert.Same(t, inner, out.Args()[0].Node())
	})

	t.Run("no match returns the same node", func(t *testing.T) {
		c := Call("add", addVals, Local("y"), 1.0)
		assert.Same(t, c, c.RewriteVars(redirect))
	})

	t.Run("rewrites inside kwargs", func(t *testing.T) {
		c := CallKW("f", addVals, nil, map[string]any{"a": Local("x")})
		out := c.RewriteVars(redirect)
		a, ok := out.Kwarg("a")
		require.True(t, ok)
		assert.Equal(t, SourceStatic, a.Node().Source())
	})

	t.Run("rewritten call still evaluates", func(t *testing.T) {
		c := Call("add", addVals, Local("x"), 2.0)
		out := c.RewriteVars(redirect)
		v, err := out.Evaluate(context.Background(), Sources{SourceStatic: Values{"x": num(3)}})
		require.NoError(t, err)
		assert.True(t, v.RawEquals(num(5)))
	})
}
