package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLitVal(t *testing.T) {
	t.Run("native scalars", func(t *testing.T) {
		assert.True(t, LitVal(2.5).RawEquals(cty.NumberFloatVal(2.5)))
		assert.True(t, LitVal("AUS").RawEquals(cty.StringVal("AUS")))
		assert.True(t, LitVal(true).RawEquals(cty.True))
	})

	t.Run("slices become lists", func(t *testing.T) {
		v := LitVal([]float64{10, 30})
		require.True(t, v.Type().IsListType())
		assert.True(t, v.RawEquals(cty.ListVal([]cty.Value{num(10), num(30)})))
	})

	t.Run("maps become maps", func(t *testing.T) {
		v := LitVal(map[string][]float64{"AUS": {10, 30}})
		require.True(t, v.Type().IsMapType())
		aus := v.Index(cty.StringVal("AUS"))
		assert.True(t, aus.RawEquals(cty.ListVal([]cty.Value{num(10), num(30)})))
	})

	t.Run("cty values pass through", func(t *testing.T) {
		v := cty.TupleVal([]cty.Value{num(1), cty.StringVal("x")})
		assert.True(t, LitVal(v).RawEquals(v))
	})

	t.Run("nil becomes null", func(t *testing.T) {
		assert.True(t, LitVal(nil).IsNull())
	})

	t.Run("unrepresentable values round-trip as opaque", func(t *testing.T) {
		ch := make(chan int)
		v := LitVal(ch)
		got, ok := FromOpaque(v)
		require.True(t, ok)
		assert.Equal(t, ch, got)

		_, ok = FromOpaque(num(1))
		assert.False(t, ok)
	})
}
