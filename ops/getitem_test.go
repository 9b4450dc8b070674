package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestGetItem(t *testing.T) {
	t.Run("list by index", func(t *testing.T) {
		v, err := GetItem(list(10, 30), cty.NumberIntVal(1))
		require.NoError(t, err)
		assert.True(t, v.RawEquals(num(30)))
	})

	t.Run("negative index counts from the end", func(t *testing.T) {
		v, err := GetItem(list(10, 30), cty.NumberIntVal(-1))
		require.NoError(t, err)
		assert.True(t, v.RawEquals(num(30)))
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := GetItem(list(10, 30), cty.NumberIntVal(2))
		require.Error(t, err)
		assert.ErrorContains(t, err, "out of range")
	})

	t.Run("tuple by index", func(t *testing.T) {
		tup := cty.TupleVal([]cty.Value{cty.StringVal("x"), num(1)})
		v, err := GetItem(tup, cty.NumberIntVal(0))
		require.NoError(t, err)
		assert.True(t, v.RawEquals(cty.StringVal("x")))
	})

	t.Run("map by key", func(t *testing.T) {
		m := cty.MapVal(map[string]cty.Value{
			"AUS": list(10, 30),
			"MYS": list(5, 9, 1.4),
		})
		v, err := GetItem(m, cty.StringVal("AUS"))
		require.NoError(t, err)
		assert.True(t, v.RawEquals(list(10, 30)))

		_, err = GetItem(m, cty.StringVal("NZL"))
		require.Error(t, err)
		assert.ErrorContains(t, err, "no key")
	})

	t.Run("object by attribute", func(t *testing.T) {
		o := cty.ObjectVal(map[string]cty.Value{"pop": num(7)})
		v, err := GetItem(o, cty.StringVal("pop"))
		require.NoError(t, err)
		assert.True(t, v.RawEquals(num(7)))

		_, err = GetItem(o, cty.StringVal("area"))
		assert.Error(t, err)
	})

	t.Run("wrong key type", func(t *testing.T) {
		_, err := GetItem(list(1), cty.StringVal("0"))
		assert.Error(t, err)

		m := cty.MapVal(map[string]cty.Value{"a": num(1)})
		_, err = GetItem(m, cty.NumberIntVal(0))
		assert.Error(t, err)
	})

	t.Run("not a container", func(t *testing.T) {
		_, err := GetItem(num(1), cty.NumberIntVal(0))
		assert.Error(t, err)
	})
}
