package node

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// opaqueType encapsulates Go values that have no cty representation.
// Capsule values compare by wrapper identity, so an opaque constant is
// equal only to itself.
var opaqueType = cty.Capsule("opaque", reflect.TypeOf((*any)(nil)).Elem())

// Lit embeds an arbitrary Go value as a data node, converting it with
// LitVal.
func Lit(v any) *Node {
	return Data(LitVal(v))
}

// LitVal converts an arbitrary Go value to cty. Values cty can model
// (numbers, strings, bools, slices, maps, tagged structs) convert
// structurally; a cty.Value passes through; nil becomes a null; anything
// else is wrapped as an opaque capsule.
func LitVal(v any) cty.Value {
	if cv, ok := v.(cty.Value); ok {
		return cv
	}
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	if t, err := gocty.ImpliedType(v); err == nil {
		if cv, err := gocty.ToCtyValue(v, t); err == nil {
			return cv
		}
	}
	return Opaque(v)
}

// Opaque wraps v in an opaque capsule value.
func Opaque(v any) cty.Value {
	return cty.CapsuleVal(opaqueType, &v)
}

// FromOpaque unwraps a value produced by Opaque.
func FromOpaque(v cty.Value) (any, bool) {
	if v == cty.NilVal || !v.Type().Equals(opaqueType) || v.IsNull() {
		return nil, false
	}
	p, ok := v.EncapsulatedValue().(*any)
	if !ok {
		return nil, false
	}
	return *p, true
}
