package node

import "github.com/zclconf/go-cty/cty"

// ExpandNested flattens nested object and map values into dotted keys:
// {"a": {"b": 1}, "d": 2} becomes {"a.b": 1, "d": 2}. With includeParents
// set, every intermediate level is kept alongside its expansion, so "a"
// still maps to the whole nested value. Non-container values, nulls and
// unknowns pass through as leaves.
func ExpandNested(values Values, includeParents bool) Values {
	out := make(Values, len(values))
	for k, v := range values {
		expandInto(out, k, v, includeParents)
	}
	return out
}

func expandInto(out Values, key string, v cty.Value, includeParents bool) {
	if !isNested(v) {
		out[key] = v
		return
	}
	if includeParents {
		out[key] = v
	}
	for ek, ev := range v.AsValueMap() {
		expandInto(out, key+"."+ek, ev, includeParents)
	}
}

func isNested(v cty.Value) bool {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return false
	}
	t := v.Type()
	return t.IsObjectType() || t.IsMapType()
}
