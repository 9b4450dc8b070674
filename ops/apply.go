package ops

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Binary computes an elementwise binary primitive with scalar-to-list
// broadcasting. Two lists must have equal length; the result is a list if
// either operand is one.
func (b *Backend) Binary(op string, x, y cty.Value) (cty.Value, error) {
	xs, xIsList, err := operand(x)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", op, err)
	}
	ys, yIsList, err := operand(y)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", op, err)
	}
	if xIsList && yIsList && len(xs) != len(ys) {
		return cty.NilVal, fmt.Errorf("%s: length mismatch: %d vs %d", op, len(xs), len(ys))
	}

	switch {
	case xIsList && !yIsList:
		ys = repeatOf(ys[0], len(xs))
	case yIsList && !xIsList:
		xs = repeatOf(xs[0], len(ys))
	}

	dst := make([]float64, len(xs))
	if err := b.k.binary(op, dst, xs, ys); err != nil {
		return cty.NilVal, err
	}
	if xIsList || yIsList {
		out, err := fromFloats(dst)
		if err != nil {
			return cty.NilVal, fmt.Errorf("%s: %w", op, err)
		}
		return out, nil
	}
	out, err := fromFloat(dst[0])
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Negate computes elementwise negation.
func (b *Backend) Negate(x cty.Value) (cty.Value, error) {
	xs, isList, err := operand(x)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", OpNeg, err)
	}
	dst := make([]float64, len(xs))
	b.k.neg(dst, xs)
	if isList {
		return fromFloats(dst)
	}
	return fromFloat(dst[0])
}

// Reduce computes sum, min or max over a list of numbers. A plain number
// passes through unchanged.
func (b *Backend) Reduce(op string, x cty.Value) (cty.Value, error) {
	xs, isList, err := operand(x)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", op, err)
	}
	if !isList {
		return x, nil
	}
	f, err := b.k.reduce(op, xs)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", op, err)
	}
	out, err := fromFloat(f)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// GetItem indexes a container: lists and tuples by number (negative
// indices count from the end), maps by key, objects by attribute name.
func GetItem(container, key cty.Value) (cty.Value, error) {
	if container == cty.NilVal || container.IsNull() || !container.IsKnown() {
		return cty.NilVal, fmt.Errorf("getitem: container is null or unknown")
	}
	t := container.Type()

	switch {
	case t.IsListType() || t.IsTupleType():
		if key.IsNull() || !key.Type().Equals(cty.Number) {
			return cty.NilVal, fmt.Errorf("getitem: index into a sequence must be a number")
		}
		var idx int
		if err := gocty.FromCtyValue(key, &idx); err != nil {
			return cty.NilVal, fmt.Errorf("getitem: %w", err)
		}
		n := container.LengthInt()
		if idx < 0 {
			idx += n
		}
		if idx < 0 || idx >= n {
			return cty.NilVal, fmt.Errorf("getitem: index %v out of range for length %d", key.AsBigFloat(), n)
		}
		return container.Index(cty.NumberIntVal(int64(idx))), nil

	case t.IsMapType():
		if key.IsNull() || !key.Type().Equals(cty.String) {
			return cty.NilVal, fmt.Errorf("getitem: map key must be a string")
		}
		if container.HasIndex(key).False() {
			return cty.NilVal, fmt.Errorf("getitem: map has no key %q", key.AsString())
		}
		return container.Index(key), nil

	case t.IsObjectType():
		if key.IsNull() || !key.Type().Equals(cty.String) {
			return cty.NilVal, fmt.Errorf("getitem: attribute name must be a string")
		}
		name := key.AsString()
		if !t.HasAttribute(name) {
			return cty.NilVal, fmt.Errorf("getitem: object has no attribute %q", name)
		}
		return container.GetAttr(name), nil

	default:
		return cty.NilVal, fmt.Errorf("getitem: cannot index value of type %s", t.FriendlyName())
	}
}

// operand converts a value to its float form: a number becomes a single
// element, a list or tuple of numbers becomes a slice. isList reports
// which form it was.
func operand(v cty.Value) (xs []float64, isList bool, err error) {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return nil, false, fmt.Errorf("operand is null or unknown")
	}
	t := v.Type()
	if t.Equals(cty.Number) {
		f, _ := v.AsBigFloat().Float64()
		return []float64{f}, false, nil
	}
	if t.IsListType() || t.IsTupleType() {
		xs := make([]float64, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if ev.IsNull() || !ev.Type().Equals(cty.Number) {
				return nil, false, fmt.Errorf("element %d is not a number", len(xs))
			}
			f, _ := ev.AsBigFloat().Float64()
			xs = append(xs, f)
		}
		return xs, true, nil
	}
	return nil, false, fmt.Errorf("operand must be a number or a list of numbers, got %s", t.FriendlyName())
}

func repeatOf(f float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f
	}
	return out
}

func fromFloat(f float64) (cty.Value, error) {
	if math.IsNaN(f) {
		return cty.NilVal, fmt.Errorf("result is not a number")
	}
	return cty.NumberFloatVal(f), nil
}

func fromFloats(fs []float64) (cty.Value, error) {
	if len(fs) == 0 {
		return cty.ListValEmpty(cty.Number), nil
	}
	vals := make([]cty.Value, len(fs))
	for i, f := range fs {
		if math.IsNaN(f) {
			return cty.NilVal, fmt.Errorf("result element %d is not a number", i)
		}
		vals[i] = cty.NumberFloatVal(f)
	}
	return cty.ListVal(vals), nil
}
