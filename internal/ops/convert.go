package ops

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ctyFromNative converts a native Go value into its corresponding cty.Value.
func ctyFromNative(v any) (cty.Value, error) {
	if v == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	if cv, ok := v.(cty.Value); ok {
		return cv, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// nativeFromCty converts a wire value into plain Go values: nil, bool,
// int64/float64, string, []any and map[string]any. The router surface never
// exposes cty to its callers.
func nativeFromCty(val cty.Value) (any, error) {
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	switch {
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if n, acc := bf.Int64(); acc == 0 { // exact integer
			return n, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty == cty.String:
		return val.AsString(), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		it := val.ElementIterator()
		for it.Next() {
			_, ev := it.Element()
			nv, err := nativeFromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, nv)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, val.LengthInt())
		it := val.ElementIterator()
		for it.Next() {
			k, ev := it.Element()
			nv, err := nativeFromCty(ev)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = nv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("no native representation for %s", ty.FriendlyName())
	}
}
