package codec

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/operr"
)

// Encode converts one field of a live instance into its wire value.
func (c *Codec) Encode(ctx context.Context, f *field.Field, instance any) (cty.Value, error) {
	v, err := memberValue(f, instance)
	if err != nil {
		return cty.NilVal, err
	}
	return c.encodeValue(ctx, f, v, 0)
}

func (c *Codec) encodeValue(ctx context.Context, f *field.Field, v reflect.Value, depth int) (cty.Value, error) {
	if depth >= maxDepth {
		return cty.NilVal, operr.New(operr.DepthExceeded, "encoding %q exceeded depth %d", f.Name, maxDepth)
	}

	switch f.Kind {
	case field.KindBool:
		return cty.BoolVal(v.Bool()), nil

	case field.KindInt:
		if isUnsigned(v.Kind()) {
			return cty.NumberUIntVal(v.Uint()), nil
		}
		return cty.NumberIntVal(v.Int()), nil

	case field.KindFloat:
		return cty.NumberFloatVal(v.Float()), nil

	case field.KindString, field.KindName:
		return cty.StringVal(v.String()), nil

	case field.KindEnum:
		// Enums travel as their symbolic member name, never the raw
		// ordinal, so wire values stay portable across host versions.
		ordinal := enumOrdinal(v)
		for _, m := range f.Enum {
			if m.Value == ordinal {
				return cty.StringVal(m.Name), nil
			}
		}
		return cty.NilVal, operr.New(operr.TypeMismatch,
			"enum field %q holds ordinal %d outside its member table", f.Name, ordinal)

	case field.KindObjectRef, field.KindSoftRef:
		path := v.String()
		if path == "" {
			return cty.NullVal(cty.String), nil
		}
		return cty.StringVal(path), nil

	case field.KindArray:
		n := v.Len()
		if n == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, n)
		for i := 0; i < n; i++ {
			ev, err := c.encodeValue(ctx, f.Elem, v.Index(i), depth+1)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in element %d of %q: %w", i, f.Name, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil

	case field.KindMap:
		if v.Len() == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, v.Len())
		it := v.MapRange()
		for it.Next() {
			// Keys cross the wire as a generic textual rendition,
			// whatever their Go type.
			key := fmt.Sprint(it.Key().Interface())
			ev, err := c.encodeValue(ctx, f.Elem, it.Value(), depth+1)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in map key %q of %q: %w", key, f.Name, err)
			}
			attrs[key] = ev
		}
		return cty.ObjectVal(attrs), nil

	case field.KindStruct:
		attrs := make(map[string]cty.Value, len(f.Members))
		for i := range f.Members {
			m := &f.Members[i]
			mv, err := c.encodeValue(ctx, m, v.Field(m.Index), depth+1)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in member %q of %q: %w", m.Name, f.Name, err)
			}
			attrs[m.Name] = mv
		}
		if len(attrs) == 0 {
			return cty.EmptyObjectVal, nil
		}
		return cty.ObjectVal(attrs), nil

	case field.KindOpaque:
		return cty.StringVal(fmt.Sprintf("%v", v.Interface())), nil

	default:
		return cty.NilVal, operr.New(operr.UnsupportedOperation,
			"field %q has unencodable kind %s", f.Name, f.Kind)
	}
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func enumOrdinal(v reflect.Value) int64 {
	if isUnsigned(v.Kind()) {
		return int64(v.Uint())
	}
	return v.Int()
}
