package codec

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/operr"
)

// Decode writes a wire value into one field of a live instance. Shape is
// validated before anything mutates: a failed scalar decode leaves the field
// untouched, and container decodes are staged aside and swapped in whole.
func (c *Codec) Decode(ctx context.Context, f *field.Field, instance any, val cty.Value) error {
	v, err := memberValue(f, instance)
	if err != nil {
		return err
	}
	return c.decodeValue(ctx, f, v, val, 0)
}

func (c *Codec) decodeValue(ctx context.Context, f *field.Field, v reflect.Value, val cty.Value, depth int) error {
	if depth >= maxDepth {
		return operr.New(operr.DepthExceeded, "decoding %q exceeded depth %d", f.Name, maxDepth)
	}

	switch f.Kind {
	case field.KindBool, field.KindInt, field.KindFloat:
		return decodeScalar(f, v, val)

	case field.KindString, field.KindName:
		s, err := stringArg(f, val)
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil

	case field.KindEnum:
		return decodeEnum(f, v, val)

	case field.KindObjectRef, field.KindSoftRef:
		if val.IsNull() {
			v.SetString("")
			return nil
		}
		s, err := stringArg(f, val)
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil

	case field.KindArray:
		return c.decodeArray(ctx, f, v, val, depth)

	case field.KindMap:
		return c.decodeMap(ctx, f, v, val, depth)

	case field.KindStruct:
		// A struct accepts either a record or its opaque textual form.
		if val.Type() == cty.String && !val.IsNull() {
			return c.decodeStructText(ctx, f, v, val.AsString(), depth)
		}
		return c.decodeStructRecord(ctx, f, v, val, depth)

	case field.KindOpaque:
		return operr.New(operr.UnsupportedOperation, "field %q is opaque and cannot be written", f.Name)

	default:
		return operr.New(operr.UnsupportedOperation, "field %q has undecodable kind %s", f.Name, f.Kind)
	}
}

// decodeScalar converts and assigns a numeric or boolean wire value. The
// conversion happens fully before assignment, so failures mutate nothing.
func decodeScalar(f *field.Field, v reflect.Value, val cty.Value) error {
	if val.IsNull() {
		return operr.New(operr.TypeMismatch, "cannot decode null into %s field %q", f.Kind, f.Name)
	}
	want := cty.Number
	if f.Kind == field.KindBool {
		want = cty.Bool
	}
	converted, err := convert.Convert(val, want)
	if err != nil {
		return operr.Wrap(operr.TypeMismatch, err,
			"cannot convert %s to %s for field %q", val.Type().FriendlyName(), f.Kind, f.Name)
	}
	if err := gocty.FromCtyValue(converted, v.Addr().Interface()); err != nil {
		return operr.Wrap(operr.TypeMismatch, err, "cannot assign field %q", f.Name)
	}
	return nil
}

func stringArg(f *field.Field, val cty.Value) (string, error) {
	if val.IsNull() {
		return "", operr.New(operr.TypeMismatch, "cannot decode null into %s field %q", f.Kind, f.Name)
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", operr.Wrap(operr.TypeMismatch, err,
			"cannot convert %s to string for field %q", val.Type().FriendlyName(), f.Name)
	}
	return converted.AsString(), nil
}

// decodeArray replaces the destination wholesale: the new value is built
// aside first, and any element failure aborts the entire write, reporting
// the failing index. Fixed-size Go arrays additionally require an exact
// length match.
func (c *Codec) decodeArray(ctx context.Context, f *field.Field, v reflect.Value, val cty.Value, depth int) error {
	if val.IsNull() || !val.CanIterateElements() {
		return operr.New(operr.TypeMismatch,
			"cannot decode %s into array field %q", val.Type().FriendlyName(), f.Name)
	}
	n := val.LengthInt()

	var staged reflect.Value
	if v.Kind() == reflect.Array {
		if n != v.Len() {
			return operr.New(operr.TypeMismatch,
				"array field %q holds exactly %d elements, got %d", f.Name, v.Len(), n)
		}
		staged = reflect.New(v.Type()).Elem()
	} else {
		staged = reflect.MakeSlice(v.Type(), n, n)
	}

	it := val.ElementIterator()
	for i := 0; it.Next(); i++ {
		_, ev := it.Element()
		if err := c.decodeValue(ctx, f.Elem, staged.Index(i), ev, depth+1); err != nil {
			return fmt.Errorf("in element %d of %q: %w", i, f.Name, err)
		}
	}
	v.Set(staged)
	return nil
}

// decodeMap mirrors decodeArray: staged aside, swapped in whole.
func (c *Codec) decodeMap(ctx context.Context, f *field.Field, v reflect.Value, val cty.Value, depth int) error {
	if val.IsNull() || !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return operr.New(operr.TypeMismatch,
			"cannot decode %s into map field %q", val.Type().FriendlyName(), f.Name)
	}
	newMap := reflect.MakeMap(v.Type())
	it := val.ElementIterator()
	for it.Next() {
		keyVal, ev := it.Element()
		keyStr := keyVal.AsString()
		key, err := parseMapKey(f.Key, v.Type().Key(), keyStr)
		if err != nil {
			return fmt.Errorf("in map key %q of %q: %w", keyStr, f.Name, err)
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := c.decodeValue(ctx, f.Elem, elem, ev, depth+1); err != nil {
			return fmt.Errorf("in map key %q of %q: %w", keyStr, f.Name, err)
		}
		newMap.SetMapIndex(key, elem)
	}
	v.Set(newMap)
	return nil
}

// parseMapKey reverses the textual key rendition used by encoding.
func parseMapKey(kf *field.Field, keyType reflect.Type, text string) (reflect.Value, error) {
	out := reflect.New(keyType).Elem()
	switch kf.Kind {
	case field.KindString, field.KindName:
		out.SetString(text)
	case field.KindInt:
		if isUnsigned(keyType.Kind()) {
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return reflect.Value{}, operr.Wrap(operr.TypeMismatch, err, "not an integer key")
			}
			out.SetUint(n)
		} else {
			n, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return reflect.Value{}, operr.Wrap(operr.TypeMismatch, err, "not an integer key")
			}
			out.SetInt(n)
		}
	default:
		return reflect.Value{}, operr.New(operr.UnsupportedOperation, "unsupported map key kind %s", kf.Kind)
	}
	return out, nil
}

// decodeStructRecord sets every member present in the record, recursing per
// member. Unknown keys are logged and skipped; the decode succeeds as long
// as at least one member was set.
func (c *Codec) decodeStructRecord(ctx context.Context, f *field.Field, v reflect.Value, val cty.Value, depth int) error {
	logger := ctxlog.FromContext(ctx)
	if val.IsNull() || !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return operr.New(operr.TypeMismatch,
			"cannot decode %s into struct field %q", val.Type().FriendlyName(), f.Name)
	}

	applied := 0
	var lastErr error
	for key, mv := range val.AsValueMap() {
		m := f.Member(key)
		if m == nil {
			logger.Warn("Ignoring unknown struct member.", "field", f.Name, "member", key)
			continue
		}
		if err := c.decodeValue(ctx, m, v.Field(m.Index), mv, depth+1); err != nil {
			logger.Warn("Struct member failed to decode.", "field", f.Name, "member", key, "error", err)
			lastErr = err
			continue
		}
		applied++
	}
	if applied == 0 {
		if lastErr != nil {
			return fmt.Errorf("no member of %q could be set: %w", f.Name, lastErr)
		}
		return operr.New(operr.TypeMismatch, "record holds no recognized member of %q", f.Name)
	}
	return nil
}
