package codec

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/operr"
	"github.com/vk/exprgraphgo/internal/structtext"
)

// EncodeStructText renders a struct field of a live instance into its
// opaque textual form, `(Member1=Value1,...)`.
func (c *Codec) EncodeStructText(ctx context.Context, f *field.Field, instance any) (string, error) {
	if f.Kind != field.KindStruct {
		return "", operr.New(operr.TypeMismatch, "field %q is %s, not a struct", f.Name, f.Kind)
	}
	v, err := memberValue(f, instance)
	if err != nil {
		return "", err
	}
	return c.renderStruct(ctx, f, v, 0)
}

func (c *Codec) renderStruct(ctx context.Context, f *field.Field, v reflect.Value, depth int) (string, error) {
	if depth >= maxDepth {
		return "", operr.New(operr.DepthExceeded, "rendering %q exceeded depth %d", f.Name, maxDepth)
	}
	pairs := make([]structtext.Pair, 0, len(f.Members))
	for i := range f.Members {
		m := &f.Members[i]
		text, quote, err := c.renderValue(ctx, m, v.Field(m.Index), depth+1)
		if err != nil {
			return "", fmt.Errorf("in member %q of %q: %w", m.Name, f.Name, err)
		}
		pairs = append(pairs, structtext.Pair{Name: m.Name, Value: text, Quote: quote})
	}
	return structtext.Render(pairs), nil
}

func (c *Codec) renderValue(ctx context.Context, f *field.Field, v reflect.Value, depth int) (text string, quote bool, err error) {
	switch f.Kind {
	case field.KindBool:
		return strconv.FormatBool(v.Bool()), false, nil
	case field.KindInt:
		if isUnsigned(v.Kind()) {
			return strconv.FormatUint(v.Uint(), 10), false, nil
		}
		return strconv.FormatInt(v.Int(), 10), false, nil
	case field.KindFloat:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), false, nil
	case field.KindString, field.KindName, field.KindObjectRef, field.KindSoftRef:
		return v.String(), true, nil
	case field.KindEnum:
		ordinal := enumOrdinal(v)
		for _, m := range f.Enum {
			if m.Value == ordinal {
				return m.Name, false, nil
			}
		}
		return "", false, operr.New(operr.TypeMismatch,
			"enum field %q holds ordinal %d outside its member table", f.Name, ordinal)
	case field.KindStruct:
		nested, err := c.renderStruct(ctx, f, v, depth)
		return nested, false, err
	default:
		return "", false, operr.New(operr.UnsupportedOperation,
			"kind %s has no textual struct form", f.Kind)
	}
}

// decodeStructText populates struct members from the opaque textual form.
// For each declared member a value span is scanned out of the text and
// recursively decoded; the decode succeeds if at least one member was
// populated. Unmatched trailing text is ignored; downstream validation
// re-checks the final state.
func (c *Codec) decodeStructText(ctx context.Context, f *field.Field, v reflect.Value, text string, depth int) error {
	if depth >= maxDepth {
		return operr.New(operr.DepthExceeded, "decoding %q exceeded depth %d", f.Name, maxDepth)
	}
	logger := ctxlog.FromContext(ctx)

	applied := 0
	var lastErr error
	for i := range f.Members {
		m := &f.Members[i]
		span, ok := structtext.MemberSpan(text, m.Name)
		if !ok {
			continue
		}
		if err := c.decodeFromText(ctx, m, v.Field(m.Index), span, depth+1); err != nil {
			logger.Warn("Struct member span failed to decode.", "field", f.Name, "member", m.Name, "error", err)
			lastErr = err
			continue
		}
		applied++
	}
	if applied == 0 {
		if lastErr != nil {
			return fmt.Errorf("no member of %q could be parsed from text: %w", f.Name, lastErr)
		}
		return operr.New(operr.TypeMismatch, "text %q holds no recognized member of %q", text, f.Name)
	}
	return nil
}

// decodeFromText converts one scanned span into a member value.
func (c *Codec) decodeFromText(ctx context.Context, f *field.Field, v reflect.Value, span string, depth int) error {
	if depth >= maxDepth {
		return operr.New(operr.DepthExceeded, "decoding %q exceeded depth %d", f.Name, maxDepth)
	}
	span = strings.TrimSpace(span)

	switch f.Kind {
	case field.KindBool:
		b, err := strconv.ParseBool(span)
		if err != nil {
			return operr.Wrap(operr.TypeMismatch, err, "member %q is not a bool", f.Name)
		}
		v.SetBool(b)
	case field.KindInt:
		if isUnsigned(v.Kind()) {
			n, err := strconv.ParseUint(span, 10, 64)
			if err != nil {
				return operr.Wrap(operr.TypeMismatch, err, "member %q is not an integer", f.Name)
			}
			v.SetUint(n)
		} else {
			n, err := strconv.ParseInt(span, 10, 64)
			if err != nil {
				return operr.Wrap(operr.TypeMismatch, err, "member %q is not an integer", f.Name)
			}
			v.SetInt(n)
		}
	case field.KindFloat:
		n, err := strconv.ParseFloat(span, 64)
		if err != nil {
			return operr.Wrap(operr.TypeMismatch, err, "member %q is not a float", f.Name)
		}
		v.SetFloat(n)
	case field.KindString, field.KindName, field.KindObjectRef, field.KindSoftRef:
		v.SetString(span)
	case field.KindEnum:
		return decodeEnum(f, v, cty.StringVal(span))
	case field.KindStruct:
		return c.decodeStructText(ctx, f, v, span, depth)
	default:
		return operr.New(operr.UnsupportedOperation,
			"kind %s has no textual struct form", f.Kind)
	}
	return nil
}
