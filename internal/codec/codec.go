// Package codec implements the bidirectional property codec: it converts
// between reflected fields of live host instances and the generic wire
// value format, cty.Value.
//
// Wire values are transient: produced and consumed per call, never retained.
// Instances are borrowed from the caller for the duration of one call; the
// codec never keeps a reference past the call boundary.
package codec

import (
	"reflect"

	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/hostreg"
	"github.com/vk/exprgraphgo/internal/operr"
)

// maxDepth bounds recursive traversal of nested structs, arrays and maps.
// Conversion fails closed with DepthExceeded rather than overflowing.
const maxDepth = 64

// Codec converts between host instance fields and wire values. It is
// stateless apart from the registry it consults for enum tables and field
// discovery.
type Codec struct {
	reg *hostreg.Registry
}

// New creates a codec bound to the given host registry.
func New(reg *hostreg.Registry) *Codec {
	return &Codec{reg: reg}
}

// Registry returns the host registry the codec consults.
func (c *Codec) Registry() *hostreg.Registry {
	return c.reg
}

// memberValue resolves the addressable reflect.Value of a field on a live
// instance. The instance must be a non-nil pointer to the field's owner
// struct type.
func memberValue(f *field.Field, instance any) (reflect.Value, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, operr.New(operr.TypeMismatch, "instance must be a non-nil struct pointer")
	}
	sv := v.Elem()
	if sv.Type() != f.Owner {
		return reflect.Value{}, operr.New(operr.TypeMismatch,
			"field %q belongs to %s, not %s", f.Name, f.Owner, sv.Type())
	}
	return sv.Field(f.Index), nil
}
