package hostreg

import (
	"reflect"
	"strings"

	"github.com/vk/exprgraphgo/internal/field"
	"github.com/vk/exprgraphgo/internal/operr"
)

// maxFieldDepth bounds recursive descent into nested structs, arrays and
// maps during discovery. Deeper structures fail closed with DepthExceeded.
const maxFieldDepth = 64

var (
	refType     = reflect.TypeOf(field.Ref(""))
	softRefType = reflect.TypeOf(field.SoftRef(""))
	nameType    = reflect.TypeOf(field.Name(""))
)

// EnumerateFields walks the exported, `expr`-tagged fields of a registered
// struct type and returns their descriptors in declaration order. The
// result is rebuilt on every call; descriptors are immutable once returned.
func (r *Registry) EnumerateFields(t reflect.Type) ([]field.Field, error) {
	return r.fieldsOf(t, 0)
}

// FieldsOfInstance is a convenience wrapper resolving the struct type from a
// live instance pointer.
func (r *Registry) FieldsOfInstance(instance any) ([]field.Field, error) {
	v := reflect.ValueOf(instance)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return nil, operr.New(operr.TypeMismatch, "instance must be a non-nil struct pointer")
	}
	return r.EnumerateFields(v.Elem().Type())
}

// LookupField returns the named field of a struct type. The lookup is
// case-insensitive. On a miss the error enumerates the valid field names.
func (r *Registry) LookupField(t reflect.Type, name string) (*field.Field, error) {
	fields, err := r.EnumerateFields(t)
	if err != nil {
		return nil, err
	}
	for i := range fields {
		if strings.EqualFold(fields[i].Name, name) {
			return &fields[i], nil
		}
	}
	names := make([]string, len(fields))
	for i := range fields {
		names[i] = fields[i].Name
	}
	return nil, operr.NotFoundWith(names, "no field %q on type %s", name, t.Name())
}

func (r *Registry) fieldsOf(t reflect.Type, depth int) ([]field.Field, error) {
	if depth >= maxFieldDepth {
		return nil, operr.New(operr.DepthExceeded, "field discovery exceeded depth %d on type %s", maxFieldDepth, t)
	}
	if t.Kind() != reflect.Struct {
		return nil, operr.New(operr.TypeMismatch, "cannot enumerate fields of non-struct type %s", t)
	}

	var fields []field.Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tagName := strings.Split(sf.Tag.Get("expr"), ",")[0]
		if tagName == "" || tagName == "-" {
			continue
		}

		f, err := r.describe(sf.Type, depth)
		if err != nil {
			return nil, err
		}
		f.Name = tagName
		f.Owner = t
		f.Index = i
		f.Category = sf.Tag.Get("category")
		f.Tooltip = sf.Tag.Get("tooltip")
		for _, flag := range strings.Split(sf.Tag.Get("edit"), ",") {
			switch strings.TrimSpace(flag) {
			case "readonly":
				f.ReadOnly = true
			case "advanced":
				f.Advanced = true
			}
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// describe builds the kind-specific portion of a descriptor for a Go type.
// Container element descriptors are synthetic: they carry no owner or index.
func (r *Registry) describe(t reflect.Type, depth int) (field.Field, error) {
	if depth >= maxFieldDepth {
		return field.Field{}, operr.New(operr.DepthExceeded, "field discovery exceeded depth %d on type %s", maxFieldDepth, t)
	}

	f := field.Field{GoType: t, Index: -1}

	switch t {
	case refType:
		f.Kind = field.KindObjectRef
		return f, nil
	case softRefType:
		f.Kind = field.KindSoftRef
		return f, nil
	case nameType:
		f.Kind = field.KindName
		return f, nil
	}

	if members, ok := r.enums[t]; ok {
		f.Kind = field.KindEnum
		f.Enum = members
		return f, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		f.Kind = field.KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f.Kind = field.KindInt
	case reflect.Float32, reflect.Float64:
		f.Kind = field.KindFloat
	case reflect.String:
		f.Kind = field.KindString
	case reflect.Slice, reflect.Array:
		elem, err := r.describe(t.Elem(), depth+1)
		if err != nil {
			return field.Field{}, err
		}
		f.Kind = field.KindArray
		f.Elem = &elem
	case reflect.Map:
		key, err := r.describe(t.Key(), depth+1)
		if err != nil {
			return field.Field{}, err
		}
		elem, err := r.describe(t.Elem(), depth+1)
		if err != nil {
			return field.Field{}, err
		}
		f.Kind = field.KindMap
		f.Key = &key
		f.Elem = &elem
	case reflect.Struct:
		members, err := r.fieldsOf(t, depth+1)
		if err != nil {
			return field.Field{}, err
		}
		if len(members) == 0 {
			// A struct exposing no tagged members cannot be introspected.
			f.Kind = field.KindOpaque
			return f, nil
		}
		f.Kind = field.KindStruct
		f.Members = members
	default:
		f.Kind = field.KindOpaque
	}
	return f, nil
}
