// Package field defines the immutable property descriptors produced by host
// type discovery and consumed by the property codec.
//
// A Field is discovered once per host type and never mutated afterwards; the
// codec dispatches on its Kind rather than performing open-ended checks
// against Go types.
package field

import (
	"reflect"
	"strings"
)

// Kind is the closed set of property kinds the codec knows how to convert.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	// KindName is a symbolic-name property: an interned identifier that
	// behaves like a string on the wire.
	KindName
	KindEnum
	// KindObjectRef is a hard reference to a host object, carried on the
	// wire as its path string, or null when unset.
	KindObjectRef
	// KindSoftRef is a lazily-resolved object path. Wire shape is identical
	// to KindObjectRef; only the host-side loading semantics differ.
	KindSoftRef
	KindArray
	KindMap
	KindStruct
	// KindOpaque marks a property the codec cannot introspect. It is
	// readable as a best-effort string and rejects writes.
	KindOpaque
)

// String returns the canonical lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindName:
		return "name"
	case KindEnum:
		return "enum"
	case KindObjectRef:
		return "object"
	case KindSoftRef:
		return "soft_object"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindStruct:
		return "struct"
	case KindOpaque:
		return "opaque"
	default:
		return "invalid"
	}
}

// EnumMember is one symbolic member of an enum property's value space.
type EnumMember struct {
	Name  string
	Value int64
}

// Field describes a single reflected property of a host type. Fields are
// built by the host registry during discovery and shared read-only from
// then on.
type Field struct {
	// Name is the property name exposed to callers.
	Name string
	Kind Kind

	// Owner is the Go struct type the field was discovered on. Nil for
	// synthetic element/key descriptors of containers.
	Owner reflect.Type
	// Index is the Go struct field index within Owner. -1 for synthetic
	// container element descriptors.
	Index int
	// GoType is the Go type of the property value itself.
	GoType reflect.Type

	// ReadOnly marks fields that reject writes through the mutation service.
	ReadOnly bool
	// Advanced marks fields hidden from default field listings.
	Advanced bool

	Category string
	Tooltip  string

	// Enum holds the symbolic member table when Kind is KindEnum.
	Enum []EnumMember

	// Elem describes array elements and map values.
	Elem *Field
	// Key describes map keys.
	Key *Field
	// Members describes the declared members when Kind is KindStruct, in
	// declaration order.
	Members []Field
}

// Member returns the struct member descriptor with the given name, or nil.
// The lookup is case-insensitive because textual struct forms routinely
// arrive with mismatched casing.
func (f *Field) Member(name string) *Field {
	for i := range f.Members {
		if strings.EqualFold(f.Members[i].Name, name) {
			return &f.Members[i]
		}
	}
	return nil
}
