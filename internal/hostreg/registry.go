// Package hostreg is the host-side reflection runtime: a registry of
// expression types, their reflected property sets and their enum member
// tables. It is the single authority the catalog, codec and graph services
// consult for type information.
package hostreg

import (
	"fmt"
	"reflect"

	"github.com/vk/exprgraphgo/internal/field"
)

// PinDecl declares one input or output pin of an expression type. An empty
// name is legal; such pins are addressed by their synthesized positional
// name (Input_<i> / Output_<i>).
type PinDecl struct {
	Name string
}

// Normalizer is implemented by instances whose host type applies a
// post-write normalization pass, typically clamping values into a legal
// range. It runs after every successful property write.
type Normalizer interface {
	NormalizePostEdit()
}

// Validator is implemented by instances whose host type can refuse an
// edited state outright rather than clamping it. It runs after
// normalization; a non-nil error rejects the whole write and rolls the
// transaction back.
type Validator interface {
	ValidatePostEdit() error
}

// TypeDef describes one registered expression type.
type TypeDef struct {
	// Name is the canonical type name, e.g. "ConstantScalar".
	Name string
	// DisplayName is the human-facing name. Defaults to Name when empty.
	DisplayName string
	GoType      reflect.Type
	Category    string
	Description string
	// Abstract types are never listed by discovery and cannot be
	// instantiated in a graph.
	Abstract bool
	// Parameter flags types that expose a named, externally-settable
	// parameter slot.
	Parameter bool
	Inputs    []PinDecl
	Outputs   []PinDecl
}

// Display returns the human-facing name of the type.
func (d *TypeDef) Display() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.Name
}

// Module is the interface packages of expression types implement to be
// registered with the host runtime.
type Module interface {
	Register(r *Registry)
}

// Resolver locates host objects and types by path. It is an external
// collaborator; the codec and graph services only borrow the instances it
// returns and never retain them past a call.
type Resolver interface {
	// Resolve returns the live instance at the given object path.
	Resolve(path string) (any, bool)
	// LoadType returns the type definition registered under the given name.
	LoadType(name string) (*TypeDef, bool)
}

// DirtyNotifier receives the host's structural-change notification after
// every graph rebuild. Implementations must tolerate repeated calls for the
// same owner.
type DirtyNotifier interface {
	NotifyStructuralChange(owner string)
}

// Registry holds all registered expression types and enum tables for a
// single application instance.
type Registry struct {
	types      map[string]*TypeDef
	enums      map[reflect.Type][]field.EnumMember
	promotions map[string]*Promotion
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		types: make(map[string]*TypeDef),
		enums: make(map[reflect.Type][]field.EnumMember),
	}
}

// RegisterType registers an expression type definition. Registering the
// same name twice is a programming error and panics.
func (r *Registry) RegisterType(def *TypeDef) {
	if def.Name == "" {
		panic("hostreg: type definition must carry a name")
	}
	if def.GoType == nil || def.GoType.Kind() != reflect.Struct {
		panic(fmt.Sprintf("hostreg: type %q must be backed by a Go struct", def.Name))
	}
	if _, exists := r.types[def.Name]; exists {
		panic(fmt.Sprintf("hostreg: type %q already registered", def.Name))
	}
	r.types[def.Name] = def
}

// RegisterEnum records the symbolic member table for a named integer type.
// The sample argument is any value of the enum's Go type.
func (r *Registry) RegisterEnum(sample any, members []field.EnumMember) {
	t := reflect.TypeOf(sample)
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		panic(fmt.Sprintf("hostreg: enum %s must have an integer underlying type", t))
	}
	if _, exists := r.enums[t]; exists {
		panic(fmt.Sprintf("hostreg: enum %s already registered", t))
	}
	r.enums[t] = members
}

// Type returns the definition registered under the exact given name.
func (r *Registry) Type(name string) (*TypeDef, bool) {
	def, ok := r.types[name]
	return def, ok
}

// EnumMembers returns the member table for a registered enum type.
func (r *Registry) EnumMembers(t reflect.Type) ([]field.EnumMember, bool) {
	members, ok := r.enums[t]
	return members, ok
}

// AllTypes returns every registered type definition in unspecified order.
func (r *Registry) AllTypes() []*TypeDef {
	out := make([]*TypeDef, 0, len(r.types))
	for _, def := range r.types {
		out = append(out, def)
	}
	return out
}

// EnumerateConcreteSubtypes returns every non-abstract registered type,
// optionally restricted to one category.
func (r *Registry) EnumerateConcreteSubtypes(category string) []*TypeDef {
	var out []*TypeDef
	for _, def := range r.types {
		if def.Abstract {
			continue
		}
		if category != "" && def.Category != category {
			continue
		}
		out = append(out, def)
	}
	return out
}

// NewInstance allocates a zero instance of the named type and returns a
// pointer to it. Pin sets must never be probed from such a default
// instance; pins become observable only once the instance lives in a graph.
func (r *Registry) NewInstance(name string) (any, bool) {
	def, ok := r.types[name]
	if !ok {
		return nil, false
	}
	return reflect.New(def.GoType).Interface(), true
}
