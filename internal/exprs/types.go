// Package exprs defines the built-in expression types and related host
// objects: literal constants, their named-parameter counterparts, a few
// arithmetic expressions and the surface object whose blend mode exercises
// enum properties.
package exprs

import "github.com/vk/exprgraphgo/internal/field"

// LinearColor is the 4-component value struct shared by vector literals and
// vector parameters.
type LinearColor struct {
	R float64 `expr:"R"`
	G float64 `expr:"G"`
	B float64 `expr:"B"`
	A float64 `expr:"A"`
}

// Vector3 is a plain 3-scalar position/direction value.
type Vector3 struct {
	X float64 `expr:"X"`
	Y float64 `expr:"Y"`
	Z float64 `expr:"Z"`
}

// ConstantScalar is a literal scalar value node.
type ConstantScalar struct {
	R float64 `expr:"R" tooltip:"The scalar value emitted by this node."`
}

// Constant3Vector is a literal RGB vector node. Alpha is carried but unused.
type Constant3Vector struct {
	Constant LinearColor `expr:"Constant"`
}

// Constant4Vector is a literal RGBA vector node.
type Constant4Vector struct {
	Constant LinearColor `expr:"Constant"`
}

// TextureSample samples a texture object at given coordinates.
type TextureSample struct {
	Texture field.Ref `expr:"Texture" tooltip:"The texture asset to sample."`
	// MipValueMode is rarely touched and hidden from default listings.
	MipValueMode int `expr:"MipValueMode" edit:"advanced"`
}

// ScalarParameter is a named, externally-settable scalar slot. Its default
// value is clamped into [SliderMin, SliderMax] on write whenever the slider
// range is non-degenerate.
type ScalarParameter struct {
	ParameterName field.Name `expr:"ParameterName"`
	Group         field.Name `expr:"Group"`
	DefaultValue  float64    `expr:"DefaultValue"`
	SliderMin     float64    `expr:"SliderMin"`
	SliderMax     float64    `expr:"SliderMax"`
}

// NormalizePostEdit clamps the default into the slider range.
func (p *ScalarParameter) NormalizePostEdit() {
	if p.SliderMax <= p.SliderMin {
		return
	}
	if p.DefaultValue < p.SliderMin {
		p.DefaultValue = p.SliderMin
	}
	if p.DefaultValue > p.SliderMax {
		p.DefaultValue = p.SliderMax
	}
}

// VectorParameter is a named vector slot.
type VectorParameter struct {
	ParameterName field.Name  `expr:"ParameterName"`
	Group         field.Name  `expr:"Group"`
	DefaultValue  LinearColor `expr:"DefaultValue"`
}

// TextureParameter is a named texture slot.
type TextureParameter struct {
	ParameterName field.Name `expr:"ParameterName"`
	Group         field.Name `expr:"Group"`
	Texture       field.Ref  `expr:"Texture"`
}

// Add emits A+B. The constant fields are used when a pin is unconnected.
type Add struct {
	ConstA float64 `expr:"ConstA"`
	ConstB float64 `expr:"ConstB"`
}

// Multiply emits A*B.
type Multiply struct {
	ConstA float64 `expr:"ConstA"`
	ConstB float64 `expr:"ConstB"`
}

// LinearInterpolate blends A and B by Alpha.
type LinearInterpolate struct {
	ConstA     float64 `expr:"ConstA"`
	ConstB     float64 `expr:"ConstB"`
	ConstAlpha float64 `expr:"ConstAlpha"`
}

// WorldPosition emits the world-space position. It has no editable values;
// its type identity is its whole behavior.
type WorldPosition struct {
	OriginShift Vector3 `expr:"OriginShift" edit:"advanced"`
}
