package exprs

import "github.com/vk/exprgraphgo/internal/field"

// BlendMode selects how a surface composites against what is behind it.
type BlendMode int32

const (
	BlendOpaque BlendMode = iota
	BlendMasked
	BlendTranslucent
	BlendAdditive
	BlendModulate
)

// BlendModeMembers is the symbolic member table registered for BlendMode.
// The shared BLEND_ prefix is what the codec's prefix-stripped enum
// fallback resolves against.
var BlendModeMembers = []field.EnumMember{
	{Name: "BLEND_Opaque", Value: int64(BlendOpaque)},
	{Name: "BLEND_Masked", Value: int64(BlendMasked)},
	{Name: "BLEND_Translucent", Value: int64(BlendTranslucent)},
	{Name: "BLEND_Additive", Value: int64(BlendAdditive)},
	{Name: "BLEND_Modulate", Value: int64(BlendModulate)},
}

// Surface is the host object owning a graph's shading settings. It is not
// an expression node; it exists to exercise enum, bool and clamped
// properties through the object mutation service.
type Surface struct {
	BlendMode BlendMode `expr:"BlendMode" category:"Shading"`
	TwoSided  bool      `expr:"TwoSided" category:"Shading"`
	// OpacityMaskClipValue is clamped to [0,1] by normalization.
	OpacityMaskClipValue float64 `expr:"OpacityMaskClipValue" category:"Shading"`
	// PhysicalSurfaceId is assigned by the host and never editable.
	PhysicalSurfaceId int       `expr:"PhysicalSurfaceId" edit:"readonly"`
	BaseTexture       field.Ref `expr:"BaseTexture"`
	// UsedUVChannels is a free-form array property.
	UsedUVChannels []int `expr:"UsedUVChannels" edit:"advanced"`
	// CustomScalars is keyed by user-chosen names.
	CustomScalars map[string]float64 `expr:"CustomScalars" edit:"advanced"`
	Origin        Vector3            `expr:"Origin"`
}

// NormalizePostEdit clamps the opacity mask clip value into [0,1].
func (s *Surface) NormalizePostEdit() {
	if s.OpacityMaskClipValue < 0 {
		s.OpacityMaskClipValue = 0
	}
	if s.OpacityMaskClipValue > 1 {
		s.OpacityMaskClipValue = 1
	}
}
