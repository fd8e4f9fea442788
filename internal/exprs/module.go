package exprs

import (
	"reflect"

	"github.com/vk/exprgraphgo/internal/hostreg"
)

// Module implements the hostreg.Module interface for this package.
type Module struct{}

// DefaultSinks is the fixed terminal slot set of a surface expression graph.
var DefaultSinks = []string{
	"Color",
	"Metallic",
	"Roughness",
	"Emissive",
	"Opacity",
	"Normal",
}

// Register registers every built-in expression type, the surface object,
// the blend mode enum and the literal-to-parameter promotion table.
func (m *Module) Register(r *hostreg.Registry) {
	r.RegisterEnum(BlendMode(0), BlendModeMembers)

	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionConstantScalar",
		DisplayName: "Constant",
		GoType:      reflect.TypeOf(ConstantScalar{}),
		Category:    "Constants",
		Description: "A literal scalar value.",
		Outputs:     []hostreg.PinDecl{{}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionConstant3Vector",
		DisplayName: "Constant3Vector",
		GoType:      reflect.TypeOf(Constant3Vector{}),
		Category:    "Constants",
		Description: "A literal RGB vector.",
		Outputs:     []hostreg.PinDecl{{}, {Name: "R"}, {Name: "G"}, {Name: "B"}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionConstant4Vector",
		DisplayName: "Constant4Vector",
		GoType:      reflect.TypeOf(Constant4Vector{}),
		Category:    "Constants",
		Description: "A literal RGBA vector.",
		Outputs:     []hostreg.PinDecl{{}, {Name: "R"}, {Name: "G"}, {Name: "B"}, {Name: "A"}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionTextureSample",
		DisplayName: "Texture Sample",
		GoType:      reflect.TypeOf(TextureSample{}),
		Category:    "Texture",
		Description: "Samples a texture asset.",
		Inputs:      []hostreg.PinDecl{{Name: "UVs"}},
		Outputs:     []hostreg.PinDecl{{Name: "RGB"}, {Name: "R"}, {Name: "G"}, {Name: "B"}, {Name: "A"}},
	})

	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionScalarParameter",
		DisplayName: "Scalar Parameter",
		GoType:      reflect.TypeOf(ScalarParameter{}),
		Category:    "Parameters",
		Description: "A named, externally-settable scalar.",
		Parameter:   true,
		Outputs:     []hostreg.PinDecl{{}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionVectorParameter",
		DisplayName: "Vector Parameter",
		GoType:      reflect.TypeOf(VectorParameter{}),
		Category:    "Parameters",
		Description: "A named, externally-settable vector.",
		Parameter:   true,
		Outputs:     []hostreg.PinDecl{{}, {Name: "R"}, {Name: "G"}, {Name: "B"}, {Name: "A"}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionTextureParameter",
		DisplayName: "Texture Parameter",
		GoType:      reflect.TypeOf(TextureParameter{}),
		Category:    "Parameters",
		Description: "A named, externally-settable texture.",
		Parameter:   true,
		Inputs:      []hostreg.PinDecl{{Name: "UVs"}},
		Outputs:     []hostreg.PinDecl{{Name: "RGB"}, {Name: "R"}, {Name: "G"}, {Name: "B"}, {Name: "A"}},
	})

	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionAdd",
		DisplayName: "Add",
		GoType:      reflect.TypeOf(Add{}),
		Category:    "Math",
		Description: "Emits A + B.",
		Inputs:      []hostreg.PinDecl{{Name: "A"}, {Name: "B"}},
		Outputs:     []hostreg.PinDecl{{}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionMultiply",
		DisplayName: "Multiply",
		GoType:      reflect.TypeOf(Multiply{}),
		Category:    "Math",
		Description: "Emits A * B.",
		Inputs:      []hostreg.PinDecl{{Name: "A"}, {Name: "B"}},
		Outputs:     []hostreg.PinDecl{{}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionLinearInterpolate",
		DisplayName: "Lerp",
		GoType:      reflect.TypeOf(LinearInterpolate{}),
		Category:    "Math",
		Description: "Blends A and B by Alpha.",
		Inputs:      []hostreg.PinDecl{{Name: "A"}, {Name: "B"}, {Name: "Alpha"}},
		Outputs:     []hostreg.PinDecl{{}},
	})
	r.RegisterType(&hostreg.TypeDef{
		Name:        "ExpressionWorldPosition",
		DisplayName: "World Position",
		GoType:      reflect.TypeOf(WorldPosition{}),
		Category:    "Coordinates",
		Description: "Emits the world-space position.",
		Outputs:     []hostreg.PinDecl{{}},
	})

	r.RegisterType(&hostreg.TypeDef{
		Name:        "Surface",
		GoType:      reflect.TypeOf(Surface{}),
		Category:    "Surface",
		Description: "Shading settings owning an expression graph.",
		Abstract:    true, // not instantiable as a graph node
	})

	r.RegisterPromotion("ExpressionConstantScalar", &hostreg.Promotion{
		Target:      "ExpressionScalarParameter",
		PropertyMap: map[string]string{"R": "DefaultValue"},
	})
	r.RegisterPromotion("ExpressionConstant3Vector", &hostreg.Promotion{
		Target:      "ExpressionVectorParameter",
		PropertyMap: map[string]string{"Constant": "DefaultValue"},
	})
	r.RegisterPromotion("ExpressionConstant4Vector", &hostreg.Promotion{
		Target:      "ExpressionVectorParameter",
		PropertyMap: map[string]string{"Constant": "DefaultValue"},
	})
	r.RegisterPromotion("ExpressionTextureSample", &hostreg.Promotion{
		Target:      "ExpressionTextureParameter",
		PropertyMap: map[string]string{"Texture": "Texture"},
	})
}
