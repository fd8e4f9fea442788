package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/codec"
	"github.com/vk/exprgraphgo/internal/exprs"
	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/graphops"
	"github.com/vk/exprgraphgo/internal/hostreg"
	"github.com/vk/exprgraphgo/internal/object"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newServices(t *testing.T) (*graphops.Service, *graph.Graph) {
	t.Helper()
	reg := hostreg.New()
	(&exprs.Module{}).Register(reg)
	svc := graphops.New(reg, object.New(codec.New(reg), nil), nil)
	return svc, graph.New("test", exprs.DefaultSinks)
}

const sampleScript = `
node "ConstantScalar" "brightness" {
  x = 0
  y = 0
  properties {
    R = 0.8
  }
}

node "TextureSample" "wood" {
  x = 0
  y = 200
  properties {
    Texture = "Texture2D'/Game/T_Wood'"
  }
}

node "Multiply" "lit" {
  x = 250
  y = 100
}

connect {
  from  = "wood"
  to    = "lit"
  input = "A"
}

connect {
  from  = "brightness"
  to    = "lit"
  input = "B"
}

sink "Color" {
  from = "lit"
}

promote {
  node      = "brightness"
  parameter = "Brightness"
  group     = "Lighting"
}
`

func TestLoadSingleFile(t *testing.T) {
	path := writeScript(t, "surface.hcl", sampleScript)

	script, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, script.Nodes, 3)
	assert.Equal(t, "ConstantScalar", script.Nodes[0].Type)
	assert.Equal(t, "brightness", script.Nodes[0].Name)
	require.Contains(t, script.Nodes[0].Properties, "R")

	require.Len(t, script.Connects, 2)
	assert.Equal(t, ConnectDecl{From: "wood", To: "lit", Input: "A"}, script.Connects[0])

	require.Len(t, script.Sinks, 1)
	assert.Equal(t, SinkDecl{Sink: "Color", From: "lit"}, script.Sinks[0])

	require.Len(t, script.Promotes, 1)
	assert.Equal(t, PromoteDecl{Node: "brightness", Parameter: "Brightness", Group: "Lighting"}, script.Promotes[0])
}

func TestLoadDirectoryMergesFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"),
		[]byte(`node "Add" "sum" {}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"),
		[]byte(`sink "Color" { from = "sum" }`), 0644))

	script, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, script.Nodes, 1)
	assert.Len(t, script.Sinks, 1)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "syntax error", content: `node "Add" {`},
		{name: "missing required attribute", content: `connect { from = "a" }`},
		{name: "unknown block", content: `teleport "x" {}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScript(t, "bad.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			assert.Error(t, err)
		})
	}

	t.Run("missing path", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
		assert.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	path := writeScript(t, "surface.hcl", sampleScript)
	script, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	svc, g := newServices(t)
	ids, err := Apply(context.Background(), script, svc, g)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Len(t, g.Nodes(), 3)

	// The promotion replaced the literal; the binding follows the new node.
	promoted, ok := g.Node(ids["brightness"])
	require.True(t, ok)
	assert.Equal(t, "ExpressionScalarParameter", promoted.TypeName)
	param := promoted.Instance.(*exprs.ScalarParameter)
	assert.Equal(t, 0.8, param.DefaultValue)
	assert.Equal(t, "Brightness", string(param.ParameterName))

	lit, ok := g.Node(ids["lit"])
	require.True(t, ok)
	require.NotNil(t, lit.Inputs[1].Conn)
	assert.Equal(t, promoted.ID(), lit.Inputs[1].Conn.Src)

	sink, _ := g.Sink("Color")
	require.NotNil(t, sink.Conn)
	assert.Equal(t, lit.ID(), sink.Conn.Src)

	wood, _ := g.Node(ids["wood"])
	sample := wood.Instance.(*exprs.TextureSample)
	assert.Equal(t, "Texture2D'/Game/T_Wood'", string(sample.Texture))
}

func TestApplyErrors(t *testing.T) {
	testCases := []struct {
		name   string
		script *Script
		errSub string
	}{
		{
			name: "duplicate node name",
			script: &Script{Nodes: []NodeDecl{
				{Type: "Add", Name: "sum"},
				{Type: "Multiply", Name: "sum"},
			}},
			errSub: "duplicate node name",
		},
		{
			name: "unknown type",
			script: &Script{Nodes: []NodeDecl{
				{Type: "Blorp", Name: "x"},
			}},
			errSub: `creating node "x"`,
		},
		{
			name: "connect to undeclared node",
			script: &Script{
				Nodes:    []NodeDecl{{Type: "Add", Name: "sum"}},
				Connects: []ConnectDecl{{From: "sum", To: "ghost", Input: "A"}},
			},
			errSub: "undeclared node",
		},
		{
			name: "sink from undeclared node",
			script: &Script{
				Sinks: []SinkDecl{{Sink: "Color", From: "ghost"}},
			},
			errSub: "undeclared node",
		},
		{
			name: "promote undeclared node",
			script: &Script{
				Promotes: []PromoteDecl{{Node: "ghost", Parameter: "P"}},
			},
			errSub: "undeclared node",
		},
		{
			name: "bad property",
			script: &Script{Nodes: []NodeDecl{{
				Type: "ConstantScalar", Name: "c",
				Properties: map[string]cty.Value{"NoSuchField": cty.True},
			}}},
			errSub: "setting",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, g := newServices(t)
			_, err := Apply(context.Background(), tc.script, svc, g)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errSub)
		})
	}
}
