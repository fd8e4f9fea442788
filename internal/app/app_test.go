package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/exprgraphgo/internal/script"
)

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{ScriptPath: "graph.hcl"})
	require.NoError(t, err)
	assert.Equal(t, "session", cfg.GraphName)

	cfg, err = NewConfig(Config{ScriptPath: "graph.hcl", GraphName: "wood"})
	require.NoError(t, err)
	assert.Equal(t, "wood", cfg.GraphName)
}

func TestRunAppliesScriptAndReports(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "surface.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
node "ConstantScalar" "brightness" {
  properties {
    R = 0.8
  }
}

node "Multiply" "lit" {
  x = 250
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
`), 0644))

	cfg, err := NewConfig(Config{ScriptPath: path, LogLevel: "error"})
	require.NoError(t, err)

	var out bytes.Buffer
	a := NewApp(&out, cfg, script.NewLoader())
	require.NoError(t, a.Run(context.Background()))

	report := out.String()
	assert.Contains(t, report, `graph "session": 2 nodes`)
	assert.Contains(t, report, "ExpressionScalarParameter")
	assert.Contains(t, report, `parameter="Brightness" group="Lighting"`)
	assert.Contains(t, report, "edge: brightness")
	assert.Contains(t, report, "sink: Color <- lit")
}

func TestRunReportsScriptErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`node "Blorp" "x" {}`), 0644))

	cfg, err := NewConfig(Config{ScriptPath: path, LogLevel: "error"})
	require.NoError(t, err)

	var out bytes.Buffer
	err = NewApp(&out, cfg, script.NewLoader()).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `creating node "x"`)
}

func TestNewSession(t *testing.T) {
	svc, gops, g := NewSession("test", nil)
	require.NotNil(t, svc)
	require.NotNil(t, gops)
	assert.Equal(t, "test", g.Name)
	assert.Contains(t, g.SinkNames(), "Color")

	node, err := svc.CreateNode(context.Background(), "Add", 0, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, node.ID)
}
