package script

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/fsutil"
)

// Loader parses graph script files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a script loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every .hcl file at the given path (a file or a directory
// walked recursively) and merges their blocks into one script.
func (l *Loader) Load(ctx context.Context, path string) (*Script, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("script path %q: %w", path, err)
	}
	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("walking script directory %q: %w", path, err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl script files under %q", path)
	}

	script := &Script{}
	for _, file := range files {
		logger.Debug("Loading script file.", "path", file)
		if err := l.loadFile(file, script); err != nil {
			return nil, err
		}
	}
	return script, nil
}

func (l *Loader) loadFile(path string, out *Script) error {
	hclFile, diags := l.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var parsed hclScriptFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsed)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode %s: %w", path, diags)
	}

	for _, n := range parsed.Nodes {
		props, err := evalProperties(n.Properties)
		if err != nil {
			return fmt.Errorf("in node %q of %s: %w", n.Name, path, err)
		}
		out.Nodes = append(out.Nodes, NodeDecl{
			Type: n.Type, Name: n.Name, X: n.X, Y: n.Y, Properties: props,
		})
	}
	for _, c := range parsed.Connects {
		out.Connects = append(out.Connects, ConnectDecl{
			From: c.From, Output: c.Output, To: c.To, Input: c.Input,
		})
	}
	for _, sk := range parsed.Sinks {
		out.Sinks = append(out.Sinks, SinkDecl{Sink: sk.Name, From: sk.From, Output: sk.Output})
	}
	for _, p := range parsed.Promotes {
		out.Promotes = append(out.Promotes, PromoteDecl{Node: p.Node, Parameter: p.Parameter, Group: p.Group})
	}
	return nil
}

// evalProperties evaluates a properties block's attributes to wire values.
// Scripts carry literals only, so no evaluation context is supplied.
func evalProperties(block *hclProperties) (map[string]cty.Value, error) {
	if block == nil {
		return nil, nil
	}
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("reading properties: %w", diags)
	}
	out := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating property %q: %w", name, diags)
		}
		out[name] = val
	}
	return out, nil
}
