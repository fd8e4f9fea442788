// Package app assembles one editing session: host registry, codec, mutation
// services and the session graph, and runs graph scripts against it.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/vk/exprgraphgo/internal/codec"
	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/exprs"
	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/graphops"
	"github.com/vk/exprgraphgo/internal/hostreg"
	"github.com/vk/exprgraphgo/internal/object"
	"github.com/vk/exprgraphgo/internal/ops"
	"github.com/vk/exprgraphgo/internal/script"
)

// App is one configured application instance.
type App struct {
	out    io.Writer
	cfg    *Config
	loader *script.Loader
}

// NewApp creates an application instance writing its report to out.
func NewApp(out io.Writer, cfg *Config, loader *script.Loader) *App {
	return &App{out: out, cfg: cfg, loader: loader}
}

// NewSession wires a complete editing session over a fresh graph with the
// default sink set. Exposed for embedders and integration tests.
func NewSession(graphName string, resolver hostreg.Resolver) (*ops.Service, *graphops.Service, *graph.Graph) {
	reg := hostreg.New()
	(&exprs.Module{}).Register(reg)

	c := codec.New(reg)
	objects := object.New(c, nil)
	g := graph.New(graphName, exprs.DefaultSinks)
	gops := graphops.New(reg, objects, nil)
	return ops.New(reg, gops, resolver, g), gops, g
}

// Run loads the configured script, applies it to a fresh session graph and
// prints the resulting nodes, connections and sink bindings.
func (a *App) Run(ctx context.Context) error {
	logger := newLogger(a.cfg.LogLevel, a.cfg.LogFormat, os.Stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	svc, gops, g := NewSession(a.cfg.GraphName, nil)

	loaded, err := a.loader.Load(ctx, a.cfg.ScriptPath)
	if err != nil {
		return err
	}
	names, err := script.Apply(ctx, loaded, gops, g)
	if err != nil {
		return err
	}

	a.report(ctx, svc, names)
	return nil
}

func (a *App) report(ctx context.Context, svc *ops.Service, names map[string]graph.ID) {
	byID := make(map[string]string, len(names))
	for name, id := range names {
		byID[id.String()] = name
	}
	label := func(id string) string {
		if name, ok := byID[id]; ok {
			return fmt.Sprintf("%s (%s)", name, id)
		}
		return id
	}

	nodes := svc.ListNodes(ctx)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	fmt.Fprintf(a.out, "graph %q: %d nodes\n", a.cfg.GraphName, len(nodes))
	for _, n := range nodes {
		suffix := ""
		if n.IsParameter {
			suffix = fmt.Sprintf("  parameter=%q group=%q", n.ParameterName, n.ParameterGroup)
		}
		fmt.Fprintf(a.out, "  %-24s %s at (%g, %g)%s\n", label(n.ID), n.TypeName, n.X, n.Y, suffix)
	}

	for _, c := range svc.ListConnections(ctx) {
		fmt.Fprintf(a.out, "  edge: %s[%d] -> %s.%s\n", label(c.SrcID), c.SrcOutIndex, label(c.DstID), c.DstInput)
	}
	for _, sb := range svc.Graph().Layout().Sinks {
		fmt.Fprintf(a.out, "  sink: %s <- %s[%d]\n", sb.Name, label(sb.Src.String()), sb.SrcOutIndex)
	}
}
