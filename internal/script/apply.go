package script

import (
	"context"
	"fmt"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/graphops"
)

// Apply replays a script against a graph: nodes first, then connections,
// sink bindings and promotions. Declared names are script-local; the
// returned map carries the final name-to-id binding, accounting for ids
// replaced by promotion.
func Apply(ctx context.Context, s *Script, gops *graphops.Service, g *graph.Graph) (map[string]graph.ID, error) {
	logger := ctxlog.FromContext(ctx)
	ids := make(map[string]graph.ID, len(s.Nodes))

	for _, decl := range s.Nodes {
		if _, dup := ids[decl.Name]; dup {
			return nil, fmt.Errorf("duplicate node name %q", decl.Name)
		}
		node, err := gops.CreateNode(ctx, g, decl.Type, decl.X, decl.Y)
		if err != nil {
			return nil, fmt.Errorf("creating node %q: %w", decl.Name, err)
		}
		ids[decl.Name] = node.ID()

		if len(decl.Properties) > 0 {
			result := gops.Objects().SetMany(ctx, node.Instance, decl.Properties)
			for _, failure := range result.Failed {
				return nil, fmt.Errorf("setting %q on node %q: %s", failure.Name, decl.Name, failure.Message)
			}
			gops.Rebuild(ctx, g)
		}
	}

	for _, decl := range s.Connects {
		src, ok := ids[decl.From]
		if !ok {
			return nil, fmt.Errorf("connect references undeclared node %q", decl.From)
		}
		dst, ok := ids[decl.To]
		if !ok {
			return nil, fmt.Errorf("connect references undeclared node %q", decl.To)
		}
		if err := gops.Connect(ctx, g, src, decl.Output, dst, decl.Input); err != nil {
			return nil, fmt.Errorf("connecting %q to %q: %w", decl.From, decl.To, err)
		}
	}

	for _, decl := range s.Sinks {
		src, ok := ids[decl.From]
		if !ok {
			return nil, fmt.Errorf("sink %q references undeclared node %q", decl.Sink, decl.From)
		}
		if err := gops.ConnectToSink(ctx, g, src, decl.Output, decl.Sink); err != nil {
			return nil, fmt.Errorf("binding sink %q: %w", decl.Sink, err)
		}
	}

	for _, decl := range s.Promotes {
		id, ok := ids[decl.Node]
		if !ok {
			return nil, fmt.Errorf("promote references undeclared node %q", decl.Node)
		}
		node, err := gops.PromoteToParameter(ctx, g, id, decl.Parameter, decl.Group)
		if err != nil {
			return nil, fmt.Errorf("promoting %q: %w", decl.Node, err)
		}
		// The literal's id died with it; the name now addresses the
		// replacement parameter node.
		ids[decl.Node] = node.ID()
	}

	logger.Debug("Script applied.", "graph", g.Name,
		"nodes", len(s.Nodes), "connections", len(s.Connects), "sinks", len(s.Sinks), "promotions", len(s.Promotes))
	return ids, nil
}
