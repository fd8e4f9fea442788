package graphops

import (
	"context"
	"strings"

	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/operr"
)

// normalizeOutputName rewrites synthetic Output_<i> identifiers to the
// empty string. The sink primitive expects empty for "the type's single
// default output", and callers echo back the synthesized names they saw in
// listings. Input_<i> forms are left alone so they fail pin resolution
// instead of silently selecting the default output.
func normalizeOutputName(name string) string {
	if m := syntheticPinRegex.FindStringSubmatch(name); m != nil && strings.EqualFold(m[1], "output") {
		return ""
	}
	return name
}

// ConnectToSink binds a node output to one of the graph's named terminal
// slots. An empty or normalized output name selects the default output.
func (s *Service) ConnectToSink(ctx context.Context, g *graph.Graph, id graph.ID, outName, sinkName string) error {
	node, ok := g.Node(id)
	if !ok {
		return operr.New(operr.NotFound, "no node %s in graph %q", id, g.Name)
	}
	sink, ok := g.Sink(sinkName)
	if !ok {
		return operr.NotFoundWith(g.SinkNames(), "no sink %q in graph %q", sinkName, g.Name)
	}

	pin := FindPin(node, normalizeOutputName(outName), graph.DirOutput)
	if pin == nil {
		return operr.NotFoundWith(pinNames(node, graph.DirOutput),
			"no output pin %q on node %s (%s)", outName, id, node.TypeName)
	}

	sink.Conn = &graph.Connection{Src: id, SrcOutIndex: pin.Index}
	s.Rebuild(ctx, g)
	return nil
}

// DisconnectSink clears a terminal slot.
func (s *Service) DisconnectSink(ctx context.Context, g *graph.Graph, sinkName string) error {
	sink, ok := g.Sink(sinkName)
	if !ok {
		return operr.NotFoundWith(g.SinkNames(), "no sink %q in graph %q", sinkName, g.Name)
	}
	sink.Conn = nil
	s.Rebuild(ctx, g)
	return nil
}
