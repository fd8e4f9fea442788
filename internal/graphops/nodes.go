package graphops

import (
	"context"
	"sort"
	"strings"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/hostreg"
	"github.com/vk/exprgraphgo/internal/operr"
)

// canonicalTypePrefix is prepended during type resolution: callers routinely
// write "Multiply" for the registered "ExpressionMultiply".
const canonicalTypePrefix = "Expression"

// ResolveType resolves a type name by exact match, then canonical-prefix
// match, then suffix match.
func (s *Service) ResolveType(typeName string) (*hostreg.TypeDef, error) {
	if def, ok := s.reg.Type(typeName); ok {
		return def, nil
	}
	if def, ok := s.reg.Type(canonicalTypePrefix + typeName); ok {
		return def, nil
	}

	// Suffix pass: deterministic, so ambiguous names resolve the same way
	// every session.
	lower := strings.ToLower(typeName)
	var candidates []*hostreg.TypeDef
	for _, def := range s.reg.AllTypes() {
		if strings.HasSuffix(strings.ToLower(def.Name), lower) {
			candidates = append(candidates, def)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	if len(candidates) > 0 {
		return candidates[0], nil
	}
	return nil, operr.New(operr.NotFound, "unknown expression type %q", typeName)
}

// CreateNode instantiates a node of the given type at (x, y).
func (s *Service) CreateNode(ctx context.Context, g *graph.Graph, typeName string, x, y float64) (*graph.Node, error) {
	def, err := s.ResolveType(typeName)
	if err != nil {
		return nil, err
	}
	node, err := s.instantiate(def, x, y)
	if err != nil {
		return nil, err
	}
	g.Allocate(node)
	s.Rebuild(ctx, g)
	ctxlog.FromContext(ctx).Debug("Node created.", "graph", g.Name, "id", node.ID().String(), "type", def.Name)
	return node, nil
}

// instantiate builds an unallocated node with its declared pin set. Pins
// exist only on live instances; the registry's type definitions are never
// probed through a default instance.
func (s *Service) instantiate(def *hostreg.TypeDef, x, y float64) (*graph.Node, error) {
	if def.Abstract {
		return nil, operr.New(operr.UnsupportedOperation, "type %q is abstract", def.Name)
	}
	instance, ok := s.reg.NewInstance(def.Name)
	if !ok {
		return nil, operr.New(operr.NotFound, "type %q disappeared from the registry", def.Name)
	}
	node := &graph.Node{
		TypeName: def.Name,
		Instance: instance,
		X:        x,
		Y:        y,
	}
	for i, decl := range def.Inputs {
		node.Inputs = append(node.Inputs, &graph.Pin{Name: decl.Name, Index: i, Dir: graph.DirInput})
	}
	for i, decl := range def.Outputs {
		node.Outputs = append(node.Outputs, &graph.Pin{Name: decl.Name, Index: i, Dir: graph.DirOutput})
	}
	return node, nil
}

// DeleteNode removes a node. Every edge referencing the node as a source,
// from other nodes' inputs and from sinks, is cleared before the node goes
// away, so no dangling reference can survive the delete.
func (s *Service) DeleteNode(ctx context.Context, g *graph.Graph, id graph.ID) error {
	if _, ok := g.Node(id); !ok {
		return operr.New(operr.NotFound, "no node %s in graph %q", id, g.Name)
	}
	s.clearReferencesTo(g, id)
	if err := g.Remove(id); err != nil {
		return operr.Wrap(operr.NotFound, err, "removing node %s", id)
	}
	s.Rebuild(ctx, g)
	return nil
}

func (s *Service) clearReferencesTo(g *graph.Graph, id graph.ID) {
	for _, n := range g.Nodes() {
		for _, p := range n.Inputs {
			if p.Conn != nil && p.Conn.Src == id {
				p.Conn = nil
			}
		}
	}
	for _, sink := range g.Sinks() {
		if sink.Conn != nil && sink.Conn.Src == id {
			sink.Conn = nil
		}
	}
}

// MoveNode repositions a node.
func (s *Service) MoveNode(ctx context.Context, g *graph.Graph, id graph.ID, x, y float64) error {
	node, ok := g.Node(id)
	if !ok {
		return operr.New(operr.NotFound, "no node %s in graph %q", id, g.Name)
	}
	node.X = x
	node.Y = y
	s.Rebuild(ctx, g)
	return nil
}
