package graphops

import (
	"context"
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/operr"
)

// PromoteToParameter replaces a literal-valued node with its named-parameter
// counterpart while preserving every edge. The new node is created at the
// same position, the literal's value is copied as the parameter default,
// every input pin and sink currently sourcing from the old node is rewired
// to the new one preserving the recorded output index, and only then is the
// old node deleted.
//
// On any failure the graph is left unchanged: all checks and the value copy
// happen before the first rewire, and a half-built replacement node is torn
// down before the error returns.
func (s *Service) PromoteToParameter(ctx context.Context, g *graph.Graph, id graph.ID, paramName, group string) (*graph.Node, error) {
	logger := ctxlog.FromContext(ctx)

	node, ok := g.Node(id)
	if !ok {
		return nil, operr.New(operr.NotFound, "no node %s in graph %q", id, g.Name)
	}
	rule, ok := s.reg.Promotion(node.TypeName)
	if !ok {
		return nil, operr.New(operr.UnsupportedOperation,
			"type %q has no parameter counterpart", node.TypeName)
	}
	def, ok := s.reg.Type(rule.Target)
	if !ok {
		return nil, operr.New(operr.NotFound, "promotion target %q is not registered", rule.Target)
	}

	replacement, err := s.instantiate(def, node.X, node.Y)
	if err != nil {
		return nil, err
	}
	newID := g.Allocate(replacement)

	if err := s.copyPromotedValues(ctx, node, replacement, rule.PropertyMap); err != nil {
		// Nothing has been rewired yet; dropping the replacement restores
		// the exact pre-call state.
		_ = g.Remove(newID)
		return nil, fmt.Errorf("promoting node %s: %w", id, err)
	}
	if err := s.applyParameterIdentity(ctx, replacement, paramName, group); err != nil {
		_ = g.Remove(newID)
		return nil, fmt.Errorf("promoting node %s: %w", id, err)
	}

	// Inbound edges of the literal carry over by pin index.
	for i, p := range node.Inputs {
		if p.Conn == nil {
			continue
		}
		if np := replacement.Input(i); np != nil {
			np.Conn = &graph.Connection{Src: p.Conn.Src, SrcOutIndex: p.Conn.SrcOutIndex}
		}
	}

	// Rewire everything that sourced from the literal, preserving the
	// recorded output index, then delete it.
	for _, n := range g.Nodes() {
		for _, p := range n.Inputs {
			if p.Conn != nil && p.Conn.Src == id {
				p.Conn.Src = newID
			}
		}
	}
	for _, sink := range g.Sinks() {
		if sink.Conn != nil && sink.Conn.Src == id {
			sink.Conn.Src = newID
		}
	}
	if err := g.Remove(id); err != nil {
		return nil, fmt.Errorf("removing promoted literal %s: %w", id, err)
	}

	s.Rebuild(ctx, g)
	logger.Debug("Node promoted to parameter.",
		"graph", g.Name, "old", id.String(), "new", newID.String(), "parameter", paramName)
	return replacement, nil
}

// copyPromotedValues moves the literal's value into the parameter's default
// through the property codec, so promotion supports every field kind the
// codec does.
func (s *Service) copyPromotedValues(ctx context.Context, from, to *graph.Node, propertyMap map[string]string) error {
	for srcProp, dstProp := range propertyMap {
		val, err := s.objects.Get(ctx, from.Instance, srcProp)
		if err != nil {
			return fmt.Errorf("reading %q from %s: %w", srcProp, from.TypeName, err)
		}
		if _, err := s.objects.Set(ctx, to.Instance, dstProp, val); err != nil {
			return fmt.Errorf("writing %q on %s: %w", dstProp, to.TypeName, err)
		}
	}
	return nil
}

// applyParameterIdentity stamps the parameter name and group on both the
// node record and, where the target type declares matching fields, the
// instance itself.
func (s *Service) applyParameterIdentity(ctx context.Context, node *graph.Node, paramName, group string) error {
	node.IsParameter = true
	node.ParameterName = paramName
	node.ParameterGroup = group

	for prop, value := range map[string]string{"ParameterName": paramName, "Group": group} {
		if value == "" {
			continue
		}
		if _, err := s.objects.Set(ctx, node.Instance, prop, cty.StringVal(value)); err != nil {
			var oe *operr.Error
			if errors.As(err, &oe) && oe.Kind == operr.NotFound {
				continue // target type carries no such field
			}
			return err
		}
	}
	return nil
}
