// Package ops is the surface exposed to the command router: every operation
// takes and returns only primitives, slices and string-keyed maps, never raw
// handles. Objects are addressed by resolver path, nodes by their
// session-local string id.
package ops

import (
	"context"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/exprgraphgo/internal/catalog"
	"github.com/vk/exprgraphgo/internal/codec"
	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/graphops"
	"github.com/vk/exprgraphgo/internal/hostreg"
	"github.com/vk/exprgraphgo/internal/operr"
)

// Service binds one editing session: a host registry, a resolver, the
// mutation services and the session's graph.
type Service struct {
	reg      *hostreg.Registry
	gops     *graphops.Service
	resolver hostreg.Resolver
	graph    *graph.Graph
}

// New creates the router-facing service for one session.
func New(reg *hostreg.Registry, gops *graphops.Service, resolver hostreg.Resolver, g *graph.Graph) *Service {
	return &Service{reg: reg, gops: gops, resolver: resolver, graph: g}
}

// Graph exposes the session graph, for embedders that render it.
func (s *Service) Graph() *graph.Graph {
	return s.graph
}

// resolveTarget turns a router-provided address into a borrowed instance:
// a parseable node id addresses the session graph, anything else goes to
// the resolver.
func (s *Service) resolveTarget(target string) (any, error) {
	if id, err := graph.ParseID(target); err == nil {
		node, ok := s.graph.Node(id)
		if !ok {
			return nil, operr.New(operr.NotFound, "no node %s in graph %q", id, s.graph.Name)
		}
		return node.Instance, nil
	}
	if s.resolver != nil {
		if instance, ok := s.resolver.Resolve(target); ok {
			return instance, nil
		}
	}
	return nil, operr.New(operr.NotFound, "nothing resolvable at %q", target)
}

// GetProperty reads one property as a native value tree.
func (s *Service) GetProperty(ctx context.Context, target, name string) (any, error) {
	instance, err := s.resolveTarget(target)
	if err != nil {
		return nil, err
	}
	val, err := s.gops.Objects().Get(ctx, instance, name)
	if err != nil {
		return nil, err
	}
	return nativeFromCty(val)
}

// SetProperty writes one property and returns the value actually stored,
// which may be a clamped form of the input.
func (s *Service) SetProperty(ctx context.Context, target, name string, value any) (any, error) {
	instance, err := s.resolveTarget(target)
	if err != nil {
		return nil, err
	}
	wire, err := ctyFromNative(value)
	if err != nil {
		return nil, operr.Wrap(operr.TypeMismatch, err, "value for %q", name)
	}
	actual, err := s.gops.Objects().Set(ctx, instance, name, wire)
	if err != nil {
		return nil, err
	}
	return nativeFromCty(actual)
}

// SetProperties writes a batch of properties with per-field isolation.
func (s *Service) SetProperties(ctx context.Context, target string, values map[string]any) (codec.BatchResult, error) {
	instance, err := s.resolveTarget(target)
	if err != nil {
		return codec.BatchResult{}, err
	}
	wireValues, failures := convertBatch(values)
	result := s.gops.Objects().SetMany(ctx, instance, wireValues)
	result.Failed = append(result.Failed, failures...)
	return result, nil
}

// convertBatch converts native batch values, isolating conversion failures
// per key the same way decode failures are isolated.
func convertBatch(values map[string]any) (map[string]cty.Value, []codec.FieldFailure) {
	wire := make(map[string]cty.Value, len(values))
	var failures []codec.FieldFailure
	for name, v := range values {
		cv, err := ctyFromNative(v)
		if err != nil {
			failures = append(failures, codec.FieldFailure{Name: name, Message: err.Error()})
			continue
		}
		wire[name] = cv
	}
	return wire, failures
}

// FieldInfo is the router-facing description of one listed field.
type FieldInfo struct {
	Name     string
	Kind     string
	Editable bool
	Advanced bool
	Category string
	Tooltip  string
}

// ListFields enumerates the fields of a target. Advanced fields are hidden
// unless requested.
func (s *Service) ListFields(ctx context.Context, target string, includeAdvanced bool) ([]FieldInfo, error) {
	instance, err := s.resolveTarget(target)
	if err != nil {
		return nil, err
	}
	fields, err := s.reg.FieldsOfInstance(instance)
	if err != nil {
		return nil, err
	}
	var out []FieldInfo
	for i := range fields {
		f := &fields[i]
		if f.Advanced && !includeAdvanced {
			continue
		}
		out = append(out, FieldInfo{
			Name:     f.Name,
			Kind:     f.Kind.String(),
			Editable: !f.ReadOnly,
			Advanced: f.Advanced,
			Category: f.Category,
			Tooltip:  f.Tooltip,
		})
	}
	return out, nil
}

// DiscoverExpressionTypes lists concrete expression types matching the
// filter, deterministically ordered and capped.
func (s *Service) DiscoverExpressionTypes(ctx context.Context, category, search string, limit int) []catalog.Descriptor {
	return catalog.DiscoverTypes(ctx, s.reg, category, search, limit)
}
