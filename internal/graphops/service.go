// Package graphops implements the graph mutation service: structural edits
// of an expression graph, pin resolution and connection rewiring, and the
// promotion of literal nodes to named parameters.
//
// Every mutation ends with a rebuild pass: the owning container is marked
// dirty, the host is notified of the structural change, and the cached
// layout view is resynced. The rebuild is never skipped, even for no-op
// edits, because external viewers only observe graph state through the
// resynced view.
package graphops

import (
	"context"

	"github.com/vk/exprgraphgo/internal/ctxlog"
	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/hostreg"
	"github.com/vk/exprgraphgo/internal/object"
)

// Service mutates expression graphs. Node property access runs through the
// object mutation service, so promotions and scripted property writes share
// one codec path.
type Service struct {
	reg      *hostreg.Registry
	objects  *object.Service
	notifier hostreg.DirtyNotifier
}

// New creates a graph mutation service. The notifier may be nil when no
// host structural-change listener is attached.
func New(reg *hostreg.Registry, objects *object.Service, notifier hostreg.DirtyNotifier) *Service {
	return &Service{reg: reg, objects: objects, notifier: notifier}
}

// Objects exposes the property access service bound to this graph service.
func (s *Service) Objects() *object.Service {
	return s.objects
}

// Rebuild marks the container dirty, notifies the host and resyncs the
// cached layout view. Idempotent; called after every mutation.
func (s *Service) Rebuild(ctx context.Context, g *graph.Graph) {
	g.MarkDirty()
	if s.notifier != nil {
		s.notifier.NotifyStructuralChange(g.Name)
	}
	g.ResyncLayout()
	ctxlog.FromContext(ctx).Debug("Graph rebuilt.", "graph", g.Name, "version", g.Layout().Version)
}
