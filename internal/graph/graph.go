// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Graph container: an arena of nodes plus the fixed
// set of named terminal sinks.
//
// Why an arena?
//
// Node ids must be stable for the lifetime of one editing session but must
// never outlive it: they are session-local handles, not persisted names.
// An arena with a per-slot generation counter gives both properties: a slot
// index addresses the node in O(1), and bumping the generation on reload
// invalidates every id a caller may still be holding without reusing it for
// an unrelated node.

package graph

import "fmt"

// Sink is one named graph-level terminal slot. It holds at most one edge.
type Sink struct {
	Name string
	Conn *Connection
}

type slot struct {
	node *Node
	gen  uint32
}

// Graph owns the node arena, the sink table and the cached layout view.
// It enforces no edge semantics itself; structural rules live in the
// mutation service.
type Graph struct {
	Name string

	slots []slot
	free  []int

	sinkNames []string
	sinks     map[string]*Sink

	dirty   bool
	layout  LayoutView
	version uint64
}

// New creates an empty graph with the given fixed sink set.
func New(name string, sinkNames []string) *Graph {
	g := &Graph{
		Name:      name,
		sinkNames: append([]string(nil), sinkNames...),
		sinks:     make(map[string]*Sink, len(sinkNames)),
	}
	for _, sn := range sinkNames {
		g.sinks[sn] = &Sink{Name: sn}
	}
	return g
}

// Allocate places a node into the arena and stamps its id. The node's pins
// must already carry their indices; their Owner ids are stamped here.
func (g *Graph) Allocate(n *Node) ID {
	var index int
	if len(g.free) > 0 {
		index = g.free[len(g.free)-1]
		g.free = g.free[:len(g.free)-1]
	} else {
		g.slots = append(g.slots, slot{})
		index = len(g.slots) - 1
	}
	g.slots[index].node = n
	n.id = ID{Index: index, Gen: g.slots[index].gen}
	for _, p := range n.Inputs {
		p.Owner = n.id
	}
	for _, p := range n.Outputs {
		p.Owner = n.id
	}
	return n.id
}

// Remove deletes a node from the arena, bumping the slot generation so any
// id still held for it goes stale instead of aliasing a future node.
func (g *Graph) Remove(id ID) error {
	if _, ok := g.Node(id); !ok {
		return fmt.Errorf("no node %s in graph %q", id, g.Name)
	}
	g.slots[id.Index].node = nil
	g.slots[id.Index].gen++
	g.free = append(g.free, id.Index)
	return nil
}

// Node resolves an id to its live node. Stale generations miss.
func (g *Graph) Node(id ID) (*Node, bool) {
	if id.Index < 0 || id.Index >= len(g.slots) {
		return nil, false
	}
	s := g.slots[id.Index]
	if s.node == nil || s.gen != id.Gen {
		return nil, false
	}
	return s.node, true
}

// Nodes returns every live node in arena order.
func (g *Graph) Nodes() []*Node {
	var out []*Node
	for _, s := range g.slots {
		if s.node != nil {
			out = append(out, s.node)
		}
	}
	return out
}

// Sink returns the named terminal slot.
func (g *Graph) Sink(name string) (*Sink, bool) {
	s, ok := g.sinks[name]
	return s, ok
}

// SinkNames returns the fixed sink set in declaration order.
func (g *Graph) SinkNames() []string {
	return g.sinkNames
}

// Sinks returns the terminal slots in declaration order.
func (g *Graph) Sinks() []*Sink {
	out := make([]*Sink, len(g.sinkNames))
	for i, sn := range g.sinkNames {
		out[i] = g.sinks[sn]
	}
	return out
}

// MarkDirty flags the owning container as having unsaved structural or
// property changes.
func (g *Graph) MarkDirty() {
	g.dirty = true
}

// IsDirty reports the container dirty flag.
func (g *Graph) IsDirty() bool {
	return g.dirty
}

// InvalidateIDs bumps the generation of every live slot, reassigning node
// ids in place. Session-local ids held by callers become stale, which is
// the reload contract: ids never survive a reload.
func (g *Graph) InvalidateIDs() {
	remap := make(map[ID]ID)
	for i := range g.slots {
		if g.slots[i].node == nil {
			continue
		}
		old := g.slots[i].node.id
		g.slots[i].gen++
		next := ID{Index: i, Gen: g.slots[i].gen}
		g.slots[i].node.id = next
		remap[old] = next
	}
	for _, s := range g.slots {
		if s.node == nil {
			continue
		}
		for _, p := range s.node.Inputs {
			p.Owner = s.node.id
			if p.Conn != nil {
				if next, ok := remap[p.Conn.Src]; ok {
					p.Conn.Src = next
				}
			}
		}
		for _, p := range s.node.Outputs {
			p.Owner = s.node.id
		}
	}
	for _, sink := range g.sinks {
		if sink.Conn != nil {
			if next, ok := remap[sink.Conn.Src]; ok {
				sink.Conn.Src = next
			}
		}
	}
}
