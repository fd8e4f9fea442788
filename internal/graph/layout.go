// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

// LayoutNode is the viewer-facing summary of one node.
type LayoutNode struct {
	ID       ID
	TypeName string
	X, Y     float64
}

// Edge is the viewer-facing record of one connection, derived by scanning
// input pins.
type Edge struct {
	Src         ID
	SrcOutIndex int
	Dst         ID
	DstInput    string
}

// SinkBinding is the viewer-facing record of one bound sink.
type SinkBinding struct {
	Name        string
	Src         ID
	SrcOutIndex int
}

// LayoutView is the cached snapshot external viewers observe. It is only
// ever replaced by ResyncLayout; viewers never see intermediate edit states.
type LayoutView struct {
	Nodes   []LayoutNode
	Edges   []Edge
	Sinks   []SinkBinding
	Version uint64
}

// Layout returns the current cached view.
func (g *Graph) Layout() LayoutView {
	return g.layout
}

// ResyncLayout recomputes the cached view from the live graph. It is
// idempotent in content; the version increments so viewers can cheaply
// detect that a resync happened even for a no-op edit.
func (g *Graph) ResyncLayout() {
	g.version++
	view := LayoutView{Version: g.version}
	for _, n := range g.Nodes() {
		view.Nodes = append(view.Nodes, LayoutNode{ID: n.id, TypeName: n.TypeName, X: n.X, Y: n.Y})
		for _, p := range n.Inputs {
			if p.Conn == nil {
				continue
			}
			view.Edges = append(view.Edges, Edge{
				Src:         p.Conn.Src,
				SrcOutIndex: p.Conn.SrcOutIndex,
				Dst:         n.id,
				DstInput:    p.DisplayName(),
			})
		}
	}
	for _, sn := range g.sinkNames {
		sink := g.sinks[sn]
		if sink.Conn == nil {
			continue
		}
		view.Sinks = append(view.Sinks, SinkBinding{
			Name:        sn,
			Src:         sink.Conn.Src,
			SrcOutIndex: sink.Conn.SrcOutIndex,
		})
	}
	g.layout = view
}
