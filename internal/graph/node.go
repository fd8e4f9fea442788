// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

import "fmt"

// Direction distinguishes input pins from output pins.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
)

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d == DirInput {
		return "input"
	}
	return "output"
}

// Connection is the edge record held by an input pin or a sink: the source
// node and the index of its output pin. Edges are not first-class entities;
// writing this field creates the edge and clearing it destroys it.
type Connection struct {
	Src         ID
	SrcOutIndex int
}

// Pin is one input or output socket of a node. Each pin belongs to exactly
// one node, and an input pin holds at most one connection.
type Pin struct {
	Owner ID
	// Name is the declared pin name. It may be empty, in which case the pin
	// is addressed by its synthesized positional name.
	Name  string
	Index int
	Dir   Direction
	// Conn holds the inbound edge. Always nil on output pins.
	Conn *Connection
}

// DisplayName returns the declared name, or the synthesized positional
// name (Input_<i> / Output_<i>) when none was declared.
func (p *Pin) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Dir == DirInput {
		return fmt.Sprintf("Input_%d", p.Index)
	}
	return fmt.Sprintf("Output_%d", p.Index)
}

// Node is a single vertex of an expression graph. Nodes are created and
// destroyed only through the graph mutation service.
type Node struct {
	id ID
	// TypeName is the canonical host type tag.
	TypeName string
	// Instance is the live host object backing the node's properties. It is
	// owned by the graph; callers only ever borrow it.
	Instance any

	X float64
	Y float64

	// IsParameter marks nodes that expose a named parameter slot.
	IsParameter    bool
	ParameterName  string
	ParameterGroup string

	Inputs  []*Pin
	Outputs []*Pin
}

// ID returns the node's session-local identifier.
func (n *Node) ID() ID {
	return n.id
}

// Input returns the input pin at the given index, or nil when out of range.
func (n *Node) Input(i int) *Pin {
	if i < 0 || i >= len(n.Inputs) {
		return nil
	}
	return n.Inputs[i]
}

// Output returns the output pin at the given index, or nil when out of range.
func (n *Node) Output(i int) *Pin {
	if i < 0 || i >= len(n.Outputs) {
		return nil
	}
	return n.Outputs[i]
}
