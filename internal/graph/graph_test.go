// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDString(t *testing.T) {
	assert.Equal(t, "n3g1", ID{Index: 3, Gen: 1}.String())
	assert.Equal(t, "n0g0", ID{}.String())
	assert.Equal(t, "", NilID.String())
}

func TestParseID(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  ID
		expectErr bool
	}{
		{name: "simple", input: "n0g0", expected: ID{Index: 0, Gen: 0}},
		{name: "multi digit", input: "n12g34", expected: ID{Index: 12, Gen: 34}},
		{name: "empty", input: "", expectErr: true},
		{name: "missing generation", input: "n3", expectErr: true},
		{name: "trailing garbage", input: "n3g1x", expectErr: true},
		{name: "not an id", input: "Brightness", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ParseID(tc.input)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func newTestNode(typeName string) *Node {
	n := &Node{TypeName: typeName}
	n.Inputs = []*Pin{{Name: "A", Index: 0, Dir: DirInput}, {Name: "B", Index: 1, Dir: DirInput}}
	n.Outputs = []*Pin{{Index: 0, Dir: DirOutput}}
	return n
}

func TestArenaAllocateAndRemove(t *testing.T) {
	g := New("test", []string{"Color"})

	a := g.Allocate(newTestNode("Add"))
	b := g.Allocate(newTestNode("Multiply"))
	assert.NotEqual(t, a, b)

	node, ok := g.Node(a)
	require.True(t, ok)
	assert.Equal(t, "Add", node.TypeName)
	assert.Equal(t, a, node.Inputs[0].Owner, "allocation stamps pin owners")

	require.NoError(t, g.Remove(a))
	_, ok = g.Node(a)
	assert.False(t, ok)
	assert.Error(t, g.Remove(a), "double remove must fail")

	// The freed slot is reused with a bumped generation, so the old id
	// cannot alias the new occupant.
	c := g.Allocate(newTestNode("Add"))
	assert.Equal(t, a.Index, c.Index)
	assert.NotEqual(t, a.Gen, c.Gen)
	_, ok = g.Node(a)
	assert.False(t, ok, "stale id must keep missing after slot reuse")
	_, ok = g.Node(c)
	assert.True(t, ok)
}

func TestNodeLookupOutOfRange(t *testing.T) {
	g := New("test", nil)
	_, ok := g.Node(ID{Index: 5})
	assert.False(t, ok)
	_, ok = g.Node(NilID)
	assert.False(t, ok)
}

func TestInvalidateIDs(t *testing.T) {
	g := New("test", []string{"Color"})
	src := g.Allocate(newTestNode("ConstantScalar"))
	dst := g.Allocate(newTestNode("Add"))

	dstNode, _ := g.Node(dst)
	dstNode.Inputs[0].Conn = &Connection{Src: src, SrcOutIndex: 0}
	sink, _ := g.Sink("Color")
	sink.Conn = &Connection{Src: src, SrcOutIndex: 0}

	g.InvalidateIDs()

	_, ok := g.Node(src)
	assert.False(t, ok, "pre-reload ids must be stale")
	_, ok = g.Node(dst)
	assert.False(t, ok)

	// Connections were remapped to the new ids, so the structure survives
	// even though every handle went stale.
	require.Len(t, g.Nodes(), 2)
	var newSrc, newDst *Node
	for _, n := range g.Nodes() {
		switch n.TypeName {
		case "ConstantScalar":
			newSrc = n
		case "Add":
			newDst = n
		}
	}
	require.NotNil(t, newSrc)
	require.NotNil(t, newDst)
	assert.Equal(t, newSrc.ID(), newDst.Inputs[0].Conn.Src)
	assert.Equal(t, newSrc.ID(), sink.Conn.Src)
	assert.Equal(t, newDst.ID(), newDst.Inputs[0].Owner)
}

func TestPinDisplayName(t *testing.T) {
	named := &Pin{Name: "UVs", Index: 2, Dir: DirInput}
	assert.Equal(t, "UVs", named.DisplayName())

	unnamedIn := &Pin{Index: 1, Dir: DirInput}
	assert.Equal(t, "Input_1", unnamedIn.DisplayName())

	unnamedOut := &Pin{Index: 0, Dir: DirOutput}
	assert.Equal(t, "Output_0", unnamedOut.DisplayName())
}

func TestResyncLayout(t *testing.T) {
	g := New("test", []string{"Color", "Roughness"})
	src := g.Allocate(newTestNode("ConstantScalar"))
	dst := g.Allocate(newTestNode("Add"))

	dstNode, _ := g.Node(dst)
	dstNode.Inputs[1].Conn = &Connection{Src: src, SrcOutIndex: 0}
	sink, _ := g.Sink("Roughness")
	sink.Conn = &Connection{Src: src, SrcOutIndex: 0}

	assert.Empty(t, g.Layout().Nodes, "view is only populated by resync")

	g.ResyncLayout()
	view := g.Layout()
	assert.Len(t, view.Nodes, 2)
	require.Len(t, view.Edges, 1)
	assert.Equal(t, Edge{Src: src, SrcOutIndex: 0, Dst: dst, DstInput: "B"}, view.Edges[0])
	require.Len(t, view.Sinks, 1)
	assert.Equal(t, SinkBinding{Name: "Roughness", Src: src, SrcOutIndex: 0}, view.Sinks[0])

	// Version moves on every resync, even when nothing changed.
	g.ResyncLayout()
	assert.Equal(t, view.Version+1, g.Layout().Version)
}
