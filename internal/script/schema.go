// Package script loads and applies HCL graph scripts: declarative files of
// node, connect, sink and promote blocks that replay as mutation-service
// calls against a fresh graph.
package script

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// hclScriptFile is the top-level structure of one script file for decoding.
type hclScriptFile struct {
	Nodes    []*hclNode    `hcl:"node,block"`
	Connects []*hclConnect `hcl:"connect,block"`
	Sinks    []*hclSink    `hcl:"sink,block"`
	Promotes []*hclPromote `hcl:"promote,block"`
}

// hclProperties captures the free-form attribute body of a properties block.
type hclProperties struct {
	Body hcl.Body `hcl:",remain"`
}

type hclNode struct {
	Type       string         `hcl:"type,label"`
	Name       string         `hcl:"name,label"`
	X          float64        `hcl:"x,optional"`
	Y          float64        `hcl:"y,optional"`
	Properties *hclProperties `hcl:"properties,block"`
}

type hclConnect struct {
	From   string `hcl:"from"`
	Output string `hcl:"output,optional"`
	To     string `hcl:"to"`
	Input  string `hcl:"input"`
}

type hclSink struct {
	Name   string `hcl:"name,label"`
	From   string `hcl:"from"`
	Output string `hcl:"output,optional"`
}

type hclPromote struct {
	Node      string `hcl:"node"`
	Parameter string `hcl:"parameter"`
	Group     string `hcl:"group,optional"`
}

// NodeDecl is one declared node, with its property batch already evaluated
// to wire values.
type NodeDecl struct {
	Type       string
	Name       string
	X, Y       float64
	Properties map[string]cty.Value
}

// ConnectDecl wires one declared node's output into another's input.
type ConnectDecl struct {
	From   string
	Output string
	To     string
	Input  string
}

// SinkDecl binds a declared node's output to a named terminal slot.
type SinkDecl struct {
	Sink   string
	From   string
	Output string
}

// PromoteDecl promotes a declared literal node to a named parameter.
type PromoteDecl struct {
	Node      string
	Parameter string
	Group     string
}

// Script is the merged, order-preserving content of one or more files.
type Script struct {
	Nodes    []NodeDecl
	Connects []ConnectDecl
	Sinks    []SinkDecl
	Promotes []PromoteDecl
}
