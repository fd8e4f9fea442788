package ops

import (
	"context"

	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/operr"
)

// NodeInfo is the router-facing summary of one node.
type NodeInfo struct {
	ID             string
	TypeName       string
	X, Y           float64
	IsParameter    bool
	ParameterName  string
	ParameterGroup string
	Inputs         []string
	Outputs        []string
}

// ConnectionInfo is the router-facing record of one edge.
type ConnectionInfo struct {
	SrcID       string
	SrcOutIndex int
	DstID       string
	DstInput    string
}

func nodeInfo(n *graph.Node) NodeInfo {
	info := NodeInfo{
		ID:             n.ID().String(),
		TypeName:       n.TypeName,
		X:              n.X,
		Y:              n.Y,
		IsParameter:    n.IsParameter,
		ParameterName:  n.ParameterName,
		ParameterGroup: n.ParameterGroup,
	}
	for _, p := range n.Inputs {
		info.Inputs = append(info.Inputs, p.DisplayName())
	}
	for _, p := range n.Outputs {
		info.Outputs = append(info.Outputs, p.DisplayName())
	}
	return info
}

func (s *Service) nodeID(raw string) (graph.ID, error) {
	id, err := graph.ParseID(raw)
	if err != nil {
		return graph.NilID, operr.Wrap(operr.NotFound, err, "bad node id %q", raw)
	}
	return id, nil
}

// CreateNode instantiates an expression node and returns its summary.
func (s *Service) CreateNode(ctx context.Context, typeName string, x, y float64) (NodeInfo, error) {
	node, err := s.gops.CreateNode(ctx, s.graph, typeName, x, y)
	if err != nil {
		return NodeInfo{}, err
	}
	return nodeInfo(node), nil
}

// DeleteNode removes a node, clearing every edge that referenced it first.
func (s *Service) DeleteNode(ctx context.Context, id string) error {
	nid, err := s.nodeID(id)
	if err != nil {
		return err
	}
	return s.gops.DeleteNode(ctx, s.graph, nid)
}

// MoveNode repositions a node.
func (s *Service) MoveNode(ctx context.Context, id string, x, y float64) error {
	nid, err := s.nodeID(id)
	if err != nil {
		return err
	}
	return s.gops.MoveNode(ctx, s.graph, nid, x, y)
}

// ConnectPins wires a source output to a destination input.
func (s *Service) ConnectPins(ctx context.Context, srcID, srcOut, dstID, dstIn string) error {
	sid, err := s.nodeID(srcID)
	if err != nil {
		return err
	}
	did, err := s.nodeID(dstID)
	if err != nil {
		return err
	}
	return s.gops.Connect(ctx, s.graph, sid, srcOut, did, dstIn)
}

// DisconnectPin clears one input connection.
func (s *Service) DisconnectPin(ctx context.Context, id, input string) error {
	nid, err := s.nodeID(id)
	if err != nil {
		return err
	}
	return s.gops.Disconnect(ctx, s.graph, nid, input)
}

// ConnectToSink binds a node output to a named terminal slot.
func (s *Service) ConnectToSink(ctx context.Context, id, output, sink string) error {
	nid, err := s.nodeID(id)
	if err != nil {
		return err
	}
	return s.gops.ConnectToSink(ctx, s.graph, nid, output, sink)
}

// DisconnectSink clears a named terminal slot.
func (s *Service) DisconnectSink(ctx context.Context, sink string) error {
	return s.gops.DisconnectSink(ctx, s.graph, sink)
}

// PromoteToParameter replaces a literal node with its parameter
// counterpart, preserving position and every edge.
func (s *Service) PromoteToParameter(ctx context.Context, id, paramName, group string) (NodeInfo, error) {
	nid, err := s.nodeID(id)
	if err != nil {
		return NodeInfo{}, err
	}
	node, err := s.gops.PromoteToParameter(ctx, s.graph, nid, paramName, group)
	if err != nil {
		return NodeInfo{}, err
	}
	return nodeInfo(node), nil
}

// ListNodes summarizes every live node.
func (s *Service) ListNodes(ctx context.Context) []NodeInfo {
	var out []NodeInfo
	for _, n := range s.graph.Nodes() {
		out = append(out, nodeInfo(n))
	}
	return out
}

// ListConnections derives the edge list by scanning every input pin.
func (s *Service) ListConnections(ctx context.Context) []ConnectionInfo {
	var out []ConnectionInfo
	for _, e := range s.gops.ListConnections(s.graph) {
		out = append(out, ConnectionInfo{
			SrcID:       e.Src.String(),
			SrcOutIndex: e.SrcOutIndex,
			DstID:       e.Dst.String(),
			DstInput:    e.DstInput,
		})
	}
	return out
}
