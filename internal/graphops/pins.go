package graphops

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/vk/exprgraphgo/internal/graph"
	"github.com/vk/exprgraphgo/internal/operr"
)

var syntheticPinRegex = regexp.MustCompile(`^(?i)(input|output)_(\d+)$`)

// FindPin resolves a pin identifier against a node. Callers address pins by
// display name, by position, or not at all, so resolution tries in order:
// exact case-insensitive name, the synthesized Input_<i>/Output_<i> form, a
// bare numeric index, and finally direction-specific defaults ("A"/"Input"
// mean the first input, "B" the second, and the empty string the first
// output). Returns nil when nothing matches.
func FindPin(n *graph.Node, identifier string, dir graph.Direction) *graph.Pin {
	pins := n.Inputs
	if dir == graph.DirOutput {
		pins = n.Outputs
	}

	for _, p := range pins {
		if p.Name != "" && strings.EqualFold(p.Name, identifier) {
			return p
		}
	}

	if m := syntheticPinRegex.FindStringSubmatch(identifier); m != nil {
		if strings.EqualFold(m[1], dir.String()) {
			if i, err := strconv.Atoi(m[2]); err == nil && i < len(pins) {
				return pins[i]
			}
		}
		return nil
	}

	if i, err := strconv.Atoi(identifier); err == nil {
		if i >= 0 && i < len(pins) {
			return pins[i]
		}
		return nil
	}

	switch {
	case dir == graph.DirInput && (identifier == "A" || strings.EqualFold(identifier, "Input")):
		if len(pins) > 0 {
			return pins[0]
		}
	case dir == graph.DirInput && identifier == "B":
		if len(pins) > 1 {
			return pins[1]
		}
	case dir == graph.DirOutput && identifier == "":
		if len(pins) > 0 {
			return pins[0]
		}
	}
	return nil
}

// pinNames enumerates the display names of one side of a node, for the
// alternatives list of a failed lookup.
func pinNames(n *graph.Node, dir graph.Direction) []string {
	pins := n.Inputs
	if dir == graph.DirOutput {
		pins = n.Outputs
	}
	names := make([]string, len(pins))
	for i, p := range pins {
		names[i] = p.DisplayName()
	}
	return names
}

// Connect writes the destination input pin's connection field. Pin type
// compatibility is deliberately not checked here; the host's own rebuild
// validation owns that concern.
func (s *Service) Connect(ctx context.Context, g *graph.Graph, srcID graph.ID, srcOutName string, dstID graph.ID, dstInName string) error {
	src, ok := g.Node(srcID)
	if !ok {
		return operr.New(operr.NotFound, "no source node %s in graph %q", srcID, g.Name)
	}
	dst, ok := g.Node(dstID)
	if !ok {
		return operr.New(operr.NotFound, "no destination node %s in graph %q", dstID, g.Name)
	}

	srcPin := FindPin(src, srcOutName, graph.DirOutput)
	if srcPin == nil {
		return operr.NotFoundWith(pinNames(src, graph.DirOutput),
			"no output pin %q on node %s (%s)", srcOutName, srcID, src.TypeName)
	}
	dstPin := FindPin(dst, dstInName, graph.DirInput)
	if dstPin == nil {
		return operr.NotFoundWith(pinNames(dst, graph.DirInput),
			"no input pin %q on node %s (%s)", dstInName, dstID, dst.TypeName)
	}

	dstPin.Conn = &graph.Connection{Src: srcID, SrcOutIndex: srcPin.Index}
	s.Rebuild(ctx, g)
	return nil
}

// Disconnect clears an input pin's connection field.
func (s *Service) Disconnect(ctx context.Context, g *graph.Graph, id graph.ID, inputName string) error {
	node, ok := g.Node(id)
	if !ok {
		return operr.New(operr.NotFound, "no node %s in graph %q", id, g.Name)
	}
	pin := FindPin(node, inputName, graph.DirInput)
	if pin == nil {
		return operr.NotFoundWith(pinNames(node, graph.DirInput),
			"no input pin %q on node %s (%s)", inputName, id, node.TypeName)
	}
	pin.Conn = nil
	s.Rebuild(ctx, g)
	return nil
}

// ListConnections derives the edge list by scanning every input pin.
func (s *Service) ListConnections(g *graph.Graph) []graph.Edge {
	var edges []graph.Edge
	for _, n := range g.Nodes() {
		for _, p := range n.Inputs {
			if p.Conn == nil {
				continue
			}
			edges = append(edges, graph.Edge{
				Src:         p.Conn.Src,
				SrcOutIndex: p.Conn.SrcOutIndex,
				Dst:         n.ID(),
				DstInput:    p.DisplayName(),
			})
		}
	}
	return edges
}
