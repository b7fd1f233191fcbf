package layout

import (
	"math"

	"github.com/BardicNoel/perktree/pkg/graph"
)

// Bounds returns the bounding box of all nodes. An empty result has zero
// bounds.
func (r *Result) Bounds() (minX, minY, maxX, maxY float64) {
	if len(r.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range r.Nodes {
		n := &r.Nodes[i]
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.Right())
		maxY = max(maxY, n.Y+n.Height)
	}
	return minX, minY, maxX, maxY
}

// Export converts the result to its serialization format.
// Width and Height are the extent of the bounding box.
func (r *Result) Export() graph.Layout {
	minX, minY, maxX, maxY := r.Bounds()
	out := graph.Layout{
		Width:       maxX - minX,
		Height:      maxY - minY,
		Nodes:       make([]graph.Node, len(r.Nodes)),
		Diagnostics: graph.Diagnostics(r.Diagnostics),
	}
	for i, n := range r.Nodes {
		out.Nodes[i] = graph.Node{
			ID:        n.ID,
			Label:     n.Label,
			X:         n.X,
			Y:         n.Y,
			Width:     n.Width,
			Height:    n.Height,
			OriginalX: n.OriginalX,
			OriginalY: n.OriginalY,
			Depth:     n.Depth,
			Tree:      n.Tree,
			Fallback:  n.Fallback,
			Children:  n.Children,
		}
	}
	if len(r.Edges) > 0 {
		out.Edges = make([]graph.Edge, len(r.Edges))
		for i, e := range r.Edges {
			out.Edges[i] = graph.Edge{From: e.From, To: e.To}
		}
	}
	return out
}
