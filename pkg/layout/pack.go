package layout

import "math"

// Packing scale bounds. A tree is never compressed, and never stretched to
// more than twice its natural width.
const (
	minTreeScale = 1.0
	maxTreeScale = 2.0
)

// packedTree is one tree's input to the packer.
type packedTree struct {
	nodes []*Node
	roots []*Node
}

func extent(nodes []*Node) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, n := range nodes {
		lo = min(lo, n.X)
		hi = max(hi, n.Right())
	}
	return lo, hi
}

// pack lays trees side by side, left to right in the given order.
//
// Each tree's share of the combined root band width decides its horizontal
// scale: factor = clamp(share*len(trees), 1, 2), applied around the tree's
// left edge to X and OriginalX alike. Trees start at Padding and the cursor
// advances by the scaled tree width plus HorizontalSpacing, so bounding
// boxes of different trees never overlap. Node widths are not scaled.
func pack(trees []packedTree, cfg Config) {
	rootWidths := make([]float64, len(trees))
	var totalRoot float64
	for i, t := range trees {
		lo, hi := extent(t.roots)
		rootWidths[i] = hi - lo
		totalRoot += rootWidths[i]
	}

	cursor := cfg.Padding
	for i, t := range trees {
		factor := minTreeScale
		if totalRoot > eps {
			share := rootWidths[i] / totalRoot
			factor = min(max(share*float64(len(trees)), minTreeScale), maxTreeScale)
		}

		lo, hi := extent(t.nodes)
		for _, n := range t.nodes {
			n.X = cursor + (n.X-lo)*factor
			n.OriginalX = cursor + (n.OriginalX-lo)*factor
		}
		cursor += (hi-lo)*factor + cfg.HorizontalSpacing
	}
}
