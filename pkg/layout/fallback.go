package layout

import "math"

// seedTree places the nodes of a cyclic tree at their seed grid positions,
// scaled to rendering units. No hierarchy is assumed: depth is set to -1.
func seedTree(nodes []*Node, seeds map[string][2]float64, cfg Config) {
	for _, n := range nodes {
		s := seeds[n.ID]
		n.X = s[0] * cfg.GridScaleX
		n.Y = s[1] * cfg.GridScaleY
		n.Depth = -1
		n.Fallback = true
	}
}

// finite reports whether every coordinate of every node is a finite number.
func finite(nodes []*Node) bool {
	for _, n := range nodes {
		for _, v := range [...]float64{n.X, n.Y, n.OriginalX, n.OriginalY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// zero applies the last-resort layout: every node at the origin with the
// default size.
func zero(nodes []*Node, cfg Config) {
	for _, n := range nodes {
		n.X, n.Y = 0, 0
		n.OriginalX, n.OriginalY = 0, 0
		n.Width, n.Height = cfg.NodeWidth, cfg.NodeHeight
	}
}
