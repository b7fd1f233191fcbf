package layout

// placeTree positions an acyclic tree in local coordinates.
//
// Roots are laid left to right in ID order, each in a slot as wide as its
// subtree. Within a slot the node is centered, and its owned children share
// a block of total width sum(child widths) + (n-1)*spacing centered under
// it. Depth d maps to y = -d*VerticalSpacing, so roots sit at y = 0.
func placeTree(nodes map[string]*Node, roots []string, owned map[string][]string, widths map[string]float64, cfg Config) {
	var place func(id string, center float64)
	place = func(id string, center float64) {
		n := nodes[id]
		n.X = center - n.Width/2
		n.Y = float64(-n.Depth) * cfg.VerticalSpacing

		kids := owned[id]
		if len(kids) == 0 {
			return
		}
		total := float64(len(kids)-1) * cfg.HorizontalSpacing
		for _, k := range kids {
			total += widths[k]
		}
		left := center - total/2
		for _, k := range kids {
			place(k, left+widths[k]/2)
			left += widths[k] + cfg.HorizontalSpacing
		}
	}

	cursor := 0.0
	for _, r := range roots {
		w := widths[r]
		place(r, cursor+w/2)
		cursor += w + cfg.HorizontalSpacing
	}
}
