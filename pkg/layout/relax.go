package layout

import "math"

// Relaxation constants for hierarchical trees.
const (
	repulsionThreshold = 0.4
	relaxStrength      = 0.5
	relaxIterations    = 5
	relaxAttraction    = 0.03
)

// Relaxation constants for fallback trees.
const (
	fallbackStrength   = 1.0
	fallbackIterations = 50
	fallbackAttraction = 0.02
	verticalSeparation = 0.8
)

const eps = 1e-9

// forceParams selects between the normal and the cycle-tolerant relaxation.
type forceParams struct {
	threshold  float64
	strength   float64
	iterations int
	attraction float64

	// separateRows adds a vertical push between nodes that are horizontally
	// within reach and vertically closer than minGap.
	separateRows bool
	minGap       float64

	// clampBands keeps every node at or above its depth band after attraction.
	clampBands      bool
	verticalSpacing float64

	// dirX, dirY is the push direction used for coincident centers.
	dirX, dirY float64
}

func normalForces(cfg Config) forceParams {
	return forceParams{
		threshold:       cfg.HorizontalSpacing * repulsionThreshold,
		strength:        relaxStrength,
		iterations:      relaxIterations,
		attraction:      relaxAttraction,
		clampBands:      true,
		verticalSpacing: cfg.VerticalSpacing,
		dirX:            1,
	}
}

func fallbackForces(cfg Config) forceParams {
	return forceParams{
		threshold:    cfg.HorizontalSpacing * repulsionThreshold,
		strength:     fallbackStrength,
		iterations:   fallbackIterations,
		attraction:   fallbackAttraction,
		separateRows: true,
		minGap:       cfg.NodeHeight * verticalSeparation,
		dirY:         1,
	}
}

// relax nudges nodes apart and back toward their starting positions.
// nodes must be sorted by ID. OriginalX and OriginalY are set to the
// starting positions before any force is applied. It returns the number of
// repulsion iterations executed.
//
// Each iteration accumulates pairwise forces before moving any node, so the
// result does not depend on pair order beyond the ID ordering of nodes.
// Iteration stops early once a full pass applies no force.
func relax(nodes []*Node, p forceParams) int {
	for _, n := range nodes {
		n.OriginalX, n.OriginalY = n.X, n.Y
	}

	fx := make([]float64, len(nodes))
	fy := make([]float64, len(nodes))
	iter := 0
	for ; iter < p.iterations; iter++ {
		clear(fx)
		clear(fy)
		active := false

		for i := 0; i < len(nodes); i++ {
			a := nodes[i]
			for j := i + 1; j < len(nodes); j++ {
				b := nodes[j]
				dx := b.CenterX() - a.CenterX()
				dy := b.CenterY() - a.CenterY()

				if dist := math.Hypot(dx, dy); dist < p.threshold {
					ux, uy := p.dirX, p.dirY
					if dist > eps {
						ux, uy = dx/dist, dy/dist
					}
					push := (p.threshold - dist) * p.strength / 2
					fx[i] -= ux * push
					fy[i] -= uy * push
					fx[j] += ux * push
					fy[j] += uy * push
					active = true
				}

				if p.separateRows && math.Abs(dx) < (a.Width+b.Width)/2+p.threshold && math.Abs(dy) < p.minGap {
					dir := 1.0
					if dy < -eps {
						dir = -1
					}
					push := (p.minGap - math.Abs(dy)) * p.strength / 2
					fy[i] -= dir * push
					fy[j] += dir * push
					active = true
				}
			}
		}

		if !active {
			break
		}
		for i, n := range nodes {
			n.X += fx[i]
			n.Y += fy[i]
		}
	}

	for _, n := range nodes {
		n.X += (n.OriginalX - n.X) * p.attraction
		n.Y += (n.OriginalY - n.Y) * p.attraction
		if p.clampBands {
			n.Y = min(n.Y, float64(-n.Depth)*p.verticalSpacing)
		}
	}
	return iter
}
