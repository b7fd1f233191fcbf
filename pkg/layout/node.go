package layout

// Node is a positioned perk.
//
// X and Y are the top-left corner. OriginalX and OriginalY hold the position
// immediately before relaxation, shifted along with X by packing. Width and
// Height are fixed once the node is created.
type Node struct {
	ID        string
	Label     string
	X, Y      float64
	Width     float64
	Height    float64
	OriginalX float64
	OriginalY float64

	// Children is a copy of the source record's children.
	Children []string

	// Depth is the node's band, or -1 for nodes of fallback trees.
	Depth int

	// Tree is the packing index of the node's tree.
	Tree int

	Fallback bool
}

// CenterX returns the horizontal center of the node.
func (n *Node) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node.
func (n *Node) CenterY() float64 { return n.Y + n.Height/2 }

// Right returns the x coordinate of the node's right edge.
func (n *Node) Right() float64 { return n.X + n.Width }

// Diagnostics reports how a layout was produced, so callers can detect
// degraded output without parsing logs. Field order and types mirror
// graph.Diagnostics, which allows a direct conversion.
type Diagnostics struct {
	Trees             int
	FallbackTrees     []string
	DegenerateTrees   []string
	UnstableTrees     []string
	CycleEdges        [][2]string
	IgnoredReferences int
	DuplicateIDs      []string
	EmptyIDs          int
	Crossings         int
	RelaxIterations   int
}

// UsedFallback reports whether any tree was placed by the fallback path or
// zeroed as degenerate.
func (d Diagnostics) UsedFallback() bool {
	return len(d.FallbackTrees) > 0 || len(d.DegenerateTrees) > 0
}

// Degraded reports whether the layout is missing input or was not placed
// hierarchically: a fallback or degenerate tree, or records dropped for
// having no ID.
func (d Diagnostics) Degraded() bool {
	return d.UsedFallback() || d.EmptyIDs > 0
}

// Edge is a prerequisite relation between two laid out nodes.
type Edge struct {
	From string
	To   string
}

// Result is the output of [Compute].
type Result struct {
	Nodes []Node

	// Edges holds every distinct edge of the input graph, including those
	// declared only from the child side, ordered by (From, To).
	Edges       []Edge
	Diagnostics Diagnostics
}

// NodeByID returns the node with the given ID and true, or a zero Node and false.
func (r *Result) NodeByID(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}
