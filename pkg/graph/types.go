package graph

import "slices"

// =============================================================================
// Record - Layout Input
// =============================================================================

// Point is a coordinate pair in rendering units or grid cells.
type Point struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Record is a single node of a perk graph as supplied by the data source.
//
// Children is the denormalized inverse of Parents. The layout engine treats an
// edge as present when either side declares it, but never rewrites records.
type Record struct {
	ID       string   `json:"id" toml:"id" yaml:"id"`
	Label    string   `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Parents  []string `json:"parents,omitempty" toml:"parents,omitempty" yaml:"parents,omitempty"`
	Children []string `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`

	// Seed is the coarse grid position used when hierarchical layout cannot apply.
	Seed Point `json:"seed" toml:"seed" yaml:"seed"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (r *Record) DisplayLabel() string {
	if r.Label != "" {
		return r.Label
	}
	return r.ID
}

// Document is the on-disk shape shared by all record file formats.
type Document struct {
	Records []Record `json:"records" toml:"records" yaml:"records"`
}

// =============================================================================
// Layout - Engine Output
// =============================================================================

// Layout is the serialization format for a computed perk graph layout.
//
// Nodes carry top-left coordinates; edges are endpoints only, the renderer
// draws them by looking up node positions.
type Layout struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Nodes       []Node      `json:"nodes"`
	Edges       []Edge      `json:"edges,omitempty"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Node is a positioned node.
type Node struct {
	ID        string   `json:"id"`
	Label     string   `json:"label,omitempty"`
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	OriginalX float64  `json:"original_x"`
	OriginalY float64  `json:"original_y"`
	Depth     int      `json:"depth"`
	Tree      int      `json:"tree"`
	Fallback  bool     `json:"fallback,omitempty"`
	Children  []string `json:"children,omitempty"`
}

// Edge represents a directed prerequisite edge (parent -> child).
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Diagnostics reports how the layout was produced. Callers use it to detect
// degraded output (fallback or degenerate trees) without parsing logs.
type Diagnostics struct {
	Trees             int         `json:"trees"`
	FallbackTrees     []string    `json:"fallback_trees,omitempty"`
	DegenerateTrees   []string    `json:"degenerate_trees,omitempty"`
	UnstableTrees     []string    `json:"unstable_trees,omitempty"`
	CycleEdges        [][2]string `json:"cycle_edges,omitempty"`
	IgnoredReferences int         `json:"ignored_references,omitempty"`
	DuplicateIDs      []string    `json:"duplicate_ids,omitempty"`
	EmptyIDs          int         `json:"empty_ids,omitempty"`
	Crossings         int         `json:"crossings"`
	RelaxIterations   int         `json:"relax_iterations"`
}

// NodeByID returns the node with the given ID and true, or a zero Node and false.
func (l *Layout) NodeByID(id string) (Node, bool) {
	i := slices.IndexFunc(l.Nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return Node{}, false
	}
	return l.Nodes[i], true
}

// Degraded reports whether any tree was placed by a fallback path or any
// record was dropped for having no ID.
func (d Diagnostics) Degraded() bool {
	return len(d.FallbackTrees) > 0 || len(d.DegenerateTrees) > 0 || d.EmptyIDs > 0
}
