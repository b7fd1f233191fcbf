package dag

import (
	"errors"
	"maps"
	"slices"

	"github.com/BardicNoel/perktree/pkg/graph"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	// Cycles are detected using depth-first search with white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Node is a perk in the prerequisite graph.
//
// Depth is the vertical band assigned by layering; it is zero until
// [DAG.SetDepths] is called.
type Node struct {
	ID    string
	Label string
	Depth int

	// Seed is the coarse grid position from the source record.
	Seed graph.Point
}

// Edge is a prerequisite relation: From must be taken before To.
type Edge struct {
	From string
	To   string
}

// DAG is a directed prerequisite graph with deterministic iteration order.
//
// Despite the name, a DAG built from untrusted records may contain cycles.
// [DAG.Validate] reports them; the layout engine routes such components to a
// cycle-tolerant placement instead of rejecting them.
//
// Adjacency lists are kept sorted by ID and free of duplicates, so every
// traversal over Children, Parents, Nodes and Sources is reproducible
// regardless of the order in which nodes and edges were added.
//
// The zero value is not usable - use New to create a valid DAG instance.
// DAG is not safe for concurrent use without external synchronization.
type DAG struct {
	nodes    map[string]*Node
	outgoing map[string][]string
	incoming map[string][]string
	edges    int
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, ok := d.nodes[n.ID]; ok {
		return ErrDuplicateNodeID
	}
	d.nodes[n.ID] = &n
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. Adding an edge that already exists is a no-op. Self loops are
// accepted; they make the graph cyclic.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	var added bool
	d.outgoing[e.From], added = insertSorted(d.outgoing[e.From], e.To)
	if !added {
		return nil
	}
	d.incoming[e.To], _ = insertSorted(d.incoming[e.To], e.From)
	d.edges++
	return nil
}

// HasEdge reports whether the edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	_, found := slices.BinarySearch(d.outgoing[from], to)
	return found
}

// SetDepths updates the depth of every node present in the map.
// Nodes not present in depths keep their current value.
func (d *DAG) SetDepths(depths map[string]int) {
	for id, depth := range depths {
		if n, ok := d.nodes[id]; ok {
			n.Depth = depth
		}
	}
}

// Node returns the node with the given ID and true, or nil and false.
// The returned pointer refers to the graph's own node.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by ID.
func (d *DAG) Nodes() []*Node {
	ids := d.NodeIDs()
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = d.nodes[id]
	}
	return out
}

// NodeIDs returns all node IDs in sorted order.
func (d *DAG) NodeIDs() []string {
	return slices.Sorted(maps.Keys(d.nodes))
}

// Edges returns every edge ordered by (From, To).
func (d *DAG) Edges() []Edge {
	out := make([]Edge, 0, d.edges)
	for _, from := range d.NodeIDs() {
		for _, to := range d.outgoing[from] {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// Children returns the sorted IDs of nodes reachable by one outgoing edge.
// The returned slice must not be modified.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the sorted IDs of nodes with an edge into id.
// The returned slice must not be modified.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// InDegree returns the number of parents of id.
func (d *DAG) InDegree(id string) int { return len(d.incoming[id]) }

// OutDegree returns the number of children of id.
func (d *DAG) OutDegree(id string) int { return len(d.outgoing[id]) }

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of distinct edges.
func (d *DAG) EdgeCount() int { return d.edges }

// Sources returns nodes without parents, sorted by ID.
func (d *DAG) Sources() []*Node {
	var out []*Node
	for _, n := range d.Nodes() {
		if len(d.incoming[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// Sinks returns nodes without children, sorted by ID.
func (d *DAG) Sinks() []*Node {
	var out []*Node
	for _, n := range d.Nodes() {
		if len(d.outgoing[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// NodesAtDepth groups node IDs by depth. Each band is sorted by ID.
func (d *DAG) NodesAtDepth() map[int][]string {
	bands := make(map[int][]string)
	for _, n := range d.Nodes() {
		bands[n.Depth] = append(bands[n.Depth], n.ID)
	}
	return bands
}

// Validate checks that the graph is acyclic.
func (d *DAG) Validate() error {
	if d.hasCycle() {
		return ErrGraphHasCycle
	}
	return nil
}

func (d *DAG) hasCycle() bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(d.nodes))

	var visit func(string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, c := range d.outgoing[id] {
			switch color[c] {
			case gray:
				return true
			case white:
				if visit(c) {
					return true
				}
			}
		}
		color[id] = black
		return false
	}

	for _, id := range d.NodeIDs() {
		if color[id] == white && visit(id) {
			return true
		}
	}
	return false
}

// PosMap returns a map from ID to its index in ids.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

func insertSorted(list []string, id string) ([]string, bool) {
	i, found := slices.BinarySearch(list, id)
	if found {
		return list, false
	}
	return slices.Insert(list, i, id), true
}
