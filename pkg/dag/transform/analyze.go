package transform

import "github.com/BardicNoel/perktree/pkg/dag"

// Tree is one connected component of the prerequisite graph, the unit of
// independent placement.
type Tree struct {
	// IDs holds every node of the tree, sorted.
	IDs []string

	// Roots holds the nodes without parents, sorted. When the tree has no
	// parentless node (a pure cycle or self loop) it holds the smallest ID
	// and SyntheticRoot is set.
	Roots         []string
	SyntheticRoot bool

	// Unreached lists nodes not reachable from Roots along edge direction.
	Unreached []string

	// Unstable is set when multi-parent reconciliation did not converge.
	Unstable bool
}

// First returns the smallest ID of the tree, used to name it in diagnostics.
func (t Tree) First() string { return t.IDs[0] }

// Analysis is the result of [Analyze].
type Analysis struct {
	Trees []Tree
	Depth map[string]int
	Roots map[string]bool
}

// Analyze partitions g into trees, identifies their roots and assigns depth
// bands to every node. Depths are also written back to the graph with
// [dag.DAG.SetDepths].
//
// Trees are ordered by their smallest ID. See [AssignDepths] for the depth
// rules.
func Analyze(g *dag.DAG) Analysis {
	a := Analysis{
		Depth: make(map[string]int, g.NodeCount()),
		Roots: make(map[string]bool),
	}

	for _, ids := range Components(g) {
		t := Tree{IDs: ids}
		for _, id := range ids {
			if g.InDegree(id) == 0 {
				t.Roots = append(t.Roots, id)
			}
		}
		if len(t.Roots) == 0 {
			t.Roots = []string{ids[0]}
			t.SyntheticRoot = true
		}

		res := AssignDepths(g, ids, t.Roots)
		t.Unreached = res.Unreached
		t.Unstable = !res.Stable
		for id, d := range res.Depth {
			a.Depth[id] = d
		}
		for _, r := range t.Roots {
			a.Roots[r] = true
		}
		a.Trees = append(a.Trees, t)
	}

	g.SetDepths(a.Depth)
	return a
}
