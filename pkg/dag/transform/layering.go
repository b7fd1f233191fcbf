package transform

import "github.com/BardicNoel/perktree/pkg/dag"

// MaxReconcilePasses bounds multi-parent depth reconciliation.
const MaxReconcilePasses = 10

// DepthResult is the outcome of [AssignDepths] for one component.
type DepthResult struct {
	Depth map[string]int

	// Unreached lists nodes that breadth-first search from the roots could not
	// reach along edge direction. Such nodes can only exist when the component
	// contains a cycle.
	Unreached []string

	// Stable is false when reconciliation did not settle within
	// MaxReconcilePasses.
	Stable bool

	// Repaired counts depth increases applied by monotonicity repair.
	Repaired int
}

// AssignDepths computes a depth band for every node of one component.
//
// ids must be a sorted connected component and roots a sorted subset of it.
// The computation runs in three phases:
//
//  1. Breadth-first search from all roots at depth 0. A node keeps the first
//     (minimum) depth at which it is reached. Nodes still unreached restart
//     the search from the smallest unreached ID at depth 0.
//  2. Reconciliation. Every node with more than one parent is set to
//     min(parent depths)+1, repeated until a pass changes nothing or
//     MaxReconcilePasses is exhausted.
//  3. Monotonicity repair. In topological order (Kahn's algorithm), each
//     child is pushed to at least parent+1. Nodes on a cycle never reach
//     zero in-degree and keep their reconciled depth.
//
// All iteration follows sorted ID order.
func AssignDepths(g *dag.DAG, ids, roots []string) DepthResult {
	depth := make(map[string]int, len(ids))
	res := DepthResult{Depth: depth, Stable: true}

	bfs := func(starts []string) {
		queue := make([]string, 0, len(ids))
		for _, r := range starts {
			if _, ok := depth[r]; !ok {
				depth[r] = 0
				queue = append(queue, r)
			}
		}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			for _, c := range g.Children(curr) {
				if _, ok := depth[c]; !ok {
					depth[c] = depth[curr] + 1
					queue = append(queue, c)
				}
			}
		}
	}

	bfs(roots)
	for _, id := range ids {
		if _, ok := depth[id]; !ok {
			res.Unreached = append(res.Unreached, id)
		}
	}
	for _, id := range res.Unreached {
		if _, ok := depth[id]; !ok {
			bfs([]string{id})
		}
	}

	res.Stable = reconcile(g, ids, depth)
	res.Repaired = repairMonotonic(g, ids, depth)
	return res
}

func reconcile(g *dag.DAG, ids []string, depth map[string]int) bool {
	for pass := 0; pass < MaxReconcilePasses; pass++ {
		changed := false
		for _, id := range ids {
			parents := g.Parents(id)
			if len(parents) < 2 {
				continue
			}
			want := depth[parents[0]]
			for _, p := range parents[1:] {
				want = min(want, depth[p])
			}
			want++
			if depth[id] != want {
				depth[id] = want
				changed = true
			}
		}
		if !changed {
			return true
		}
	}
	return false
}

func repairMonotonic(g *dag.DAG, ids []string, depth map[string]int) int {
	inDegree := make(map[string]int, len(ids))
	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		d := g.InDegree(id)
		inDegree[id] = d
		if d == 0 {
			queue = append(queue, id)
		}
	}

	repaired := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, c := range g.Children(curr) {
			if want := depth[curr] + 1; depth[c] < want {
				depth[c] = want
				repaired++
			}
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	return repaired
}
