package transform

import "github.com/BardicNoel/perktree/pkg/dag"

// FindBackEdges returns the edges that close a cycle, in discovery order.
//
// The search is a depth-first traversal with white/gray/black coloring. It
// starts from parentless nodes, then from any node still unvisited, always in
// ID order, so the result is deterministic. An edge into a gray (in-progress)
// node is a back edge; a self loop is reported as {id, id}.
//
// When ids is non-nil the search is limited to start from those nodes, which
// is how the layout engine inspects a single connected component. The graph
// is not modified.
func FindBackEdges(g *dag.DAG, ids []string) [][2]string {
	const (
		white = iota
		gray
		black
	)

	if ids == nil {
		ids = g.NodeIDs()
	}

	color := make(map[string]int, len(ids))
	var backEdges [][2]string

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, [2]string{node, child})
			}
		}
		color[node] = black
	}

	for _, id := range ids {
		if g.InDegree(id) == 0 && color[id] == white {
			dfs(id)
		}
	}
	for _, id := range ids {
		if color[id] == white {
			dfs(id)
		}
	}
	return backEdges
}
