package transform

import (
	"slices"

	"github.com/BardicNoel/perktree/pkg/dag"
)

// Components partitions the graph into connected components, ignoring edge
// direction.
//
// Each component is sorted by ID and components are ordered by their
// smallest ID. Isolated nodes form single-node components.
func Components(g *dag.DAG) [][]string {
	seen := make(map[string]bool, g.NodeCount())
	var out [][]string

	for _, start := range g.NodeIDs() {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []string{start}
		for i := 0; i < len(comp); i++ {
			id := comp[i]
			for _, next := range g.Children(id) {
				if !seen[next] {
					seen[next] = true
					comp = append(comp, next)
				}
			}
			for _, next := range g.Parents(id) {
				if !seen[next] {
					seen[next] = true
					comp = append(comp, next)
				}
			}
		}
		slices.Sort(comp)
		out = append(out, comp)
	}
	return out
}
