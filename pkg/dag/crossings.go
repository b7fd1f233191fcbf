package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given depth
// band orderings. It sums the crossings between each pair of consecutive bands;
// orders maps a depth to node IDs in left-to-right order. Bands without entries
// are treated as empty, and edges spanning more than one band are not counted.
//
// Example:
//
//	orders := map[int][]string{
//	    0: {"alchemy", "smithing"},
//	    1: {"concentrated_poison", "elven_smithing"},
//	}
//	crossings := dag.CountCrossings(g, orders)
//
// The layout engine reports this number as a quality diagnostic. It runs in
// O(R × E log V) time where R is the number of bands.
func CountCrossings(g *DAG, orders map[int][]string) int {
	depths := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for _, depth := range depths {
		if lower, ok := orders[depth+1]; ok {
			crossings += CountLayerCrossings(g, orders[depth], lower)
		}
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent bands using a
// Fenwick tree (binary indexed tree) for O(E log V) performance where E is the
// number of edges between the bands and V is the number of nodes in the lower band.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is equivalent to counting inversions in the sequence of target positions
// when edges are sorted by source position. The Fenwick tree enables efficient
// inversion counting compared to the naive O(E²) algorithm.
//
// Returns 0 if either band is empty.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, nodeID := range upper {
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	// Sort edges by source position, then by target position
	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	// Count inversions using Fenwick tree
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// Query: count edges seen so far with target <= e.lower
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		// Crossings = edges seen so far with target > e.lower
		crossings += total - lessOrEqual

		// Update: increment count at target position
		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
