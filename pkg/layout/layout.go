package layout

import (
	"cmp"
	"slices"

	"github.com/BardicNoel/perktree/pkg/dag"
	"github.com/BardicNoel/perktree/pkg/dag/transform"
	"github.com/BardicNoel/perktree/pkg/graph"
)

// treeState tracks one tree through placement.
type treeState struct {
	info       transform.Tree
	nodes      []*Node // sorted by ID
	fallback   bool
	degenerate bool
}

// Compute lays out a perk graph.
//
// Each connected component is placed on its own: acyclic trees
// hierarchically from their subtree widths, cyclic ones from their seed
// positions. Every tree is then relaxed and finally packed side by side.
//
// Compute never fails. Invalid distances in cfg are replaced by defaults,
// dangling references are ignored, duplicate IDs keep the first record,
// records without an ID are dropped and counted, and
// a tree whose placement produces non-finite coordinates is returned at the
// origin. Diagnostics reports each of these cases.
//
// The result holds exactly one node per distinct record ID, ordered by tree
// then by ID, and is identical for identical inputs regardless of record
// order. Compute has no shared state and is safe to call concurrently.
func Compute(records []graph.Record, cfg Config) Result {
	cfg = cfg.Normalize()

	g, stats := dag.FromRecords(records)
	analysis := transform.Analyze(g)

	diag := Diagnostics{
		Trees:             len(analysis.Trees),
		IgnoredReferences: stats.IgnoredReferences,
		DuplicateIDs:      stats.DuplicateIDs,
		EmptyIDs:          stats.EmptyIDs,
	}

	children := make(map[string][]string, len(records))
	seeds := make(map[string][2]float64, len(records))
	for _, r := range records {
		if _, ok := children[r.ID]; ok || r.ID == "" {
			continue
		}
		children[r.ID] = slices.Clone(r.Children)
		seeds[r.ID] = [2]float64{r.Seed.X, r.Seed.Y}
	}

	trees := make([]*treeState, len(analysis.Trees))
	for i, info := range analysis.Trees {
		t := &treeState{info: info}
		byID := make(map[string]*Node, len(info.IDs))
		for _, id := range info.IDs {
			dn, _ := g.Node(id)
			n := &Node{
				ID:       id,
				Label:    dn.Label,
				Width:    nodeWidth(dn.Label, cfg),
				Height:   cfg.NodeHeight,
				Children: children[id],
				Depth:    analysis.Depth[id],
				Tree:     i,
			}
			t.nodes = append(t.nodes, n)
			byID[id] = n
		}
		trees[i] = t

		if info.Unstable {
			diag.UnstableTrees = append(diag.UnstableTrees, info.First())
		}

		if !placeHierarchical(g, t, byID, cfg) {
			t.fallback = true
			diag.FallbackTrees = append(diag.FallbackTrees, info.First())
			diag.CycleEdges = append(diag.CycleEdges, transform.FindBackEdges(g, info.IDs)...)
			seedTree(t.nodes, seeds, cfg)
			diag.RelaxIterations += relax(t.nodes, fallbackForces(cfg))
		} else {
			diag.RelaxIterations += relax(t.nodes, normalForces(cfg))
		}

		if !finite(t.nodes) {
			t.degenerate = true
			diag.DegenerateTrees = append(diag.DegenerateTrees, info.First())
			zero(t.nodes, cfg)
		}
	}

	var packed []packedTree
	for _, t := range trees {
		if t.degenerate {
			continue
		}
		pt := packedTree{nodes: t.nodes}
		for _, n := range t.nodes {
			if t.fallback || n.Depth == 0 {
				pt.roots = append(pt.roots, n)
			}
		}
		packed = append(packed, pt)
	}
	pack(packed, cfg)

	result := Result{Nodes: make([]Node, 0, g.NodeCount())}
	for _, t := range trees {
		if !t.fallback && !t.degenerate {
			diag.Crossings += countCrossings(g, t.nodes)
		}
		for _, n := range t.nodes {
			result.Nodes = append(result.Nodes, *n)
		}
	}
	for _, e := range g.Edges() {
		result.Edges = append(result.Edges, Edge{From: e.From, To: e.To})
	}
	result.Diagnostics = diag
	return result
}

// placeHierarchical runs the cycle guard and, if the tree is acyclic,
// positions it. It reports false when the tree must take the fallback path.
func placeHierarchical(g *dag.DAG, t *treeState, byID map[string]*Node, cfg Config) bool {
	if t.info.Unstable || t.info.SyntheticRoot || len(t.info.Unreached) > 0 {
		return false
	}

	depth := make(map[string]int, len(t.nodes))
	own := make(map[string]float64, len(t.nodes))
	for _, n := range t.nodes {
		depth[n.ID] = n.Depth
		own[n.ID] = n.Width
	}
	owned := ownership(g, t.info.IDs, depth)

	widths, err := subtreeWidths(g, t.info.IDs, own, owned, cfg.HorizontalSpacing)
	if err != nil {
		return false
	}
	placeTree(byID, t.info.Roots, owned, widths, cfg)
	return true
}

// countCrossings orders each depth band by x and counts crossings between
// consecutive bands.
func countCrossings(g *dag.DAG, nodes []*Node) int {
	bands := make(map[int][]*Node)
	for _, n := range nodes {
		bands[n.Depth] = append(bands[n.Depth], n)
	}
	orders := make(map[int][]string, len(bands))
	for d, band := range bands {
		slices.SortStableFunc(band, func(a, b *Node) int {
			return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.ID, b.ID))
		})
		ids := make([]string, len(band))
		for i, n := range band {
			ids[i] = n.ID
		}
		orders[d] = ids
	}
	return dag.CountCrossings(g, orders)
}
