package layout_test

import (
	"fmt"

	"github.com/BardicNoel/perktree/pkg/graph"
	"github.com/BardicNoel/perktree/pkg/layout"
)

func ExampleCompute() {
	records := []graph.Record{
		{ID: "light_armor", Children: []string{"agile_defender", "custom_fit"}},
		{ID: "agile_defender", Parents: []string{"light_armor"}},
		{ID: "custom_fit", Parents: []string{"light_armor"}},
	}
	cfg := layout.Config{NodeWidth: 100, NodeHeight: 50, HorizontalSpacing: 40, VerticalSpacing: 100, Padding: 10}

	res := layout.Compute(records, cfg)
	for _, n := range res.Nodes {
		fmt.Printf("%-14s depth=%d x=%v y=%v\n", n.ID, n.Depth, n.X, n.Y)
	}
	fmt.Println("fallback:", res.Diagnostics.UsedFallback())
	// Output:
	// agile_defender depth=1 x=10 y=-100
	// custom_fit     depth=1 x=150 y=-100
	// light_armor    depth=0 x=80 y=0
	// fallback: false
}

func ExampleCompute_cycle() {
	records := []graph.Record{
		{ID: "a", Children: []string{"b"}, Seed: graph.Point{X: 0, Y: 0}},
		{ID: "b", Children: []string{"a"}, Seed: graph.Point{X: 2, Y: 1}},
	}

	res := layout.Compute(records, layout.Config{})
	fmt.Println("nodes:", len(res.Nodes))
	fmt.Println("fallback trees:", res.Diagnostics.FallbackTrees)
	fmt.Println("cycle edges:", res.Diagnostics.CycleEdges)
	// Output:
	// nodes: 2
	// fallback trees: [a]
	// cycle edges: [[b a]]
}
