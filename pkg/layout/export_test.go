package layout

import (
	"slices"
	"testing"

	"github.com/BardicNoel/perktree/pkg/graph"
)

func TestResult_Export(t *testing.T) {
	records := []graph.Record{
		{ID: "P", Label: "Parent"},
		{ID: "L", Parents: []string{"P"}},
		{ID: "R", Parents: []string{"P"}},
	}
	r := Compute(records, testConfig())
	l := r.Export()

	if !near(l.Width, 240) || !near(l.Height, 180) {
		t.Errorf("Export() size = %vx%v, want 240x180", l.Width, l.Height)
	}
	want := []graph.Edge{{From: "P", To: "L"}, {From: "P", To: "R"}}
	if !slices.Equal(l.Edges, want) {
		t.Errorf("Export().Edges = %v, want %v", l.Edges, want)
	}
	if len(l.Nodes) != len(r.Nodes) {
		t.Fatalf("Export() has %d nodes, want %d", len(l.Nodes), len(r.Nodes))
	}
	p, ok := l.NodeByID("P")
	if !ok {
		t.Fatal("P missing from export")
	}
	if p.Label != "Parent" || p.Children != nil {
		t.Errorf("P = %+v, want label Parent and no declared children", p)
	}
	if l.Diagnostics.Trees != 1 || l.Diagnostics.Degraded() {
		t.Errorf("Diagnostics = %+v, want one clean tree", l.Diagnostics)
	}
}

func TestResult_BoundsEmpty(t *testing.T) {
	var r Result
	minX, minY, maxX, maxY := r.Bounds()
	if minX != 0 || minY != 0 || maxX != 0 || maxY != 0 {
		t.Errorf("Bounds() = (%v, %v, %v, %v), want zeros", minX, minY, maxX, maxY)
	}
	if l := r.Export(); l.Width != 0 || l.Edges != nil {
		t.Errorf("Export() = %+v, want empty layout", l)
	}
}
