package layout

import (
	"errors"
	"testing"

	"github.com/BardicNoel/perktree/pkg/dag"
	"github.com/BardicNoel/perktree/pkg/dag/transform"
	"github.com/BardicNoel/perktree/pkg/graph"
)

func widthsFor(t *testing.T, records []graph.Record) (map[string]float64, error) {
	t.Helper()
	g, _ := dag.FromRecords(records)
	a := transform.Analyze(g)
	own := make(map[string]float64)
	for _, id := range g.NodeIDs() {
		own[id] = 100
	}
	ids := g.NodeIDs()
	return subtreeWidths(g, ids, own, ownership(g, ids, a.Depth), 40)
}

func TestSubtreeWidths(t *testing.T) {
	tests := []struct {
		name    string
		records []graph.Record
		want    map[string]float64
	}{
		{
			name:    "Leaf",
			records: []graph.Record{{ID: "a"}},
			want:    map[string]float64{"a": 100},
		},
		{
			name: "TwoChildren",
			records: []graph.Record{
				{ID: "a", Children: []string{"b", "c"}},
				{ID: "b"}, {ID: "c"},
			},
			want: map[string]float64{"a": 240, "b": 100, "c": 100},
		},
		{
			// D (width 240) is owned by B only; C must not reserve it again.
			name: "SharedChildCountedOnce",
			records: []graph.Record{
				{ID: "A", Children: []string{"B", "C"}},
				{ID: "B", Children: []string{"D", "E"}},
				{ID: "C", Children: []string{"D"}},
				{ID: "D", Children: []string{"F", "G"}},
				{ID: "E"}, {ID: "F"}, {ID: "G"},
			},
			want: map[string]float64{"D": 240, "B": 380, "C": 100, "A": 520},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := widthsFor(t, tt.records)
			if err != nil {
				t.Fatalf("subtreeWidths() error = %v", err)
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("width(%s) = %v, want %v", id, got[id], want)
				}
			}
		})
	}
}

func TestSubtreeWidths_Cycle(t *testing.T) {
	tests := []struct {
		name    string
		records []graph.Record
	}{
		{"SelfLoop", []graph.Record{{ID: "a", Children: []string{"a"}}}},
		{"TwoNode", []graph.Record{{ID: "a", Children: []string{"b"}}, {ID: "b", Children: []string{"a"}}}},
		{"BelowRoot", []graph.Record{
			{ID: "r", Children: []string{"x"}},
			{ID: "x", Children: []string{"y"}},
			{ID: "y", Children: []string{"z"}},
			{ID: "z", Children: []string{"x"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := widthsFor(t, tt.records); !errors.Is(err, ErrCycleDetected) {
				t.Errorf("subtreeWidths() error = %v, want ErrCycleDetected", err)
			}
		})
	}
}

func TestVisitChain(t *testing.T) {
	var root *visitChain
	a := root.push("a")
	ab := a.push("b")
	ac := a.push("c")

	if !ab.contains("a") || !ab.contains("b") {
		t.Error("chain a->b should contain a and b")
	}
	if ac.contains("b") {
		t.Error("sibling chain a->c must not see b")
	}
	if root.contains("a") {
		t.Error("empty chain should contain nothing")
	}
}

func TestNodeWidth(t *testing.T) {
	cfg := testConfig()
	if got := nodeWidth("Anything at all", cfg); got != cfg.NodeWidth {
		t.Errorf("nodeWidth() = %v, want %v with label sizing off", got, cfg.NodeWidth)
	}
	cfg.LabelCharWidth = 8
	// Runes, not bytes: 5 runes * 8 + 40 < 100.
	if got := nodeWidth("Ébène", cfg); got != cfg.NodeWidth {
		t.Errorf("nodeWidth(Ébène) = %v, want %v", got, cfg.NodeWidth)
	}
	if got := nodeWidth("Augmented Flames", cfg); got != 16*8+40 {
		t.Errorf("nodeWidth(Augmented Flames) = %v, want %v", got, 16*8+40)
	}
}
