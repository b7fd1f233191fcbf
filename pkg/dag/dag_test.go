package dag

import (
	"errors"
	"slices"
	"testing"

	"github.com/BardicNoel/perktree/pkg/graph"
)

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) again = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	if err := g.AddEdge(Edge{From: "x", To: "b"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(x->b) = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(a->x) = %v, want ErrUnknownTargetNode", err)
	}

	_ = g.AddEdge(Edge{From: "a", To: "b"})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1 after duplicate insert", g.EdgeCount())
	}
	if !g.HasEdge("a", "b") || g.HasEdge("b", "a") {
		t.Error("HasEdge() reports wrong direction")
	}
	if g.InDegree("b") != 1 || g.OutDegree("a") != 1 {
		t.Errorf("degrees = in(b)=%d out(a)=%d, want 1 and 1", g.InDegree("b"), g.OutDegree("a"))
	}
}

func TestAdjacencyIsSorted(t *testing.T) {
	g := New()
	for _, id := range []string{"root", "d", "b", "c", "a"} {
		_ = g.AddNode(Node{ID: id})
	}
	for _, id := range []string{"d", "b", "c", "a"} {
		_ = g.AddEdge(Edge{From: "root", To: id})
	}

	want := []string{"a", "b", "c", "d"}
	if got := g.Children("root"); !slices.Equal(got, want) {
		t.Errorf("Children(root) = %v, want %v", got, want)
	}
	if got := g.NodeIDs(); !slices.Equal(got, []string{"a", "b", "c", "d", "root"}) {
		t.Errorf("NodeIDs() = %v", got)
	}
	edges := g.Edges()
	if len(edges) != 4 || edges[0] != (Edge{From: "root", To: "a"}) {
		t.Errorf("Edges() = %v", edges)
	}
}

func TestFromRecords(t *testing.T) {
	tests := []struct {
		name        string
		records     []graph.Record
		wantNodes   int
		wantEdges   int
		wantIgnored int
		wantDupes   []string
	}{
		{
			name: "ParentsOnly",
			records: []graph.Record{
				{ID: "a"},
				{ID: "b", Parents: []string{"a"}},
			},
			wantNodes: 2, wantEdges: 1,
		},
		{
			name: "ChildrenOnly",
			records: []graph.Record{
				{ID: "a", Children: []string{"b"}},
				{ID: "b"},
			},
			wantNodes: 2, wantEdges: 1,
		},
		{
			name: "BothSidesDeclared",
			records: []graph.Record{
				{ID: "a", Children: []string{"b"}},
				{ID: "b", Parents: []string{"a"}},
			},
			wantNodes: 2, wantEdges: 1,
		},
		{
			name: "DanglingReferences",
			records: []graph.Record{
				{ID: "a", Children: []string{"ghost"}},
				{ID: "b", Parents: []string{"phantom", "a"}},
			},
			wantNodes: 2, wantEdges: 1, wantIgnored: 2,
		},
		{
			name: "DuplicateIDs",
			records: []graph.Record{
				{ID: "a", Label: "first"},
				{ID: "a", Label: "second", Children: []string{"b"}},
				{ID: "b"},
			},
			wantNodes: 2, wantEdges: 0, wantDupes: []string{"a"},
		},
		{
			name:      "Empty",
			records:   nil,
			wantNodes: 0, wantEdges: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, stats := FromRecords(tt.records)
			if g.NodeCount() != tt.wantNodes {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), tt.wantNodes)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if stats.IgnoredReferences != tt.wantIgnored {
				t.Errorf("IgnoredReferences = %d, want %d", stats.IgnoredReferences, tt.wantIgnored)
			}
			if !slices.Equal(stats.DuplicateIDs, tt.wantDupes) {
				t.Errorf("DuplicateIDs = %v, want %v", stats.DuplicateIDs, tt.wantDupes)
			}
		})
	}
}

func TestFromRecordsFirstRecordWins(t *testing.T) {
	g, _ := FromRecords([]graph.Record{
		{ID: "a", Label: "first", Seed: graph.Point{X: 1, Y: 2}},
		{ID: "a", Label: "second"},
	})
	n, ok := g.Node("a")
	if !ok {
		t.Fatal("Node(a) missing")
	}
	if n.Label != "first" || n.Seed != (graph.Point{X: 1, Y: 2}) {
		t.Errorf("Node(a) = %+v, want first record", *n)
	}
}

func TestFromRecordsDoesNotModifyInput(t *testing.T) {
	records := []graph.Record{
		{ID: "a", Children: []string{"b"}},
		{ID: "b"},
	}
	FromRecords(records)
	if records[1].Parents != nil {
		t.Errorf("records[1].Parents = %v, want nil", records[1].Parents)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		edges   []Edge
		wantErr error
	}{
		{"Chain", []Edge{{"a", "b"}, {"b", "c"}}, nil},
		{"Diamond", []Edge{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, nil},
		{"TwoCycle", []Edge{{"a", "b"}, {"b", "a"}}, ErrGraphHasCycle},
		{"SelfLoop", []Edge{{"a", "a"}}, ErrGraphHasCycle},
		{"Triangle", []Edge{{"a", "b"}, {"b", "c"}, {"c", "a"}}, ErrGraphHasCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, id := range []string{"a", "b", "c", "d"} {
				_ = g.AddNode(Node{ID: id})
			}
			for _, e := range tt.edges {
				if err := g.AddEdge(e); err != nil {
					t.Fatalf("AddEdge(%v) = %v", e, err)
				}
			}
			if err := g.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetDepthsAndBands(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	g.SetDepths(map[string]int{"a": 0, "c": 1, "b": 1, "ghost": 4})

	bands := g.NodesAtDepth()
	if len(bands) != 2 {
		t.Fatalf("NodesAtDepth() has %d bands, want 2", len(bands))
	}
	if !slices.Equal(bands[1], []string{"b", "c"}) {
		t.Errorf("band 1 = %v, want [b c]", bands[1])
	}
}

func TestCountLayerCrossings(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "x", "y", "z"} {
		_ = g.AddNode(Node{ID: id})
	}
	// a->z, b->y, c->x: every pair crosses.
	_ = g.AddEdge(Edge{From: "a", To: "z"})
	_ = g.AddEdge(Edge{From: "b", To: "y"})
	_ = g.AddEdge(Edge{From: "c", To: "x"})

	if got := CountLayerCrossings(g, []string{"a", "b", "c"}, []string{"x", "y", "z"}); got != 3 {
		t.Errorf("CountLayerCrossings() = %d, want 3", got)
	}
	if got := CountLayerCrossings(g, []string{"a", "b", "c"}, []string{"z", "y", "x"}); got != 0 {
		t.Errorf("CountLayerCrossings(reversed) = %d, want 0", got)
	}
	if got := CountLayerCrossings(g, nil, []string{"x"}); got != 0 {
		t.Errorf("CountLayerCrossings(empty) = %d, want 0", got)
	}
}
