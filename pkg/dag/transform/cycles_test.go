package transform

import (
	"testing"

	"github.com/BardicNoel/perktree/pkg/dag"
)

func build(t *testing.T, ids []string, edges [][2]string) *dag.DAG {
	t.Helper()
	g := dag.New()
	for _, id := range ids {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s) = %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(dag.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v) = %v", e, err)
		}
	}
	return g
}

func TestFindBackEdges_NoCycles(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	if got := FindBackEdges(g, nil); len(got) != 0 {
		t.Errorf("FindBackEdges() = %v, want none", got)
	}
}

func TestFindBackEdges_SimpleCycle(t *testing.T) {
	g := build(t, []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	got := FindBackEdges(g, nil)
	if len(got) != 1 || got[0] != [2]string{"b", "a"} {
		t.Errorf("FindBackEdges() = %v, want [[b a]]", got)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (graph must not be modified)", g.EdgeCount())
	}
}

func TestFindBackEdges_TriangleCycle(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	got := FindBackEdges(g, nil)
	if len(got) != 1 || got[0] != [2]string{"c", "a"} {
		t.Errorf("FindBackEdges() = %v, want [[c a]]", got)
	}
}

func TestFindBackEdges_MultipleCycles(t *testing.T) {
	// Two separate cycles: a<->b and c<->d
	g := build(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}})

	if got := FindBackEdges(g, nil); len(got) != 2 {
		t.Errorf("FindBackEdges() = %v, want 2 edges", got)
	}
	if got := FindBackEdges(g, []string{"c", "d"}); len(got) != 1 || got[0] != [2]string{"d", "c"} {
		t.Errorf("FindBackEdges(c,d) = %v, want [[d c]]", got)
	}
}

func TestFindBackEdges_SelfLoop(t *testing.T) {
	g := build(t, []string{"a"}, [][2]string{{"a", "a"}})

	got := FindBackEdges(g, nil)
	if len(got) != 1 || got[0] != [2]string{"a", "a"} {
		t.Errorf("FindBackEdges() = %v, want [[a a]]", got)
	}
}

func TestFindBackEdges_DiamondNoCycle(t *testing.T) {
	//   a
	//  / \
	// b   c
	//  \ /
	//   d
	g := build(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}})

	if got := FindBackEdges(g, nil); len(got) != 0 {
		t.Errorf("FindBackEdges() = %v, want none", got)
	}
}

func TestFindBackEdges_CycleBelowRoot(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}})

	got := FindBackEdges(g, nil)
	if len(got) != 1 || got[0] != [2]string{"d", "b"} {
		t.Errorf("FindBackEdges() = %v, want [[d b]]", got)
	}
}

func TestFindBackEdges_EmptyGraph(t *testing.T) {
	if got := FindBackEdges(dag.New(), nil); len(got) != 0 {
		t.Errorf("FindBackEdges() = %v, want none", got)
	}
}
