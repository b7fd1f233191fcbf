package transform

import (
	"slices"
	"testing"
)

func TestComponents(t *testing.T) {
	g := build(t, []string{"z", "y", "m", "b", "a", "solo"},
		[][2]string{{"z", "a"}, {"y", "b"}, {"m", "b"}})

	got := Components(g)
	want := [][]string{{"a", "z"}, {"b", "m", "y"}, {"solo"}}
	if len(got) != len(want) {
		t.Fatalf("Components() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("Components()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAnalyze(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d", "x", "y"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"x", "y"}, {"y", "x"}})

	a := Analyze(g)
	if len(a.Trees) != 2 {
		t.Fatalf("len(Trees) = %d, want 2", len(a.Trees))
	}

	diamond := a.Trees[0]
	if diamond.First() != "a" || !slices.Equal(diamond.Roots, []string{"a"}) || diamond.SyntheticRoot {
		t.Errorf("diamond tree = %+v", diamond)
	}
	if a.Depth["d"] != 2 {
		t.Errorf("depth(d) = %d, want 2", a.Depth["d"])
	}
	if !a.Roots["a"] || a.Roots["b"] {
		t.Errorf("Roots = %v, want only a (and x)", a.Roots)
	}

	cycle := a.Trees[1]
	if !cycle.SyntheticRoot || !slices.Equal(cycle.Roots, []string{"x"}) {
		t.Errorf("cycle tree = %+v, want synthetic root x", cycle)
	}

	if n, _ := g.Node("d"); n.Depth != 2 {
		t.Errorf("graph node d depth = %d, want 2", n.Depth)
	}
}

func TestAnalyze_Unstable(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{
		{"a", "b"}, {"b", "a"},
		{"a", "c"}, {"c", "a"},
		{"b", "c"}, {"c", "b"},
	})

	a := Analyze(g)
	if len(a.Trees) != 1 || !a.Trees[0].Unstable {
		t.Errorf("Trees = %+v, want one unstable tree", a.Trees)
	}
}
