package transform

import (
	"slices"
	"testing"
)

func TestAssignDepths(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		roots []string
		want  map[string]int
	}{
		{
			name:  "Chain",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			roots: []string{"a"},
			want:  map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:  "Diamond",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}},
			roots: []string{"a"},
			want:  map[string]int{"a": 0, "b": 1, "c": 1, "d": 2},
		},
		{
			// a->c shortcut puts c at 1 by BFS; repair moves it below b.
			name:  "Shortcut",
			ids:   []string{"a", "b", "c"},
			edges: [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}},
			roots: []string{"a"},
			want:  map[string]int{"a": 0, "b": 1, "c": 2},
		},
		{
			name:  "TwoRoots",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "c"}, {"b", "d"}, {"d", "c"}},
			roots: []string{"a", "b"},
			want:  map[string]int{"a": 0, "b": 0, "c": 2, "d": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			res := AssignDepths(g, tt.ids, tt.roots)
			if !res.Stable {
				t.Error("Stable = false, want true")
			}
			for id, want := range tt.want {
				if got := res.Depth[id]; got != want {
					t.Errorf("depth(%s) = %d, want %d", id, got, want)
				}
			}
			for _, e := range tt.edges {
				if res.Depth[e[1]] <= res.Depth[e[0]] {
					t.Errorf("edge %s->%s not monotonic: %d <= %d", e[0], e[1], res.Depth[e[1]], res.Depth[e[0]])
				}
			}
		})
	}
}

func TestAssignDepths_Unreached(t *testing.T) {
	// r->x and a cycle y<->z feeding x: y and z have parents but no root reaches them.
	ids := []string{"r", "x", "y", "z"}
	g := build(t, ids, [][2]string{{"r", "x"}, {"y", "z"}, {"z", "y"}, {"z", "x"}})

	res := AssignDepths(g, ids, []string{"r"})
	if !slices.Equal(res.Unreached, []string{"y", "z"}) {
		t.Errorf("Unreached = %v, want [y z]", res.Unreached)
	}
	if len(res.Depth) != len(ids) {
		t.Errorf("len(Depth) = %d, want %d", len(res.Depth), len(ids))
	}
}

func TestAssignDepths_SelfLoop(t *testing.T) {
	g := build(t, []string{"a"}, [][2]string{{"a", "a"}})

	res := AssignDepths(g, []string{"a"}, []string{"a"})
	if res.Depth["a"] != 0 {
		t.Errorf("depth(a) = %d, want 0", res.Depth["a"])
	}
}

func TestAssignDepths_CycleBelowRoot(t *testing.T) {
	ids := []string{"a", "b", "c"}
	g := build(t, ids, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "c"}, {"c", "b"}})

	res := AssignDepths(g, ids, []string{"a"})
	if res.Depth["b"] <= res.Depth["a"] || res.Depth["c"] <= res.Depth["a"] {
		t.Errorf("depths = %v, want b and c below a", res.Depth)
	}
}

func TestAssignDepths_Unstable(t *testing.T) {
	// Every node has two parents, both on the cycle, so each pass pushes the
	// band further down.
	ids := []string{"a", "b", "c"}
	g := build(t, ids, [][2]string{
		{"a", "b"}, {"b", "a"},
		{"a", "c"}, {"c", "a"},
		{"b", "c"}, {"c", "b"},
	})

	res := AssignDepths(g, ids, []string{"a"})
	if res.Stable {
		t.Errorf("Stable = true, want false (depths %v)", res.Depth)
	}
}
