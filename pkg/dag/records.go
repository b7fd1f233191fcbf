package dag

import "github.com/BardicNoel/perktree/pkg/graph"

// BuildStats summarizes what [FromRecords] discarded while building a graph.
type BuildStats struct {
	// IgnoredReferences counts parent/child references to unknown IDs.
	IgnoredReferences int

	// DuplicateIDs lists IDs seen more than once, in input order. The first
	// record with a given ID wins.
	DuplicateIDs []string

	// EmptyIDs counts records without an ID.
	EmptyIDs int
}

// FromRecords builds a graph from source records.
//
// An edge parent→child is present when either side declares it: the parent
// lists the child in Children, or the child lists the parent in Parents.
// The records themselves are never modified, so an inconsistent
// Parents/Children pair is tolerated rather than repaired.
//
// References to IDs that no record defines are dropped and counted.
// FromRecords never fails; malformed input degrades to a smaller graph.
func FromRecords(records []graph.Record) (*DAG, BuildStats) {
	g := New()
	var stats BuildStats

	kept := make([]*graph.Record, 0, len(records))
	for i := range records {
		r := &records[i]
		switch err := g.AddNode(Node{ID: r.ID, Label: r.DisplayLabel(), Seed: r.Seed}); err {
		case nil:
			kept = append(kept, r)
		case ErrInvalidNodeID:
			stats.EmptyIDs++
		case ErrDuplicateNodeID:
			stats.DuplicateIDs = append(stats.DuplicateIDs, r.ID)
		}
	}

	for _, r := range kept {
		for _, c := range r.Children {
			if g.AddEdge(Edge{From: r.ID, To: c}) != nil {
				stats.IgnoredReferences++
			}
		}
		for _, p := range r.Parents {
			if g.AddEdge(Edge{From: p, To: r.ID}) != nil {
				stats.IgnoredReferences++
			}
		}
	}
	return g, stats
}
