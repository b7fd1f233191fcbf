// Package dag provides the prerequisite graph behind perk tree layout.
//
// # Overview
//
// A perk tree is described by flat records, each naming its parents and
// children. This package turns those records into a directed graph with a
// strict iteration order: adjacency lists are sorted by ID and deduplicated,
// and every accessor that returns a collection returns it sorted. Layout code
// built on top of it never depends on map iteration order, which is what
// makes repeated layouts of the same input byte-identical.
//
// # Building a Graph
//
// [FromRecords] is the usual entry point. An edge exists when either
// endpoint declares it, references to unknown IDs are dropped, and duplicate
// IDs keep the first record. The returned [BuildStats] reports what was
// discarded so callers can surface it:
//
//	g, stats := dag.FromRecords(records)
//	if stats.IgnoredReferences > 0 {
//	    logger.Warn("dangling references", "count", stats.IgnoredReferences)
//	}
//
// Graphs can also be assembled by hand with [New], [DAG.AddNode] and
// [DAG.AddEdge].
//
// # Cycles
//
// Source data is not guaranteed to be acyclic. The graph accepts cycles and
// self loops; [DAG.Validate] reports [ErrGraphHasCycle] when one exists. The
// transform subpackage locates the offending back edges.
//
// # Depth Bands
//
// Each node carries a Depth assigned by layering (see the transform
// subpackage). [DAG.NodesAtDepth] groups nodes into bands and
// [CountCrossings] counts edge crossings between consecutive bands for a
// given left-to-right ordering.
package dag
