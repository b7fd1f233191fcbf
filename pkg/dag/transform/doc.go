// Package transform analyzes a prerequisite graph ahead of layout.
//
// # Overview
//
// The layout engine places each connected component ("tree") on its own and
// needs a vertical band for every node. This package computes both:
//
//   - [Components] groups nodes into trees, ignoring edge direction
//   - [AssignDepths] assigns depth bands within one tree
//   - [Analyze] runs both over a whole graph and records roots
//   - [FindBackEdges] lists the edges that close cycles
//
// # Depth Bands
//
// Depths start at 0 on the roots and are found by breadth-first search, so a
// node first sits at its shortest distance from any root. Nodes with several
// parents are then reconciled to min(parent depths)+1, with at most
// [MaxReconcilePasses] passes; a tree that does not settle is flagged
// Unstable. A final pass in topological order pushes every child at least
// one band below each of its parents.
//
// # Cycles
//
// Nothing here rejects cyclic input. A tree without a parentless node starts
// its search at its smallest ID, nodes only reachable through a cycle are
// reported as Unreached, and [FindBackEdges] names the offending edges
// without touching the graph. Deciding what to do with such trees is left to
// the caller.
package transform
