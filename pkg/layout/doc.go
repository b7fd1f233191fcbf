// Package layout computes 2D positions for perk graphs.
//
// # Overview
//
// [Compute] takes flat [graph.Record] values and a [Config] and returns one
// positioned [Node] per record. The pipeline runs per connected component
// ("tree"):
//
//  1. Analysis: components, roots and depth bands (see package transform)
//  2. Cycle guard: subtree widths are computed for every node; reaching a
//     node through its own descendants aborts with [ErrCycleDetected]
//  3. Hierarchical placement: roots side by side, each parent centered over
//     the block of its children, depth d at y = -d*VerticalSpacing
//  4. Relaxation: a short repulsion pass between nodes whose centers are
//     closer than 0.4*HorizontalSpacing, then a mild pull back toward the
//     pre-relaxation position, never letting a node sink below its band
//  5. Packing: trees side by side from left to right, each stretched by its
//     share of the combined root band
//
// A tree that fails the cycle guard skips step 3 and is seeded from the
// records' Seed grid positions instead, then relaxed with stronger
// repulsion, more iterations and an explicit vertical separation between
// nodes in reach of each other.
//
// # Multi-Parent Nodes
//
// A node with several parents is owned by the first parent, in ID order,
// one band above it. Only owners reserve width for a child, so shared
// subtrees are allocated once and sit under their owner.
//
// # Determinism
//
// Every loop iterates node IDs in sorted order and relaxation accumulates
// forces before moving nodes. Output depends only on the set of records and
// the configuration, not on record order, and Compute never uses randomness.
//
// # Diagnostics
//
// Compute never fails. Degraded output is reported through [Diagnostics]:
// trees placed by the fallback path, cycle edges, trees zeroed because their
// coordinates were not finite, dangling references and duplicate IDs.
package layout
