// Package pkg holds the perktree libraries.
//
// # Overview
//
// perktree turns flat perk records (an id, optional parents and children,
// and a coarse seed position) into positioned nodes for a skill-tree view.
// The pkg directory is organized by stage:
//
//  1. [graph] - Wire types: records in, layout out, plus file readers
//  2. [dag] and [dag/transform] - Internal graph, components, depth assignment
//  3. [layout] - The layout engine
//  4. [render/nodelink] - DOT and SVG export with pinned positions
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//
// Supporting packages: [cache], [config], [errors], [observability] and
// [buildinfo].
//
// # Data Flow
//
//	records (JSON / TOML / YAML)
//	         ↓
//	    [dag/transform]   components, depths, cycle checks
//	         ↓
//	    [layout]          widths, placement, relaxation, packing, fallback
//	         ↓
//	    [graph.Layout]    JSON for a downstream renderer
//	         ↓
//	    [render/nodelink] DOT / SVG
//
// # Quick Start
//
//	records, err := graph.ReadRecordsFile("perks.json")
//	if err != nil {
//	    return err
//	}
//	res := layout.Compute(records, layout.DefaultConfig())
//	if res.Diagnostics.UsedFallback() {
//	    log.Warn("cyclic trees placed from seeds", "trees", res.Diagnostics.FallbackTrees)
//	}
//	out := res.Export()
//
// With caching and rendering:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	result, err := runner.Execute(ctx, records, pipeline.Options{Formats: []string{"svg"}})
//
// The engine is pure and synchronous; concurrent calls with distinct inputs
// need no coordination.
package pkg
