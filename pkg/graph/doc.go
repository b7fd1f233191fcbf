// Package graph provides serialization types for perk graphs and their layouts.
//
// This package defines the canonical wire format used at the boundary of the
// layout engine: record files read by the CLI, API request and response bodies,
// and cache entries.
//
// # Architecture
//
// The package sits at the serialization boundary between external formats and
// the internal representations:
//
//   - [Record], [Point]: Input records (this package)
//   - pkg/dag.DAG: Internal graph representation
//   - pkg/layout.Result: Computed positions and diagnostics
//   - [Layout]: Serialized layout (this package)
//
// # Record Files
//
// Records can be stored as JSON, TOML or YAML. All formats share the same
// document shape, a list of records under the "records" key:
//
//	{
//	  "records": [
//	    {"id": "alchemy_1", "label": "Alchemy", "children": ["alchemy_2"], "seed": {"x": 0, "y": 0}},
//	    {"id": "alchemy_2", "label": "Physician", "parents": ["alchemy_1"], "seed": {"x": 0, "y": 1}}
//	  ]
//	}
//
// JSON files may also hold a bare array of records. The format is chosen from
// the file extension by [ReadRecordsFile], or explicitly with [ReadRecords].
//
// Records are not validated here beyond decoding: dangling references and
// duplicate ids are tolerated and handled by the layout engine.
//
// # Layout Serialization
//
//	data, _ := graph.MarshalLayout(l)
//	parsed, _ := graph.UnmarshalLayout(data)
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values.
package graph
