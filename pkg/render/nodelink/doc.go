// Package nodelink renders computed perk layouts as node-link diagrams.
//
// # Overview
//
// Unlike a classic Graphviz diagram, the positions here are not chosen by
// Graphviz. [ToDOT] pins every node at the coordinates produced by the layout
// engine and the neato engine only draws boxes and routes edges between them.
//
// # Usage
//
//	l := result.Export()
//	dot := nodelink.ToDOT(l, nodelink.Options{ShowLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - ShowLabels: print labels instead of IDs
//   - FlipY: draw trees growing downward instead of upward
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package nodelink
