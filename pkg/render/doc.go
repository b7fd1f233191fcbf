// Package render turns computed perk layouts into drawable artifacts.
//
// The layout engine only produces coordinates; this package and its
// subpackages are examples of downstream collaborators that draw them.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage writes Graphviz DOT with every node pinned to its
// computed position and renders it to SVG in-process:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{ShowLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/BardicNoel/perktree/pkg/render/nodelink
package render
