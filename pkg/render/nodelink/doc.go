// Package nodelink draws route graphs as node-link diagrams.
//
// # Overview
//
// [ToDOT] turns a [graph.Graph] into Graphviz DOT source. Vertices appear
// as rounded boxes; modal vertices are tinted by suffix so the restricted
// (R) and transit (T) variants of a location are easy to tell apart. Arcs
// are labelled with their "time / cost" weight.
//
// A route can be highlighted by passing its vertex sequence in
// [Options.Highlight]: the arcs along it are drawn thicker and coloured.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: route.Path.Vertices})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process; no external binaries are required.
package nodelink
