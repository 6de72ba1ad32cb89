// Package graph provides the weighted directed graph that route searches
// run against.
//
// # Overview
//
// Every arc carries a two-dimensional [Weight]: a travel time and a
// monetary cost. Searches pick one component with a [Dimension] and
// minimize it; the two dimensions are never combined.
//
// Vertices are plain string labels. Multimodal locations use a naming
// convention rather than a vertex type: a location X may appear as XR
// (reachable only by the restricted mode) and XT (transit-capable). The
// graph itself is label-agnostic and case-sensitive; package modal
// interprets the suffixes.
//
// # Basic Usage
//
//	g := graph.New()
//	_ = g.AddVertex("A")
//	_ = g.AddVertex("B")
//	_ = g.AddArc("A", "B", graph.Weight{Time: 10, Cost: 100})
//	fmt.Print(g.Render())
//
// # Invariants
//
// Labels are unique, arcs may only join present vertices, and at most one
// arc exists per ordered pair. Violations are reported with the sentinel
// errors declared in this package and never mutate the graph.
//
// [Graph.RemoveVertex] only refuses vertices that still have outgoing
// arcs. Arcs from other vertices into the removed label are kept and
// become dangling; [Graph.Validate] reports them.
//
// # Ordering
//
// Vertices and outgoing arcs are enumerated in insertion order. The
// shortest-path engine relies on this to make its tie-break reproducible.
package graph
