package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidLabel is returned by [Graph.AddVertex] when the label is empty.
	ErrInvalidLabel = errors.New("vertex label must not be empty")

	// ErrDuplicateVertex is returned by [Graph.AddVertex] when a vertex with
	// the same label already exists. Labels are unique within a graph.
	ErrDuplicateVertex = errors.New("duplicate vertex")

	// ErrUnknownVertex is returned when an operation references a label that
	// is not present in the graph.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrVertexHasOutgoingArcs is returned by [Graph.RemoveVertex] when the
	// vertex still has outgoing arcs recorded against it.
	ErrVertexHasOutgoingArcs = errors.New("vertex has outgoing arcs")

	// ErrDuplicateArc is returned by [Graph.AddArc] when an arc between the
	// same ordered pair already exists.
	ErrDuplicateArc = errors.New("duplicate arc")

	// ErrUnknownArc is returned by [Graph.RemoveArc] when no such arc exists.
	ErrUnknownArc = errors.New("unknown arc")

	// ErrDanglingArc is returned by [Graph.Validate] when an arc points at a
	// vertex that has since been removed.
	ErrDanglingArc = errors.New("arc targets a removed vertex")
)

// Graph is a directed graph whose arcs carry a (time, cost) [Weight].
//
// Vertices and each vertex's outgoing arcs are kept in insertion order.
// That order is part of the contract: [Graph.Vertices], [Graph.Arcs] and
// [Graph.Render] enumerate in it, and the shortest-path scan in package
// path breaks ties by it.
//
// The zero value is not usable - use New. A Graph is safe for concurrent
// reads once built; mutation requires exclusive access.
type Graph struct {
	order []string                     // vertex labels in insertion order
	out   map[string]map[string]Weight // label -> dest -> weight
	arcs  map[string][]string          // label -> dest labels in insertion order
	count int                          // total arc count
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		out:  make(map[string]map[string]Weight),
		arcs: make(map[string][]string),
	}
}

// AddVertex inserts a vertex with an empty outgoing-arc set.
// Returns ErrInvalidLabel for an empty label and ErrDuplicateVertex if
// the label already exists.
func (g *Graph) AddVertex(label string) error {
	if label == "" {
		return ErrInvalidLabel
	}
	if _, exists := g.out[label]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVertex, label)
	}
	g.order = append(g.order, label)
	g.out[label] = make(map[string]Weight)
	g.arcs[label] = nil
	return nil
}

// RemoveVertex removes a vertex that has no outgoing arcs.
// Returns ErrUnknownVertex if the label is absent and
// ErrVertexHasOutgoingArcs if any arc leaves it.
//
// Arcs from other vertices into label are not checked and are left in
// place; they become dangling and are reported by [Graph.Validate].
// Searches ignore them because they only enumerate present vertices.
func (g *Graph) RemoveVertex(label string) error {
	arcs, ok := g.out[label]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, label)
	}
	if len(arcs) > 0 {
		return fmt.Errorf("%w: %s", ErrVertexHasOutgoingArcs, label)
	}
	delete(g.out, label)
	delete(g.arcs, label)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == label })
	return nil
}

// AddArc adds a directed arc from → to carrying w.
// Returns ErrUnknownVertex if either endpoint is absent and ErrDuplicateArc
// if the arc already exists.
func (g *Graph) AddArc(from, to string, w Weight) error {
	if err := g.checkEndpoints(from, to); err != nil {
		return err
	}
	if _, exists := g.out[from][to]; exists {
		return fmt.Errorf("%w: %s->%s", ErrDuplicateArc, from, to)
	}
	g.out[from][to] = w
	g.arcs[from] = append(g.arcs[from], to)
	g.count++
	return nil
}

// RemoveArc removes the arc from → to.
// Returns ErrUnknownVertex if either endpoint is absent and ErrUnknownArc
// if no such arc exists.
func (g *Graph) RemoveArc(from, to string) error {
	if err := g.checkEndpoints(from, to); err != nil {
		return err
	}
	if _, exists := g.out[from][to]; !exists {
		return fmt.Errorf("%w: %s->%s", ErrUnknownArc, from, to)
	}
	delete(g.out[from], to)
	g.arcs[from] = slices.DeleteFunc(g.arcs[from], func(s string) bool { return s == to })
	g.count--
	return nil
}

func (g *Graph) checkEndpoints(from, to string) error {
	if _, ok := g.out[from]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, from)
	}
	if _, ok := g.out[to]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVertex, to)
	}
	return nil
}

// HasArc reports whether to is directly reachable from from by one arc.
// It returns false when from is not in the graph.
func (g *Graph) HasArc(from, to string) bool {
	_, ok := g.out[from][to]
	return ok
}

// HasVertex reports whether label is in the graph.
func (g *Graph) HasVertex(label string) bool {
	_, ok := g.out[label]
	return ok
}

// Weight returns the weight of the arc from → to.
func (g *Graph) Weight(from, to string) (Weight, bool) {
	w, ok := g.out[from][to]
	return w, ok
}

// Vertices returns all labels in insertion order.
// The returned slice is a copy.
func (g *Graph) Vertices() []string { return slices.Clone(g.order) }

// Arcs returns the outgoing arcs of label in insertion order.
// Returns nil if the vertex is absent or has no outgoing arcs.
func (g *Graph) Arcs(label string) []Arc {
	dests := g.arcs[label]
	if len(dests) == 0 {
		return nil
	}
	arcs := make([]Arc, len(dests))
	for i, to := range dests {
		arcs[i] = Arc{From: label, To: to, Weight: g.out[label][to]}
	}
	return arcs
}

// AllArcs returns every arc, grouped by source in vertex insertion order.
func (g *Graph) AllArcs() []Arc {
	arcs := make([]Arc, 0, g.count)
	for _, v := range g.order {
		arcs = append(arcs, g.Arcs(v)...)
	}
	return arcs
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.order) }

// ArcCount returns the number of arcs, including dangling ones.
func (g *Graph) ArcCount() int { return g.count }

// OutDegree returns the number of arcs leaving label.
func (g *Graph) OutDegree(label string) int { return len(g.arcs[label]) }

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	c.order = slices.Clone(g.order)
	c.count = g.count
	for v, dests := range g.out {
		m := make(map[string]Weight, len(dests))
		for to, w := range dests {
			m[to] = w
		}
		c.out[v] = m
		c.arcs[v] = slices.Clone(g.arcs[v])
	}
	return c
}

// Validate returns ErrDanglingArc (wrapped with the offending arc) if any
// arc targets a vertex no longer in the graph.
func (g *Graph) Validate() error {
	for _, v := range g.order {
		for _, to := range g.arcs[v] {
			if _, ok := g.out[to]; !ok {
				return fmt.Errorf("%w: %s->%s", ErrDanglingArc, v, to)
			}
		}
	}
	return nil
}

// Render returns a human-readable listing of the graph, one line per
// vertex in insertion order:
//
//	A -> B:[10, 100] C:[25, 15]
//	B ->
//
// The output is deterministic for a given sequence of mutations.
func (g *Graph) Render() string {
	var b strings.Builder
	for _, v := range g.order {
		b.WriteString(v)
		b.WriteString(" ->")
		for _, to := range g.arcs[v] {
			b.WriteByte(' ')
			b.WriteString(to)
			b.WriteByte(':')
			b.WriteString(g.out[v][to].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
