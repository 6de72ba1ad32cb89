// Package path computes single-pair shortest paths over a [graph.Graph].
//
// The engine is the dense O(V²) form of Dijkstra's algorithm: each round
// scans every unsettled vertex for the minimum tentative distance instead
// of using a priority queue. The scan order is the graph's vertex
// insertion order and a later vertex replaces the running minimum when its
// distance is equal (a <= comparison). Together these fix which of several
// equal-cost paths is returned, so results are reproducible across runs.
//
// Weights must be non-negative. Negative weights are neither detected nor
// clamped; the result is unspecified.
package path

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/matzehuels/modalroute/pkg/graph"
)

// ErrNilGraph is returned when a nil graph is passed to the engine.
var ErrNilGraph = errors.New("path: graph is nil")

// Tree holds the distances and predecessors computed from one source.
type Tree struct {
	Source    string
	Dimension graph.Dimension

	dist map[string]float64
	prev map[string]string
}

// Distance returns the minimum total from the source to v, or +Inf if v
// is unreachable or unknown. The source's own distance is 0.
func (t *Tree) Distance(v string) float64 {
	if v == t.Source {
		return 0
	}
	if d, ok := t.dist[v]; ok {
		return d
	}
	return math.Inf(1)
}

// Predecessor returns the vertex v was last relaxed from.
func (t *Tree) Predecessor(v string) (string, bool) {
	p, ok := t.prev[v]
	return p, ok
}

// PathTo reconstructs the path from the source to target by walking
// predecessors backwards.
func (t *Tree) PathTo(target string) graph.Path {
	if target == t.Source {
		return graph.Path{Vertices: []string{target}}
	}
	d := t.Distance(target)
	if math.IsInf(d, 1) {
		return graph.Unreachable()
	}
	vertices := []string{target}
	for v := t.prev[target]; v != t.Source; v = t.prev[v] {
		vertices = append(vertices, v)
	}
	vertices = append(vertices, t.Source)
	slices.Reverse(vertices)
	return graph.Path{Vertices: vertices, Total: d}
}

// ShortestPath returns the minimum-total path from source to target along
// dim. If source == target it returns ([source], 0) without searching. An
// unreachable target yields [graph.Unreachable] and a nil error.
//
// Returns an error wrapping [graph.ErrUnknownVertex] if either endpoint is
// absent, or ctx.Err() if ctx is cancelled mid-search.
func ShortestPath(ctx context.Context, g *graph.Graph, source, target string, dim graph.Dimension) (graph.Path, error) {
	if g == nil {
		return graph.Path{}, ErrNilGraph
	}
	if !g.HasVertex(source) {
		return graph.Path{}, fmt.Errorf("%w: %s", graph.ErrUnknownVertex, source)
	}
	if !g.HasVertex(target) {
		return graph.Path{}, fmt.Errorf("%w: %s", graph.ErrUnknownVertex, target)
	}
	if source == target {
		return graph.Path{Vertices: []string{source}}, nil
	}

	t, err := Search(ctx, g, source, dim)
	if err != nil {
		return graph.Path{}, err
	}
	return t.PathTo(target), nil
}

// Search settles every vertex of g from source and returns the resulting
// tree. It is the full computation behind [ShortestPath].
func Search(ctx context.Context, g *graph.Graph, source string, dim graph.Dimension) (*Tree, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.HasVertex(source) {
		return nil, fmt.Errorf("%w: %s", graph.ErrUnknownVertex, source)
	}

	vertices := g.Vertices()
	settled := make(map[string]bool, len(vertices))
	dist := make(map[string]float64, len(vertices))
	prev := make(map[string]string, len(vertices))

	// The source keeps an infinite distance. Every unsettled vertex
	// compares <= against it, so the scan below always picks one.
	settled[source] = true
	for _, v := range vertices {
		if w, ok := g.Weight(source, v); ok && v != source {
			dist[v] = w.Along(dim)
			prev[v] = source
		} else {
			dist[v] = math.Inf(1)
		}
	}

	for len(settled) != len(vertices) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := source
		for _, v := range vertices {
			if !settled[v] && dist[v] <= dist[current] {
				current = v
			}
		}
		settled[current] = true

		for _, v := range vertices {
			if settled[v] {
				continue
			}
			w, ok := g.Weight(current, v)
			if !ok {
				continue
			}
			if alt := dist[current] + w.Along(dim); alt < dist[v] {
				dist[v] = alt
				prev[v] = current
			}
		}
	}

	delete(dist, source)
	return &Tree{Source: source, Dimension: dim, dist: dist, prev: prev}, nil
}
