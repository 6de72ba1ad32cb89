// Package modal finds the best route between two logical locations of a
// multimodal graph.
//
// A logical location X may be represented by two vertices: XR, reachable
// only by the restricted mode, and XT, reachable by any mode. Because the
// optimum may enter or leave through either one, a query is answered by
// searching several (entry, exit) vertex pairs and keeping the best.
package modal

import (
	"context"
	"fmt"

	"github.com/matzehuels/modalroute/pkg/graph"
	"github.com/matzehuels/modalroute/pkg/graph/path"
)

// Suffixes appended to a logical location to name its internal vertices.
const (
	SuffixRestricted = "R"
	SuffixTransit    = "T"
)

// Pair is one (entry, exit) combination of internal vertices to search.
type Pair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (p Pair) String() string { return p.From + "->" + p.To }

// Evaluation is the outcome of searching one candidate pair.
type Evaluation struct {
	Pair Pair
	Path graph.Path
}

// Route is the best path found between two logical locations.
type Route struct {
	Source    string          // logical origin as requested
	Target    string          // logical destination as requested
	Dimension graph.Dimension // component that was minimized
	Pair      Pair            // internal vertices of the winning candidate
	Path      graph.Path      // winning path; unreachable if every candidate was
	Evaluated []Evaluation    // every candidate searched, in evaluation order
}

// Reachable reports whether any candidate connected the two locations.
func (r Route) Reachable() bool { return r.Path.Reachable() }

// Candidates returns the vertex pairs to search between locations v1 and
// v2, in evaluation order:
//
//  1. (v1R, v2R), always
//  2. (v1T, v2R), if v1T exists
//  3. (v1T, v2T) and (v1R, v2T), if both v1T and v2T exist
//
// Pairs with an endpoint missing from g are dropped. When none remain but
// v1 and v2 are themselves vertices, the single pair (v1, v2) is returned
// so that graphs without modal suffixes can still be queried.
func Candidates(g *graph.Graph, v1, v2 string) []Pair {
	fromR, fromT := v1+SuffixRestricted, v1+SuffixTransit
	toR, toT := v2+SuffixRestricted, v2+SuffixTransit

	pairs := []Pair{{fromR, toR}}
	if g.HasVertex(fromT) {
		pairs = append(pairs, Pair{fromT, toR})
		if g.HasVertex(toT) {
			pairs = append(pairs, Pair{fromT, toT}, Pair{fromR, toT})
		}
	}

	present := pairs[:0]
	for _, p := range pairs {
		if g.HasVertex(p.From) && g.HasVertex(p.To) {
			present = append(present, p)
		}
	}
	if len(present) == 0 && g.HasVertex(v1) && g.HasVertex(v2) {
		present = append(present, Pair{v1, v2})
	}
	return present
}

// FindBest searches every candidate pair between v1 and v2 along dim and
// returns the route with the smallest total. Ties keep the earlier
// candidate, so the restricted-mode pair wins when nothing beats it.
//
// Returns an error wrapping [graph.ErrUnknownVertex] if no candidate pair
// exists in g. An unreachable destination is not an error; check
// [Route.Reachable].
func FindBest(ctx context.Context, g *graph.Graph, v1, v2 string, dim graph.Dimension) (Route, error) {
	if g == nil {
		return Route{}, path.ErrNilGraph
	}
	pairs := Candidates(g, v1, v2)
	if len(pairs) == 0 {
		return Route{}, fmt.Errorf("%w: no vertices for %s -> %s", graph.ErrUnknownVertex, v1, v2)
	}

	route := Route{
		Source:    v1,
		Target:    v2,
		Dimension: dim,
		Evaluated: make([]Evaluation, 0, len(pairs)),
	}
	for i, pair := range pairs {
		p, err := path.ShortestPath(ctx, g, pair.From, pair.To, dim)
		if err != nil {
			return Route{}, fmt.Errorf("search %s: %w", pair, err)
		}
		route.Evaluated = append(route.Evaluated, Evaluation{Pair: pair, Path: p})
		if i == 0 || p.Total < route.Path.Total {
			route.Pair = pair
			route.Path = p
		}
	}
	return route, nil
}

// FindMinTimePath returns the minimum-time route between v1 and v2.
func FindMinTimePath(ctx context.Context, g *graph.Graph, v1, v2 string) (Route, error) {
	return FindBest(ctx, g, v1, v2, graph.Time)
}

// FindMinCostPath returns the minimum-cost route between v1 and v2.
func FindMinCostPath(ctx context.Context, g *graph.Graph, v1, v2 string) (Route, error) {
	return FindBest(ctx, g, v1, v2, graph.Cost)
}
