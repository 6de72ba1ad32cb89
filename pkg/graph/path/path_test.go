package path

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strconv"
	"testing"

	gonumpath "gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/modalroute/pkg/graph"
)

// scalarGraph builds a graph whose arcs carry the same value in both
// dimensions.
func scalarGraph(t *testing.T, vertices []string, arcs [][3]string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, v := range vertices {
		if err := g.AddVertex(v); err != nil {
			t.Fatal(err)
		}
	}
	for _, a := range arcs {
		w, err := strconv.ParseFloat(a[2], 64)
		if err != nil {
			t.Fatal(err)
		}
		if err := g.AddArc(a[0], a[1], graph.Weight{Time: w, Cost: w}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func sixVertexGraph(t *testing.T) *graph.Graph {
	return scalarGraph(t,
		[]string{"1", "2", "3", "4", "5", "6"},
		[][3]string{
			{"1", "2", "30"}, {"1", "4", "50"}, {"1", "5", "40"}, {"1", "6", "100"},
			{"2", "3", "40"}, {"3", "5", "10"}, {"3", "6", "30"}, {"4", "3", "10"},
			{"5", "4", "20"}, {"5", "6", "70"},
		})
}

func TestShortestPathSixVertices(t *testing.T) {
	g := sixVertexGraph(t)

	for _, dim := range graph.Dimensions {
		t.Run(dim.String(), func(t *testing.T) {
			p, err := ShortestPath(context.Background(), g, "1", "6", dim)
			if err != nil {
				t.Fatal(err)
			}
			if want := []string{"1", "4", "3", "6"}; !slices.Equal(p.Vertices, want) {
				t.Errorf("path = %v, want %v", p.Vertices, want)
			}
			if p.Total != 90 {
				t.Errorf("total = %v, want 90", p.Total)
			}
		})
	}
}

func TestShortestPathSameVertex(t *testing.T) {
	g := sixVertexGraph(t)
	for _, v := range g.Vertices() {
		p, err := ShortestPath(context.Background(), g, v, v, graph.Time)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(p.Vertices, []string{v}) || p.Total != 0 {
			t.Errorf("ShortestPath(%s,%s) = %+v, want [%s] 0", v, v, p, v)
		}
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := sixVertexGraph(t)

	// Nothing points back at 1.
	p, err := ShortestPath(context.Background(), g, "6", "1", graph.Cost)
	if err != nil {
		t.Fatal(err)
	}
	if p.Reachable() || !math.IsInf(p.Total, 1) || len(p.Vertices) != 0 {
		t.Errorf("ShortestPath(6,1) = %+v, want empty path with +Inf", p)
	}
}

func TestShortestPathUnknownVertex(t *testing.T) {
	g := sixVertexGraph(t)
	tests := []struct{ source, target string }{
		{"X", "1"},
		{"1", "X"},
		{"X", "X"},
	}
	for _, tt := range tests {
		_, err := ShortestPath(context.Background(), g, tt.source, tt.target, graph.Time)
		if !errors.Is(err, graph.ErrUnknownVertex) {
			t.Errorf("ShortestPath(%s,%s) error = %v, want ErrUnknownVertex", tt.source, tt.target, err)
		}
	}

	if _, err := ShortestPath(context.Background(), nil, "1", "2", graph.Time); !errors.Is(err, ErrNilGraph) {
		t.Errorf("nil graph error = %v, want ErrNilGraph", err)
	}
}

func TestShortestPathDimensions(t *testing.T) {
	g := graph.New()
	for _, v := range []string{"A", "B", "C"} {
		_ = g.AddVertex(v)
	}
	_ = g.AddArc("A", "C", graph.Weight{Time: 1, Cost: 50})
	_ = g.AddArc("A", "B", graph.Weight{Time: 5, Cost: 1})
	_ = g.AddArc("B", "C", graph.Weight{Time: 5, Cost: 1})

	fast, _ := ShortestPath(context.Background(), g, "A", "C", graph.Time)
	cheap, _ := ShortestPath(context.Background(), g, "A", "C", graph.Cost)

	if !slices.Equal(fast.Vertices, []string{"A", "C"}) || fast.Total != 1 {
		t.Errorf("time path = %+v", fast)
	}
	if !slices.Equal(cheap.Vertices, []string{"A", "B", "C"}) || cheap.Total != 2 {
		t.Errorf("cost path = %+v", cheap)
	}
}

// Equal tentative distances resolve to the vertex scanned last.
func TestShortestPathTieBreak(t *testing.T) {
	arcs := [][3]string{
		{"S", "A", "1"}, {"S", "B", "1"},
		{"A", "T", "1"}, {"B", "T", "1"},
	}
	tests := []struct {
		order []string
		want  []string
	}{
		{[]string{"S", "A", "B", "T"}, []string{"S", "B", "T"}},
		{[]string{"S", "B", "A", "T"}, []string{"S", "A", "T"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.order), func(t *testing.T) {
			g := scalarGraph(t, tt.order, arcs)
			for i := 0; i < 5; i++ {
				p, err := ShortestPath(context.Background(), g, "S", "T", graph.Time)
				if err != nil {
					t.Fatal(err)
				}
				if !slices.Equal(p.Vertices, tt.want) {
					t.Fatalf("path = %v, want %v", p.Vertices, tt.want)
				}
			}
		})
	}
}

func TestShortestPathIgnoresDanglingArcs(t *testing.T) {
	g := scalarGraph(t, []string{"A", "B", "C"}, [][3]string{{"A", "B", "1"}, {"A", "C", "5"}})
	if err := g.RemoveVertex("B"); err != nil {
		t.Fatal(err)
	}
	p, err := ShortestPath(context.Background(), g, "A", "C", graph.Time)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(p.Vertices, []string{"A", "C"}) || p.Total != 5 {
		t.Errorf("path = %+v", p)
	}
}

func TestShortestPathCancelled(t *testing.T) {
	g := sixVertexGraph(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ShortestPath(ctx, g, "1", "6", graph.Time); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSearchTree(t *testing.T) {
	g := sixVertexGraph(t)
	tree, err := Search(context.Background(), g, "1", graph.Time)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]float64{"1": 0, "2": 30, "3": 60, "4": 50, "5": 40, "6": 90}
	for v, d := range want {
		if got := tree.Distance(v); got != d {
			t.Errorf("Distance(%s) = %v, want %d", v, got, int(d))
		}
	}
	if p, ok := tree.Predecessor("3"); !ok || p != "4" {
		t.Errorf("Predecessor(3) = %q, %v; want 4", p, ok)
	}
	if !math.IsInf(tree.Distance("nope"), 1) {
		t.Error("Distance of unknown vertex should be +Inf")
	}
}

// randomGraph builds a reproducible graph with small integer weights so
// that float sums are exact.
func randomGraph(seed int64, n int, density float64) *graph.Graph {
	rng := rand.New(rand.NewSource(seed))
	g := graph.New()
	for i := 0; i < n; i++ {
		_ = g.AddVertex(strconv.Itoa(i))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || rng.Float64() > density {
				continue
			}
			w := graph.Weight{Time: float64(rng.Intn(20)), Cost: float64(rng.Intn(50))}
			_ = g.AddArc(strconv.Itoa(i), strconv.Itoa(j), w)
		}
	}
	return g
}

func TestShortestPathProperties(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 8; seed++ {
		g := randomGraph(seed, 12, 0.2)
		vertices := g.Vertices()

		for _, dim := range graph.Dimensions {
			for _, a := range vertices {
				for _, b := range vertices {
					p, err := ShortestPath(ctx, g, a, b, dim)
					if err != nil {
						t.Fatal(err)
					}
					if !p.Reachable() {
						if len(p.Vertices) != 0 {
							t.Fatalf("unreachable %s->%s has vertices %v", a, b, p.Vertices)
						}
						continue
					}

					// Every hop is an arc and the hops sum to the total.
					sum := 0.0
					for i := 1; i < len(p.Vertices); i++ {
						w, ok := g.Weight(p.Vertices[i-1], p.Vertices[i])
						if !ok {
							t.Fatalf("seed %d: %s->%s path uses missing arc %s->%s", seed, a, b, p.Vertices[i-1], p.Vertices[i])
						}
						sum += w.Along(dim)
					}
					if sum != p.Total {
						t.Fatalf("seed %d %s: %s->%s sum %v != total %v", seed, dim, a, b, sum, p.Total)
					}

					// Sub-paths through any intermediate vertex are optimal.
					for _, m := range p.Vertices {
						am, _ := ShortestPath(ctx, g, a, m, dim)
						mb, _ := ShortestPath(ctx, g, m, b, dim)
						if am.Total+mb.Total != p.Total {
							t.Fatalf("seed %d %s: %s->%s->%s = %v+%v, want %v", seed, dim, a, m, b, am.Total, mb.Total, p.Total)
						}
					}
				}
			}
		}
	}
}

// Totals agree with gonum's heap-based Dijkstra.
func TestShortestPathMatchesGonum(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 10; seed++ {
		g := randomGraph(seed, 15, 0.25)

		for _, dim := range graph.Dimensions {
			ref := simple.NewWeightedDirectedGraph(0, math.Inf(1))
			for i := range g.Vertices() {
				ref.AddNode(simple.Node(i))
			}
			for _, a := range g.AllArcs() {
				from, _ := strconv.Atoi(a.From)
				to, _ := strconv.Atoi(a.To)
				ref.SetWeightedEdge(ref.NewWeightedEdge(simple.Node(from), simple.Node(to), a.Weight.Along(dim)))
			}

			for i := range g.Vertices() {
				shortest := gonumpath.DijkstraFrom(simple.Node(i), ref)
				for j := range g.Vertices() {
					p, err := ShortestPath(ctx, g, strconv.Itoa(i), strconv.Itoa(j), dim)
					if err != nil {
						t.Fatal(err)
					}
					if want := shortest.WeightTo(int64(j)); p.Total != want {
						t.Fatalf("seed %d %s %d->%d: total %v, gonum %v", seed, dim, i, j, p.Total, want)
					}
				}
			}
		}
	}
}
