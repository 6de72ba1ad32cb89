package graph

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func newTestGraph(t *testing.T, labels ...string) *Graph {
	t.Helper()
	g := New()
	for _, l := range labels {
		if err := g.AddVertex(l); err != nil {
			t.Fatalf("AddVertex(%q): %v", l, err)
		}
	}
	return g
}

func TestAddVertex(t *testing.T) {
	g := New()
	if err := g.AddVertex("A"); err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	if !g.HasVertex("A") {
		t.Error("HasVertex(A) = false after AddVertex")
	}
	if g.OutDegree("A") != 0 {
		t.Errorf("OutDegree(A) = %d, want 0", g.OutDegree("A"))
	}

	if err := g.AddVertex("A"); !errors.Is(err, ErrDuplicateVertex) {
		t.Errorf("duplicate AddVertex error = %v, want ErrDuplicateVertex", err)
	}
	if g.VertexCount() != 1 {
		t.Errorf("VertexCount = %d after rejected duplicate, want 1", g.VertexCount())
	}

	if err := g.AddVertex(""); !errors.Is(err, ErrInvalidLabel) {
		t.Errorf("AddVertex(\"\") error = %v, want ErrInvalidLabel", err)
	}
}

func TestAddRemoveVertexRoundTrip(t *testing.T) {
	g := newTestGraph(t, "A", "B")
	before := g.Vertices()

	if err := g.AddVertex("C"); err != nil {
		t.Fatal(err)
	}
	if err := g.RemoveVertex("C"); err != nil {
		t.Fatalf("RemoveVertex: %v", err)
	}

	if got := g.Vertices(); !slices.Equal(got, before) {
		t.Errorf("Vertices = %v, want %v", got, before)
	}
}

func TestRemoveVertexErrors(t *testing.T) {
	g := newTestGraph(t, "A", "B")
	if err := g.AddArc("A", "B", Weight{Time: 1, Cost: 1}); err != nil {
		t.Fatal(err)
	}
	rendered := g.Render()

	if err := g.RemoveVertex("A"); !errors.Is(err, ErrVertexHasOutgoingArcs) {
		t.Errorf("RemoveVertex(A) error = %v, want ErrVertexHasOutgoingArcs", err)
	}
	if err := g.RemoveVertex("Z"); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("RemoveVertex(Z) error = %v, want ErrUnknownVertex", err)
	}
	if g.Render() != rendered {
		t.Errorf("graph changed after failed removals:\n%s\nwant:\n%s", g.Render(), rendered)
	}
}

// Removing the target of an arc is allowed; the arc stays behind.
func TestRemoveVertexLeavesIncomingArcs(t *testing.T) {
	g := newTestGraph(t, "A", "B")
	if err := g.AddArc("A", "B", Weight{Time: 1, Cost: 2}); err != nil {
		t.Fatal(err)
	}

	if err := g.RemoveVertex("B"); err != nil {
		t.Fatalf("RemoveVertex(B) = %v, want nil (incoming arcs are not checked)", err)
	}
	if g.HasVertex("B") {
		t.Error("B still present")
	}
	if !g.HasArc("A", "B") {
		t.Error("arc A->B should remain recorded after removing B")
	}
	if err := g.Validate(); !errors.Is(err, ErrDanglingArc) {
		t.Errorf("Validate = %v, want ErrDanglingArc", err)
	}
	if err := g.RemoveVertex("A"); !errors.Is(err, ErrVertexHasOutgoingArcs) {
		t.Errorf("RemoveVertex(A) = %v, want ErrVertexHasOutgoingArcs", err)
	}
}

func TestAddArc(t *testing.T) {
	g := newTestGraph(t, "A", "B")
	w := Weight{Time: 10, Cost: 100}

	if err := g.AddArc("A", "B", w); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	if got, ok := g.Weight("A", "B"); !ok || got != w {
		t.Errorf("Weight(A,B) = %v, %v; want %v, true", got, ok, w)
	}
	if g.HasArc("B", "A") {
		t.Error("arcs must be directed")
	}

	tests := []struct {
		name     string
		from, to string
		want     error
	}{
		{"duplicate", "A", "B", ErrDuplicateArc},
		{"unknown source", "X", "B", ErrUnknownVertex},
		{"unknown target", "A", "X", ErrUnknownVertex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddArc(tt.from, tt.to, Weight{Time: 1}); !errors.Is(err, tt.want) {
				t.Errorf("AddArc(%s,%s) = %v, want %v", tt.from, tt.to, err, tt.want)
			}
		})
	}

	if got, _ := g.Weight("A", "B"); got != w {
		t.Errorf("duplicate AddArc overwrote weight: %v", got)
	}
	if g.ArcCount() != 1 {
		t.Errorf("ArcCount = %d, want 1", g.ArcCount())
	}
}

func TestRemoveArc(t *testing.T) {
	g := newTestGraph(t, "A", "B", "C")
	_ = g.AddArc("A", "B", Weight{Time: 1, Cost: 1})
	_ = g.AddArc("A", "C", Weight{Time: 2, Cost: 2})

	if err := g.RemoveArc("A", "B"); err != nil {
		t.Fatalf("RemoveArc: %v", err)
	}
	if g.HasArc("A", "B") {
		t.Error("arc A->B still present")
	}
	if g.ArcCount() != 1 {
		t.Errorf("ArcCount = %d, want 1", g.ArcCount())
	}

	if err := g.RemoveArc("A", "B"); !errors.Is(err, ErrUnknownArc) {
		t.Errorf("second RemoveArc = %v, want ErrUnknownArc", err)
	}
	if err := g.RemoveArc("A", "Z"); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("RemoveArc(A,Z) = %v, want ErrUnknownVertex", err)
	}
	if err := g.RemoveArc("Z", "A"); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("RemoveArc(Z,A) = %v, want ErrUnknownVertex", err)
	}

	// After the last arc goes the vertex becomes removable.
	_ = g.RemoveArc("A", "C")
	if err := g.RemoveVertex("A"); err != nil {
		t.Errorf("RemoveVertex(A) after removing arcs = %v", err)
	}
}

func TestInsertionOrder(t *testing.T) {
	g := newTestGraph(t, "C", "A", "B")
	_ = g.AddArc("C", "B", Weight{})
	_ = g.AddArc("C", "A", Weight{})

	if got, want := g.Vertices(), []string{"C", "A", "B"}; !slices.Equal(got, want) {
		t.Errorf("Vertices = %v, want %v", got, want)
	}

	var dests []string
	for _, a := range g.Arcs("C") {
		dests = append(dests, a.To)
	}
	if want := []string{"B", "A"}; !slices.Equal(dests, want) {
		t.Errorf("Arcs(C) order = %v, want %v", dests, want)
	}
}

func TestRender(t *testing.T) {
	g := newTestGraph(t, "A", "B", "C", "D")
	_ = g.AddArc("A", "B", Weight{Time: 10, Cost: 100})
	_ = g.AddArc("B", "C", Weight{Time: 25, Cost: 15})
	_ = g.AddArc("B", "D", Weight{Time: 30, Cost: 11})
	_ = g.AddArc("D", "C", Weight{Time: 12.5, Cost: 12})

	want := "A -> B:[10, 100]\n" +
		"B -> C:[25, 15] D:[30, 11]\n" +
		"C ->\n" +
		"D -> C:[12.5, 12]\n"
	if got := g.Render(); got != want {
		t.Errorf("Render =\n%s\nwant:\n%s", got, want)
	}

	// Deterministic across calls.
	if g.Render() != want {
		t.Error("Render is not stable")
	}
}

func TestClone(t *testing.T) {
	g := newTestGraph(t, "A", "B")
	_ = g.AddArc("A", "B", Weight{Time: 1, Cost: 2})

	c := g.Clone()
	_ = c.AddVertex("C")
	_ = c.AddArc("B", "C", Weight{})

	if g.HasVertex("C") || g.HasArc("B", "C") {
		t.Error("mutating the clone affected the original")
	}
	if c.Render() == g.Render() {
		t.Error("clone should have diverged")
	}
	if got := c.ArcCount(); got != 2 {
		t.Errorf("clone ArcCount = %d, want 2", got)
	}
}

func TestAllArcs(t *testing.T) {
	g := newTestGraph(t, "A", "B", "C")
	_ = g.AddArc("B", "C", Weight{Time: 2})
	_ = g.AddArc("A", "C", Weight{Time: 1})

	arcs := g.AllArcs()
	if len(arcs) != 2 {
		t.Fatalf("len(AllArcs) = %d, want 2", len(arcs))
	}
	if arcs[0].From != "A" || arcs[1].From != "B" {
		t.Errorf("AllArcs not grouped by vertex order: %+v", arcs)
	}
}

func TestDimension(t *testing.T) {
	w := Weight{Time: 3, Cost: 7}
	if w.Along(Time) != 3 || w.Along(Cost) != 7 {
		t.Errorf("Along = %v/%v, want 3/7", w.Along(Time), w.Along(Cost))
	}

	for _, d := range Dimensions {
		got, err := ParseDimension(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDimension(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDimension("distance"); err == nil {
		t.Error("ParseDimension(distance) should fail")
	}
}

func TestPathReachable(t *testing.T) {
	p := Unreachable()
	if p.Reachable() {
		t.Error("Unreachable().Reachable() = true")
	}
	if !math.IsInf(p.Total, 1) || p.Vertices != nil {
		t.Errorf("Unreachable() = %+v", p)
	}
	if !(Path{Vertices: []string{"A"}}).Reachable() {
		t.Error("zero-cost path should be reachable")
	}
}
