package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/modalroute/pkg/graph"
)

func modalGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, v := range []string{"AR", "AT", "BR", "BT"} {
		if err := g.AddVertex(v); err != nil {
			t.Fatal(err)
		}
	}
	arcs := []graph.Arc{
		{From: "AR", To: "BR", Weight: graph.Weight{Time: 10, Cost: 10}},
		{From: "AT", To: "BT", Weight: graph.Weight{Time: 3, Cost: 4}},
	}
	for _, a := range arcs {
		if err := g.AddArc(a.From, a.To, a.Weight); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(modalGraph(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`"AR" [label="AR", fillcolor="#fde2e4"];`,
		`"BT" [label="BT", fillcolor="#e2ecfd"];`,
		`"AT" -> "BT" [label="3 / 4"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "penwidth") {
		t.Error("nothing should be highlighted without a route")
	}
}

func TestToDOTHighlight(t *testing.T) {
	dot := ToDOT(modalGraph(t), Options{Highlight: []string{"AT", "BT"}, HideWeights: true})

	if !strings.Contains(dot, `"AT" -> "BT" [color="#d1495b", penwidth=3];`) {
		t.Errorf("route arc not highlighted:\n%s", dot)
	}
	if !strings.Contains(dot, `"AR" -> "BR";`) {
		t.Errorf("off-route arc should be plain:\n%s", dot)
	}
}

func TestToDOTSkipsDanglingArcs(t *testing.T) {
	g := graph.New()
	_ = g.AddVertex("A")
	_ = g.AddVertex("B")
	_ = g.AddArc("A", "B", graph.Weight{Time: 1, Cost: 1})
	_ = g.RemoveVertex("B")

	if dot := ToDOT(g, Options{}); strings.Contains(dot, "->") {
		t.Errorf("dangling arc rendered:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(modalGraph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
