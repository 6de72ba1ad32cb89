package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/modalroute/pkg/graph"
	"github.com/matzehuels/modalroute/pkg/graph/modal"
)

// Options configures diagram generation.
type Options struct {
	// Highlight is a route to emphasise, as an ordered vertex sequence.
	Highlight []string

	// HideWeights drops arc labels.
	HideWeights bool

	// Direction is the Graphviz rankdir; defaults to LR.
	Direction string
}

const (
	fillRestricted = "#fde2e4"
	fillTransit    = "#e2ecfd"
	highlightColor = "#d1495b"
)

// ToDOT converts g to Graphviz DOT source.
// Dangling arcs are skipped since their target has no node statement.
func ToDOT(g *graph.Graph, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = "LR"
	}

	onRoute := make(map[[2]string]bool, len(opts.Highlight))
	inRoute := make(map[string]bool, len(opts.Highlight))
	for i, v := range opts.Highlight {
		inRoute[v] = true
		if i > 0 {
			onRoute[[2]string{opts.Highlight[i-1], v}] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		attrs := []string{fmt.Sprintf("label=%q", v)}
		if fill := vertexFill(v); fill != "" {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
		if inRoute[v] {
			attrs = append(attrs, fmt.Sprintf("color=%q", highlightColor), "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, a := range g.AllArcs() {
		if !g.HasVertex(a.To) {
			continue
		}
		var attrs []string
		if !opts.HideWeights {
			attrs = append(attrs, fmt.Sprintf("label=%q", weightLabel(a.Weight)))
		}
		if onRoute[[2]string{a.From, a.To}] {
			attrs = append(attrs, fmt.Sprintf("color=%q", highlightColor), "penwidth=3")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", a.From, a.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", a.From, a.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexFill(v string) string {
	switch {
	case len(v) > 1 && strings.HasSuffix(v, modal.SuffixRestricted):
		return fillRestricted
	case len(v) > 1 && strings.HasSuffix(v, modal.SuffixTransit):
		return fillTransit
	}
	return ""
}

func weightLabel(w graph.Weight) string {
	return strconv.FormatFloat(w.Time, 'g', -1, 64) + " / " + strconv.FormatFloat(w.Cost, 'g', -1, 64)
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
