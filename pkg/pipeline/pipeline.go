// Package pipeline wires loading, route search, caching and rendering
// together for the command-line and HTTP front ends.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	g, err := runner.Load(ctx, "grafo.txt", pkgio.LoadOptions{Uppercase: true})
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Query(ctx, g, pipeline.Query{From: "A", To: "B"})
//	fmt.Println(res.Time.Path.Vertices, res.Cost.Path.Vertices)
//
// The two dimensions are searched concurrently. Each result is cached
// under a key derived from the graph's content hash, so a later query on
// an unchanged graph file is answered from the cache.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/modalroute/pkg/graph"
	"github.com/matzehuels/modalroute/pkg/graph/modal"
	pkgio "github.com/matzehuels/modalroute/pkg/io"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

// Graph is a loaded graph together with where it came from and its
// content hash.
type Graph struct {
	*graph.Graph
	Source string       // file path, or a caller-chosen name
	Format pkgio.Format // format it was decoded from
	Hash   string       // SHA-256 of the rendered graph
}

// Query asks for both optimal routes between two logical locations.
type Query struct {
	From string `json:"from"`
	To   string `json:"to"`

	// Uppercase normalizes both endpoints before searching.
	Uppercase bool `json:"uppercase,omitempty"`

	// Refresh bypasses cached results and overwrites them.
	Refresh bool `json:"refresh,omitempty"`
}

func (q Query) normalized() Query {
	q.From, q.To = strings.TrimSpace(q.From), strings.TrimSpace(q.To)
	if q.Uppercase {
		q.From, q.To = strings.ToUpper(q.From), strings.ToUpper(q.To)
	}
	return q
}

// Result holds the answer to one [Query].
type Result struct {
	ID        string      // unique query id
	GraphHash string      // hash of the graph searched
	From      string      // normalized origin
	To        string      // normalized destination
	Time      modal.Route // minimum-time route
	Cost      modal.Route // minimum-cost route
	Asked     Query       // endpoints as the caller typed them
	Stats     Stats
	CacheInfo CacheInfo
}

// Route returns the route for dim.
func (r *Result) Route(dim graph.Dimension) modal.Route {
	if dim == graph.Cost {
		return r.Cost
	}
	return r.Time
}

// Entry converts the result into a result log entry. The endpoints are
// echoed as typed, even when they were uppercased for the search.
func (r *Result) Entry() resultlog.Entry {
	from, to := r.Asked.From, r.Asked.To
	if from == "" && to == "" {
		from, to = r.From, r.To
	}
	return resultlog.Entry{From: from, To: to, Time: r.Time.Path, Cost: r.Cost.Path}
}

// Stats contains query execution statistics.
type Stats struct {
	Vertices   int
	Arcs       int
	SearchTime time.Duration
}

// CacheInfo tracks which dimensions were served from the cache.
type CacheInfo struct {
	TimeHit bool
	CostHit bool
}

// Render formats accepted by [Runner.Render].
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
}

// ValidateFormat checks that a render format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	Format string

	// From and To, when both set, highlight the best route along
	// Dimension.
	From      string
	To        string
	Dimension graph.Dimension
	Uppercase bool

	HideWeights bool
}

func (o RenderOptions) highlight() bool { return o.From != "" && o.To != "" }
