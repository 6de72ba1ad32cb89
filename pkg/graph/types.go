package graph

import (
	"fmt"
	"math"
	"strconv"
)

// Dimension selects which component of an arc [Weight] a search minimizes.
type Dimension int

const (
	// Time minimizes the travel-time component of arc weights.
	Time Dimension = iota
	// Cost minimizes the monetary component of arc weights.
	Cost
)

// Dimensions lists every dimension in the order queries evaluate them.
var Dimensions = []Dimension{Time, Cost}

// String returns "time" or "cost".
func (d Dimension) String() string {
	switch d {
	case Time:
		return "time"
	case Cost:
		return "cost"
	default:
		return "dimension(" + strconv.Itoa(int(d)) + ")"
	}
}

// ParseDimension converts "time" or "cost" into a [Dimension].
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "time":
		return Time, nil
	case "cost":
		return Cost, nil
	}
	return 0, fmt.Errorf("unknown dimension %q (must be time or cost)", s)
}

// Weight is the two-dimensional cost of traversing an arc.
// Both components are expected to be non-negative; the graph does not check.
type Weight struct {
	Time float64 `json:"time" toml:"time" yaml:"time"`
	Cost float64 `json:"cost" toml:"cost" yaml:"cost"`
}

// Along returns the component of w selected by d.
func (w Weight) Along(d Dimension) float64 {
	if d == Cost {
		return w.Cost
	}
	return w.Time
}

// String formats w as "[time, cost]".
func (w Weight) String() string {
	return "[" + formatNumber(w.Time) + ", " + formatNumber(w.Cost) + "]"
}

// Arc is a directed connection between two vertices.
type Arc struct {
	From   string
	To     string
	Weight Weight
}

// Path is an ordered vertex sequence from source to target (inclusive)
// together with its total weight along one dimension.
//
// An unreachable target is represented by a nil Vertices slice and a
// Total of +Inf. Callers must check [Path.Reachable] before using the route.
type Path struct {
	Vertices []string
	Total    float64
}

// Unreachable returns the Path value used when no route exists.
func Unreachable() Path {
	return Path{Total: math.Inf(1)}
}

// Reachable reports whether the path connects its endpoints.
func (p Path) Reachable() bool {
	return !math.IsInf(p.Total, 1)
}

// Len returns the number of vertices on the path.
func (p Path) Len() int { return len(p.Vertices) }

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
