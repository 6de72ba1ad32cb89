package io

import (
	"math"
	"strconv"
	"strings"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
)

// ParseWeight parses a weight literal: "[t,c]", "(t,c)", or a bare number
// used for both components.
func ParseWeight(s string) (graph.Weight, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return graph.Weight{}, apperr.New(apperr.ErrCodeInvalidFormat, "empty weight")
	}

	open, close := s[0], s[len(s)-1]
	if (open == '[' && close == ']') || (open == '(' && close == ')') {
		parts := strings.Split(s[1:len(s)-1], ",")
		if len(parts) != 2 {
			return graph.Weight{}, apperr.New(apperr.ErrCodeInvalidFormat, "weight %q must have exactly two components", s)
		}
		t, err := parseComponent(parts[0])
		if err != nil {
			return graph.Weight{}, err
		}
		c, err := parseComponent(parts[1])
		if err != nil {
			return graph.Weight{}, err
		}
		return graph.Weight{Time: t, Cost: c}, nil
	}

	v, err := parseComponent(s)
	if err != nil {
		return graph.Weight{}, err
	}
	return graph.Weight{Time: v, Cost: v}, nil
}

func parseComponent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperr.New(apperr.ErrCodeInvalidFormat, "invalid number %q", s)
	}
	return v, checkComponent(v)
}

func checkComponent(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperr.New(apperr.ErrCodeInvalidFormat, "weight must be finite, got %v", v)
	}
	if v < 0 {
		return apperr.New(apperr.ErrCodeInvalidFormat, "weight must be non-negative, got %v", v)
	}
	return nil
}

// FormatWeight renders w in the compact "[t,c]" form accepted by
// [ParseWeight].
func FormatWeight(w graph.Weight) string {
	return "[" + strconv.FormatFloat(w.Time, 'g', -1, 64) + "," + strconv.FormatFloat(w.Cost, 'g', -1, 64) + "]"
}
