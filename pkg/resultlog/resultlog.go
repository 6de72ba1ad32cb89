// Package resultlog records route query results as human-readable lines in
// an append-only text file.
//
// Each query produces two lines, one per dimension:
//
//	Caminho de menor tempo (90) de 1 até 6 é: ['1', '4', '3', '6']
//	Caminho de menor custo (90) de 1 até 6 é: ['1', '4', '3', '6']
//
// The exact rendering of totals depends on the [Style], which mirrors the
// front end that issued the query.
package resultlog

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/matzehuels/modalroute/pkg/graph"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "caminhos.txt"

// Style selects how totals are rendered and how entries are separated.
type Style int

const (
	// StylePrompt prints both totals as truncated integers.
	StylePrompt Style = iota
	// StyleArgs prints the time total with one decimal, the cost total as
	// a truncated integer, and ends each entry with a blank line.
	StyleArgs
)

// ParseStyle resolves "prompt" or "args".
func ParseStyle(s string) (Style, error) {
	switch s {
	case "prompt":
		return StylePrompt, nil
	case "args":
		return StyleArgs, nil
	}
	return 0, fmt.Errorf("unknown log style %q (must be prompt or args)", s)
}

// Entry is the result of one query: both optima between From and To.
type Entry struct {
	From string
	To   string
	Time graph.Path
	Cost graph.Path
}

var dimensionWord = map[graph.Dimension]string{
	graph.Time: "tempo",
	graph.Cost: "custo",
}

// Line renders the result line for one dimension, without a trailing
// newline.
func Line(style Style, dim graph.Dimension, from, to string, p graph.Path) string {
	return fmt.Sprintf("Caminho de menor %s (%s) de %s até %s é: %s",
		dimensionWord[dim], formatTotal(style, dim, p.Total), from, to, FormatPath(p.Vertices))
}

// Format renders a complete entry, including trailing newlines.
func Format(style Style, e Entry) string {
	var b strings.Builder
	b.WriteString(Line(style, graph.Time, e.From, e.To, e.Time))
	b.WriteByte('\n')
	b.WriteString(Line(style, graph.Cost, e.From, e.To, e.Cost))
	b.WriteByte('\n')
	if style == StyleArgs {
		b.WriteByte('\n')
	}
	return b.String()
}

// Write writes the formatted entry to w.
func Write(w io.Writer, style Style, e Entry) error {
	_, err := io.WriteString(w, Format(style, e))
	return err
}

// Append appends the formatted entry to the file at path, creating it if
// needed. The entry is written with a single call so that concurrent
// appenders do not interleave lines.
func Append(path string, style Style, e Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", path, err)
	}
	if err := Write(f, style, e); err != nil {
		f.Close()
		return fmt.Errorf("write log %s: %w", path, err)
	}
	return f.Close()
}

func formatTotal(style Style, dim graph.Dimension, total float64) string {
	switch {
	case math.IsInf(total, 1):
		return "inf"
	case style == StyleArgs && dim == graph.Time:
		return fmt.Sprintf("%.1f", total)
	default:
		return fmt.Sprintf("%d", int64(total))
	}
}

// FormatPath renders labels as a bracketed list of quoted strings:
// ['1', '4', '3', '6']. An empty path renders as [].
func FormatPath(labels []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, l := range labels {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(l))
	}
	b.WriteByte(']')
	return b.String()
}

// quote single-quotes s, switching to double quotes when s contains a
// single quote but no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == q || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte(q)
	return b.String()
}
