package io

import (
	"bufio"
	"io"
	"strings"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
)

type textLine struct {
	num    int
	tokens []string
}

// ReadText decodes the line-oriented text format from r.
//
// Every non-blank, non-comment line starts with a vertex label followed by
// zero or more "dest:weight" tokens. All labels are registered before any
// arc is added, so an arc may reference a vertex declared further down.
func ReadText(r io.Reader, name string, opts LoadOptions) (*graph.Graph, error) {
	lines, err := scanLines(r, name)
	if err != nil {
		return nil, err
	}

	g := graph.New()
	for _, ln := range lines {
		label := opts.label(ln.tokens[0])
		if err := apperr.ValidateLabel(label); err != nil {
			return nil, lineError(name, ln.num, err, "vertex")
		}
		if err := g.AddVertex(label); err != nil {
			return nil, lineError(name, ln.num, err, "vertex")
		}
	}

	for _, ln := range lines {
		from := opts.label(ln.tokens[0])
		for _, tok := range ln.tokens[1:] {
			dest, lit, ok := strings.Cut(tok, ":")
			if !ok || dest == "" {
				return nil, apperr.New(apperr.ErrCodeInvalidFormat, "%s:%d: arc %q must be dest:weight", name, ln.num, tok)
			}
			w, err := ParseWeight(lit)
			if err != nil {
				return nil, lineError(name, ln.num, err, "arc "+tok)
			}
			if err := g.AddArc(from, opts.label(dest), w); err != nil {
				return nil, lineError(name, ln.num, err, "arc "+tok)
			}
		}
	}
	return g, nil
}

func lineError(name string, num int, err error, what string) error {
	return apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "%s:%d: %s", name, num, what)
}

func scanLines(r io.Reader, name string) ([]textLine, error) {
	var lines []textLine
	sc := bufio.NewScanner(r)
	for num := 1; sc.Scan(); num++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		tokens, err := tokenize(text)
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "%s:%d", name, num)
		}
		lines = append(lines, textLine{num: num, tokens: tokens})
	}
	if err := sc.Err(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "read %s", name)
	}
	return lines, nil
}

// tokenize splits a line on whitespace, keeping bracketed weight literals
// such as "B:[10, 5]" together.
func tokenize(line string) ([]string, error) {
	var (
		tokens []string
		cur    strings.Builder
		open   rune
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case open == 0 && (r == '[' || r == '('):
			open = r
			cur.WriteRune(r)
		case open != 0 && (r == '[' || r == '('):
			return nil, apperr.New(apperr.ErrCodeInvalidFormat, "nested bracket in %q", line)
		case r == ']' || r == ')':
			if open == 0 || (open == '[') != (r == ']') {
				return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unbalanced %q in %q", r, line)
			}
			open = 0
			cur.WriteRune(r)
		case open == 0 && (r == ' ' || r == '\t'):
			flush()
		case open != 0 && (r == ' ' || r == '\t'):
			// spaces inside a literal are dropped
		default:
			cur.WriteRune(r)
		}
	}
	if open != 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "unclosed %q in %q", open, line)
	}
	flush()
	return tokens, nil
}
