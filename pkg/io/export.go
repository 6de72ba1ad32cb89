package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
)

// WriteJSON encodes g as an indented JSON document.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes g as a TOML document.
func WriteTOML(g *graph.Graph, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(newDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes g as a YAML document.
func WriteYAML(g *graph.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// WriteText encodes g in the line-oriented text format, one vertex per
// line with compact "dest:[t,c]" arc tokens.
func WriteText(g *graph.Graph, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range g.Vertices() {
		bw.WriteString(v)
		for _, a := range g.Arcs(v) {
			bw.WriteByte(' ')
			bw.WriteString(a.To)
			bw.WriteByte(':')
			bw.WriteString(FormatWeight(a.Weight))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Write encodes g in the given format.
//
// A graph with arcs pointing at removed vertices is rejected, since none
// of the formats could load it back.
func Write(g *graph.Graph, w io.Writer, format Format) error {
	if err := g.Validate(); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "export")
	}
	switch format {
	case FormatText:
		return WriteText(g, w)
	case FormatJSON:
		return WriteJSON(g, w)
	case FormatTOML:
		return WriteTOML(g, w)
	case FormatYAML:
		return WriteYAML(g, w)
	}
	return apperr.New(apperr.ErrCodeUnsupported, "unknown graph format %q", format)
}

// Export writes g to the file at path, choosing the format with
// [DetectFormat].
func Export(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(g, f, DetectFormat(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
