package io

import (
	"encoding/json"
	"io"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
)

// document is the shape shared by the JSON, TOML and YAML encodings.
type document struct {
	Vertices []string `json:"vertices" toml:"vertices" yaml:"vertices"`
	Arcs     []arc    `json:"arcs" toml:"arcs" yaml:"arcs"`
}

type arc struct {
	From string  `json:"from" toml:"from" yaml:"from"`
	To   string  `json:"to" toml:"to" yaml:"to"`
	Time float64 `json:"time" toml:"time" yaml:"time"`
	Cost float64 `json:"cost" toml:"cost" yaml:"cost"`
}

// ReadJSON decodes a JSON graph document from r.
//
// The input must be an object with "vertices" and "arcs" arrays. Each arc
// needs "from", "to", "time" and "cost" fields; endpoints must be listed
// in "vertices". Unknown fields are rejected.
func ReadJSON(r io.Reader, opts LoadOptions) (*graph.Graph, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError(FormatJSON, err)
	}
	return doc.build(opts)
}

// ReadTOML decodes a TOML graph document from r:
//
//	vertices = ["AR", "BT"]
//
//	[[arcs]]
//	from = "AR"
//	to = "BT"
//	time = 8.0
//	cost = 1.0
func ReadTOML(r io.Reader, opts LoadOptions) (*graph.Graph, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, decodeError(FormatTOML, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, apperr.New(apperr.ErrCodeInvalidFormat, "decode toml: unknown key %s", undecoded[0])
	}
	return doc.build(opts)
}

// ReadYAML decodes a YAML graph document from r.
func ReadYAML(r io.Reader, opts LoadOptions) (*graph.Graph, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, decodeError(FormatYAML, err)
	}
	return doc.build(opts)
}

func newDocument(g *graph.Graph) document {
	doc := document{Vertices: g.Vertices()}
	for _, a := range g.AllArcs() {
		doc.Arcs = append(doc.Arcs, arc{From: a.From, To: a.To, Time: a.Weight.Time, Cost: a.Weight.Cost})
	}
	return doc
}
