package io

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
)

// Format identifies a graph file encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatJSON, FormatTOML, FormatYAML}

// DetectFormat picks a format from the file extension. Unknown or missing
// extensions are treated as text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", apperr.New(apperr.ErrCodeUnsupported, "unknown graph format %q", s)
}

// LoadOptions controls how labels are normalized while loading.
type LoadOptions struct {
	// Uppercase converts every vertex label to upper case.
	Uppercase bool
}

func (o LoadOptions) label(s string) string {
	if o.Uppercase {
		return strings.ToUpper(s)
	}
	return s
}

// Exists reports whether path names a readable regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Import reads the graph file at path, choosing the decoder with
// [DetectFormat].
//
// A missing file yields a FILE_NOT_FOUND error; malformed content yields
// INVALID_FORMAT with the file name and, for text input, the line number.
func Import(path string, opts LoadOptions) (*graph.Graph, error) {
	if err := apperr.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, apperr.Wrap(apperr.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, filepath.Base(path), DetectFormat(path), opts)
}

// Read decodes a graph in the given format from r. The name is used only
// in error messages. Read does not close r.
func Read(r io.Reader, name string, format Format, opts LoadOptions) (*graph.Graph, error) {
	switch format {
	case FormatText:
		return ReadText(r, name, opts)
	case FormatJSON:
		return ReadJSON(r, opts)
	case FormatTOML:
		return ReadTOML(r, opts)
	case FormatYAML:
		return ReadYAML(r, opts)
	}
	return nil, apperr.New(apperr.ErrCodeUnsupported, "unknown graph format %q", format)
}

// build turns a decoded document into a graph, validating labels and
// weights the same way the text reader does.
func (d document) build(opts LoadOptions) (*graph.Graph, error) {
	g := graph.New()
	for _, v := range d.Vertices {
		label := opts.label(v)
		if err := apperr.ValidateLabel(label); err != nil {
			return nil, err
		}
		if err := g.AddVertex(label); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "vertex %s", label)
		}
	}
	for i, a := range d.Arcs {
		from, to := opts.label(a.From), opts.label(a.To)
		if err := checkComponent(a.Time); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "arc %d (%s->%s)", i, from, to)
		}
		if err := checkComponent(a.Cost); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "arc %d (%s->%s)", i, from, to)
		}
		if err := g.AddArc(from, to, graph.Weight{Time: a.Time, Cost: a.Cost}); err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "arc %d", i)
		}
	}
	return g, nil
}

func decodeError(format Format, err error) error {
	return apperr.Wrap(apperr.ErrCodeInvalidFormat, err, "decode %s", format)
}
