// Package io loads route graphs from files and writes them back out.
//
// # Overview
//
// The route engine only ever sees a built [graph.Graph]. This package turns
// the supported file formats into one, validating labels and weights on the
// way in, and converts between formats on the way out.
//
// # Text Format
//
// The native format lists one vertex per line followed by its outgoing arcs:
//
//	# label  dest:weight ...
//	AR BR:[10,10] BT:[8,1]
//	AT BR:[5,2] BT:[3,4]
//	BR
//	BT
//
// The file is read in two passes: the first collects every label so that
// arcs may point at vertices declared on later lines, the second adds the
// arcs. Blank lines and lines starting with '#' are ignored.
//
// A weight literal is parsed, never evaluated. Accepted forms are [t,c],
// (t,c), and a bare number n meaning (n,n). Spaces inside brackets are
// allowed. Components must be finite and non-negative.
//
// # Structured Formats
//
// JSON, TOML and YAML files share one shape:
//
//	{
//	  "vertices": ["AR", "AT", "BR", "BT"],
//	  "arcs": [
//	    {"from": "AT", "to": "BT", "time": 3, "cost": 4}
//	  ]
//	}
//
// [DetectFormat] picks the format from the file extension; anything
// unrecognized is read as text.
//
// # Label Case
//
// Labels are case-sensitive. [LoadOptions.Uppercase] upper-cases every label
// while loading, which is how the positional command-line front end
// normalizes user input. The graph package never changes case itself.
//
// # Errors
//
// Malformed input is reported as an INVALID_FORMAT error carrying the file
// name and line; graph invariant violations (duplicate vertices or arcs,
// unknown endpoints) are wrapped so that errors.Is still matches the graph
// sentinels.
package io
