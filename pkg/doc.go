// Package pkg provides the core libraries for modalroute.
//
// # Overview
//
// Modalroute finds the minimum-time and minimum-cost routes between two
// locations of a multimodal transport network. Arcs carry a (time, cost)
// weight pair; a location X may be represented by a restricted vertex XR and
// a transit vertex XT, and a query between two locations tries every
// entry/exit combination.
//
// The pkg directory is organized into three areas:
//
//  1. Domain logic: [graph], [graph/path], [graph/modal]
//  2. Data plumbing: [io], [resultlog], [render/nodelink]
//  3. Orchestration and infrastructure: [pipeline], [cache], [config],
//     [server], [httputil], [observability], [metrics], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	Graph file (text, JSON, TOML, YAML)
//	         ↓
//	    [io] package (parse into a weighted digraph)
//	         ↓
//	    [graph/modal] package (candidate pairs, best route per dimension)
//	         ↓
//	    [graph/path] package (Dijkstra on one dimension)
//	         ↓
//	    result log line, DOT/SVG/PNG, or JSON over HTTP
//
// [pipeline] ties these together behind a [cache] and reports progress
// through [observability] hooks.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/modalroute/pkg/cache"
//	    "github.com/matzehuels/modalroute/pkg/io"
//	    "github.com/matzehuels/modalroute/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	defer runner.Close()
//
//	g, _ := runner.Load(ctx, "grafo.txt", io.LoadOptions{Uppercase: true})
//	res, _ := runner.Query(ctx, g, pipeline.Query{From: "A", To: "B", Uppercase: true})
//
//	fmt.Println(res.Time.Path.Vertices, res.Cost.Path.Total)
//
// # Testing
//
//	go test ./...                  # All tests
//	go test ./pkg/graph/...        # Specific packages
//	go test -run Example ./pkg/... # Examples only
//
// Redis cache tests run only when MODALROUTE_TEST_REDIS names a server.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/graph
// [graph/path]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/graph/path
// [graph/modal]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/graph/modal
// [io]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/io
// [resultlog]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/resultlog
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/server
// [httputil]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/metrics
// [errors]: https://pkg.go.dev/github.com/matzehuels/modalroute/pkg/errors
package pkg
