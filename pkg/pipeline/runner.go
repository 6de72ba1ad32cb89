package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/modalroute/pkg/cache"
	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
	"github.com/matzehuels/modalroute/pkg/graph/modal"
	pkgio "github.com/matzehuels/modalroute/pkg/io"
	"github.com/matzehuels/modalroute/pkg/observability"
	"github.com/matzehuels/modalroute/pkg/render/nodelink"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

// Runner executes queries with caching.
// Both CLI and API use it so that caching and logging behave the same.
//
// The Runner keeps no per-query state. Multiple goroutines can safely
// share one Runner and one loaded [Graph].
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to cached routes; zero means cache.TTLRoute.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads and validates the graph file at path.
func (r *Runner) Load(ctx context.Context, filePath string, opts pkgio.LoadOptions) (*Graph, error) {
	start := time.Now()
	format := pkgio.DetectFormat(filePath)

	g, err := pkgio.Import(filePath, opts)
	observability.Route().OnGraphLoaded(ctx, string(format), vertexCount(g), arcCount(g), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	loaded := NewGraph(g, filePath, format)
	r.Logger.Debug("loaded graph",
		"file", filePath,
		"format", format,
		"vertices", g.VertexCount(),
		"arcs", g.ArcCount(),
		"duration", time.Since(start))
	return loaded, nil
}

// NewGraph wraps an already built graph, computing its content hash.
func NewGraph(g *graph.Graph, source string, format pkgio.Format) *Graph {
	return &Graph{
		Graph:  g,
		Source: source,
		Format: format,
		Hash:   cache.Hash([]byte(g.Render())),
	}
}

func vertexCount(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.VertexCount()
}

func arcCount(g *graph.Graph) int {
	if g == nil {
		return 0
	}
	return g.ArcCount()
}

// Query finds the minimum-time and minimum-cost routes for q. The two
// searches run concurrently; the first failure cancels the other.
func (r *Runner) Query(ctx context.Context, g *Graph, q Query) (*Result, error) {
	asked := Query{From: strings.TrimSpace(q.From), To: strings.TrimSpace(q.To)}
	q = q.normalized()
	if err := validateEndpoints(q.From, q.To); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{
		ID:        uuid.NewString(),
		GraphHash: g.Hash,
		From:      q.From,
		To:        q.To,
		Asked:     asked,
		Stats:     Stats{Vertices: g.VertexCount(), Arcs: g.ArcCount()},
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		route, hit, err := r.Best(egCtx, g, q.From, q.To, graph.Time, q.Refresh)
		res.Time, res.CacheInfo.TimeHit = route, hit
		return err
	})
	eg.Go(func() error {
		route, hit, err := r.Best(egCtx, g, q.From, q.To, graph.Cost, q.Refresh)
		res.Cost, res.CacheInfo.CostHit = route, hit
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	res.Stats.SearchTime = time.Since(start)

	r.Logger.Info("answered query",
		"id", res.ID,
		"from", q.From,
		"to", q.To,
		"time", res.Time.Path.Total,
		"cost", res.Cost.Path.Total,
		"duration", res.Stats.SearchTime)
	return res, nil
}

func validateEndpoints(from, to string) error {
	if err := apperr.ValidateLabel(from); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidVertex, err, "origin")
	}
	if err := apperr.ValidateLabel(to); err != nil {
		return apperr.Wrap(apperr.ErrCodeInvalidVertex, err, "destination")
	}
	return nil
}

// Best finds the best route along dim, consulting the cache first unless
// refresh is set. It reports whether the route came from the cache.
func (r *Runner) Best(ctx context.Context, g *Graph, from, to string, dim graph.Dimension, refresh bool) (modal.Route, bool, error) {
	key := r.Keyer.RouteKey(g.Hash, cache.RouteKeyOpts{From: from, To: to, Dimension: dim.String()})

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if route, err := decodeRoute(data, from, to, dim); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				r.Logger.Debug("route from cache", "from", from, "to", to, "dimension", dim)
				return route, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	observability.Route().OnSearchStart(ctx, dim.String(), g.VertexCount())
	start := time.Now()
	route, err := modal.FindBest(ctx, g.Graph, from, to, dim)
	observability.Route().OnSearchComplete(ctx, dim.String(), len(route.Evaluated), route.Reachable(), time.Since(start), err)
	if err != nil {
		return modal.Route{}, false, classifySearchError(err)
	}

	for _, ev := range route.Evaluated {
		r.Logger.Debug("evaluated candidate",
			"dimension", dim,
			"pair", ev.Pair.String(),
			"total", ev.Path.Total)
	}

	if data, err := encodeRoute(route); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "route", len(data))
		}
	}
	return route, false, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLRoute
}

func classifySearchError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, graph.ErrUnknownVertex):
		return apperr.Wrap(apperr.ErrCodeVertexNotFound, err, "route")
	}
	return apperr.Wrap(apperr.ErrCodeInternal, err, "route")
}

// Render draws g in opts.Format, optionally highlighting a route.
// SVG and PNG output is cached; DOT is cheap and always regenerated.
func (r *Runner) Render(ctx context.Context, g *Graph, opts RenderOptions) ([]byte, bool, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, apperr.Wrap(apperr.ErrCodeUnsupported, err, "render")
	}

	dotOpts := nodelink.Options{HideWeights: opts.HideWeights}
	keyOpts := cache.ArtifactKeyOpts{Format: opts.Format}
	if opts.highlight() {
		q := Query{From: opts.From, To: opts.To, Uppercase: opts.Uppercase}.normalized()
		if err := validateEndpoints(q.From, q.To); err != nil {
			return nil, false, err
		}
		route, _, err := r.Best(ctx, g, q.From, q.To, opts.Dimension, false)
		if err != nil {
			return nil, false, err
		}
		dotOpts.Highlight = route.Path.Vertices
		keyOpts.From, keyOpts.To, keyOpts.Dimension = q.From, q.To, opts.Dimension.String()
	}
	if opts.HideWeights {
		keyOpts.Format += "-plain"
	}

	dot := nodelink.ToDOT(g.Graph, dotOpts)
	if opts.Format == FormatDOT {
		return []byte(dot), false, nil
	}

	key := r.Keyer.ArtifactKey(g.Hash, keyOpts)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	var (
		out []byte
		err error
	)
	switch opts.Format {
	case FormatSVG:
		out, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		out, err = nodelink.RenderPNG(ctx, dot)
	}
	if err != nil {
		return nil, false, apperr.Wrap(apperr.ErrCodeInternal, err, "render %s", opts.Format)
	}
	r.Logger.Debug("rendered graph", "format", opts.Format, "bytes", len(out), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, out, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(out))
	}
	return out, false, nil
}

// LogResult appends res to the result log at logPath.
func (r *Runner) LogResult(logPath string, style resultlog.Style, res *Result) error {
	if err := resultlog.Append(logPath, style, res.Entry()); err != nil {
		return err
	}
	r.Logger.Debug("appended result", "file", logPath, "id", res.ID)
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Route encoding
// =============================================================================

// routeRecord is the cached form of a modal.Route. JSON cannot carry +Inf,
// so unreachable totals are stored as a nil pointer.
type routeRecord struct {
	Pair      modal.Pair   `json:"pair"`
	Vertices  []string     `json:"vertices"`
	Total     *float64     `json:"total"`
	Evaluated []evalRecord `json:"evaluated"`
}

type evalRecord struct {
	Pair     modal.Pair `json:"pair"`
	Vertices []string   `json:"vertices"`
	Total    *float64   `json:"total"`
}

func encodeTotal(t float64) *float64 {
	if math.IsInf(t, 1) {
		return nil
	}
	return &t
}

func decodeTotal(t *float64) float64 {
	if t == nil {
		return math.Inf(1)
	}
	return *t
}

func encodeRoute(route modal.Route) ([]byte, error) {
	rec := routeRecord{
		Pair:     route.Pair,
		Vertices: route.Path.Vertices,
		Total:    encodeTotal(route.Path.Total),
	}
	for _, ev := range route.Evaluated {
		rec.Evaluated = append(rec.Evaluated, evalRecord{
			Pair:     ev.Pair,
			Vertices: ev.Path.Vertices,
			Total:    encodeTotal(ev.Path.Total),
		})
	}
	return json.Marshal(rec)
}

func decodeRoute(data []byte, from, to string, dim graph.Dimension) (modal.Route, error) {
	var rec routeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return modal.Route{}, fmt.Errorf("decode cached route: %w", err)
	}
	route := modal.Route{
		Source:    from,
		Target:    to,
		Dimension: dim,
		Pair:      rec.Pair,
		Path:      graph.Path{Vertices: rec.Vertices, Total: decodeTotal(rec.Total)},
	}
	for _, ev := range rec.Evaluated {
		route.Evaluated = append(route.Evaluated, modal.Evaluation{
			Pair: ev.Pair,
			Path: graph.Path{Vertices: ev.Vertices, Total: decodeTotal(ev.Total)},
		})
	}
	return route, nil
}
