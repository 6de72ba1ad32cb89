// Package metrics exports Prometheus metrics for graph loads, route
// searches, cache traffic and HTTP requests.
//
// A [Metrics] value implements the hook interfaces of package
// observability; the binary registers it at startup and serves
// [Metrics.Handler] on /metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/modalroute/pkg/buildinfo"
	"github.com/matzehuels/modalroute/pkg/observability"
)

const namespace = "modalroute"

// Metrics holds every collector, registered on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	BuildInfo        prometheus.Gauge
	GraphLoads       *prometheus.CounterVec
	GraphVertices    prometheus.Gauge
	GraphArcs        prometheus.Gauge
	Searches         *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	SearchCandidates *prometheus.HistogramVec
	CacheEvents      *prometheus.CounterVec
	CacheBytes       *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	HTTPInFlight     prometheus.Gauge
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		BuildInfo: f.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "build_info",
			Help:        "Always 1; labelled with the running version.",
			ConstLabels: buildinfo.Labels(),
		}),
		GraphLoads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "graph_loads_total",
			Help:      "Graph files loaded, by format and outcome.",
		}, []string{"format", "outcome"}),
		GraphVertices: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_vertices",
			Help:      "Vertices in the most recently loaded graph.",
		}),
		GraphArcs: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_arcs",
			Help:      "Arcs in the most recently loaded graph.",
		}),
		Searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Best-route searches, by dimension and outcome.",
		}, []string{"dimension", "outcome"}),
		SearchDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of best-route searches.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"dimension"}),
		SearchCandidates: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_candidates",
			Help:      "Internal vertex pairs evaluated per search.",
			Buckets:   []float64{1, 2, 3, 4},
		}, []string{"dimension"}),
		CacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes, by key type and event.",
		}, []string{"key_type", "event"}),
		CacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache, by key type.",
		}, []string{"key_type"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}
	m.BuildInfo.Set(1)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Register installs m as the route, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetRouteHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnGraphLoaded implements observability.RouteHooks.
func (m *Metrics) OnGraphLoaded(_ context.Context, format string, vertices, arcs int, _ time.Duration, err error) {
	m.GraphLoads.WithLabelValues(format, outcome(err)).Inc()
	if err == nil {
		m.GraphVertices.Set(float64(vertices))
		m.GraphArcs.Set(float64(arcs))
	}
}

// OnSearchStart implements observability.RouteHooks.
func (m *Metrics) OnSearchStart(context.Context, string, int) {}

// OnSearchComplete implements observability.RouteHooks.
func (m *Metrics) OnSearchComplete(_ context.Context, dimension string, candidates int, reachable bool, d time.Duration, err error) {
	result := outcome(err)
	if err == nil && !reachable {
		result = "unreachable"
	}
	m.Searches.WithLabelValues(dimension, result).Inc()
	m.SearchDuration.WithLabelValues(dimension).Observe(d.Seconds())
	if err == nil {
		m.SearchCandidates.WithLabelValues(dimension).Observe(float64(candidates))
	}
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheEvents.WithLabelValues(keyType, "set").Inc()
	m.CacheBytes.WithLabelValues(keyType).Add(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.HTTPInFlight.Dec()
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.RouteHooks = (*Metrics)(nil)
	_ observability.CacheHooks = (*Metrics)(nil)
	_ observability.HTTPHooks  = (*Metrics)(nil)
)
