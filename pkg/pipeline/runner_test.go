package pipeline

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/modalroute/pkg/cache"
	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
	pkgio "github.com/matzehuels/modalroute/pkg/io"
	"github.com/matzehuels/modalroute/pkg/observability"
	"github.com/matzehuels/modalroute/pkg/resultlog"
)

const modalText = `AT BR:[5,2] BT:[3,4]
AR BT:[8,1] BR:[10,10]
BR
BT
CR
`

func writeGraph(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "grafo.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.New(io.Discard))
}

func loadModal(t *testing.T, r *Runner) *Graph {
	t.Helper()
	g, err := r.Load(context.Background(), writeGraph(t, modalText), pkgio.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return g
}

func TestQuery(t *testing.T) {
	r := newTestRunner(cache.NewMemoryCache())
	g := loadModal(t, r)

	res, err := r.Query(context.Background(), g, Query{From: "A", To: "B"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	if got := res.Time.Path.Vertices; !slices.Equal(got, []string{"AT", "BT"}) || res.Time.Path.Total != 3 {
		t.Errorf("time route = %v (%v), want [AT BT] (3)", got, res.Time.Path.Total)
	}
	if got := res.Cost.Path.Vertices; !slices.Equal(got, []string{"AR", "BT"}) || res.Cost.Path.Total != 1 {
		t.Errorf("cost route = %v (%v), want [AR BT] (1)", got, res.Cost.Path.Total)
	}
	if len(res.Time.Evaluated) != 4 {
		t.Errorf("evaluated %d candidates, want 4", len(res.Time.Evaluated))
	}
	if res.ID == "" || res.GraphHash != g.Hash {
		t.Errorf("result metadata = %q / %q", res.ID, res.GraphHash)
	}
	if res.CacheInfo.TimeHit || res.CacheInfo.CostHit {
		t.Error("first query should not hit the cache")
	}
}

func TestQueryCaching(t *testing.T) {
	c := cache.NewMemoryCache()
	r := newTestRunner(c)
	g := loadModal(t, r)
	ctx := context.Background()

	first, err := r.Query(ctx, g, Query{From: "A", To: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Fatalf("cache has %d entries, want 2", c.Len())
	}

	second, err := r.Query(ctx, g, Query{From: "A", To: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.TimeHit || !second.CacheInfo.CostHit {
		t.Error("second query should be served from cache")
	}
	if !slices.Equal(first.Time.Path.Vertices, second.Time.Path.Vertices) || first.Time.Pair != second.Time.Pair {
		t.Errorf("cached time route differs: %+v vs %+v", first.Time, second.Time)
	}
	if len(second.Time.Evaluated) != len(first.Time.Evaluated) {
		t.Error("cached route lost candidate evaluations")
	}
	if first.ID == second.ID {
		t.Error("query ids should be unique")
	}

	refreshed, err := r.Query(ctx, g, Query{From: "A", To: "B", Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.TimeHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestQueryUnreachableIsCached(t *testing.T) {
	r := newTestRunner(cache.NewMemoryCache())
	g := loadModal(t, r)
	ctx := context.Background()

	for i := range 2 {
		res, err := r.Query(ctx, g, Query{From: "A", To: "C"})
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if res.Time.Reachable() || !math.IsInf(res.Time.Path.Total, 1) || res.Time.Path.Len() != 0 {
			t.Errorf("run %d: time route = %+v, want unreachable", i, res.Time.Path)
		}
		if i == 1 && !res.CacheInfo.TimeHit {
			t.Error("unreachable result should be cached")
		}
	}
}

func TestQueryUppercase(t *testing.T) {
	r := newTestRunner(nil)
	g := loadModal(t, r)

	res, err := r.Query(context.Background(), g, Query{From: " a ", To: "b", Uppercase: true})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.From != "A" || res.To != "B" {
		t.Errorf("endpoints = %q, %q", res.From, res.To)
	}
	if e := res.Entry(); e.From != "a" || e.To != "b" {
		t.Errorf("log entry endpoints = %q, %q, want as typed", e.From, e.To)
	}
	if !slices.Equal(res.Time.Path.Vertices, []string{"AT", "BT"}) {
		t.Errorf("time path = %v", res.Time.Path.Vertices)
	}
}

func TestQueryErrors(t *testing.T) {
	r := newTestRunner(nil)
	g := loadModal(t, r)

	tests := []struct {
		name string
		q    Query
		code apperr.Code
	}{
		{"unknown", Query{From: "X", To: "B"}, apperr.ErrCodeVertexNotFound},
		{"empty", Query{From: "", To: "B"}, apperr.ErrCodeInvalidVertex},
		{"whitespace", Query{From: "A B", To: "B"}, apperr.ErrCodeInvalidVertex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Query(context.Background(), g, tt.q)
			if !apperr.Is(err, tt.code) {
				t.Errorf("Query error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestQueryCancelled(t *testing.T) {
	r := newTestRunner(nil)
	g := loadModal(t, r)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Query(ctx, g, Query{From: "A", To: "B"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Query error = %v, want context.Canceled", err)
	}
}

func TestGraphHashTracksContent(t *testing.T) {
	r := newTestRunner(nil)
	a := loadModal(t, r)
	b := loadModal(t, r)
	if a.Hash != b.Hash {
		t.Error("same content should hash equally")
	}

	c, err := r.Load(context.Background(), writeGraph(t, modalText+"DR\n"), pkgio.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Hash == a.Hash {
		t.Error("different content should hash differently")
	}
}

func TestLoadMissingFile(t *testing.T) {
	r := newTestRunner(nil)
	_, err := r.Load(context.Background(), filepath.Join(t.TempDir(), "none.txt"), pkgio.LoadOptions{})
	if !apperr.Is(err, apperr.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRenderDOT(t *testing.T) {
	r := newTestRunner(cache.NewMemoryCache())
	g := loadModal(t, r)

	out, hit, err := r.Render(context.Background(), g, RenderOptions{
		Format: FormatDOT, From: "A", To: "B", Dimension: graph.Cost,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if hit {
		t.Error("DOT output is never cached")
	}
	if !strings.Contains(string(out), `"AR" -> "BT" [label="8 / 1", color="#d1495b", penwidth=3];`) {
		t.Errorf("cost route not highlighted:\n%s", out)
	}
}

func TestRenderInvalidFormat(t *testing.T) {
	r := newTestRunner(nil)
	g := loadModal(t, r)
	if _, _, err := r.Render(context.Background(), g, RenderOptions{Format: "pdf"}); !apperr.Is(err, apperr.ErrCodeUnsupported) {
		t.Errorf("Render error = %v, want UNSUPPORTED", err)
	}
}

func TestLogResult(t *testing.T) {
	r := newTestRunner(nil)
	g := loadModal(t, r)
	res, err := r.Query(context.Background(), g, Query{From: "A", To: "B"})
	if err != nil {
		t.Fatal(err)
	}

	logPath := filepath.Join(t.TempDir(), resultlog.DefaultPath)
	if err := r.LogResult(logPath, resultlog.StyleArgs, res); err != nil {
		t.Fatalf("LogResult: %v", err)
	}
	data, _ := os.ReadFile(logPath)
	want := "Caminho de menor tempo (3.0) de A até B é: ['AT', 'BT']\n" +
		"Caminho de menor custo (1) de A até B é: ['AR', 'BT']\n\n"
	if string(data) != want {
		t.Errorf("log =\n%q\nwant\n%q", data, want)
	}
}

type countingHooks struct {
	observability.NoopRouteHooks
	mu       sync.Mutex
	searches map[string]int
	loads    int
}

func (h *countingHooks) OnGraphLoaded(context.Context, string, int, int, time.Duration, error) {
	h.mu.Lock()
	h.loads++
	h.mu.Unlock()
}

func (h *countingHooks) OnSearchComplete(_ context.Context, dim string, _ int, _ bool, _ time.Duration, _ error) {
	h.mu.Lock()
	h.searches[dim]++
	h.mu.Unlock()
}

func TestHooksObserveSearches(t *testing.T) {
	defer observability.Reset()
	hooks := &countingHooks{searches: map[string]int{}}
	observability.SetRouteHooks(hooks)

	r := newTestRunner(cache.NewMemoryCache())
	g := loadModal(t, r)
	for range 2 {
		if _, err := r.Query(context.Background(), g, Query{From: "A", To: "B"}); err != nil {
			t.Fatal(err)
		}
	}

	if hooks.loads != 1 {
		t.Errorf("loads = %d, want 1", hooks.loads)
	}
	// The second query is answered from the cache.
	if hooks.searches["time"] != 1 || hooks.searches["cost"] != 1 {
		t.Errorf("searches = %v, want one per dimension", hooks.searches)
	}
}

func TestRouteEncodingRoundTrip(t *testing.T) {
	r := newTestRunner(nil)
	g := loadModal(t, r)
	route, _, err := r.Best(context.Background(), g, "A", "B", graph.Time, false)
	if err != nil {
		t.Fatal(err)
	}

	data, err := encodeRoute(route)
	if err != nil {
		t.Fatal(err)
	}
	got, err := decodeRoute(data, "A", "B", graph.Time)
	if err != nil {
		t.Fatal(err)
	}
	if got.Pair != route.Pair || got.Path.Total != route.Path.Total || len(got.Evaluated) != len(route.Evaluated) {
		t.Errorf("decoded %+v, want %+v", got, route)
	}
}
