package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRouteHooks{}
	r.OnGraphLoaded(ctx, "text", 4, 4, time.Millisecond, nil)
	r.OnSearchStart(ctx, "time", 4)
	r.OnSearchComplete(ctx, "time", 4, true, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "route")
	c.OnCacheMiss(ctx, "route")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/routes")
	h.OnResponse(ctx, "GET", "/routes", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Route().(NoopRouteHooks); !ok {
		t.Error("Route() should return NoopRouteHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customRoute := &testRouteHooks{}
	SetRouteHooks(customRoute)
	if Route() != customRoute {
		t.Error("SetRouteHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Route().(NoopRouteHooks); !ok {
		t.Error("Reset() should restore NoopRouteHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testRouteHooks{}
	SetRouteHooks(custom)
	SetRouteHooks(nil)
	if Route() != custom {
		t.Error("SetRouteHooks(nil) should keep the previous hooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testRouteHooks{}
	SetRouteHooks(h)
	Route().OnSearchStart(context.Background(), "cost", 6)
	Route().OnSearchComplete(context.Background(), "cost", 1, true, time.Millisecond, nil)

	if h.starts != 1 || h.completes != 1 {
		t.Errorf("starts = %d, completes = %d", h.starts, h.completes)
	}
}

type testRouteHooks struct {
	NoopRouteHooks
	starts, completes int
}

func (h *testRouteHooks) OnSearchStart(context.Context, string, int) { h.starts++ }
func (h *testRouteHooks) OnSearchComplete(context.Context, string, int, bool, time.Duration, error) {
	h.completes++
}

type testCacheHooks struct{ NoopCacheHooks }

type testHTTPHooks struct{ NoopHTTPHooks }
