package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperr "github.com/matzehuels/modalroute/pkg/errors"
	"github.com/matzehuels/modalroute/pkg/graph"
	"github.com/matzehuels/modalroute/pkg/graph/modal"
	"github.com/matzehuels/modalroute/pkg/httputil"
	"github.com/matzehuels/modalroute/pkg/pipeline"
)

type healthResponse struct {
	Status    string `json:"status"`
	GraphHash string `json:"graph_hash"`
	Vertices  int    `json:"vertices"`
	Arcs      int    `json:"arcs"`
}

type arcResponse struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Time float64 `json:"time"`
	Cost float64 `json:"cost"`
}

type graphResponse struct {
	Source   string        `json:"source"`
	Format   string        `json:"format"`
	Hash     string        `json:"hash"`
	Vertices []string      `json:"vertices"`
	Arcs     []arcResponse `json:"arcs"`
	Text     string        `json:"text"`
}

type candidateResponse struct {
	Pair      modal.Pair `json:"pair"`
	Reachable bool       `json:"reachable"`
	Total     *float64   `json:"total"`
	Path      []string   `json:"path"`
}

type routeResponse struct {
	Dimension  string              `json:"dimension"`
	Reachable  bool                `json:"reachable"`
	Total      *float64            `json:"total"`
	Path       []string            `json:"path"`
	Pair       modal.Pair          `json:"pair"`
	Cached     bool                `json:"cached"`
	Candidates []candidateResponse `json:"candidates"`
}

type routesResponse struct {
	ID         string        `json:"id"`
	GraphHash  string        `json:"graph_hash"`
	From       string        `json:"from"`
	To         string        `json:"to"`
	Time       routeResponse `json:"time"`
	Cost       routeResponse `json:"cost"`
	DurationMS float64       `json:"duration_ms"`
}

var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	_ = httputil.WriteJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		GraphHash: s.graph.Hash,
		Vertices:  s.graph.VertexCount(),
		Arcs:      s.graph.ArcCount(),
	})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	arcs := make([]arcResponse, 0, s.graph.ArcCount())
	for _, a := range s.graph.AllArcs() {
		arcs = append(arcs, arcResponse{From: a.From, To: a.To, Time: a.Weight.Time, Cost: a.Weight.Cost})
	}
	vertices := s.graph.Vertices()
	if vertices == nil {
		vertices = []string{}
	}
	_ = httputil.WriteJSON(w, http.StatusOK, graphResponse{
		Source:   s.graph.Source,
		Format:   string(s.graph.Format),
		Hash:     s.graph.Hash,
		Vertices: vertices,
		Arcs:     arcs,
		Text:     s.graph.Render(),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.RenderOptions{
		Format:    chi.URLParam(r, "format"),
		From:      q.Get("from"),
		To:        q.Get("to"),
		Uppercase: s.opts.Uppercase,
	}
	if d := q.Get("dimension"); d != "" {
		dim, err := graph.ParseDimension(d)
		if err != nil {
			httputil.WriteError(w, apperr.Wrap(apperr.ErrCodeInvalidDimension, err, "dimension"))
			return
		}
		opts.Dimension = dim
	}
	if v := q.Get("weights"); v != "" {
		show, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteError(w, apperr.New(apperr.ErrCodeInvalidInput, "weights: %q is not a boolean", v))
			return
		}
		opts.HideWeights = !show
	}

	out, hit, err := s.runner.Render(r.Context(), s.graph, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[opts.Format])
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := pipeline.Query{From: q.Get("from"), To: q.Get("to"), Uppercase: s.opts.Uppercase}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			httputil.WriteError(w, apperr.New(apperr.ErrCodeInvalidInput, "refresh: %q is not a boolean", v))
			return
		}
		query.Refresh = refresh
	}

	res, err := s.runner.Query(r.Context(), s.graph, query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.opts.ResultLog != "" {
		if err := s.runner.LogResult(s.opts.ResultLog, s.opts.LogStyle, res); err != nil {
			s.logger.Warn("result log write failed", "file", s.opts.ResultLog, "err", err)
		}
	}

	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.TimeHit && res.CacheInfo.CostHit))
	_ = httputil.WriteJSON(w, http.StatusOK, routesResponse{
		ID:         res.ID,
		GraphHash:  res.GraphHash,
		From:       res.From,
		To:         res.To,
		Time:       newRouteResponse(res.Time, res.CacheInfo.TimeHit),
		Cost:       newRouteResponse(res.Cost, res.CacheInfo.CostHit),
		DurationMS: float64(res.Stats.SearchTime.Microseconds()) / 1000,
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httputil.WriteError(w, err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "err", err)
	}
}

func newRouteResponse(route modal.Route, cached bool) routeResponse {
	resp := routeResponse{
		Dimension:  route.Dimension.String(),
		Reachable:  route.Reachable(),
		Total:      total(route.Path),
		Path:       vertices(route.Path),
		Pair:       route.Pair,
		Cached:     cached,
		Candidates: make([]candidateResponse, 0, len(route.Evaluated)),
	}
	for _, ev := range route.Evaluated {
		resp.Candidates = append(resp.Candidates, candidateResponse{
			Pair:      ev.Pair,
			Reachable: ev.Path.Reachable(),
			Total:     total(ev.Path),
			Path:      vertices(ev.Path),
		})
	}
	return resp
}

// total returns nil for an unreachable path; JSON has no infinity.
func total(p graph.Path) *float64 {
	if !p.Reachable() {
		return nil
	}
	t := p.Total
	return &t
}

func vertices(p graph.Path) []string {
	if p.Vertices == nil {
		return []string{}
	}
	return p.Vertices
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
