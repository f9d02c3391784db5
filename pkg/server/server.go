// Package server exposes expression evaluation over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenthands/rpncalc/pkg/calc"
	"github.com/agenthands/rpncalc/pkg/compiler/lexer"
	"github.com/agenthands/rpncalc/pkg/config"
	"github.com/agenthands/rpncalc/pkg/vm"
)

// Server provides the HTTP interface for expression evaluation.
type Server struct {
	cfg     config.Config
	log     *slog.Logger
	router  *httprouter.Router
	server  *http.Server
	metrics *metrics
}

// EvaluateRequest is the body of POST /v1/evaluate.
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// EvaluateResponse is returned by /v1/evaluate. Result is set on success,
// Error and Kind on failure.
type EvaluateResponse struct {
	Expression string `json:"expression"`
	RPN        string `json:"rpn,omitempty"`
	Result     *int64 `json:"result,omitempty"`
	Error      string `json:"error,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

// NewServer creates a server with its own metrics registry.
func NewServer(cfg config.Config, log *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		log:     log,
		router:  httprouter.New(),
		metrics: newMetrics(prometheus.NewRegistry()),
	}
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	s.log.Info("starting server", "addr", s.cfg.Server.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/v1/evaluate", s.handleEvaluateQuery)
	s.router.POST("/v1/evaluate", s.handleEvaluateBody)
	s.router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEvaluateQuery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.evaluate(w, r.URL.Query().Get("expr"))
}

func (s *Server) handleEvaluateBody(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Allow some slack over the expression limit for the JSON envelope.
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.cfg.Limits.MaxExpressionLength)*2+1024)

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, EvaluateResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, EvaluateResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	s.evaluate(w, req.Expression)
}

func (s *Server) evaluate(w http.ResponseWriter, expr string) {
	if limit := s.cfg.Limits.MaxExpressionLength; limit > 0 && len(expr) > limit {
		s.metrics.count("too_large")
		writeJSON(w, http.StatusRequestEntityTooLarge, EvaluateResponse{
			Expression: expr,
			Error:      "expression too long",
		})
		return
	}

	start := time.Now()
	resp := EvaluateResponse{Expression: expr}

	code, err := calc.Compile(expr)
	var value int64
	if err == nil {
		resp.RPN = lexer.Format(code)
		value, err = vm.EvaluateLimited(code, s.cfg.Limits.Gas)
	}

	kind := calc.Kind(err)
	if kind == "" {
		kind = "ok"
	}
	s.metrics.observe(kind, time.Since(start))

	if err != nil {
		s.log.Warn("evaluation failed", "expr", expr, "kind", kind, "err", err)
		resp.Error = err.Error()
		resp.Kind = kind
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	s.log.Debug("evaluated", "expr", expr, "rpn", resp.RPN, "result", value)
	resp.Result = &value
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
