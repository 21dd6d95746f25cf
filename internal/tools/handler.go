// Package tools is the widget-facing boundary: it routes tool
// invocations, normalizes argument aliases and converts engine errors
// into {ok:false, error:<code>} results. No error or panic crosses this
// boundary as a transport failure.
package tools

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kredio/kredio/internal/engine"
	"github.com/kredio/kredio/internal/logctx"
	"github.com/kredio/kredio/internal/metrics"
)

type Handler struct {
	engine   *engine.Engine
	log      *slog.Logger
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	tools    map[string]toolFunc
}

type toolFunc func(r *http.Request, args toolArgs) (any, error)

func NewHandler(e *engine.Engine, log *slog.Logger, m *metrics.Metrics, g prometheus.Gatherer) *Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &Handler{engine: e, log: log, metrics: m, gatherer: g}
	h.tools = map[string]toolFunc{
		"getCustomerName":       h.getCustomerName,
		"fetchCustomerSnapshot": h.fetchCustomerSnapshot,
		"eligibilityCheck":      h.eligibilityCheck,
		"computeRepaymentPlan":  h.computeRepaymentPlan,
		"compareTerms":          h.compareTerms,
		"payoffQuote":           h.payoffQuote,
		"restructureOptions":    h.restructureOptions,
		"deferralEligibility":   h.deferralEligibility,
		"submitLoanApplication": h.submitLoanApplication,
	}
	return h
}

// Router builds the gateway's HTTP surface.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"health": "ok"})
	})
	if h.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	r.Post("/tools/{tool}", h.handleTool)
	return r
}

func (h *Handler) handleTool(w http.ResponseWriter, r *http.Request) {
	tool := chi.URLParam(r, "tool")
	fn, ok := h.tools[tool]
	if !ok {
		writeJSON(w, http.StatusNotFound, errResult("unknown_tool"))
		return
	}

	var args toolArgs
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil {
		h.metrics.ObserveTool(tool, "invalid_inputs")
		writeJSON(w, http.StatusBadRequest, errResult("invalid_inputs"))
		return
	}

	// Tool failures ride an HTTP 200: the widget reads ok/error, not
	// status codes.
	writeJSON(w, http.StatusOK, h.invoke(r, tool, fn, args))
}

func (h *Handler) invoke(r *http.Request, tool string, fn toolFunc, args toolArgs) (out any) {
	defer func() {
		if rec := recover(); rec != nil {
			logctx.From(r.Context(), h.log).Error("tool panicked", "tool", tool, "panic", rec)
			h.metrics.ObserveTool(tool, "unexpected_error")
			out = errResult("unexpected_error")
		}
	}()

	res, err := fn(r, args)
	if err != nil {
		code := errorCode(err)
		if code == "unexpected_error" {
			logctx.From(r.Context(), h.log).Error("tool failed", "tool", tool, "error", err)
		}
		h.metrics.ObserveTool(tool, code)
		return errResult(code)
	}
	h.metrics.ObserveTool(tool, "ok")
	return res
}

// knownErrors are the engine errors whose text doubles as the wire code.
var knownErrors = []error{
	engine.ErrCustomerNotFound,
	engine.ErrLoanNotFound,
	engine.ErrInvalidAmount,
	engine.ErrInvalidTerm,
	engine.ErrInvalidInputs,
	engine.ErrInvalidTerms,
	engine.ErrNotAllowed,
}

func errorCode(err error) string {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "unexpected_error"
}

type errorResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func errResult(code string) errorResult {
	return errorResult{Error: code}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger assigns each request an id and threads a logger carrying
// it through the context, so handler and engine lines correlate with the
// access log line.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := h.log.With("request_id", uuid.NewString())
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(logctx.With(r.Context(), log)))
		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
