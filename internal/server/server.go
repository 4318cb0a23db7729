// Package server exposes read-only diagnostics of the running pipeline over
// HTTP, plus a snapshot trigger and the Prometheus scrape endpoint.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/barstore"
	"github.com/omupade20/prop8/internal/indicator"
	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/internal/strategy/engine_v1"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultBarLimit   = 100
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Store is the part of the bar store the server reads.
type Store interface {
	Instruments() []string
	Size(instrument string) int
	Capacity() int
	LastNBars(instrument string, n int) []types.Bar
	OpenBar(instrument string) optional.Option[types.Bar]
	ValidateBarSequence(instrument string, maxGap time.Duration) []barstore.Gap
	AlertState(instrument string) barstore.AlertState
	HealthCheck() barstore.Health
	SaveSnapshot(path string) error
}

// Evaluator runs the decision pipeline without dispatching alerts.
type Evaluator interface {
	EvaluateWithTrace(instrument string, ltp float64) (optional.Option[types.Decision], engine_v1.Trace)
	VWAP(instrument string) optional.Option[float64]
}

// Server serves the diagnostics routes.
type Server struct {
	store      Store
	evaluator  Evaluator
	indicators indicator.IndicatorRegistry
	metrics    *metrics.Metrics
	log        *logger.Logger
	router     *mux.Router
}

type Option func(*Server)

// WithIndicators replaces the default indicator registry.
func WithIndicators(registry indicator.IndicatorRegistry) Option {
	return func(s *Server) {
		s.indicators = registry
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// New creates a server over store and evaluator.
func New(store Store, evaluator Evaluator, opts ...Option) *Server {
	s := &Server{
		store:      store,
		evaluator:  evaluator,
		indicators: indicator.NewDefaultRegistry(),
		metrics:    nil,
		log:        logger.NewNopLogger(),
		router:     nil,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()

	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/instruments", s.handleInstruments).Methods(http.MethodGet)
	router.HandleFunc("/instruments/{instrument}/bars", s.handleBars).Methods(http.MethodGet)
	router.HandleFunc("/instruments/{instrument}/gaps", s.handleGaps).Methods(http.MethodGet)
	router.HandleFunc("/instruments/{instrument}/indicators", s.handleIndicators).Methods(http.MethodGet)
	router.HandleFunc("/instruments/{instrument}/evaluate", s.handleEvaluate).Methods(http.MethodGet)
	router.HandleFunc("/snapshot", s.handleSnapshot).Methods(http.MethodPost)
	router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	return router
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is done and then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "listen on %s", addr)
	}

	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	s.log.Info("Diagnostics server listening", zap.String("addr", listener.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.HealthCheck())
}

type instrumentSummary struct {
	Instrument string                     `json:"instrument"`
	Bars       int                        `json:"bars"`
	LastBar    optional.Option[types.Bar] `json:"last_bar"`
	OpenBar    optional.Option[types.Bar] `json:"open_bar"`
	Alerts     barstore.AlertState        `json:"alerts"`
	VWAP       optional.Option[float64]   `json:"vwap"`
}

func (s *Server) handleInstruments(w http.ResponseWriter, _ *http.Request) {
	instruments := s.store.Instruments()
	out := make([]instrumentSummary, 0, len(instruments))

	for _, inst := range instruments {
		last := optional.None[types.Bar]()
		if bars := s.store.LastNBars(inst, 1); len(bars) == 1 {
			last = optional.Some(bars[0])
		}

		out = append(out, instrumentSummary{
			Instrument: inst,
			Bars:       s.store.Size(inst),
			LastBar:    last,
			OpenBar:    s.store.OpenBar(inst),
			Alerts:     s.store.AlertState(inst),
			VWAP:       s.evaluator.VWAP(inst),
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBars(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instrument(w, r)
	if !ok {
		return
	}

	n := defaultBarLimit
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, errors.Newf(errors.ErrCodeInvalidParameter, "invalid n %q", raw))

			return
		}

		n = parsed
	}

	writeJSON(w, http.StatusOK, s.store.LastNBars(inst, n))
}

func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instrument(w, r)
	if !ok {
		return
	}

	var maxGap time.Duration

	if raw := r.URL.Query().Get("max_gap"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid max_gap %q", raw))

			return
		}

		maxGap = parsed
	}

	writeJSON(w, http.StatusOK, s.store.ValidateBarSequence(inst, maxGap))
}

type indicatorsResponse struct {
	Instrument string                   `json:"instrument"`
	Values     map[string]float64       `json:"values"`
	VWAP       optional.Option[float64] `json:"vwap"`
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instrument(w, r)
	if !ok {
		return
	}

	series := types.NewSeries(s.store.LastNBars(inst, s.store.Capacity()))

	writeJSON(w, http.StatusOK, indicatorsResponse{
		Instrument: inst,
		Values:     s.indicators.Evaluate(series),
		VWAP:       s.evaluator.VWAP(inst),
	})
}

type evaluateResponse struct {
	Instrument string                          `json:"instrument"`
	Decision   optional.Option[types.Decision] `json:"decision"`
	Trace      engine_v1.Trace                 `json:"trace"`
}

// handleEvaluate runs the pipeline at the last close, or at ?ltp= when given.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	inst, ok := s.instrument(w, r)
	if !ok {
		return
	}

	bars := s.store.LastNBars(inst, 1)
	ltp := bars[0].Close

	if raw := r.URL.Query().Get("ltp"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, errors.Newf(errors.ErrCodeInvalidParameter, "invalid ltp %q", raw))

			return
		}

		ltp = parsed
	}

	decision, trace := s.evaluator.EvaluateWithTrace(inst, ltp)

	writeJSON(w, http.StatusOK, evaluateResponse{Instrument: inst, Decision: decision, Trace: trace})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.SaveSnapshot(""); err != nil {
		status := http.StatusInternalServerError
		if errors.HasCode(err, errors.ErrCodeInvalidConfiguration) {
			status = http.StatusConflict
		}

		s.log.Error("Snapshot request failed", zap.Error(err))
		writeError(w, status, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// instrument resolves the {instrument} route variable, answering 404 for an
// instrument without closed bars.
func (s *Server) instrument(w http.ResponseWriter, r *http.Request) (string, bool) {
	inst := mux.Vars(r)["instrument"]
	if s.store.Size(inst) == 0 {
		writeError(w, http.StatusNotFound, errors.Newf(errors.ErrCodeDataNotFound, "no bars for %s", inst))

		return "", false
	}

	return inst, true
}

type errorResponse struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
