package engine_v1

import (
	"sync"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/analysis"
	"github.com/omupade20/prop8/internal/decision"
	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/internal/strategy"
	"github.com/omupade20/prop8/internal/timeframe"
	"github.com/omupade20/prop8/internal/types"
	"go.uber.org/zap"
)

// Stage names the pipeline step an evaluation stopped at.
type Stage string

const (
	StageHistory   Stage = "history"
	StageTimeframe Stage = "timeframe"
	StageRegime    Stage = "regime"
	StageBias      Stage = "bias"
	StageDecision  Stage = "decision"
)

const (
	minutes5  = 5
	minutes15 = 15
)

// Trace records where an evaluation ended and why.
type Trace struct {
	Stage  Stage  `json:"stage"`
	Reason string `json:"reason"`
}

// Engine runs the decision pipeline for one strategy over a bar source.
// It is safe for concurrent use; evaluations of different instruments share
// nothing but the VWAP map.
type Engine struct {
	config   strategy.EngineConfig
	source   strategy.BarSource
	regime   strategy.RegimeClassifier
	bias     strategy.BiasEstimator
	strategy strategy.Strategy
	metrics  *metrics.Metrics
	log      *logger.Logger

	vwapMu sync.Mutex
	vwaps  map[string]*analysis.VWAP
}

// Option configures an Engine.
type Option func(*Engine)

func WithConfig(config strategy.EngineConfig) Option {
	return func(e *Engine) {
		e.config = config
	}
}

func WithRegimeClassifier(regime strategy.RegimeClassifier) Option {
	return func(e *Engine) {
		e.regime = regime
	}
}

func WithBiasEstimator(bias strategy.BiasEstimator) Option {
	return func(e *Engine) {
		e.bias = bias
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine creates an engine reading source and running strat. Regime and
// bias default to the analysis package implementations.
func NewEngine(source strategy.BarSource, strat strategy.Strategy, opts ...Option) *Engine {
	e := &Engine{
		config:   strategy.DefaultEngineConfig(),
		source:   source,
		regime:   analysis.NewRegimeDetector(),
		bias:     analysis.NewHTFBiasEstimator(),
		strategy: strat,
		metrics:  nil,
		log:      logger.NewNopLogger(),
		vwapMu:   sync.Mutex{},
		vwaps:    make(map[string]*analysis.VWAP),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Kind returns the strategy live on the engine.
func (e *Engine) Kind() strategy.Kind {
	return e.strategy.Kind
}

// Evaluate runs the pipeline for instrument at the last traded price ltp.
// It is absent when a gate before the decision policy rejects.
func (e *Engine) Evaluate(instrument string, ltp float64) optional.Option[types.Decision] {
	d, _ := e.EvaluateWithTrace(instrument, ltp)

	return d
}

// EvaluateWithTrace is Evaluate that also reports the stage reached.
func (e *Engine) EvaluateWithTrace(instrument string, ltp float64) (optional.Option[types.Decision], Trace) {
	if !e.source.HasSufficientHistory(instrument, e.config.MinBars) {
		return e.reject(instrument, StageHistory, "insufficient history")
	}

	bars := e.source.LastNBars(instrument, e.source.Capacity())
	if len(bars) < e.config.MinBars {
		return e.reject(instrument, StageHistory, "insufficient history")
	}

	series := types.NewSeries(bars)

	tf := timeframe.Analyze(
		timeframe.AggregateBars(bars, minutes5),
		timeframe.AggregateBars(bars, minutes15),
		timeframe.HistoryFromBars(bars, minutes5, e.config.Lookback),
		timeframe.HistoryFromBars(bars, minutes15, e.config.Lookback),
	)

	switch {
	case tf.Direction == types.BiasNeutral:
		return e.reject(instrument, StageTimeframe, "neutral timeframe")
	case tf.Conflict:
		return e.reject(instrument, StageTimeframe, "timeframe conflict")
	case tf.Confidence == types.ConfidenceLow:
		return e.reject(instrument, StageTimeframe, "low timeframe confidence")
	}

	regime := e.regime.Classify(series.Highs, series.Lows, series.Closes)
	if regime.State != types.RegimeTrending {
		return e.reject(instrument, StageRegime, "regime "+string(regime.State))
	}

	vwap := e.vwapFor(instrument)
	vwap.UpdateBar(bars[len(bars)-1])
	vwapCtx := vwap.Context(ltp)

	// Without a VWAP the last close is used, which can never pass the bias
	// price test.
	bias := e.bias.Estimate(series.Closes, vwapCtx.VWAP.TakeOr(series.LastClose()))
	if bias.Direction != tf.Direction {
		return e.reject(instrument, StageBias, "bias "+string(bias.Direction)+" against timeframe "+string(tf.Direction))
	}

	ctx := analysis.BuildContext(series, e.config.SR)
	signal := e.strategy.Detector.Detect(series, ctx, bias)

	d := e.strategy.Policy.Decide(decision.Input{
		Instrument: instrument,
		Price:      ltp,
		Signal:     signal,
		Bias:       bias,
		Regime:     regime,
		VWAP:       vwapCtx,
		Context:    ctx,
	})

	d.Diagnostics = types.DecisionDiagnostics{
		TimeframeDirection: tf.Direction,
		TimeframeStrength:  tf.Strength,
		Regime:             regime.State,
		BiasLabel:          bias.Label,
	}

	e.metrics.Decision(string(d.State))
	e.log.Debug("Decision",
		zap.String("instrument", instrument),
		zap.String("state", string(d.State)),
		zap.Float64("score", d.Score),
		zap.String("reason", d.Reason),
	)

	return optional.Some(d), Trace{Stage: StageDecision, Reason: d.Reason}
}

func (e *Engine) reject(instrument string, stage Stage, reason string) (optional.Option[types.Decision], Trace) {
	e.metrics.Reject(string(stage))
	e.log.Debug("Evaluation rejected",
		zap.String("instrument", instrument),
		zap.String("stage", string(stage)),
		zap.String("reason", reason),
	)

	return optional.None[types.Decision](), Trace{Stage: stage, Reason: reason}
}

func (e *Engine) vwapFor(instrument string) *analysis.VWAP {
	e.vwapMu.Lock()
	defer e.vwapMu.Unlock()

	v, ok := e.vwaps[instrument]
	if !ok {
		v = analysis.NewVWAP()
		e.vwaps[instrument] = v
	}

	return v
}

// VWAP returns the session VWAP of instrument, absent before any volume.
func (e *Engine) VWAP(instrument string) optional.Option[float64] {
	e.vwapMu.Lock()
	v, ok := e.vwaps[instrument]
	e.vwapMu.Unlock()

	if !ok {
		return optional.None[float64]()
	}

	return v.Value()
}

// ResetSession starts a new VWAP session for every instrument.
func (e *Engine) ResetSession() {
	e.vwapMu.Lock()
	defer e.vwapMu.Unlock()

	for _, v := range e.vwaps {
		v.Reset()
	}

	e.log.Info("VWAP session reset", zap.Int("instruments", len(e.vwaps)))
}
