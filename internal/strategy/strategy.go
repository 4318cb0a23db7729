// Package strategy holds the contracts the decision pipeline is assembled from
// and the selection of the structure detector and policy pair that runs on it.
package strategy

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/analysis"
	"github.com/omupade20/prop8/internal/decision"
	"github.com/omupade20/prop8/internal/srlevel"
	"github.com/omupade20/prop8/internal/structure"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/pkg/errors"
)

// Default engine configuration values.
const (
	DefaultMinBars      = 40
	DefaultLookback     = 3
	DefaultCooldown     = 10 * time.Minute
	DefaultDedupWindow  = 10 * time.Minute
	DefaultStrategyKind = KindPullback
)

// BarSource is the read side of the bar store the engine depends on.
type BarSource interface {
	HasSufficientHistory(instrument string, minBars int) bool
	LastNBars(instrument string, n int) []types.Bar
	Capacity() int
}

// AlertGate throttles alerts per instrument.
type AlertGate interface {
	MayAlert(instrument string, cooldown time.Duration) bool
	IsDuplicate(instrument string, direction types.Direction, window time.Duration) bool
	MarkAlertSent(instrument string)
}

// RegimeClassifier labels the market regime of a bar window.
type RegimeClassifier interface {
	Classify(highs, lows, closes []float64) types.Regime
}

// BiasEstimator derives the higher-timeframe bias from closes and the session VWAP.
type BiasEstimator interface {
	Estimate(prices []float64, vwap float64) types.HTFBias
}

// StructureDetector finds a tradeable structure in a series. An absent result
// means no structure.
type StructureDetector interface {
	Detect(series types.Series, ctx analysis.Context, bias types.HTFBias) optional.Option[types.StructureSignal]
}

// DecisionPolicy turns a structure signal and its context into a decision.
type DecisionPolicy interface {
	Decide(in decision.Input) types.Decision
}

// DecisionHandler receives execute decisions that passed cooldown and dedup.
type DecisionHandler interface {
	HandleDecision(ctx context.Context, instrument string, d types.Decision) error
}

// DecisionHandlerFunc adapts a function to DecisionHandler.
type DecisionHandlerFunc func(ctx context.Context, instrument string, d types.Decision) error

func (f DecisionHandlerFunc) HandleDecision(ctx context.Context, instrument string, d types.Decision) error {
	return f(ctx, instrument, d)
}

// Kind names a detector and policy pair.
type Kind string

const (
	KindPullback Kind = "pullback"
	KindBreakout Kind = "breakout"
)

// ParseKind validates a strategy name. The empty string selects the default.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case "":
		return DefaultStrategyKind, nil
	case KindPullback, KindBreakout:
		return Kind(name), nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy %q", name)
	}
}

// Params tunes both strategies. Only the half matching the selected Kind is used.
type Params struct {
	Pullback           structure.PullbackParams `yaml:"pullback" json:"pullback"`
	Breakout           structure.BreakoutParams `yaml:"breakout" json:"breakout"`
	GatedThresholds    decision.Thresholds      `yaml:"gated_thresholds" json:"gated_thresholds"`
	BreakoutThresholds decision.Thresholds      `yaml:"breakout_thresholds" json:"breakout_thresholds"`
}

// DefaultParams returns the tuned defaults of both strategies.
func DefaultParams() Params {
	return Params{
		Pullback:           structure.DefaultPullbackParams(),
		Breakout:           structure.DefaultBreakoutParams(),
		GatedThresholds:    decision.DefaultGatedThresholds(),
		BreakoutThresholds: decision.DefaultBreakoutThresholds(),
	}
}

// Strategy is the detector and policy pair live on an engine.
type Strategy struct {
	Kind     Kind
	Detector StructureDetector
	Policy   DecisionPolicy
}

// New builds the strategy named by kind.
func New(kind Kind, params Params) (Strategy, error) {
	switch kind {
	case KindPullback, "":
		return Strategy{
			Kind:     KindPullback,
			Detector: structure.NewPullbackDetector(params.Pullback),
			Policy:   decision.NewGatedPolicy(params.GatedThresholds),
		}, nil
	case KindBreakout:
		return Strategy{
			Kind:     KindBreakout,
			Detector: breakoutDetector{detector: structure.NewBreakoutDetector(params.Breakout)},
			Policy:   decision.NewBreakoutPolicy(params.BreakoutThresholds),
		}, nil
	default:
		return Strategy{}, errors.Newf(errors.ErrCodeUnsupportedStrategy, "unsupported strategy %q", kind)
	}
}

// breakoutDetector ignores the bias; the breakout policy applies it instead.
type breakoutDetector struct {
	detector *structure.BreakoutDetector
}

func (b breakoutDetector) Detect(series types.Series, ctx analysis.Context, _ types.HTFBias) optional.Option[types.StructureSignal] {
	return b.detector.Detect(series, ctx)
}

// EngineConfig holds the orchestrator settings.
type EngineConfig struct {
	// MinBars is the closed bar count below which an instrument is not evaluated.
	MinBars int `yaml:"min_bars" json:"min_bars" envconfig:"min_bars" validate:"gte=1" jsonschema:"description=Closed bars required before evaluating,default=40"`

	// Lookback is the number of completed 5m and 15m candles scored for persistence.
	Lookback int `yaml:"lookback" json:"lookback" envconfig:"lookback" validate:"gte=1" jsonschema:"description=Higher timeframe candles scored for persistence,default=3"`

	// SR configures support and resistance detection.
	SR srlevel.Params `yaml:"sr" json:"sr"`
}

// DefaultEngineConfig returns the orchestrator defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MinBars:  DefaultMinBars,
		Lookback: DefaultLookback,
		SR:       srlevel.DefaultParams(),
	}
}
