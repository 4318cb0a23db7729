package engine_v1

import (
	"context"
	"time"

	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/internal/strategy"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/pkg/errors"
	"go.uber.org/zap"
)

// Alert outcomes reported to metrics.
const (
	outcomeSent      = "sent"
	outcomeCooldown  = "cooldown"
	outcomeDuplicate = "duplicate"
	outcomeFailed    = "failed"
)

// DispatcherConfig throttles alerts.
type DispatcherConfig struct {
	Cooldown    time.Duration `yaml:"cooldown" json:"cooldown" envconfig:"cooldown" validate:"gte=0" jsonschema:"description=Minimum time between alerts for one instrument"`
	DedupWindow time.Duration `yaml:"dedup_window" json:"dedup_window" envconfig:"dedup_window" validate:"gte=0" jsonschema:"description=Window in which a repeated direction is a duplicate"`
}

// DefaultDispatcherConfig returns a ten minute cooldown and dedup window.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		Cooldown:    strategy.DefaultCooldown,
		DedupWindow: strategy.DefaultDedupWindow,
	}
}

// Dispatcher evaluates an instrument on every bar close and forwards execute
// decisions that pass the alert gate to a handler. It implements
// barstore.BarCloseListener.
type Dispatcher struct {
	ctx     context.Context
	engine  *Engine
	gate    strategy.AlertGate
	handler strategy.DecisionHandler
	config  DispatcherConfig
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewDispatcher creates a dispatcher. ctx is passed to every handler call.
func NewDispatcher(
	ctx context.Context,
	engine *Engine,
	gate strategy.AlertGate,
	handler strategy.DecisionHandler,
	config DispatcherConfig,
	m *metrics.Metrics,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		ctx:     ctx,
		engine:  engine,
		gate:    gate,
		handler: handler,
		config:  config,
		metrics: m,
		log:     log,
	}
}

// OnBarClose evaluates at the bar's close. Handler errors are returned so the
// store can count them.
func (d *Dispatcher) OnBarClose(instrument string, bar types.Bar) error {
	result, err := d.engine.Evaluate(instrument, bar.Close).Take()
	if err != nil || !result.State.IsExecute() {
		return nil
	}

	direction := result.Direction.Unwrap()

	if !d.gate.MayAlert(instrument, d.config.Cooldown) {
		d.metrics.Alert(outcomeCooldown)
		d.log.Debug("Alert suppressed by cooldown", zap.String("instrument", instrument))

		return nil
	}

	if d.gate.IsDuplicate(instrument, direction, d.config.DedupWindow) {
		d.metrics.Alert(outcomeDuplicate)
		d.log.Debug("Duplicate alert suppressed",
			zap.String("instrument", instrument),
			zap.String("direction", string(direction)),
		)

		return nil
	}

	if err := d.handler.HandleDecision(d.ctx, instrument, result); err != nil {
		d.metrics.Alert(outcomeFailed)

		return errors.Wrapf(errors.ErrCodeCallbackFailed, err, "handle decision for %s", instrument)
	}

	d.gate.MarkAlertSent(instrument)
	d.metrics.Alert(outcomeSent)

	return nil
}

// NewLogHandler returns a handler that logs each decision at info level.
func NewLogHandler(log *logger.Logger) strategy.DecisionHandler {
	return strategy.DecisionHandlerFunc(func(_ context.Context, instrument string, d types.Decision) error {
		log.Info("Execute decision",
			zap.String("instrument", instrument),
			zap.String("state", string(d.State)),
			zap.Float64("score", d.Score),
			zap.String("reason", d.Reason),
			zap.String("timeframe", string(d.Diagnostics.TimeframeDirection)),
			zap.String("bias", d.Diagnostics.BiasLabel),
		)

		return nil
	})
}
