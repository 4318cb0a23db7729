package barstore

import (
	"time"

	"github.com/omupade20/prop8/internal/types"
	"go.uber.org/zap"
)

// DefaultMaxGap is the largest spacing between consecutive 1-minute bars that
// ValidateBarSequence accepts.
const DefaultMaxGap = 90 * time.Second

const healthAgeSample = 10

// Gap is a hole in an instrument's bar sequence.
type Gap struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Health is a point-in-time summary of the store.
type Health struct {
	InstrumentsTracked int   `json:"instruments_tracked"`
	TicksReceived      int64 `json:"ticks_received"`
	BarsReceived       int64 `json:"bars_received"`
	BarsClosed         int64 `json:"bars_closed"`
	ListenerFailures   int64 `json:"listener_failures"`
	// Busy counts instruments holding at least one closed bar.
	Busy int `json:"busy"`
	// LastBarAge samples, for up to ten instruments in name order, the
	// seconds since the newest closed bar.
	LastBarAge map[string]float64 `json:"last_bar_age_seconds"`
}

// ReplayBars appends bars, oldest first, for deterministic tests and
// backfills. Malformed and out of order bars are dropped. With fireListeners
// set each stored bar notifies the listeners as IngestBar would. It returns
// the number of bars stored.
func (s *BarStore) ReplayBars(instrument string, bars []types.Bar, fireListeners bool) int {
	stored := 0

	if fireListeners {
		for _, bar := range bars {
			if s.IngestBar(instrument, bar) {
				stored++
			}
		}

		return stored
	}

	series := s.seriesFor(instrument)
	accepted := make([]types.Bar, 0, len(bars))

	series.mu.Lock()
	for _, bar := range bars {
		s.barsReceived.Add(1)
		bar.Timestamp = bar.Timestamp.UTC().Truncate(time.Minute)

		if !bar.Valid() {
			continue
		}

		if last, ok := series.bars.last(); ok && !bar.Timestamp.After(last.Timestamp) {
			continue
		}

		series.bars.push(bar)
		accepted = append(accepted, bar)
	}
	series.mu.Unlock()

	for range accepted {
		s.closed(instrument)
	}

	if dropped := len(bars) - len(accepted); dropped > 0 {
		s.log.Debug("Replay dropped bars",
			zap.String("instrument", instrument),
			zap.Int("dropped", dropped),
		)
	}

	return len(accepted)
}

// ValidateBarSequence returns every gap between consecutive closed bars wider
// than maxGap. A non-positive maxGap uses DefaultMaxGap.
func (s *BarStore) ValidateBarSequence(instrument string, maxGap time.Duration) []Gap {
	if maxGap <= 0 {
		maxGap = DefaultMaxGap
	}

	bars := s.LastNBars(instrument, s.capacity)
	gaps := []Gap{}

	for i := 1; i < len(bars); i++ {
		if bars[i].Timestamp.Sub(bars[i-1].Timestamp) > maxGap {
			gaps = append(gaps, Gap{From: bars[i-1].Timestamp, To: bars[i].Timestamp})
		}
	}

	return gaps
}

// BarsSince returns the closed bars at or after since, oldest first.
func (s *BarStore) BarsSince(instrument string, since time.Time) []types.Bar {
	bars := s.LastNBars(instrument, s.capacity)
	out := make([]types.Bar, 0, len(bars))

	for _, b := range bars {
		if !b.Timestamp.Before(since) {
			out = append(out, b)
		}
	}

	return out
}

// HealthCheck summarizes the store.
func (s *BarStore) HealthCheck() Health {
	now := s.now()
	instruments := s.Instruments()

	health := Health{
		InstrumentsTracked: len(instruments),
		TicksReceived:      s.ticksReceived.Load(),
		BarsReceived:       s.barsReceived.Load(),
		BarsClosed:         s.barsClosed.Load(),
		ListenerFailures:   s.listenerFailures.Load(),
		Busy:               0,
		LastBarAge:         make(map[string]float64),
	}

	for _, inst := range instruments {
		last := s.LastBar(inst)
		if last.IsNone() {
			continue
		}

		health.Busy++

		if len(health.LastBarAge) < healthAgeSample {
			health.LastBarAge[inst] = now.Sub(last.Unwrap().Timestamp).Seconds()
		}
	}

	return health
}
