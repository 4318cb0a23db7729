// Package barstore keeps the rolling 1-minute bar history of every instrument
// and the alert cooldown and dedup state that goes with it.
//
// Each instrument owns a series guarded by its own mutex. The instrument map
// has a separate RWMutex that is write-locked only when a new instrument is
// first seen, so ingestion for different instruments never contends.
package barstore

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/internal/types"
	"go.uber.org/zap"
)

// DefaultCapacity is the number of closed bars kept per instrument.
const DefaultCapacity = 600

type instrumentSeries struct {
	mu   sync.Mutex
	bars *ring
	open optional.Option[types.Bar]

	lastAlert   time.Time
	dedup       map[types.Direction]time.Time
	pausedUntil time.Time
}

func newInstrumentSeries(capacity int) *instrumentSeries {
	return &instrumentSeries{
		mu:          sync.Mutex{},
		bars:        newRing(capacity),
		open:        optional.None[types.Bar](),
		lastAlert:   time.Time{},
		dedup:       make(map[types.Direction]time.Time),
		pausedUntil: time.Time{},
	}
}

// BarStore is the thread-safe rolling bar history for a universe of instruments.
type BarStore struct {
	capacity     int
	snapshotPath string
	now          func() time.Time
	log          *logger.Logger
	metrics      *metrics.Metrics

	mu     sync.RWMutex
	series map[string]*instrumentSeries

	listenersMu    sync.RWMutex
	listeners      []listenerEntry
	nextListenerID uint64

	ticksReceived    atomic.Int64
	barsReceived     atomic.Int64
	barsClosed       atomic.Int64
	listenerFailures atomic.Int64
}

// Option configures a BarStore.
type Option func(*BarStore)

// WithCapacity sets the per-instrument ring capacity. Values below 1 are ignored.
func WithCapacity(capacity int) Option {
	return func(s *BarStore) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

// WithSnapshotPath sets the default snapshot file.
func WithSnapshotPath(path string) Option {
	return func(s *BarStore) {
		s.snapshotPath = path
	}
}

// WithClock replaces time.Now for alert governance and health reporting.
func WithClock(now func() time.Time) Option {
	return func(s *BarStore) {
		s.now = now
	}
}

// WithMetrics records store activity on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BarStore) {
		s.metrics = m
	}
}

// New creates an empty BarStore.
func New(log *logger.Logger, opts ...Option) *BarStore {
	s := &BarStore{
		capacity:       DefaultCapacity,
		snapshotPath:   "",
		now:            time.Now,
		log:            log,
		metrics:        nil,
		mu:             sync.RWMutex{},
		series:         make(map[string]*instrumentSeries),
		listenersMu:    sync.RWMutex{},
		listeners:      nil,
		nextListenerID: 0,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Capacity returns the per-instrument ring capacity.
func (s *BarStore) Capacity() int {
	return s.capacity
}

func (s *BarStore) lookup(instrument string) (*instrumentSeries, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[instrument]

	return series, ok
}

func (s *BarStore) seriesFor(instrument string) *instrumentSeries {
	if series, ok := s.lookup(instrument); ok {
		return series
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if series, ok := s.series[instrument]; ok {
		return series
	}

	series := newInstrumentSeries(s.capacity)
	s.series[instrument] = series

	return series
}

// IngestBar appends a closed bar and then notifies the bar close listeners.
// Invalid bars and bars not newer than the last closed bar are dropped. An
// in-progress bar for the same minute is discarded. One for an earlier minute
// is moved into the ring first, without notifying listeners, as a tick
// rollover would. It reports whether the bar was stored.
func (s *BarStore) IngestBar(instrument string, bar types.Bar) bool {
	s.barsReceived.Add(1)

	bar.Timestamp = bar.Timestamp.UTC().Truncate(time.Minute)
	if !bar.Valid() {
		s.drop(instrument, "bar", "malformed bar")

		return false
	}

	series := s.seriesFor(instrument)

	series.mu.Lock()
	if last, ok := series.bars.last(); ok && !bar.Timestamp.After(last.Timestamp) {
		series.mu.Unlock()
		s.drop(instrument, "stale_bar", "bar not newer than last closed bar")

		return false
	}

	rolled := false

	if open, err := series.open.Take(); err == nil && !open.Timestamp.After(bar.Timestamp) {
		if open.Timestamp.Before(bar.Timestamp) {
			series.bars.push(open)
			rolled = true
		}

		series.open = optional.None[types.Bar]()
	}

	series.bars.push(bar)
	series.mu.Unlock()

	if rolled {
		s.closed(instrument)
	}

	s.closed(instrument)
	s.notify(instrument, bar)

	return true
}

// IngestTick folds a trade into the in-progress bar for its minute. A tick for
// a later minute moves the previous in-progress bar into the ring without
// notifying listeners; only IngestBar and CloseOpenBar notify.
func (s *BarStore) IngestTick(instrument string, ts time.Time, price, volume float64) bool {
	s.ticksReceived.Add(1)
	s.metrics.Tick(instrument)

	if ts.IsZero() || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 ||
		math.IsNaN(volume) || math.IsInf(volume, 0) || volume < 0 {
		s.drop(instrument, "tick", "malformed tick")

		return false
	}

	minute := ts.UTC().Truncate(time.Minute)
	series := s.seriesFor(instrument)
	rolled := false

	series.mu.Lock()
	if last, ok := series.bars.last(); ok && !minute.After(last.Timestamp) {
		series.mu.Unlock()
		s.drop(instrument, "stale_tick", "tick for a closed minute")

		return false
	}

	open, err := series.open.Take()

	switch {
	case err != nil:
		series.open = optional.Some(startBar(minute, price, volume))
	case minute.Equal(open.Timestamp):
		open.High = math.Max(open.High, price)
		open.Low = math.Min(open.Low, price)
		open.Close = price
		open.Volume += volume
		series.open = optional.Some(open)
	case minute.Before(open.Timestamp):
		series.mu.Unlock()
		s.drop(instrument, "stale_tick", "tick older than open bar")

		return false
	default:
		series.bars.push(open)
		series.open = optional.Some(startBar(minute, price, volume))
		rolled = true
	}
	series.mu.Unlock()

	if rolled {
		s.closed(instrument)
	}

	return true
}

func startBar(minute time.Time, price, volume float64) types.Bar {
	return types.Bar{
		Timestamp: minute,
		Open:      price,
		High:      price,
		Low:       price,
		Close:     price,
		Volume:    volume,
	}
}

// CloseOpenBar closes the in-progress bar, appends it and notifies listeners.
func (s *BarStore) CloseOpenBar(instrument string) optional.Option[types.Bar] {
	series, ok := s.lookup(instrument)
	if !ok {
		return optional.None[types.Bar]()
	}

	series.mu.Lock()
	open, err := series.open.Take()
	if err != nil {
		series.mu.Unlock()

		return optional.None[types.Bar]()
	}

	series.bars.push(open)
	series.open = optional.None[types.Bar]()
	series.mu.Unlock()

	s.closed(instrument)
	s.notify(instrument, open)

	return optional.Some(open)
}

func (s *BarStore) closed(instrument string) {
	s.barsClosed.Add(1)
	s.metrics.BarClosed(instrument)
}

func (s *BarStore) drop(instrument, kind, reason string) {
	s.metrics.Dropped(kind)
	s.log.Debug("Dropped input",
		zap.String("instrument", instrument),
		zap.String("kind", kind),
		zap.String("reason", reason),
	)
}

// LastNBars returns a copy of the newest n closed bars, oldest first.
func (s *BarStore) LastNBars(instrument string, n int) []types.Bar {
	series, ok := s.lookup(instrument)
	if !ok {
		return []types.Bar{}
	}

	series.mu.Lock()
	defer series.mu.Unlock()

	return series.bars.tail(n)
}

// LastBar returns the newest closed bar.
func (s *BarStore) LastBar(instrument string) optional.Option[types.Bar] {
	bars := s.LastNBars(instrument, 1)
	if len(bars) == 0 {
		return optional.None[types.Bar]()
	}

	return optional.Some(bars[0])
}

// OpenBar returns the in-progress tick-fed bar.
func (s *BarStore) OpenBar(instrument string) optional.Option[types.Bar] {
	series, ok := s.lookup(instrument)
	if !ok {
		return optional.None[types.Bar]()
	}

	series.mu.Lock()
	defer series.mu.Unlock()

	return series.open
}

// Closes returns the newest n closes, oldest first.
func (s *BarStore) Closes(instrument string, n int) []float64 {
	return column(s.LastNBars(instrument, n), func(b types.Bar) float64 { return b.Close })
}

// Highs returns the newest n highs, oldest first.
func (s *BarStore) Highs(instrument string, n int) []float64 {
	return column(s.LastNBars(instrument, n), func(b types.Bar) float64 { return b.High })
}

// Lows returns the newest n lows, oldest first.
func (s *BarStore) Lows(instrument string, n int) []float64 {
	return column(s.LastNBars(instrument, n), func(b types.Bar) float64 { return b.Low })
}

// Volumes returns the newest n volumes, oldest first.
func (s *BarStore) Volumes(instrument string, n int) []float64 {
	return column(s.LastNBars(instrument, n), func(b types.Bar) float64 { return b.Volume })
}

func column(bars []types.Bar, pick func(types.Bar) float64) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = pick(b)
	}

	return out
}

// Size returns the number of closed bars held for an instrument.
func (s *BarStore) Size(instrument string) int {
	series, ok := s.lookup(instrument)
	if !ok {
		return 0
	}

	series.mu.Lock()
	defer series.mu.Unlock()

	return series.bars.len()
}

// HasSufficientHistory reports whether at least minBars closed bars are held.
func (s *BarStore) HasSufficientHistory(instrument string, minBars int) bool {
	return s.Size(instrument) >= minBars
}

// Instruments returns every known instrument in sorted order.
func (s *BarStore) Instruments() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.series))
	for inst := range s.series {
		out = append(out, inst)
	}

	sort.Strings(out)

	return out
}
