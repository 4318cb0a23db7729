package analysis

import (
	"math"
	"sync"
	"time"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
	"github.com/shopspring/decimal"
)

const vwapBand = 0.01

// VWAP accumulates a session volume weighted average price. Sums are kept in
// decimal so that long sessions do not drift. It is safe for concurrent use.
type VWAP struct {
	mu       sync.Mutex
	pv       decimal.Decimal
	volume   decimal.Decimal
	lastBar  time.Time
	hasValue bool
}

// NewVWAP returns an empty session.
func NewVWAP() *VWAP {
	return &VWAP{
		mu:       sync.Mutex{},
		pv:       decimal.Zero,
		volume:   decimal.Zero,
		lastBar:  time.Time{},
		hasValue: false,
	}
}

// Update adds one price/volume observation.
func (v *VWAP) Update(price, volume float64) {
	if volume <= 0 || math.IsNaN(price) || math.IsNaN(volume) || math.IsInf(price, 0) || math.IsInf(volume, 0) {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.add(price, volume)
}

func (v *VWAP) add(price, volume float64) {
	vol := decimal.NewFromFloat(volume)
	v.pv = v.pv.Add(decimal.NewFromFloat(price).Mul(vol))
	v.volume = v.volume.Add(vol)
	v.hasValue = true
}

// UpdateBar adds a closed bar once. Bars at or before the last one added are
// ignored and false is returned.
func (v *VWAP) UpdateBar(bar types.Bar) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.lastBar.IsZero() && !bar.Timestamp.After(v.lastBar) {
		return false
	}

	v.lastBar = bar.Timestamp

	if bar.Volume > 0 {
		v.add(bar.Close, bar.Volume)
	}

	return true
}

// Value returns the current VWAP, absent before any volume.
func (v *VWAP) Value() optional.Option[float64] {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.value()
}

func (v *VWAP) value() optional.Option[float64] {
	if !v.hasValue || v.volume.IsZero() {
		return optional.None[float64]()
	}

	return optional.Some(v.pv.Div(v.volume).InexactFloat64())
}

// Context reads ltp against the current VWAP. The score is 1.0 within 1% of
// VWAP and 0.5 when price is extended further.
func (v *VWAP) Context(ltp float64) types.VWAPContext {
	v.mu.Lock()
	value := v.value()
	v.mu.Unlock()

	vwap, err := value.Take()
	if err != nil || vwap <= 0 {
		return types.VWAPContext{VWAP: optional.None[float64](), Acceptance: types.VWAPUnknown, Score: 0}
	}

	ctx := types.VWAPContext{VWAP: value, Acceptance: types.VWAPBelow, Score: 0.5}
	if ltp >= vwap {
		ctx.Acceptance = types.VWAPAbove
	}

	if math.Abs(ltp-vwap)/vwap <= vwapBand {
		ctx.Score = 1.0
	}

	return ctx
}

// Reset starts a new session.
func (v *VWAP) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pv = decimal.Zero
	v.volume = decimal.Zero
	v.lastBar = time.Time{}
	v.hasValue = false
}
