package types

import (
	"math"
	"time"
)

// Bar is one closed 1-minute OHLCV bar for an instrument.
type Bar struct {
	// Timestamp is the start of the minute the bar covers, truncated to the minute.
	Timestamp time.Time `json:"time"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// Valid reports whether the bar has a timestamp, finite positive prices,
// a non-negative volume, and a high/low envelope containing open and close.
func (b Bar) Valid() bool {
	if b.Timestamp.IsZero() {
		return false
	}

	for _, p := range []float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return false
		}
	}

	if math.IsNaN(b.Volume) || math.IsInf(b.Volume, 0) || b.Volume < 0 {
		return false
	}

	return b.High >= math.Max(b.Open, b.Close) && b.Low <= math.Min(b.Open, b.Close)
}

// Candle is an N-minute aggregate over a contiguous block of bars.
type Candle struct {
	// Start is the timestamp of the first bar in the block.
	Start time.Time
	// End is the timestamp of the last bar in the block.
	End    time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Bullish reports close above open.
func (c Candle) Bullish() bool {
	return c.Close > c.Open
}

// Bearish reports close below open.
func (c Candle) Bearish() bool {
	return c.Close < c.Open
}

// Series is a column view of a bar window. All slices share one length and
// come from the same snapshot.
type Series struct {
	Timestamps []time.Time
	Opens      []float64
	Highs      []float64
	Lows       []float64
	Closes     []float64
	Volumes    []float64
}

// NewSeries splits bars into columns.
func NewSeries(bars []Bar) Series {
	s := Series{
		Timestamps: make([]time.Time, len(bars)),
		Opens:      make([]float64, len(bars)),
		Highs:      make([]float64, len(bars)),
		Lows:       make([]float64, len(bars)),
		Closes:     make([]float64, len(bars)),
		Volumes:    make([]float64, len(bars)),
	}

	for i, b := range bars {
		s.Timestamps[i] = b.Timestamp
		s.Opens[i] = b.Open
		s.Highs[i] = b.High
		s.Lows[i] = b.Low
		s.Closes[i] = b.Close
		s.Volumes[i] = b.Volume
	}

	return s
}

// Len returns the number of bars in the series.
func (s Series) Len() int {
	return len(s.Closes)
}

// LastClose returns the newest close, or 0 for an empty series.
func (s Series) LastClose() float64 {
	if len(s.Closes) == 0 {
		return 0
	}

	return s.Closes[len(s.Closes)-1]
}
