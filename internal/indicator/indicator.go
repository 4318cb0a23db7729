// Package indicator holds the generic technical indicators used by the
// analysis stages. Every function is pure and reports an absent value when
// the input is too short.
package indicator

import (
	"fmt"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
)

// Indicator is a named scalar reading over a bar series.
type Indicator interface {
	// Name returns the registry key, e.g. "ema_21".
	Name() string
	// Compute returns the latest reading, absent on insufficient history.
	Compute(series types.Series) optional.Option[float64]
}

type closeIndicator struct {
	name string
	fn   func(closes []float64) optional.Option[float64]
}

func (c closeIndicator) Name() string { return c.name }

func (c closeIndicator) Compute(series types.Series) optional.Option[float64] {
	return c.fn(series.Closes)
}

type barIndicator struct {
	name string
	fn   func(highs, lows, closes []float64) optional.Option[float64]
}

func (b barIndicator) Name() string { return b.name }

func (b barIndicator) Compute(series types.Series) optional.Option[float64] {
	return b.fn(series.Highs, series.Lows, series.Closes)
}

// NewEMA returns an EMA of closes.
func NewEMA(period int) Indicator {
	return closeIndicator{
		name: fmt.Sprintf("ema_%d", period),
		fn:   func(closes []float64) optional.Option[float64] { return EMA(closes, period) },
	}
}

// NewSMA returns a simple moving average of closes.
func NewSMA(period int) Indicator {
	return closeIndicator{
		name: fmt.Sprintf("sma_%d", period),
		fn:   func(closes []float64) optional.Option[float64] { return SMA(closes, period) },
	}
}

// NewRSI returns a Wilder RSI of closes.
func NewRSI(period int) Indicator {
	return closeIndicator{
		name: fmt.Sprintf("rsi_%d", period),
		fn:   func(closes []float64) optional.Option[float64] { return RSI(closes, period) },
	}
}

// NewMACDHistogram returns the MACD histogram of closes.
func NewMACDHistogram(fast, slow, signal int) Indicator {
	return closeIndicator{
		name: "macd_hist",
		fn: func(closes []float64) optional.Option[float64] {
			m := MACD(closes, fast, slow, signal)
			if m.IsNone() {
				return optional.None[float64]()
			}

			return optional.Some(m.Unwrap().Histogram)
		},
	}
}

// NewATR returns the average true range.
func NewATR(period int) Indicator {
	return barIndicator{
		name: fmt.Sprintf("atr_%d", period),
		fn: func(highs, lows, closes []float64) optional.Option[float64] {
			return ATR(highs, lows, closes, period)
		},
	}
}

// NewADX returns the average directional index.
func NewADX(period int) Indicator {
	return barIndicator{
		name: fmt.Sprintf("adx_%d", period),
		fn: func(highs, lows, closes []float64) optional.Option[float64] {
			return ADX(highs, lows, closes, period)
		},
	}
}
