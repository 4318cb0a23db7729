// Package timeframe builds higher timeframe candles from 1-minute bars and
// scores the 5 and 15 minute context.
package timeframe

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
)

// BarSource provides copies of the newest closed 1-minute bars, oldest first.
type BarSource interface {
	LastNBars(instrument string, n int) []types.Bar
}

// Aggregator builds N-minute candles on demand from a BarSource.
type Aggregator struct {
	source BarSource
}

// NewAggregator returns an Aggregator reading from source.
func NewAggregator(source BarSource) *Aggregator {
	return &Aggregator{source: source}
}

// Aggregate returns the candle made of the newest minutes bars.
func (a *Aggregator) Aggregate(instrument string, minutes int) optional.Option[types.Candle] {
	if minutes <= 0 {
		return optional.None[types.Candle]()
	}

	return AggregateBars(a.source.LastNBars(instrument, minutes), minutes)
}

// History returns up to lookback disjoint candles counted back from the newest
// bar, newest last.
func (a *Aggregator) History(instrument string, minutes, lookback int) []types.Candle {
	if minutes <= 0 || lookback <= 0 {
		return []types.Candle{}
	}

	return HistoryFromBars(a.source.LastNBars(instrument, minutes*lookback), minutes, lookback)
}

// AggregateBars folds the newest minutes bars into one candle. It is absent
// when fewer than minutes bars are given.
func AggregateBars(bars []types.Bar, minutes int) optional.Option[types.Candle] {
	if minutes <= 0 || len(bars) < minutes {
		return optional.None[types.Candle]()
	}

	return optional.Some(fold(bars[len(bars)-minutes:]))
}

// HistoryFromBars splits the tail of bars into up to lookback contiguous
// blocks of minutes bars, oldest first. Partial blocks are never returned.
func HistoryFromBars(bars []types.Bar, minutes, lookback int) []types.Candle {
	out := make([]types.Candle, 0, max(lookback, 0))
	if minutes <= 0 {
		return out
	}

	total := len(bars)
	for i := lookback; i > 0; i-- {
		end := total - (i-1)*minutes
		start := end - minutes

		if start < 0 {
			continue
		}

		out = append(out, fold(bars[start:end]))
	}

	return out
}

func fold(block []types.Bar) types.Candle {
	candle := types.Candle{
		Start:  block[0].Timestamp,
		End:    block[len(block)-1].Timestamp,
		Open:   block[0].Open,
		High:   block[0].High,
		Low:    block[0].Low,
		Close:  block[len(block)-1].Close,
		Volume: 0,
	}

	for _, b := range block {
		candle.High = math.Max(candle.High, b.High)
		candle.Low = math.Min(candle.Low, b.Low)
		candle.Volume += b.Volume
	}

	return candle
}
