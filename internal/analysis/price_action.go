// Package analysis holds the per-evaluation collaborators of the decision
// pipeline: price action, volume, volatility, liquidity, regime, HTF bias and
// session VWAP. Everything except VWAP is a pure function of its inputs.
package analysis

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/indicator"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

const (
	priceActionMinBars = 15
	atrPeriod          = 14
	swingLookback      = 8
	momentumBars       = 5
)

// PriceAction scores the newest bars for pullback quality, wick rejection and
// momentum, all normalized by ATR(14). emaShort and emaLong set the trend the
// pullback is measured against.
func PriceAction(opens, highs, lows, closes []float64, emaShort, emaLong optional.Option[float64]) types.PriceActionContext {
	pa := types.PriceActionContext{
		Score:          0,
		Quality:        types.ConfidenceLow,
		ATR:            optional.None[float64](),
		Pullback:       false,
		Rejection:      types.BiasNeutral,
		RejectionScore: 0,
		Momentum:       0,
		Trend:          types.BiasNeutral,
	}

	n := len(closes)
	if n < priceActionMinBars || len(opens) != n || len(highs) != n || len(lows) != n {
		return pa
	}

	pa.ATR = indicator.ATR(highs, lows, closes, atrPeriod)

	atr, err := pa.ATR.Take()
	if err != nil || atr <= 0 {
		return pa
	}

	short, shortErr := emaShort.Take()
	long, longErr := emaLong.Take()

	if shortErr == nil && longErr == nil {
		switch {
		case short > long:
			pa.Trend = types.BiasBullish
		case short < long:
			pa.Trend = types.BiasBearish
		}
	}

	last := closes[n-1]
	swing := closes[n-1-swingLookback : n-1]

	var depth float64

	switch pa.Trend {
	case types.BiasBullish:
		depth = utils.MaxOf(swing) - last
	case types.BiasBearish:
		depth = last - utils.MinOf(swing)
	}

	pa.Pullback = pa.Trend != types.BiasNeutral && depth >= 0.25*atr && depth <= 1.1*atr

	pa.Rejection, pa.RejectionScore = rejection(opens[n-1], highs[n-1], lows[n-1], last, atr)
	pa.Momentum = utils.Round(math.Abs(last-closes[n-1-momentumBars])/atr, 3)

	score := 0.0
	if pa.Pullback {
		score += 0.8
	}

	switch pa.Rejection {
	case types.BiasBullish:
		score += 0.9
	case types.BiasBearish:
		score -= 0.9
	}

	if pa.Momentum >= 0.4 {
		score += 0.7
	} else {
		score -= 0.4
	}

	if pa.Pullback {
		switch pa.Trend {
		case types.BiasBullish:
			score += 0.4
		case types.BiasBearish:
			score -= 0.4
		}
	}

	pa.Score = utils.Round(score, 2)

	switch abs := math.Abs(pa.Score); {
	case abs >= 1.6:
		pa.Quality = types.ConfidenceHigh
	case abs >= 1.0:
		pa.Quality = types.ConfidenceMedium
	}

	return pa
}

func rejection(open, high, low, closePrice, atr float64) (types.Bias, float64) {
	body := math.Abs(closePrice - open)
	upper := math.Max(0, high-math.Max(closePrice, open))
	lower := math.Max(0, math.Min(closePrice, open)-low)
	minWick := 0.2 * atr

	switch {
	case lower >= minWick && lower > 1.4*body:
		return types.BiasBullish, math.Min(1, lower/(1.5*atr))
	case upper >= minWick && upper > 1.4*body:
		return types.BiasBearish, math.Min(1, upper/(1.5*atr))
	default:
		return types.BiasNeutral, 0
	}
}
