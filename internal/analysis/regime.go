package analysis

import (
	"github.com/omupade20/prop8/internal/indicator"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

const (
	regimeMinBars     = 30
	regimeADXPeriod   = 14
	trendingADX       = 25
	earlyTrendADX     = 20
	rangeWindow       = 20
	compressionFactor = 0.65
)

// RegimeDetector classifies the market regime from ADX and range compression.
type RegimeDetector struct{}

// NewRegimeDetector returns a RegimeDetector.
func NewRegimeDetector() *RegimeDetector {
	return &RegimeDetector{}
}

// Classify implements the pipeline's regime contract.
func (RegimeDetector) Classify(highs, lows, closes []float64) types.Regime {
	return DetectRegime(highs, lows, closes)
}

// DetectRegime returns TRENDING when ADX(14) is at least 25, COMPRESSION when
// the last twenty bars range less than 0.65 of the twenty before, EARLY_TREND
// when ADX is at least 20 and WEAK otherwise or with fewer than 30 bars.
func DetectRegime(highs, lows, closes []float64) types.Regime {
	regime := types.Regime{State: types.RegimeWeak, ADX: indicator.ADX(highs, lows, closes, regimeADXPeriod), RangePct: 0}

	n := len(closes)
	if n < regimeMinBars || len(highs) != n || len(lows) != n {
		return regime
	}

	recent := barRange(highs[n-rangeWindow:], lows[n-rangeWindow:])
	if last := closes[n-1]; last > 0 {
		regime.RangePct = utils.Round(recent/last, 5)
	}

	adx := regime.ADX.TakeOr(0)

	compressed := false
	if n >= 2*rangeWindow {
		previous := barRange(highs[n-2*rangeWindow:n-rangeWindow], lows[n-2*rangeWindow:n-rangeWindow])
		compressed = recent < compressionFactor*previous
	}

	switch {
	case adx >= trendingADX:
		regime.State = types.RegimeTrending
	case compressed:
		regime.State = types.RegimeCompression
	case adx >= earlyTrendADX:
		regime.State = types.RegimeEarlyTrend
	}

	return regime
}

func barRange(highs, lows []float64) float64 {
	return utils.MaxOf(highs) - utils.MinOf(lows)
}

// closeRange is the spread of closing prices, used by the breakout
// compression test.
func closeRange(closes []float64) float64 {
	return utils.MaxOf(closes) - utils.MinOf(closes)
}

// CloseCompression reports whether the last twenty closes span less than 0.65
// of the twenty before. It needs forty closes.
func CloseCompression(closes []float64) bool {
	n := len(closes)
	if n < 2*rangeWindow {
		return false
	}

	return closeRange(closes[n-rangeWindow:]) < compressionFactor*closeRange(closes[n-2*rangeWindow:n-rangeWindow])
}
