package analysis

import (
	"github.com/omupade20/prop8/internal/indicator"
	"github.com/omupade20/prop8/internal/types"
)

const (
	biasFastPeriod = 20
	biasSlowPeriod = 50
)

// Bias labels.
const (
	LabelBullishStrong = "BULLISH_STRONG"
	LabelBearishStrong = "BEARISH_STRONG"
)

// HTFBiasEstimator derives the higher timeframe bias from EMA20/EMA50 and VWAP.
type HTFBiasEstimator struct{}

// NewHTFBiasEstimator returns an HTFBiasEstimator.
func NewHTFBiasEstimator() *HTFBiasEstimator {
	return &HTFBiasEstimator{}
}

// Estimate implements the pipeline's bias contract.
func (HTFBiasEstimator) Estimate(prices []float64, vwap float64) types.HTFBias {
	return EstimateBias(prices, vwap)
}

// EstimateBias is BULLISH when EMA20 is above EMA50 and price trades above
// vwap, BEARISH in the mirrored case and NEUTRAL otherwise. Price beyond EMA20
// in the bias direction strengthens the label.
func EstimateBias(prices []float64, vwap float64) types.HTFBias {
	neutral := types.HTFBias{Direction: types.BiasNeutral, Label: string(types.BiasNeutral)}

	if len(prices) < biasSlowPeriod {
		return neutral
	}

	fast, fastErr := indicator.EMA(prices, biasFastPeriod).Take()
	slow, slowErr := indicator.EMA(prices, biasSlowPeriod).Take()

	if fastErr != nil || slowErr != nil {
		return neutral
	}

	price := prices[len(prices)-1]

	switch {
	case fast > slow && price > vwap:
		label := string(types.BiasBullish)
		if price > fast {
			label = LabelBullishStrong
		}

		return types.HTFBias{Direction: types.BiasBullish, Label: label}
	case fast < slow && price < vwap:
		label := string(types.BiasBearish)
		if price < fast {
			label = LabelBearishStrong
		}

		return types.HTFBias{Direction: types.BiasBearish, Label: label}
	default:
		return neutral
	}
}
