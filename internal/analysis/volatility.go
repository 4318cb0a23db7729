package analysis

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
)

// AnalyzeVolatility grades a bar move against ATR.
func AnalyzeVolatility(move float64, atr optional.Option[float64]) types.VolatilityContext {
	value, err := atr.Take()
	if err != nil || value <= 0 {
		return types.VolatilityContext{State: types.VolatilityUnknown, Score: 0}
	}

	ratio := math.Abs(move) / value

	switch {
	case ratio >= 0.8:
		return types.VolatilityContext{State: types.VolatilityExpanding, Score: 1.0}
	case ratio >= 0.3:
		return types.VolatilityContext{State: types.VolatilityNormal, Score: 0.3}
	default:
		return types.VolatilityContext{State: types.VolatilityContracting, Score: -0.5}
	}
}
