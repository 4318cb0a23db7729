package indicator

import (
	"math"

	"github.com/moznion/go-optional"
)

// ADX returns the directional movement index over the last period bars: the
// summed +DM and -DM of that window, each divided by ATR(period), give the
// directional indicators and their normalised spread is the result. It needs
// period+1 bars and is absent when the range or the movement is zero.
func ADX(highs, lows, closes []float64, period int) optional.Option[float64] {
	n := min(len(highs), len(lows), len(closes))
	if period <= 0 || n < period+1 {
		return optional.None[float64]()
	}

	atr, err := ATR(highs[:n], lows[:n], closes[:n], period).Take()
	if err != nil || atr == 0 {
		return optional.None[float64]()
	}

	plusDM, minusDM := 0.0, 0.0

	for i := n - period; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]

		if up > down && up > 0 {
			plusDM += up
		}

		if down > up && down > 0 {
			minusDM += down
		}
	}

	plusDI := 100 * plusDM / atr
	minusDI := 100 * minusDM / atr

	denom := plusDI + minusDI
	if denom == 0 {
		return optional.None[float64]()
	}

	return optional.Some(100 * math.Abs(plusDI-minusDI) / denom)
}
