package indicator

import (
	"math"

	"github.com/moznion/go-optional"
)

// TrueRanges returns the true range of every bar after the first:
// max(high-low, |high-prevClose|, |low-prevClose|).
func TrueRanges(highs, lows, closes []float64) []float64 {
	n := min(len(highs), len(lows), len(closes))
	if n < 2 {
		return nil
	}

	out := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		out = append(out, trueRange(highs[i], lows[i], closes[i-1]))
	}

	return out
}

func trueRange(high, low, prevClose float64) float64 {
	return math.Max(
		math.Max(high-low, math.Abs(high-prevClose)),
		math.Abs(low-prevClose),
	)
}

// ATR returns the mean of the last period true ranges. It needs period+1 bars.
func ATR(highs, lows, closes []float64, period int) optional.Option[float64] {
	if period <= 0 {
		return optional.None[float64]()
	}

	tr := TrueRanges(highs, lows, closes)
	if len(tr) < period {
		return optional.None[float64]()
	}

	sum := 0.0
	for _, v := range tr[len(tr)-period:] {
		sum += v
	}

	return optional.Some(sum / float64(period))
}
