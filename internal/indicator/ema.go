package indicator

import "github.com/moznion/go-optional"

// EMA returns the exponential moving average of the series over period.
// It is absent when the series is shorter than period.
func EMA(values []float64, period int) optional.Option[float64] {
	series := EMASeries(values, period)
	if len(series) == 0 {
		return optional.None[float64]()
	}

	return optional.Some(series[len(series)-1])
}

// EMASeries returns the EMA after each bar starting from index period-1.
//
// The first value is the simple average of the first period values; later
// values use EMA = price * alpha + EMA_prev * (1 - alpha) with
// alpha = 2/(period+1).
func EMASeries(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	sma := 0.0
	for i := 0; i < period; i++ {
		sma += values[i]
	}

	sma /= float64(period)

	alpha := 2.0 / float64(period+1)
	out := make([]float64, 0, len(values)-period+1)
	out = append(out, sma)

	ema := sma
	for i := period; i < len(values); i++ {
		ema = (values[i] * alpha) + (ema * (1 - alpha))
		out = append(out, ema)
	}

	return out
}
