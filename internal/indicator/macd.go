package indicator

import "github.com/moznion/go-optional"

// MACDValue is a MACD reading.
type MACDValue struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes the MACD line (fast EMA minus slow EMA), its signal line (an
// EMA of the MACD line) and the histogram. It needs slow+signal values.
func MACD(values []float64, fast, slow, signal int) optional.Option[MACDValue] {
	if fast <= 0 || slow <= fast || signal <= 0 || len(values) < slow+signal {
		return optional.None[MACDValue]()
	}

	fastSeries := EMASeries(values, fast)
	slowSeries := EMASeries(values, slow)

	// fastSeries starts at index fast-1, slowSeries at slow-1
	offset := slow - fast
	line := make([]float64, len(slowSeries))
	for i := range slowSeries {
		line[i] = fastSeries[i+offset] - slowSeries[i]
	}

	sig := EMA(line, signal)
	if sig.IsNone() {
		return optional.None[MACDValue]()
	}

	signalValue := sig.Unwrap()
	macdValue := line[len(line)-1]

	return optional.Some(MACDValue{
		MACD:      macdValue,
		Signal:    signalValue,
		Histogram: macdValue - signalValue,
	})
}
