package indicator

import "github.com/moznion/go-optional"

// SMA returns the simple average of the last period values.
func SMA(values []float64, period int) optional.Option[float64] {
	if period <= 0 || len(values) < period {
		return optional.None[float64]()
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}

	return optional.Some(sum / float64(period))
}
