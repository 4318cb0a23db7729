package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds x half away from zero to the given number of decimal places.
// Rounding goes through decimal so that 0.125 style boundaries are exact.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// MaxOf returns the largest value. It panics on an empty slice.
func MaxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

// MinOf returns the smallest value. It panics on an empty slice.
func MinOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}

	return m
}

// Tail returns the last n values of s, or all of s when it is shorter.
// The result aliases s.
func Tail[T any](s []T, n int) []T {
	if n <= 0 {
		return s[:0]
	}

	if len(s) <= n {
		return s
	}

	return s[len(s)-n:]
}
