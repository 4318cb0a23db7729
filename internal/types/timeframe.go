package types

// TimeframeContext is the multi-timeframe reading built from 5 and 15 minute candles.
type TimeframeContext struct {
	Direction Bias
	// Score is the signed raw score before the strength cap.
	Score float64
	// Strength is min(|Score|, 2) rounded to two decimals.
	Strength    float64
	Confidence  Confidence
	Conflict    bool
	Explanation string
}
