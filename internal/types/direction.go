package types

// Direction is the side of a trade setup.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// Bias is a directional market reading.
type Bias string

const (
	BiasBullish Bias = "BULLISH"
	BiasBearish Bias = "BEARISH"
	BiasNeutral Bias = "NEUTRAL"
)

// Direction maps a bias to the trade direction it supports. Neutral maps to false.
func (b Bias) Direction() (Direction, bool) {
	switch b {
	case BiasBullish:
		return DirectionLong, true
	case BiasBearish:
		return DirectionShort, true
	default:
		return "", false
	}
}

// Supports reports whether the bias agrees with the given trade direction.
func (b Bias) Supports(d Direction) bool {
	dir, ok := b.Direction()

	return ok && dir == d
}

// Confidence grades a timeframe reading.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)
