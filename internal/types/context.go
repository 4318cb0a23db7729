package types

import "github.com/moznion/go-optional"

// RegimeState classifies the current market regime.
type RegimeState string

const (
	RegimeTrending    RegimeState = "TRENDING"
	RegimeEarlyTrend  RegimeState = "EARLY_TREND"
	RegimeWeak        RegimeState = "WEAK"
	RegimeCompression RegimeState = "COMPRESSION"
)

// Regime is the output of the regime classifier.
type Regime struct {
	State RegimeState
	ADX   optional.Option[float64]
	// RangePct is the recent 20-bar range as a fraction of the last close.
	RangePct float64
}

// HTFBias is the higher-timeframe bias.
type HTFBias struct {
	Direction Bias
	// Label refines Direction, e.g. BULLISH_STRONG.
	Label string
}

// VWAPAcceptance says on which side of VWAP price is trading.
type VWAPAcceptance string

const (
	VWAPAbove VWAPAcceptance = "ABOVE"
	VWAPBelow VWAPAcceptance = "BELOW"
	// VWAPUnknown is reported before any volume has traded.
	VWAPUnknown VWAPAcceptance = "UNKNOWN"
)

// Accepts reports whether the acceptance side agrees with direction.
func (a VWAPAcceptance) Accepts(d Direction) bool {
	return (d == DirectionLong && a == VWAPAbove) || (d == DirectionShort && a == VWAPBelow)
}

// VWAPContext is the VWAP reading at a given price.
type VWAPContext struct {
	VWAP       optional.Option[float64]
	Acceptance VWAPAcceptance
	Score      float64
}

// VolumeContext scores the latest volume against its trailing baseline.
type VolumeContext struct {
	Score    float64
	Ratio    float64
	Strength string
}

// VolatilityState classifies the latest bar move against ATR.
type VolatilityState string

const (
	VolatilityExpanding   VolatilityState = "EXPANDING"
	VolatilityNormal      VolatilityState = "NORMAL"
	VolatilityContracting VolatilityState = "CONTRACTING"
	VolatilityUnknown     VolatilityState = "UNKNOWN"
)

// VolatilityContext is the volatility analyzer output.
type VolatilityContext struct {
	State VolatilityState
	Score float64
}

// LiquidityContext is the liquidity analyzer output.
type LiquidityContext struct {
	State     string
	Score     float64
	AvgVolume float64
}

// PriceActionContext summarizes recent bar geometry.
type PriceActionContext struct {
	Score    float64
	Quality  Confidence
	ATR      optional.Option[float64]
	Pullback bool
	// Rejection is BULLISH, BEARISH or NEUTRAL.
	Rejection      Bias
	RejectionScore float64
	Momentum       float64
	Trend          Bias
}
