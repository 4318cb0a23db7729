package decision

import (
	"math"
	"strings"

	"github.com/omupade20/prop8/internal/types"
)

const (
	breakoutStructureWeight = 3.0
	breakoutPotentialScore  = 1.0
	breakoutHTFWeight       = 1.2
	earlyTrendWeight        = 0.8
	trendingWeight          = 1.2
	breakoutMinVolumeScore  = 0.5
	breakoutMinSR           = -0.3
	breakoutSRMultiplier    = 0.7
	rsiPenalty              = -1.0
)

// DefaultBreakoutThresholds executes at 6.0 and prepares at 3.5.
func DefaultBreakoutThresholds() Thresholds {
	return Thresholds{Execute: 6.0, Prepare: 3.5}
}

// BreakoutPolicy weighs a range breakout. It rejects only clear
// disagreement and lets the weights grade the rest.
type BreakoutPolicy struct {
	thresholds Thresholds
}

// NewBreakoutPolicy returns a BreakoutPolicy using thresholds.
func NewBreakoutPolicy(thresholds Thresholds) *BreakoutPolicy {
	return &BreakoutPolicy{thresholds: thresholds}
}

// Decide implements the pipeline's decision contract.
func (p *BreakoutPolicy) Decide(in Input) types.Decision {
	components := types.DecisionComponents{}

	signal, err := in.Signal.Take()
	if err != nil {
		return types.Ignore(reasonNoStructure, components)
	}

	dir := signal.Direction

	if signal.Class == types.StructurePotential {
		components.Structure = breakoutPotentialScore

		return prepare(dir, breakoutPotentialScore, components, "potential breakout")
	}

	components.Structure = breakoutStructureWeight

	label := in.Bias.Label
	if dir == types.DirectionLong && strings.HasPrefix(label, string(types.BiasBearish)) {
		return types.Ignore("htf opposes long", components)
	}

	if dir == types.DirectionShort && strings.HasPrefix(label, string(types.BiasBullish)) {
		return types.Ignore("htf opposes short", components)
	}

	components.HTF = breakoutHTFWeight

	switch in.Regime.State {
	case types.RegimeWeak, types.RegimeCompression:
		return types.Ignore("bad market regime", components)
	case types.RegimeEarlyTrend:
		components.Regime = earlyTrendWeight
	case types.RegimeTrending:
		components.Regime = trendingWeight
	}

	switch {
	case dir == types.DirectionLong && in.VWAP.Acceptance == types.VWAPBelow:
		return types.Ignore("below vwap", components)
	case dir == types.DirectionShort && in.VWAP.Acceptance == types.VWAPAbove:
		return types.Ignore("above vwap", components)
	}

	components.VWAP = in.VWAP.Score

	ctx := in.Context

	if ctx.Volume.Score < breakoutMinVolumeScore {
		return types.Ignore("insufficient volume confirmation", components)
	}

	components.Volume = ctx.Volume.Score
	components.Volatility = ctx.Volatility.Score

	if ctx.Liquidity.Score < 0 {
		return types.Ignore("illiquid", components)
	}

	components.Liquidity = ctx.Liquidity.Score

	pa := ctx.PriceAction.Score
	if (dir == types.DirectionLong && pa < 0) || (dir == types.DirectionShort && pa > 0) {
		return types.Ignore("price action not supportive", components)
	}

	components.PriceAction = math.Abs(pa)

	sr := locationScore(in, dir)
	if sr < breakoutMinSR {
		return types.Ignore("unfavorable sr location", components)
	}

	components.SR = sr * breakoutSRMultiplier

	if rsi, err := ctx.RSI.Take(); err == nil {
		switch dir {
		case types.DirectionLong:
			if rsi < 40 {
				return types.Ignore("weak momentum long", components)
			}

			if rsi < 50 {
				components.RSI = rsiPenalty
			}
		case types.DirectionShort:
			if rsi > 60 {
				return types.Ignore("weak momentum short", components)
			}

			if rsi > 50 {
				components.RSI = rsiPenalty
			}
		}
	}

	return resolve(total(components), dir, components, p.thresholds, "high quality breakout", "weak follow-through")
}
