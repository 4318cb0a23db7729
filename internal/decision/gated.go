package decision

import (
	"math"

	"github.com/omupade20/prop8/internal/types"
)

// Gated policy weights.
const (
	gatedStructureWeight  = 4.0
	gatedHTFWeight        = 2.0
	gatedRegimeWeight     = 1.5
	gatedVWAPWeight       = 1.5
	gatedVolatilityWeight = 1.5
	gatedLiquidityWeight  = 1.0
	gatedSRMultiplier     = 1.5
	gatedMinVolumeScore   = 1.0
)

// DefaultGatedThresholds executes at 8.0 and prepares at 6.5.
func DefaultGatedThresholds() Thresholds {
	return Thresholds{Execute: 8.0, Prepare: 6.5}
}

// GatedPolicy is the pullback driven cascade. Every gate is a hard reject,
// so a decision that survives all of them carries every weight.
type GatedPolicy struct {
	thresholds Thresholds
}

// NewGatedPolicy returns a GatedPolicy using thresholds.
func NewGatedPolicy(thresholds Thresholds) *GatedPolicy {
	return &GatedPolicy{thresholds: thresholds}
}

// Decide implements the pipeline's decision contract. A POTENTIAL signal
// prepares at the PREPARE bound without further gating.
func (p *GatedPolicy) Decide(in Input) types.Decision {
	components := types.DecisionComponents{}

	signal, err := in.Signal.Take()
	if err != nil {
		return types.Ignore(reasonNoStructure, components)
	}

	dir := signal.Direction

	if signal.Class == types.StructurePotential {
		components.Structure = p.thresholds.Prepare

		return prepare(dir, finalScore(p.thresholds.Prepare), components, "potential structure")
	}

	components.Structure = gatedStructureWeight

	if !in.Bias.Direction.Supports(dir) {
		return types.Ignore("htf bias mismatch", components)
	}

	components.HTF = gatedHTFWeight

	if in.Regime.State != types.RegimeTrending {
		return types.Ignore("regime not trending", components)
	}

	components.Regime = gatedRegimeWeight

	if !in.VWAP.Acceptance.Accepts(dir) {
		return types.Ignore("vwap acceptance mismatch", components)
	}

	components.VWAP = gatedVWAPWeight

	ctx := in.Context

	if ctx.Volume.Score < gatedMinVolumeScore {
		return types.Ignore("insufficient volume", components)
	}

	components.Volume = ctx.Volume.Score

	if ctx.Volatility.State != types.VolatilityExpanding {
		return types.Ignore("volatility not expanding", components)
	}

	components.Volatility = gatedVolatilityWeight

	if ctx.Liquidity.Score < 0 {
		return types.Ignore("illiquid", components)
	}

	components.Liquidity = gatedLiquidityWeight

	if ctx.PriceAction.Quality != types.ConfidenceHigh {
		return types.Ignore("price action quality not high", components)
	}

	components.PriceAction = math.Abs(ctx.PriceAction.Score)

	sr := locationScore(in, dir)
	if sr <= 0 {
		return types.Ignore("unfavorable sr location", components)
	}

	components.SR = sr * gatedSRMultiplier

	return resolve(total(components), dir, components, p.thresholds, "high quality pullback", "score below threshold")
}

func total(c types.DecisionComponents) float64 {
	return c.Structure + c.HTF + c.Regime + c.VWAP + c.Volume + c.Volatility +
		c.Liquidity + c.PriceAction + c.SR + c.RSI
}
