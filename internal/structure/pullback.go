package structure

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/analysis"
	"github.com/omupade20/prop8/internal/srlevel"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

// PullbackParams tunes the PullbackDetector gates.
type PullbackParams struct {
	MinBars        int     `yaml:"min_bars" json:"min_bars" validate:"gte=9"`
	MaxSRDistance  float64 `yaml:"max_sr_distance" json:"max_sr_distance" validate:"gt=0"`
	MinATRPct      float64 `yaml:"min_atr_pct" json:"min_atr_pct" validate:"gte=0"`
	MaxExtension   float64 `yaml:"max_extension" json:"max_extension" validate:"gt=0"`
	MinVolumeScore float64 `yaml:"min_volume_score" json:"min_volume_score"`
	MinMomentum    float64 `yaml:"min_momentum" json:"min_momentum" validate:"gte=0"`
	MinPotential   float64 `yaml:"min_potential" json:"min_potential" validate:"gte=0"`
	ConfirmedScore float64 `yaml:"confirmed_score" json:"confirmed_score" validate:"gtfield=PotentialScore"`
	PotentialScore float64 `yaml:"potential_score" json:"potential_score" validate:"gt=0"`
}

// DefaultPullbackParams returns the production gates.
func DefaultPullbackParams() PullbackParams {
	return PullbackParams{
		MinBars:        40,
		MaxSRDistance:  0.015,
		MinATRPct:      0.0045,
		MaxExtension:   1.3,
		MinVolumeScore: 1.0,
		MinMomentum:    0.45,
		MinPotential:   0.0065,
		ConfirmedScore: 7.0,
		PotentialScore: 5.0,
	}
}

const (
	extensionBars     = 7
	pullbackMomentum  = 5
	volatilityBonus   = 1.5
	componentCap      = 2.0
	locationScale     = 80
	locationProximity = 0.015
)

// PullbackDetector looks for a high energy pullback into a clean support in
// a bullish bias or into a clean resistance in a bearish one. Every gate is a
// hard reject.
type PullbackDetector struct {
	params PullbackParams
}

// NewPullbackDetector returns a detector using params.
func NewPullbackDetector(params PullbackParams) *PullbackDetector {
	return &PullbackDetector{params: params}
}

// Detect returns the pullback signal of the newest bar, if any.
func (d *PullbackDetector) Detect(series types.Series, ctx analysis.Context, bias types.HTFBias) optional.Option[types.StructureSignal] {
	none := optional.None[types.StructureSignal]()
	closes := series.Closes
	n := len(closes)

	if n < max(d.params.MinBars, extensionBars+1) {
		return none
	}

	last := closes[n-1]

	nearestOpt := srlevel.Nearest(last, ctx.Levels, d.params.MaxSRDistance)

	nearest, err := nearestOpt.Take()
	if err != nil {
		return none
	}

	var direction types.Direction

	switch {
	case nearest.Type == types.SRTypeSupport && bias.Direction == types.BiasBullish:
		direction = types.DirectionLong
	case nearest.Type == types.SRTypeResistance && bias.Direction == types.BiasBearish:
		direction = types.DirectionShort
	default:
		return none
	}

	atr := ctx.ATR.TakeOr(0)
	if atr <= 0 || atr/math.Max(last, 1e-9) < d.params.MinATRPct {
		return none
	}

	if math.Abs(last-closes[n-1-extensionBars]) > d.params.MaxExtension*atr {
		return none
	}

	if ctx.Volatility.State != types.VolatilityExpanding {
		return none
	}

	if ctx.PriceAction.Quality != types.ConfidenceHigh {
		return none
	}

	if ctx.Volume.Score < d.params.MinVolumeScore {
		return none
	}

	momentum := math.Abs(last-closes[n-1-pullbackMomentum]) / atr
	if momentum < d.params.MinMomentum {
		return none
	}

	if nearest.Distance < d.params.MinPotential {
		return none
	}

	components := types.StructureComponents{
		Location:    math.Min(math.Max(0, (locationProximity-nearest.Distance)*locationScale), componentCap),
		PriceAction: math.Abs(ctx.PriceAction.Score),
		Volume:      ctx.Volume.Score,
		Volatility:  volatilityBonus,
		Momentum:    math.Min(momentum, componentCap),
		Potential:   math.Min(nearest.Distance*100, componentCap),
	}

	total := components.Location + components.PriceAction + components.Volume +
		components.Volatility + components.Momentum + components.Potential

	var class types.StructureClass

	switch {
	case total >= d.params.ConfirmedScore:
		class = types.StructureConfirmed
	case total >= d.params.PotentialScore:
		class = types.StructurePotential
	default:
		return none
	}

	return optional.Some(types.StructureSignal{
		Class:           class,
		Direction:       direction,
		Score:           utils.Round(total, 2),
		Components:      components,
		Nearest:         nearestOpt,
		ATR:             utils.Round(atr, 6),
		VolumeState:     ctx.Volume.Strength,
		VolatilityState: ctx.Volatility.State,
	})
}
