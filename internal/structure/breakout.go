// Package structure detects tradeable structures in a bar series: range
// breakouts out of compression and pullbacks into support or resistance.
package structure

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/analysis"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

// BreakoutParams tunes the BreakoutDetector.
type BreakoutParams struct {
	MinBars          int     `yaml:"min_bars" json:"min_bars" validate:"gte=22"`
	RangeBars        int     `yaml:"range_bars" json:"range_bars" validate:"gte=2"`
	ATRMultiplier    float64 `yaml:"atr_multiplier" json:"atr_multiplier" validate:"gt=0"`
	VolumeMultiplier float64 `yaml:"volume_multiplier" json:"volume_multiplier" validate:"gt=0"`
}

// DefaultBreakoutParams returns a 20 bar range, 0.8 ATR expansion and a 1.2x
// volume spike over at least 30 bars.
func DefaultBreakoutParams() BreakoutParams {
	return BreakoutParams{
		MinBars:          30,
		RangeBars:        20,
		ATRMultiplier:    0.8,
		VolumeMultiplier: 1.2,
	}
}

const (
	compressionWeight  = 1.0
	atrExpansionWeight = 1.5
	volumeWeight       = 1.2
)

// BreakoutDetector flags a close beyond the prior range. The signal is
// CONFIRMED only when the breakout bar both expands against ATR and carries a
// volume spike.
type BreakoutDetector struct {
	params BreakoutParams
}

// NewBreakoutDetector returns a detector using params.
func NewBreakoutDetector(params BreakoutParams) *BreakoutDetector {
	return &BreakoutDetector{params: params}
}

// Detect returns the breakout signal of the newest bar, if any.
func (d *BreakoutDetector) Detect(series types.Series, ctx analysis.Context) optional.Option[types.StructureSignal] {
	closes := series.Closes
	n := len(closes)

	if n < d.params.MinBars || n < d.params.RangeBars+1 {
		return optional.None[types.StructureSignal]()
	}

	last := closes[n-1]
	base := closes[n-1-d.params.RangeBars : n-1]

	var direction types.Direction

	switch {
	case last > utils.MaxOf(base):
		direction = types.DirectionLong
	case last < utils.MinOf(base):
		direction = types.DirectionShort
	default:
		return optional.None[types.StructureSignal]()
	}

	components := types.StructureComponents{}

	if analysis.CloseCompression(closes) {
		components.Compression = compressionWeight
	}

	atr := ctx.ATR.TakeOr(0)
	atrOK := atr > 0 && math.Abs(last-closes[n-2]) >= d.params.ATRMultiplier*atr

	if atrOK {
		components.ATRExpansion = atrExpansionWeight
	}

	volumeOK := len(series.Volumes) >= 20 && analysis.VolumeSpikeConfirmed(series.Volumes, d.params.VolumeMultiplier)
	if volumeOK {
		components.Volume = volumeWeight
	}

	class := types.StructurePotential
	if atrOK && volumeOK {
		class = types.StructureConfirmed
	}

	return optional.Some(types.StructureSignal{
		Class:           class,
		Direction:       direction,
		Score:           utils.Round(components.Compression+components.ATRExpansion+components.Volume, 2),
		Components:      components,
		Nearest:         optional.None[types.NearestSR](),
		ATR:             utils.Round(atr, 6),
		VolumeState:     ctx.Volume.Strength,
		VolatilityState: ctx.Volatility.State,
	})
}
