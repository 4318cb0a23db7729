package analysis

import (
	"math"

	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

const (
	volumeBaseline = 20
	flatCloseMove  = 0.0005
)

// AnalyzeVolume compares the newest volume with the mean of the preceding
// twenty. A strong or high ratio on a flat close is read as absorption.
func AnalyzeVolume(volumes, closes []float64) types.VolumeContext {
	n := len(volumes)
	if n < volumeBaseline+1 {
		return types.VolumeContext{Score: 0, Ratio: 0, Strength: "INSUFFICIENT"}
	}

	baseline := utils.Mean(volumes[n-1-volumeBaseline : n-1])
	if baseline <= 0 {
		return types.VolumeContext{Score: 0, Ratio: 0, Strength: "UNKNOWN"}
	}

	ratio := volumes[n-1] / baseline
	ctx := types.VolumeContext{Score: -0.5, Ratio: utils.Round(ratio, 3), Strength: "LOW"}

	switch {
	case ratio >= 2.0:
		ctx.Score, ctx.Strength = 1.5, "STRONG"
	case ratio >= 1.5:
		ctx.Score, ctx.Strength = 1.0, "HIGH"
	case ratio >= 1.2:
		ctx.Score, ctx.Strength = 0.5, "MODERATE"
	case ratio >= 0.8:
		ctx.Score, ctx.Strength = 0, "NORMAL"
	}

	if ratio >= 1.5 && flatClose(closes) {
		ctx.Score, ctx.Strength = 0.5, "ABSORPTION"
	}

	return ctx
}

func flatClose(closes []float64) bool {
	n := len(closes)
	if n < 2 || closes[n-2] <= 0 {
		return false
	}

	return math.Abs(closes[n-1]-closes[n-2])/closes[n-2] < flatCloseMove
}

// VolumeSpikeConfirmed reports whether the newest volume is at least
// multiplier times the mean of the preceding twenty.
func VolumeSpikeConfirmed(volumes []float64, multiplier float64) bool {
	n := len(volumes)
	if n < volumeBaseline+1 {
		return false
	}

	baseline := utils.Mean(volumes[n-1-volumeBaseline : n-1])

	return baseline > 0 && volumes[n-1] >= multiplier*baseline
}
