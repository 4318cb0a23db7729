package analysis

import (
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

const (
	liquidityWindow  = 20
	maxZeroVolumePct = 0.25
)

// Liquidity states.
const (
	LiquidityHigh     = "HIGH"
	LiquidityNormal   = "NORMAL"
	LiquidityThin     = "THIN"
	LiquidityIlliquid = "ILLIQUID"
)

// AnalyzeLiquidity grades the average volume of the last twenty bars.
func AnalyzeLiquidity(volumes []float64) types.LiquidityContext {
	window := utils.Tail(volumes, liquidityWindow)
	if len(window) == 0 {
		return types.LiquidityContext{State: LiquidityIlliquid, Score: -1, AvgVolume: 0}
	}

	zeros := 0
	for _, v := range window {
		if v <= 0 {
			zeros++
		}
	}

	avg := utils.Mean(window)
	ctx := types.LiquidityContext{State: LiquidityIlliquid, Score: -1, AvgVolume: utils.Round(avg, 2)}

	if float64(zeros)/float64(len(window)) > maxZeroVolumePct {
		return ctx
	}

	switch {
	case avg >= 50_000:
		ctx.State, ctx.Score = LiquidityHigh, 1.0
	case avg >= 10_000:
		ctx.State, ctx.Score = LiquidityNormal, 0.5
	case avg >= 1_000:
		ctx.State, ctx.Score = LiquidityThin, 0
	}

	return ctx
}
