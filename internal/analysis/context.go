package analysis

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/indicator"
	"github.com/omupade20/prop8/internal/srlevel"
	"github.com/omupade20/prop8/internal/types"
)

const (
	emaShortPeriod = 9
	emaLongPeriod  = 21
	rsiPeriod      = 14
)

// Context is everything the structure detectors and decision policies read
// besides the bars themselves. It is computed once per evaluation from one
// series snapshot.
type Context struct {
	Price       float64
	ATR         optional.Option[float64]
	RSI         optional.Option[float64]
	Volume      types.VolumeContext
	Volatility  types.VolatilityContext
	Liquidity   types.LiquidityContext
	PriceAction types.PriceActionContext
	Levels      types.SRLevels
}

// BuildContext computes the Context of series using sr for level detection.
func BuildContext(series types.Series, sr srlevel.Params) Context {
	n := series.Len()
	atr := indicator.ATR(series.Highs, series.Lows, series.Closes, atrPeriod)

	move := 0.0
	if n >= 2 {
		move = math.Abs(series.Closes[n-1] - series.Closes[n-2])
	}

	return Context{
		Price:      series.LastClose(),
		ATR:        atr,
		RSI:        indicator.RSI(series.Closes, rsiPeriod),
		Volume:     AnalyzeVolume(series.Volumes, series.Closes),
		Volatility: AnalyzeVolatility(move, atr),
		Liquidity:  AnalyzeLiquidity(series.Volumes),
		PriceAction: PriceAction(
			series.Opens, series.Highs, series.Lows, series.Closes,
			indicator.EMA(series.Closes, emaShortPeriod),
			indicator.EMA(series.Closes, emaLongPeriod),
		),
		Levels: srlevel.ComputeLevels(series.Highs, series.Lows, sr),
	}
}
