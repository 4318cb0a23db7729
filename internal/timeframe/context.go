package timeframe

import (
	"fmt"
	"math"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

const (
	weight5m  = 0.7
	weight15m = 1.3

	neutralBand  = 0.6
	maxStrength  = 2.0
	highStrength = 1.4
	midStrength  = 0.8

	persistenceWindow = 3
)

// Analyze scores the latest 5 and 15 minute candles and their recent history.
// The 15 minute vote weighs more. Opposite votes halve the candle score and
// flag a conflict. Each history whose recent candles agree adds a positive
// persistence bonus.
func Analyze(c5, c15 optional.Option[types.Candle], h5, h15 []types.Candle) types.TimeframeContext {
	notes := []string{}
	v5 := vote(c5, weight5m, "5m", &notes)
	v15 := vote(c15, weight15m, "15m", &notes)
	score := v5 + v15

	conflict := v5 != 0 && v15 != 0 && math.Signbit(v5) != math.Signbit(v15)
	if conflict {
		score *= 0.5
		notes = append(notes, "5m/15m conflict")
	}

	for _, h := range []struct {
		label   string
		candles []types.Candle
	}{{"5m", h5}, {"15m", h15}} {
		bonus := persistence(h.candles)
		if bonus != 0 {
			score += bonus
			notes = append(notes, fmt.Sprintf("%s persistence %+.1f", h.label, bonus))
		}
	}

	direction := types.BiasNeutral

	switch {
	case math.Abs(score) < neutralBand:
	case score > 0:
		direction = types.BiasBullish
	default:
		direction = types.BiasBearish
	}

	strength := utils.Round(math.Min(math.Abs(score), maxStrength), 2)

	confidence := types.ConfidenceLow

	switch {
	case strength >= highStrength && !conflict:
		confidence = types.ConfidenceHigh
	case strength >= midStrength:
		confidence = types.ConfidenceMedium
	}

	explanation := "no higher timeframe structure"
	if len(notes) > 0 {
		explanation = strings.Join(notes, "; ")
	}

	return types.TimeframeContext{
		Direction:   direction,
		Score:       score,
		Strength:    strength,
		Confidence:  confidence,
		Conflict:    conflict,
		Explanation: explanation,
	}
}

func vote(candle optional.Option[types.Candle], weight float64, label string, notes *[]string) float64 {
	c, err := candle.Take()
	if err != nil {
		return 0
	}

	switch {
	case c.Bullish():
		*notes = append(*notes, label+" bullish")

		return weight
	case c.Bearish():
		*notes = append(*notes, label+" bearish")

		return -weight
	default:
		return 0
	}
}

// persistence returns a bonus from the last three candles: 0.6 when all three
// agree, 0.3 when two do. The bonus is always added, whichever side agrees.
func persistence(history []types.Candle) float64 {
	if len(history) < 2 {
		return 0
	}

	bull, bear := 0, 0
	for _, c := range utils.Tail(history, persistenceWindow) {
		switch {
		case c.Bullish():
			bull++
		case c.Bearish():
			bear++
		}
	}

	switch dominant := max(bull, bear); {
	case dominant >= persistenceWindow:
		return 0.6
	case dominant >= 2:
		return 0.3
	default:
		return 0
	}
}
