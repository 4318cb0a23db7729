// Package decision turns a structure signal and its market context into a
// gated IGNORE, PREPARE or EXECUTE decision with a 0 to 10 score.
package decision

import (
	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/analysis"
	"github.com/omupade20/prop8/internal/srlevel"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/internal/utils"
)

const (
	maxScore = 10.0

	reasonNoStructure = "no structure"
	reasonForming     = "setup forming"
)

// Input is everything a policy needs for one evaluation.
type Input struct {
	Instrument string
	Price      float64
	Signal     optional.Option[types.StructureSignal]
	Bias       types.HTFBias
	Regime     types.Regime
	VWAP       types.VWAPContext
	Context    analysis.Context
}

// Thresholds are the inclusive lower bounds of the EXECUTE and PREPARE states.
type Thresholds struct {
	Execute float64 `yaml:"execute" json:"execute" validate:"gtefield=Prepare,lte=10"`
	Prepare float64 `yaml:"prepare" json:"prepare" validate:"gte=0"`
}

// classify maps a clamped score onto a state. Scores at a bound take the
// higher state.
func classify(score float64, direction types.Direction, thresholds Thresholds) types.DecisionState {
	switch {
	case score >= thresholds.Execute:
		return types.ExecuteState(direction)
	case score >= thresholds.Prepare:
		return types.PrepareState(direction)
	default:
		return types.DecisionIgnore
	}
}

func finalScore(raw float64) float64 {
	return utils.Round(utils.Clamp(raw, 0, maxScore), 2)
}

func prepare(direction types.Direction, score float64, components types.DecisionComponents, reason string) types.Decision {
	return types.Decision{
		State:       types.PrepareState(direction),
		Score:       score,
		Direction:   optional.Some(direction),
		Components:  components,
		Reason:      reason,
		Diagnostics: types.DecisionDiagnostics{},
	}
}

// resolve classifies the clamped total of components.
func resolve(raw float64, direction types.Direction, components types.DecisionComponents, thresholds Thresholds, executeReason, ignoreReason string) types.Decision {
	score := finalScore(raw)
	state := classify(score, direction, thresholds)

	switch {
	case state.IsExecute():
		return types.Decision{
			State:       state,
			Score:       score,
			Direction:   optional.Some(direction),
			Components:  components,
			Reason:      executeReason,
			Diagnostics: types.DecisionDiagnostics{},
		}
	case state.IsPrepare():
		return prepare(direction, score, components, reasonForming)
	default:
		ignored := types.Ignore(ignoreReason, components)
		ignored.Score = score

		return ignored
	}
}

// locationScore grades the nearest level within the default search band for
// direction.
func locationScore(in Input, direction types.Direction) float64 {
	nearest := srlevel.Nearest(in.Price, in.Context.Levels, srlevel.DefaultMaxSearchPct)

	return srlevel.LocationScore(nearest, direction, srlevel.DefaultProximity)
}
