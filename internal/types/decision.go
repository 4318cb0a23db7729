package types

import (
	"fmt"

	"github.com/moznion/go-optional"
)

// DecisionState is the terminal output of one decision evaluation.
type DecisionState string

const (
	DecisionIgnore       DecisionState = "IGNORE"
	DecisionPrepareLong  DecisionState = "PREPARE_LONG"
	DecisionPrepareShort DecisionState = "PREPARE_SHORT"
	DecisionExecuteLong  DecisionState = "EXECUTE_LONG"
	DecisionExecuteShort DecisionState = "EXECUTE_SHORT"
)

// PrepareState returns the PREPARE state for a direction.
func PrepareState(d Direction) DecisionState {
	if d == DirectionShort {
		return DecisionPrepareShort
	}

	return DecisionPrepareLong
}

// ExecuteState returns the EXECUTE state for a direction.
func ExecuteState(d Direction) DecisionState {
	if d == DirectionShort {
		return DecisionExecuteShort
	}

	return DecisionExecuteLong
}

// IsExecute reports an EXECUTE_* state.
func (s DecisionState) IsExecute() bool {
	return s == DecisionExecuteLong || s == DecisionExecuteShort
}

// IsPrepare reports a PREPARE_* state.
func (s DecisionState) IsPrepare() bool {
	return s == DecisionPrepareLong || s == DecisionPrepareShort
}

// DecisionComponents records each weight a decision policy added to the score.
type DecisionComponents struct {
	Structure   float64 `json:"structure"`
	HTF         float64 `json:"htf"`
	Regime      float64 `json:"regime"`
	VWAP        float64 `json:"vwap"`
	Volume      float64 `json:"volume"`
	Volatility  float64 `json:"volatility"`
	Liquidity   float64 `json:"liquidity"`
	PriceAction float64 `json:"price_action"`
	SR          float64 `json:"sr"`
	// RSI is a penalty and is zero or negative.
	RSI float64 `json:"rsi"`
}

// DecisionDiagnostics carries the pipeline context a decision was made in.
type DecisionDiagnostics struct {
	TimeframeDirection Bias        `json:"timeframe_direction"`
	TimeframeStrength  float64     `json:"timeframe_strength"`
	Regime             RegimeState `json:"regime"`
	BiasLabel          string      `json:"bias_label"`
}

// Decision is the gated outcome of one evaluation for one instrument.
type Decision struct {
	State DecisionState `json:"state"`
	// Score is within [0, 10].
	Score float64 `json:"score"`
	// Direction is absent for IGNORE.
	Direction   optional.Option[Direction] `json:"direction"`
	Components  DecisionComponents         `json:"components"`
	Reason      string                     `json:"reason"`
	Diagnostics DecisionDiagnostics        `json:"diagnostics"`
}

// Ignore builds an IGNORE decision with the given reason.
func Ignore(reason string, components DecisionComponents) Decision {
	return Decision{
		State:       DecisionIgnore,
		Score:       0,
		Direction:   optional.None[Direction](),
		Components:  components,
		Reason:      reason,
		Diagnostics: DecisionDiagnostics{},
	}
}

func (d Decision) String() string {
	return fmt.Sprintf("%s score=%.2f reason=%q", d.State, d.Score, d.Reason)
}
