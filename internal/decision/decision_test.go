package decision

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/analysis"
	"github.com/omupade20/prop8/internal/srlevel"
	"github.com/omupade20/prop8/internal/structure"
	"github.com/omupade20/prop8/internal/types"
	"github.com/stretchr/testify/suite"
)

type DecisionTestSuite struct {
	suite.Suite
	base time.Time
}

func TestDecisionSuite(t *testing.T) {
	suite.Run(t, new(DecisionTestSuite))
}

func (suite *DecisionTestSuite) SetupTest() {
	suite.base = time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)
}

// breakoutInput builds instrument X: 40 ascending bars, then a breakout bar
// on triple volume, in a trending bullish market above VWAP with support just
// below price.
func (suite *DecisionTestSuite) breakoutInput() Input {
	bars := make([]types.Bar, 0, 41)
	for i := range 40 {
		c := 100 + 0.1*float64(i)
		bars = append(bars, types.Bar{
			Timestamp: suite.base.Add(time.Duration(i) * time.Minute),
			Open:      c, High: c + 0.2, Low: c - 0.2, Close: c, Volume: 1000,
		})
	}

	bars = append(bars, types.Bar{
		Timestamp: suite.base.Add(40 * time.Minute),
		Open:      104.0, High: 105.1, Low: 103.8, Close: 104.9, Volume: 3000,
	})

	series := types.NewSeries(bars)
	ctx := analysis.BuildContext(series, srlevel.DefaultParams())
	ctx.PriceAction.Score = 1.6
	ctx.PriceAction.Quality = types.ConfidenceHigh
	ctx.Levels = types.SRLevels{
		Supports:    []types.SRCluster{{Level: 104.5, Members: 2, Strength: 2}},
		Resistances: []types.SRCluster{},
	}

	signal := structure.NewBreakoutDetector(structure.DefaultBreakoutParams()).Detect(series, ctx)
	suite.Require().True(signal.IsSome())
	suite.Require().Equal(types.StructureConfirmed, signal.Unwrap().Class)

	return Input{
		Instrument: "X",
		Price:      104.9,
		Signal:     signal,
		Bias:       types.HTFBias{Direction: types.BiasBullish, Label: analysis.LabelBullishStrong},
		Regime:     types.Regime{State: types.RegimeTrending, ADX: optional.Some(30.0), RangePct: 0.03},
		VWAP:       types.VWAPContext{VWAP: optional.Some(103.0), Acceptance: types.VWAPAbove, Score: 1.0},
		Context:    ctx,
	}
}

func (suite *DecisionTestSuite) TestGatedExecuteLong() {
	decision := NewGatedPolicy(DefaultGatedThresholds()).Decide(suite.breakoutInput())

	suite.Equal(types.DecisionExecuteLong, decision.State)
	suite.GreaterOrEqual(decision.Score, 8.0)
	suite.Equal(10.0, decision.Score)
	suite.Equal(types.DirectionLong, decision.Direction.Unwrap())

	c := decision.Components
	suite.Equal(4.0, c.Structure)
	suite.Equal(2.0, c.HTF)
	suite.Equal(1.5, c.Regime)
	suite.Equal(1.5, c.VWAP)
	suite.Equal(1.5, c.Volume)
	suite.Equal(1.5, c.Volatility)
	suite.Equal(1.0, c.Liquidity)
	suite.Equal(1.6, c.PriceAction)
	suite.InDelta(0.931*1.5, c.SR, 1e-9)
}

func (suite *DecisionTestSuite) TestGatedBearishBiasIgnores() {
	in := suite.breakoutInput()
	in.Bias = types.HTFBias{Direction: types.BiasBearish, Label: analysis.LabelBearishStrong}

	decision := NewGatedPolicy(DefaultGatedThresholds()).Decide(in)

	suite.Equal(types.DecisionIgnore, decision.State)
	suite.Equal("htf bias mismatch", decision.Reason)
	suite.True(decision.Direction.IsNone())
	suite.Equal(0.0, decision.Score)
}

func (suite *DecisionTestSuite) TestGatedNoStructure() {
	in := suite.breakoutInput()
	in.Signal = optional.None[types.StructureSignal]()

	decision := NewGatedPolicy(DefaultGatedThresholds()).Decide(in)
	suite.Equal(types.DecisionIgnore, decision.State)
	suite.Equal("no structure", decision.Reason)
}

func (suite *DecisionTestSuite) TestGatedPotentialPrepares() {
	in := suite.breakoutInput()
	signal := in.Signal.Unwrap()
	signal.Class = types.StructurePotential
	signal.Direction = types.DirectionShort
	in.Signal = optional.Some(signal)

	decision := NewGatedPolicy(DefaultGatedThresholds()).Decide(in)

	suite.Equal(types.DecisionPrepareShort, decision.State)
	suite.Equal(6.5, decision.Score)
	suite.Equal(types.DirectionShort, decision.Direction.Unwrap())
}

func (suite *DecisionTestSuite) TestGatedRejections() {
	tests := []struct {
		name   string
		reason string
		mutate func(in *Input)
	}{
		{"regime", "regime not trending", func(in *Input) { in.Regime.State = types.RegimeEarlyTrend }},
		{"vwap", "vwap acceptance mismatch", func(in *Input) { in.VWAP.Acceptance = types.VWAPBelow }},
		{"vwap unknown", "vwap acceptance mismatch", func(in *Input) { in.VWAP.Acceptance = types.VWAPUnknown }},
		{"volume", "insufficient volume", func(in *Input) { in.Context.Volume.Score = 0.5 }},
		{"volatility", "volatility not expanding", func(in *Input) { in.Context.Volatility.State = types.VolatilityNormal }},
		{"liquidity", "illiquid", func(in *Input) { in.Context.Liquidity.Score = -1 }},
		{"price action", "price action quality not high", func(in *Input) { in.Context.PriceAction.Quality = types.ConfidenceMedium }},
		{"sr", "unfavorable sr location", func(in *Input) {
			in.Context.Levels = types.SRLevels{Resistances: []types.SRCluster{{Level: 105.2, Members: 1, Strength: 1}}}
		}},
		{"no level", "unfavorable sr location", func(in *Input) { in.Context.Levels = types.SRLevels{} }},
	}

	policy := NewGatedPolicy(DefaultGatedThresholds())

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			in := suite.breakoutInput()
			tt.mutate(&in)

			decision := policy.Decide(in)
			suite.Equal(types.DecisionIgnore, decision.State)
			suite.Equal(tt.reason, decision.Reason)
			suite.Equal(4.0, decision.Components.Structure)
		})
	}
}

func (suite *DecisionTestSuite) TestClassifyBounds() {
	gated := DefaultGatedThresholds()

	suite.Equal(types.DecisionExecuteLong, classify(8.0, types.DirectionLong, gated))
	suite.Equal(types.DecisionPrepareLong, classify(7.99, types.DirectionLong, gated))
	suite.Equal(types.DecisionPrepareShort, classify(6.5, types.DirectionShort, gated))
	suite.Equal(types.DecisionIgnore, classify(6.49, types.DirectionShort, gated))

	breakout := DefaultBreakoutThresholds()
	suite.Equal(types.DecisionExecuteShort, classify(6.0, types.DirectionShort, breakout))
	suite.Equal(types.DecisionPrepareLong, classify(3.5, types.DirectionLong, breakout))
	suite.Equal(types.DecisionIgnore, classify(3.49, types.DirectionLong, breakout))
}

func (suite *DecisionTestSuite) TestGatedNeverPreparesBelowBound() {
	in := suite.breakoutInput()
	policy := NewGatedPolicy(Thresholds{Execute: 20, Prepare: 6.5})

	decision := policy.Decide(in)
	suite.Equal(types.DecisionPrepareLong, decision.State)
	suite.GreaterOrEqual(decision.Score, 6.5)
	suite.LessOrEqual(decision.Score, 10.0)
}

func (suite *DecisionTestSuite) TestBreakoutExecuteLong() {
	decision := NewBreakoutPolicy(DefaultBreakoutThresholds()).Decide(suite.breakoutInput())

	suite.Equal(types.DecisionExecuteLong, decision.State)
	suite.Equal(10.0, decision.Score)
	suite.Equal("high quality breakout", decision.Reason)

	c := decision.Components
	suite.Equal(3.0, c.Structure)
	suite.Equal(1.2, c.HTF)
	suite.Equal(1.2, c.Regime)
	suite.Equal(1.0, c.VWAP)
	suite.Equal(1.5, c.Volume)
	suite.Equal(1.0, c.Volatility)
	suite.Equal(0.0, c.Liquidity)
	suite.Equal(1.6, c.PriceAction)
	suite.InDelta(0.931*0.7, c.SR, 1e-9)
	suite.Equal(0.0, c.RSI)
}

func (suite *DecisionTestSuite) TestBreakoutRejections() {
	tests := []struct {
		name   string
		reason string
		mutate func(in *Input)
	}{
		{"htf", "htf opposes long", func(in *Input) { in.Bias.Label = analysis.LabelBearishStrong }},
		{"weak regime", "bad market regime", func(in *Input) { in.Regime.State = types.RegimeWeak }},
		{"compression", "bad market regime", func(in *Input) { in.Regime.State = types.RegimeCompression }},
		{"vwap", "below vwap", func(in *Input) { in.VWAP.Acceptance = types.VWAPBelow }},
		{"volume", "insufficient volume confirmation", func(in *Input) { in.Context.Volume.Score = 0 }},
		{"liquidity", "illiquid", func(in *Input) { in.Context.Liquidity.Score = -1 }},
		{"price action", "price action not supportive", func(in *Input) { in.Context.PriceAction.Score = -0.4 }},
		{"sr", "unfavorable sr location", func(in *Input) {
			in.Context.Levels = types.SRLevels{Resistances: []types.SRCluster{{Level: 105.0, Members: 3, Strength: 3}}}
		}},
		{"rsi", "weak momentum long", func(in *Input) { in.Context.RSI = optional.Some(35.0) }},
	}

	policy := NewBreakoutPolicy(DefaultBreakoutThresholds())

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			in := suite.breakoutInput()
			tt.mutate(&in)

			decision := policy.Decide(in)
			suite.Equal(types.DecisionIgnore, decision.State)
			suite.Equal(tt.reason, decision.Reason)
		})
	}
}

func (suite *DecisionTestSuite) TestBreakoutRSIPenalty() {
	in := suite.breakoutInput()
	in.Context.RSI = optional.Some(45.0)

	decision := NewBreakoutPolicy(DefaultBreakoutThresholds()).Decide(in)
	suite.Equal(-1.0, decision.Components.RSI)
	suite.Equal(types.DecisionExecuteLong, decision.State)
}

func (suite *DecisionTestSuite) TestBreakoutPotential() {
	in := suite.breakoutInput()
	signal := in.Signal.Unwrap()
	signal.Class = types.StructurePotential
	in.Signal = optional.Some(signal)

	decision := NewBreakoutPolicy(DefaultBreakoutThresholds()).Decide(in)
	suite.Equal(types.DecisionPrepareLong, decision.State)
	suite.Equal(1.0, decision.Score)
	suite.Equal("potential breakout", decision.Reason)
}

func (suite *DecisionTestSuite) TestBreakoutWeakFollowThrough() {
	in := suite.breakoutInput()
	in.Regime.State = types.RegimeEarlyTrend
	in.VWAP = types.VWAPContext{VWAP: optional.None[float64](), Acceptance: types.VWAPUnknown, Score: 0}
	in.Context.Volume.Score = 0.5
	in.Context.Volatility.Score = -0.5
	in.Context.PriceAction.Score = 0
	in.Context.Levels = types.SRLevels{}
	in.Context.RSI = optional.Some(45.0)

	// 3.0 + 1.2 + 0.8 + 0 + 0.5 - 0.5 + 0 + 0 + 0 - 1.0
	decision := NewBreakoutPolicy(Thresholds{Execute: 6, Prepare: 4.5}).Decide(in)
	suite.Equal(types.DecisionIgnore, decision.State)
	suite.Equal("weak follow-through", decision.Reason)
	suite.Equal(4.0, decision.Score)

	decision = NewBreakoutPolicy(DefaultBreakoutThresholds()).Decide(in)
	suite.Equal(types.DecisionPrepareLong, decision.State)
	suite.Equal("setup forming", decision.Reason)
}
