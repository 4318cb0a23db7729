package strategy

import (
	"context"
	"testing"

	"github.com/omupade20/prop8/internal/analysis"
	"github.com/omupade20/prop8/internal/decision"
	"github.com/omupade20/prop8/internal/structure"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}

func (suite *StrategyTestSuite) TestParseKind() {
	kind, err := ParseKind("")
	suite.NoError(err)
	suite.Equal(KindPullback, kind)

	kind, err = ParseKind("breakout")
	suite.NoError(err)
	suite.Equal(KindBreakout, kind)

	_, err = ParseKind("mean-reversion")
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *StrategyTestSuite) TestNewPullback() {
	s, err := New(KindPullback, DefaultParams())
	suite.Require().NoError(err)

	suite.Equal(KindPullback, s.Kind)
	suite.IsType(&structure.PullbackDetector{}, s.Detector)
	suite.IsType(&decision.GatedPolicy{}, s.Policy)
}

func (suite *StrategyTestSuite) TestNewBreakout() {
	s, err := New(KindBreakout, DefaultParams())
	suite.Require().NoError(err)

	suite.Equal(KindBreakout, s.Kind)
	suite.IsType(&decision.BreakoutPolicy{}, s.Policy)

	// too few bars for any structure, whatever the bias
	series := types.NewSeries([]types.Bar{})
	for _, bias := range []types.Bias{types.BiasBullish, types.BiasBearish, types.BiasNeutral} {
		signal := s.Detector.Detect(series, analysis.Context{}, types.HTFBias{Direction: bias, Label: string(bias)})
		suite.True(signal.IsNone())
	}
}

func (suite *StrategyTestSuite) TestNewUnsupported() {
	_, err := New(Kind("scalper"), DefaultParams())
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *StrategyTestSuite) TestDefaults() {
	config := DefaultEngineConfig()
	suite.Equal(40, config.MinBars)
	suite.Equal(3, config.Lookback)
	suite.Equal(5, config.SR.MaxLevels)

	params := DefaultParams()
	suite.Equal(8.0, params.GatedThresholds.Execute)
	suite.Equal(6.5, params.GatedThresholds.Prepare)
	suite.Equal(6.0, params.BreakoutThresholds.Execute)
}

func (suite *StrategyTestSuite) TestDecisionHandlerFunc() {
	var seen string

	handler := DecisionHandlerFunc(func(_ context.Context, instrument string, _ types.Decision) error {
		seen = instrument

		return nil
	})

	suite.NoError(handler.HandleDecision(context.Background(), "INFY", types.Ignore("x", types.DecisionComponents{})))
	suite.Equal("INFY", seen)
}
