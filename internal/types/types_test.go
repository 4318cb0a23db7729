package types

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TypesTestSuite struct {
	suite.Suite
}

func TestTypesSuite(t *testing.T) {
	suite.Run(t, new(TypesTestSuite))
}

func (suite *TypesTestSuite) TestBarValid() {
	ts := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)
	good := Bar{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100.5, Volume: 1200}
	suite.True(good.Valid())

	testCases := []struct {
		name string
		bar  Bar
	}{
		{"zero timestamp", Bar{Open: 100, High: 101, Low: 99, Close: 100, Volume: 1}},
		{"nan close", Bar{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: math.NaN(), Volume: 1}},
		{"negative volume", Bar{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: -1}},
		{"high below close", Bar{Timestamp: ts, Open: 100, High: 100.2, Low: 99, Close: 100.5, Volume: 1}},
		{"low above open", Bar{Timestamp: ts, Open: 99, High: 101, Low: 99.5, Close: 100, Volume: 1}},
		{"zero price", Bar{Timestamp: ts, Open: 0, High: 101, Low: 0, Close: 100, Volume: 1}},
	}

	for _, tc := range testCases {
		suite.False(tc.bar.Valid(), tc.name)
	}
}

func (suite *TypesTestSuite) TestCandleDirection() {
	suite.True(Candle{Open: 10, Close: 11}.Bullish())
	suite.True(Candle{Open: 11, Close: 10}.Bearish())

	doji := Candle{Open: 10, Close: 10}
	suite.False(doji.Bullish())
	suite.False(doji.Bearish())
}

func (suite *TypesTestSuite) TestBiasDirection() {
	dir, ok := BiasBullish.Direction()
	suite.True(ok)
	suite.Equal(DirectionLong, dir)

	dir, ok = BiasBearish.Direction()
	suite.True(ok)
	suite.Equal(DirectionShort, dir)

	_, ok = BiasNeutral.Direction()
	suite.False(ok)

	suite.True(BiasBullish.Supports(DirectionLong))
	suite.False(BiasBullish.Supports(DirectionShort))
	suite.False(BiasNeutral.Supports(DirectionLong))
}

func (suite *TypesTestSuite) TestFavorsAndAccepts() {
	suite.True(NearestSR{Type: SRTypeSupport}.Favors(DirectionLong))
	suite.False(NearestSR{Type: SRTypeSupport}.Favors(DirectionShort))
	suite.True(NearestSR{Type: SRTypeResistance}.Favors(DirectionShort))

	suite.True(VWAPAbove.Accepts(DirectionLong))
	suite.False(VWAPAbove.Accepts(DirectionShort))
	suite.True(VWAPBelow.Accepts(DirectionShort))
}

func (suite *TypesTestSuite) TestDecisionStates() {
	suite.Equal(DecisionExecuteLong, ExecuteState(DirectionLong))
	suite.Equal(DecisionExecuteShort, ExecuteState(DirectionShort))
	suite.Equal(DecisionPrepareLong, PrepareState(DirectionLong))
	suite.Equal(DecisionPrepareShort, PrepareState(DirectionShort))

	suite.True(DecisionExecuteShort.IsExecute())
	suite.False(DecisionPrepareShort.IsExecute())
	suite.True(DecisionPrepareLong.IsPrepare())
	suite.False(DecisionIgnore.IsPrepare())
}

func (suite *TypesTestSuite) TestIgnore() {
	d := Ignore("no structure", DecisionComponents{})
	suite.Equal(DecisionIgnore, d.State)
	suite.Equal(0.0, d.Score)
	suite.True(d.Direction.IsNone())
	suite.Equal(`IGNORE score=0.00 reason="no structure"`, d.String())
}
