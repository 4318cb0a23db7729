package engine_v1

import (
	"testing"
	"time"

	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/strategy"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionTrackerTestSuite struct {
	suite.Suite
	engine *Engine
	ist    *time.Location
}

func TestSessionTrackerSuite(t *testing.T) {
	suite.Run(t, new(SessionTrackerTestSuite))
}

func (suite *SessionTrackerTestSuite) SetupTest() {
	ctrl := gomock.NewController(suite.T())
	suite.engine = NewEngine(
		mocks.NewMockBarSource(ctrl),
		strategy.Strategy{Kind: strategy.KindPullback},
		WithLogger(logger.NewNopLogger()),
	)
	suite.ist = time.FixedZone("IST", 5*3600+1800)
}

func (suite *SessionTrackerTestSuite) bar(ts time.Time) types.Bar {
	return types.Bar{Timestamp: ts, Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
}

// feed closes a bar on the tracker and then adds it to the VWAP, the way the
// dispatcher's evaluation would.
func (suite *SessionTrackerTestSuite) feed(tracker *SessionTracker, ts time.Time) {
	bar := suite.bar(ts)
	suite.Require().NoError(tracker.OnBarClose(testInstrument, bar))
	suite.engine.vwapFor(testInstrument).UpdateBar(bar)
}

func (suite *SessionTrackerTestSuite) TestResetsOnNewDay() {
	tracker := NewSessionTracker(suite.engine, suite.ist)
	open := time.Date(2025, 3, 10, 9, 15, 0, 0, suite.ist)

	suite.feed(tracker, open)
	suite.feed(tracker, open.Add(6*time.Hour))
	suite.True(suite.engine.VWAP(testInstrument).IsSome())

	next := open.Add(24 * time.Hour)
	suite.Require().NoError(tracker.OnBarClose(testInstrument, suite.bar(next)))
	suite.True(suite.engine.VWAP(testInstrument).IsNone(), "new day starts a new session")

	suite.engine.vwapFor(testInstrument).UpdateBar(suite.bar(next))
	suite.InDelta(100.0, suite.engine.VWAP(testInstrument).Unwrap(), 1e-9)
}

func (suite *SessionTrackerTestSuite) TestSameDayAndOlderBarsKeepSession() {
	tracker := NewSessionTracker(suite.engine, suite.ist)
	open := time.Date(2025, 3, 10, 9, 15, 0, 0, suite.ist)

	suite.feed(tracker, open)
	suite.feed(tracker, open.Add(time.Hour))
	suite.Require().NoError(tracker.OnBarClose("TCS", suite.bar(open.Add(-24*time.Hour))))

	suite.True(suite.engine.VWAP(testInstrument).IsSome())
}

func (suite *SessionTrackerTestSuite) TestDayFollowsLocation() {
	// 20:00 UTC on the 10th is already the 11th in IST
	evening := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	utc := NewSessionTracker(suite.engine, nil)
	suite.feed(utc, evening)
	suite.Require().NoError(utc.OnBarClose(testInstrument, suite.bar(evening.Add(2*time.Hour))))
	suite.True(suite.engine.VWAP(testInstrument).IsSome())

	suite.engine.ResetSession()

	ist := NewSessionTracker(suite.engine, suite.ist)
	suite.feed(ist, evening)
	suite.Require().NoError(ist.OnBarClose(testInstrument, suite.bar(evening.Add(2*time.Hour))))
	suite.True(suite.engine.VWAP(testInstrument).IsNone())
}
