package barstore

import (
	"testing"
	"time"

	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/types"
	"github.com/stretchr/testify/suite"
)

type DiagnosticsTestSuite struct {
	suite.Suite
	base time.Time
}

func TestDiagnosticsSuite(t *testing.T) {
	suite.Run(t, new(DiagnosticsTestSuite))
}

func (suite *DiagnosticsTestSuite) SetupTest() {
	suite.base = time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)
}

func (suite *DiagnosticsTestSuite) barAt(minute int) types.Bar {
	return types.Bar{
		Timestamp: suite.base.Add(time.Duration(minute) * time.Minute),
		Open:      100,
		High:      101,
		Low:       99,
		Close:     100,
		Volume:    10,
	}
}

func (suite *DiagnosticsTestSuite) TestReplayDropsOutOfOrder() {
	store := New(logger.NewNopLogger())
	listener := &recordingListener{}
	store.RegisterOnBarClose(listener)

	bars := []types.Bar{suite.barAt(0), suite.barAt(1), suite.barAt(1), suite.barAt(0), suite.barAt(3)}

	suite.Equal(3, store.ReplayBars("NIFTY", bars, false))
	suite.Equal(0, listener.count())
	suite.Equal(int64(3), store.HealthCheck().BarsClosed)
}

func (suite *DiagnosticsTestSuite) TestReplayWithListeners() {
	store := New(logger.NewNopLogger())
	listener := &recordingListener{}
	store.RegisterOnBarClose(listener)

	suite.Equal(2, store.ReplayBars("NIFTY", []types.Bar{suite.barAt(0), suite.barAt(1)}, true))
	suite.Equal(2, listener.count())
}

func (suite *DiagnosticsTestSuite) TestValidateBarSequence() {
	store := New(logger.NewNopLogger())
	store.ReplayBars("NIFTY", []types.Bar{suite.barAt(0), suite.barAt(1), suite.barAt(5), suite.barAt(6)}, false)

	gaps := store.ValidateBarSequence("NIFTY", 0)
	suite.Require().Len(gaps, 1)
	suite.Equal(suite.base.Add(time.Minute), gaps[0].From)
	suite.Equal(suite.base.Add(5*time.Minute), gaps[0].To)

	suite.Empty(store.ValidateBarSequence("NIFTY", 5*time.Minute))
	suite.Empty(store.ValidateBarSequence("NOPE", 0))
}

func (suite *DiagnosticsTestSuite) TestBarsSinceInclusive() {
	store := New(logger.NewNopLogger())
	store.ReplayBars("NIFTY", []types.Bar{suite.barAt(0), suite.barAt(1), suite.barAt(2)}, false)

	bars := store.BarsSince("NIFTY", suite.base.Add(time.Minute))
	suite.Len(bars, 2)
	suite.Equal(suite.base.Add(time.Minute), bars[0].Timestamp)
}

func (suite *DiagnosticsTestSuite) TestHealthCheck() {
	clock := &fakeClock{now: suite.base.Add(10 * time.Minute)}
	store := New(logger.NewNopLogger(), WithClock(clock.Now))

	store.IngestBar("NIFTY", suite.barAt(0))
	store.IngestTick("INFY", suite.base, 100, 1)

	health := store.HealthCheck()
	suite.Equal(2, health.InstrumentsTracked)
	suite.Equal(1, health.Busy)
	suite.Equal(int64(1), health.TicksReceived)
	suite.Equal(int64(1), health.BarsReceived)
	suite.InDelta(600.0, health.LastBarAge["NIFTY"], 1e-9)
	suite.NotContains(health.LastBarAge, "INFY")
}
