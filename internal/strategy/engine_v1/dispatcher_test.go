package engine_v1

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/barstore"
	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/internal/strategy"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/mocks"
	pkgerrors "github.com/omupade20/prop8/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DispatcherTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	gate     *mocks.MockAlertGate
	handler  *mocks.MockDecisionHandler
	regime   *mocks.MockRegimeClassifier
	bias     *mocks.MockBiasEstimator
	detector *mocks.MockStructureDetector
	policy   *mocks.MockDecisionPolicy
	metrics  *metrics.Metrics
	bars     []types.Bar
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (suite *DispatcherTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.gate = mocks.NewMockAlertGate(suite.ctrl)
	suite.handler = mocks.NewMockDecisionHandler(suite.ctrl)
	suite.regime = mocks.NewMockRegimeClassifier(suite.ctrl)
	suite.bias = mocks.NewMockBiasEstimator(suite.ctrl)
	suite.detector = mocks.NewMockStructureDetector(suite.ctrl)
	suite.policy = mocks.NewMockDecisionPolicy(suite.ctrl)
	suite.metrics = metrics.New()
	suite.bars = barsFromCloses(trendCloses(60, 100, 0.5))

	suite.regime.EXPECT().Classify(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(types.Regime{State: types.RegimeTrending, ADX: optional.Some(40.0), RangePct: 0.1}).AnyTimes()
	suite.bias.EXPECT().Estimate(gomock.Any(), gomock.Any()).
		Return(types.HTFBias{Direction: types.BiasBullish, Label: "BULLISH"}).AnyTimes()
	suite.detector.EXPECT().Detect(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(optional.None[types.StructureSignal]()).AnyTimes()
}

// dispatcher builds a dispatcher over a store preloaded with an uptrend.
func (suite *DispatcherTestSuite) dispatcher(gate strategy.AlertGate) (*Dispatcher, *barstore.BarStore) {
	store := barstore.New(logger.NewNopLogger())
	suite.Require().Equal(len(suite.bars), store.ReplayBars(testInstrument, suite.bars, false))

	engine := NewEngine(
		store,
		strategy.Strategy{Kind: strategy.KindPullback, Detector: suite.detector, Policy: suite.policy},
		WithRegimeClassifier(suite.regime),
		WithBiasEstimator(suite.bias),
	)

	if gate == nil {
		gate = store
	}

	d := NewDispatcher(context.Background(), engine, gate, suite.handler, DefaultDispatcherConfig(), suite.metrics, logger.NewNopLogger())

	return d, store
}

func (suite *DispatcherTestSuite) last() types.Bar {
	return suite.bars[len(suite.bars)-1]
}

func (suite *DispatcherTestSuite) TestExecuteIsDispatched() {
	d, _ := suite.dispatcher(suite.gate)
	decision := executeLong()

	suite.policy.EXPECT().Decide(gomock.Any()).Return(decision)

	gomock.InOrder(
		suite.gate.EXPECT().MayAlert(testInstrument, strategy.DefaultCooldown).Return(true),
		suite.gate.EXPECT().IsDuplicate(testInstrument, types.DirectionLong, strategy.DefaultDedupWindow).Return(false),
		suite.handler.EXPECT().HandleDecision(gomock.Any(), testInstrument, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, got types.Decision) error {
				suite.Equal(types.DecisionExecuteLong, got.State)
				suite.Equal(types.BiasBullish, got.Diagnostics.TimeframeDirection)

				return nil
			}),
		suite.gate.EXPECT().MarkAlertSent(testInstrument),
	)

	suite.NoError(d.OnBarClose(testInstrument, suite.last()))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.AlertsTotal.WithLabelValues(outcomeSent)))
}

func (suite *DispatcherTestSuite) TestCooldownSuppresses() {
	d, _ := suite.dispatcher(suite.gate)

	suite.policy.EXPECT().Decide(gomock.Any()).Return(executeLong())
	suite.gate.EXPECT().MayAlert(testInstrument, strategy.DefaultCooldown).Return(false)

	suite.NoError(d.OnBarClose(testInstrument, suite.last()))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.AlertsTotal.WithLabelValues(outcomeCooldown)))
}

func (suite *DispatcherTestSuite) TestDuplicateSuppresses() {
	d, _ := suite.dispatcher(suite.gate)

	suite.policy.EXPECT().Decide(gomock.Any()).Return(executeLong())
	suite.gate.EXPECT().MayAlert(testInstrument, gomock.Any()).Return(true)
	suite.gate.EXPECT().IsDuplicate(testInstrument, types.DirectionLong, gomock.Any()).Return(true)

	suite.NoError(d.OnBarClose(testInstrument, suite.last()))
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.AlertsTotal.WithLabelValues(outcomeDuplicate)))
}

func (suite *DispatcherTestSuite) TestHandlerErrorIsReturned() {
	d, _ := suite.dispatcher(suite.gate)

	suite.policy.EXPECT().Decide(gomock.Any()).Return(executeLong())
	suite.gate.EXPECT().MayAlert(testInstrument, gomock.Any()).Return(true)
	suite.gate.EXPECT().IsDuplicate(testInstrument, types.DirectionLong, gomock.Any()).Return(false)
	suite.handler.EXPECT().HandleDecision(gomock.Any(), testInstrument, gomock.Any()).Return(errors.New("sink down"))

	err := d.OnBarClose(testInstrument, suite.last())
	suite.Error(err)
	suite.True(pkgerrors.HasCode(err, pkgerrors.ErrCodeCallbackFailed))
}

func (suite *DispatcherTestSuite) TestNonExecuteSkipsGate() {
	d, _ := suite.dispatcher(suite.gate)

	suite.policy.EXPECT().Decide(gomock.Any()).Return(types.Ignore("no structure", types.DecisionComponents{}))

	suite.NoError(d.OnBarClose(testInstrument, suite.last()))
}

func (suite *DispatcherTestSuite) TestStoreDrivesDispatcher() {
	d, store := suite.dispatcher(nil)
	store.RegisterOnBarClose(d)

	suite.policy.EXPECT().Decide(gomock.Any()).Return(executeLong()).Times(2)
	suite.handler.EXPECT().HandleDecision(gomock.Any(), testInstrument, gomock.Any()).Return(nil).Times(1)

	next := suite.last()
	for range 2 {
		next = types.Bar{
			Timestamp: next.Timestamp.Add(time.Minute),
			Open:      next.Close,
			High:      next.Close + 0.7,
			Low:       next.Close - 0.2,
			Close:     next.Close + 0.5,
			Volume:    1000,
		}
		suite.True(store.IngestBar(testInstrument, next))
	}

	suite.False(store.MayAlert(testInstrument, strategy.DefaultCooldown), "second alert is inside the cooldown")
	suite.Equal(int64(0), store.HealthCheck().ListenerFailures)
}
