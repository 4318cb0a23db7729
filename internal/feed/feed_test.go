package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/omupade20/prop8/internal/barstore"
	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type FeedTestSuite struct {
	suite.Suite
	base    time.Time
	store   *barstore.BarStore
	metrics *metrics.Metrics
}

func TestFeedSuite(t *testing.T) {
	suite.Run(t, new(FeedTestSuite))
}

func (suite *FeedTestSuite) SetupTest() {
	suite.base = time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)
	suite.store = barstore.New(logger.NewNopLogger())
	suite.metrics = metrics.New()
}

func (suite *FeedTestSuite) ms(d time.Duration) int64 {
	return suite.base.Add(d).UnixMilli()
}

func (suite *FeedTestSuite) barFrame(d time.Duration, closePrice float64) string {
	return fmt.Sprintf(`{"type":"bar","instrument":"INFY","ts":%d,"open":%g,"high":%g,"low":%g,"close":%g,"volume":100}`,
		suite.ms(d), closePrice, closePrice+1, closePrice-1, closePrice)
}

// serve starts a WebSocket server calling handle for each connection.
func (suite *FeedTestSuite) serve(handle func(conn *websocket.Conn, n int32)) string {
	upgrader := websocket.Upgrader{} //nolint:exhaustruct // defaults
	var connections atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		handle(conn, connections.Add(1))
	}))
	suite.T().Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func (suite *FeedTestSuite) run(f *Feed) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- f.Run(ctx)
	}()

	suite.T().Cleanup(cancel)

	return cancel, done
}

func (suite *FeedTestSuite) TestStreamIntoStore() {
	subscribed := make(chan Subscribe, 1)

	url := suite.serve(func(conn *websocket.Conn, _ int32) {
		var sub Subscribe
		if err := conn.ReadJSON(&sub); err != nil {
			return
		}
		subscribed <- sub

		frames := []string{
			suite.barFrame(0, 100),
			fmt.Sprintf(`{"type":"tick","instrument":"INFY","ts":%d,"price":101,"volume":5}`, suite.ms(65*time.Second)),
			fmt.Sprintf(`{"type":"tick","instrument":"INFY","ts":%d,"price":102,"volume":5}`, suite.ms(90*time.Second)),
			`garbage`,
			`{"type":"close","instrument":"INFY"}`,
			`{"type":"quote","instrument":"INFY","ts":1}`,
		}

		for _, frame := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}

		// hold the connection until the client leaves
		_, _, _ = conn.ReadMessage()
	})

	f := New(url, []string{"INFY"}, suite.store, WithMetrics(suite.metrics), WithLogger(logger.NewNopLogger()))
	cancel, done := suite.run(f)

	suite.Equal(Subscribe{Action: "subscribe", Instruments: []string{"INFY"}}, <-subscribed)
	suite.Eventually(func() bool {
		return testutil.ToFloat64(suite.metrics.DroppedTotal.WithLabelValues("frame")) == 2
	}, 2*time.Second, 10*time.Millisecond)

	suite.Equal(2, suite.store.Size("INFY"))

	last := suite.store.LastBar("INFY").Unwrap()
	suite.Equal(suite.base.Add(time.Minute), last.Timestamp)
	suite.Equal(102.0, last.Close)
	suite.Equal(10.0, last.Volume)
	suite.Equal(2.0, testutil.ToFloat64(suite.metrics.FeedMessages.WithLabelValues(TypeTick)))

	cancel()
	suite.ErrorIs(<-done, context.Canceled)
}

func (suite *FeedTestSuite) TestReconnects() {
	url := suite.serve(func(conn *websocket.Conn, n int32) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(suite.barFrame(time.Duration(n)*time.Minute, 100)))
	})

	f := New(url, nil, suite.store, WithReconnectDelay(10*time.Millisecond))
	cancel, done := suite.run(f)

	suite.Eventually(func() bool {
		return suite.store.Size("INFY") >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	suite.ErrorIs(<-done, context.Canceled)
}

func (suite *FeedTestSuite) TestConnectFailureRetriesUntilDone() {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := New(url, nil, suite.store, WithReconnectDelay(10*time.Millisecond)).Run(ctx)
	suite.ErrorIs(err, context.DeadlineExceeded)
}

func (suite *FeedTestSuite) TestConsumeReportsConnectError() {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	connected, err := New("ws"+strings.TrimPrefix(srv.URL, "http"), nil, suite.store).consume(context.Background())
	suite.False(connected)
	suite.True(errors.HasCode(err, errors.ErrCodeFeedConnectFailed))
}

func (suite *FeedTestSuite) TestConsumeReportsDroppedConnection() {
	url := suite.serve(func(*websocket.Conn, int32) {})

	connected, err := New(url, nil, suite.store).consume(context.Background())
	suite.True(connected)
	suite.True(errors.HasCode(err, errors.ErrCodeFeedReadFailed))
}

func (suite *FeedTestSuite) TestBackoffGrowsAndResets() {
	delay := newBackoff(10 * time.Second)

	suite.Equal(10*time.Second, delay.next())
	suite.Equal(18*time.Second, delay.next())
	suite.Equal(32400*time.Millisecond, delay.next())
	suite.Equal(58320*time.Millisecond, delay.next())
	suite.Equal(time.Minute, delay.next())
	suite.Equal(time.Minute, delay.next(), "capped")

	delay.reset()
	suite.Equal(10*time.Second, delay.next(), "a successful connection restarts the schedule")
	suite.Equal(18*time.Second, delay.next())
}

func (suite *FeedTestSuite) TestHandleRejectsMalformedFrames() {
	f := New("ws://unused", nil, suite.store)

	cases := []string{
		`{`,
		`{"type":"tick","ts":1741598100000,"price":1,"volume":1}`,
		`{"type":"tick","instrument":"INFY","price":1,"volume":1}`,
		`{"type":"depth","instrument":"INFY","ts":1741598100000}`,
	}

	for _, frame := range cases {
		err := f.Handle([]byte(frame))
		suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParseFailed), frame)
	}

	suite.Empty(suite.store.Instruments())
}

func (suite *FeedTestSuite) TestHandleInvalidBarIsNotAnError() {
	f := New("ws://unused", nil, suite.store)

	frame := fmt.Sprintf(`{"type":"bar","instrument":"INFY","ts":%d,"open":100,"high":90,"low":99,"close":100,"volume":1}`, suite.ms(0))
	suite.NoError(f.Handle([]byte(frame)))
	suite.Equal(0, suite.store.Size("INFY"))
}
