package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) TestCounters() {
	m := New()
	m.Tick("X")
	m.Tick("X")
	m.BarClosed("X")
	m.Dropped("bar")
	m.ListenerFailed()
	m.Decision("EXECUTE_LONG")
	m.Reject("regime")
	m.Alert("sent")
	m.FeedMessage("tick")

	suite.Equal(2.0, testutil.ToFloat64(m.TicksTotal.WithLabelValues("X")))
	suite.Equal(1.0, testutil.ToFloat64(m.BarsClosedTotal.WithLabelValues("X")))
	suite.Equal(1.0, testutil.ToFloat64(m.ListenerFailures))
	suite.Equal(1.0, testutil.ToFloat64(m.RejectsTotal.WithLabelValues("regime")))
}

func (suite *MetricsTestSuite) TestNilMetricsIsNoop() {
	var m *Metrics

	suite.NotPanics(func() {
		m.Tick("X")
		m.BarClosed("X")
		m.Dropped("tick")
		m.ListenerFailed()
		m.Decision("IGNORE")
		m.Reject("history")
		m.Alert("cooldown")
		m.FeedMessage("bar")
		m.ObserveSnapshot(0.1)
	})
}

func (suite *MetricsTestSuite) TestHandler() {
	m := New()
	m.BarClosed("INFY")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	suite.Equal(http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	suite.Require().NoError(err)
	suite.Contains(string(body), `prop8_bars_closed_total{instrument="INFY"} 1`)
}
