// Package feed connects to a WebSocket market data stream and forwards ticks
// and bars into the bar store.
//
// Every frame is one JSON object:
//
//	{"type":"tick","instrument":"INFY","ts":1741580100000,"price":1502.5,"volume":10}
//	{"type":"bar","instrument":"INFY","ts":1741580100000,"open":1500,"high":1503,"low":1499,"close":1502.5,"volume":1200}
//	{"type":"close","instrument":"INFY"}
//
// ts is epoch milliseconds. A close frame seals the instrument's open bar.
package feed

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/gorilla/websocket"
	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/logger"
	"github.com/omupade20/prop8/internal/metrics"
	"github.com/omupade20/prop8/internal/types"
	"github.com/omupade20/prop8/pkg/errors"
	"go.uber.org/zap"
)

// Message types.
const (
	TypeTick  = "tick"
	TypeBar   = "bar"
	TypeClose = "close"
)

const (
	DefaultReconnectDelay = 5 * time.Second
	maxReconnectDelay     = time.Minute
	handshakeTimeout      = 10 * time.Second
	readLimit             = 1 << 20
)

// Ingestor receives decoded market data.
type Ingestor interface {
	IngestTick(instrument string, ts time.Time, price, volume float64) bool
	IngestBar(instrument string, bar types.Bar) bool
	CloseOpenBar(instrument string) optional.Option[types.Bar]
}

// Message is one frame of the stream.
type Message struct {
	Type       string  `json:"type"`
	Instrument string  `json:"instrument"`
	Timestamp  int64   `json:"ts"`
	Price      float64 `json:"price"`
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	Volume     float64 `json:"volume"`
}

// Subscribe is sent once after connecting when instruments are configured.
type Subscribe struct {
	Action      string   `json:"action"`
	Instruments []string `json:"instruments"`
}

// Feed is a reconnecting WebSocket client.
type Feed struct {
	url            string
	instruments    []string
	ingestor       Ingestor
	reconnectDelay time.Duration
	dialer         *websocket.Dialer
	metrics        *metrics.Metrics
	log            *logger.Logger
}

// Option configures a Feed.
type Option func(*Feed)

// WithReconnectDelay sets the initial delay before reconnecting. The delay
// grows after consecutive failures.
func WithReconnectDelay(d time.Duration) Option {
	return func(f *Feed) {
		if d > 0 {
			f.reconnectDelay = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Feed) {
		f.metrics = m
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(f *Feed) {
		f.log = log
	}
}

// New creates a feed for url subscribing to instruments.
func New(url string, instruments []string, ingestor Ingestor, opts ...Option) *Feed {
	f := &Feed{
		url:            url,
		instruments:    instruments,
		ingestor:       ingestor,
		reconnectDelay: DefaultReconnectDelay,
		dialer:         &websocket.Dialer{HandshakeTimeout: handshakeTimeout}, //nolint:exhaustruct // library defaults
		metrics:        nil,
		log:            logger.NewNopLogger(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Run consumes the stream until ctx is done, reconnecting after failures.
// The delay grows after each failed attempt and returns to the configured
// reconnect delay once a connection has been established. It returns ctx.Err().
func (f *Feed) Run(ctx context.Context) error {
	delay := newBackoff(f.reconnectDelay)

	for {
		connected, err := f.consume(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if connected {
			delay.reset()
		}

		wait := delay.next()

		f.log.Warn("Feed disconnected, retrying",
			zap.String("url", f.url),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// backoff is the reconnect delay schedule.
type backoff struct {
	base    time.Duration
	current time.Duration
}

func newBackoff(base time.Duration) *backoff {
	return &backoff{base: base, current: base}
}

// next returns the delay to wait now and grows the following one by 1.8x up
// to maxReconnectDelay.
func (b *backoff) next() time.Duration {
	wait := b.current
	b.current = time.Duration(math.Min(float64(maxReconnectDelay), float64(b.current)*1.8))

	return wait
}

func (b *backoff) reset() {
	b.current = b.base
}

// consume reads one connection until it fails. connected reports whether the
// dial succeeded.
func (f *Feed) consume(ctx context.Context) (connected bool, err error) {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeFeedConnectFailed, err, "dial %s", f.url)
	}
	defer conn.Close()

	f.log.Info("Feed connected", zap.String("url", f.url), zap.Strings("instruments", f.instruments))

	if len(f.instruments) > 0 {
		if err := conn.WriteJSON(Subscribe{Action: "subscribe", Instruments: f.instruments}); err != nil {
			return true, errors.Wrap(errors.ErrCodeFeedConnectFailed, "subscribe", err)
		}
	}

	conn.SetReadLimit(readLimit)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return true, errors.Wrap(errors.ErrCodeFeedReadFailed, "read frame", err)
		}

		if err := f.Handle(data); err != nil {
			f.metrics.Dropped("frame")
			f.log.Debug("Dropped feed frame", zap.Error(err))
		}
	}
}

// Handle decodes one frame and forwards it. Frames the store rejects are not
// errors; undecodable or unknown frames are.
func (f *Feed) Handle(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataParseFailed, "decode frame", err)
	}

	if msg.Instrument == "" {
		return errors.New(errors.ErrCodeMarketDataParseFailed, "frame without instrument")
	}

	ts := time.UnixMilli(msg.Timestamp).UTC()

	switch msg.Type {
	case TypeTick, TypeBar:
		if msg.Timestamp <= 0 {
			return errors.Newf(errors.ErrCodeMarketDataParseFailed, "%s frame without timestamp", msg.Type)
		}
	case TypeClose:
	default:
		return errors.Newf(errors.ErrCodeMarketDataParseFailed, "unknown frame type %q", msg.Type)
	}

	f.metrics.FeedMessage(msg.Type)

	switch msg.Type {
	case TypeTick:
		f.ingestor.IngestTick(msg.Instrument, ts, msg.Price, msg.Volume)
	case TypeBar:
		f.ingestor.IngestBar(msg.Instrument, types.Bar{
			Timestamp: ts,
			Open:      msg.Open,
			High:      msg.High,
			Low:       msg.Low,
			Close:     msg.Close,
			Volume:    msg.Volume,
		})
	case TypeClose:
		f.ingestor.CloseOpenBar(msg.Instrument)
	}

	return nil
}
