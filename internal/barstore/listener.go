package barstore

import (
	"fmt"
	"sync"

	"github.com/omupade20/prop8/internal/types"
	"go.uber.org/zap"
)

// BarCloseListener is notified once for every bar appended through IngestBar,
// CloseOpenBar or a replay with listeners enabled. A returned error is logged
// and counted; it never reaches the caller that ingested the bar.
type BarCloseListener interface {
	OnBarClose(instrument string, bar types.Bar) error
}

// BarCloseListenerFunc adapts a function to BarCloseListener.
type BarCloseListenerFunc func(instrument string, bar types.Bar) error

// OnBarClose implements BarCloseListener.
func (f BarCloseListenerFunc) OnBarClose(instrument string, bar types.Bar) error {
	return f(instrument, bar)
}

type listenerEntry struct {
	id       uint64
	listener BarCloseListener
}

// RegisterOnBarClose adds a listener. Listeners run in registration order.
// The returned function removes the listener; calling it more than once is safe.
func (s *BarStore) RegisterOnBarClose(listener BarCloseListener) func() {
	s.listenersMu.Lock()
	s.nextListenerID++
	id := s.nextListenerID
	s.listeners = append(s.listeners, listenerEntry{id: id, listener: listener})
	s.listenersMu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() { s.unregister(id) })
	}
}

func (s *BarStore) unregister(id uint64) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	for i, entry := range s.listeners {
		if entry.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)

			return
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (s *BarStore) ListenerCount() int {
	s.listenersMu.RLock()
	defer s.listenersMu.RUnlock()

	return len(s.listeners)
}

// notify must be called without holding any series lock.
func (s *BarStore) notify(instrument string, bar types.Bar) {
	s.listenersMu.RLock()
	entries := make([]listenerEntry, len(s.listeners))
	copy(entries, s.listeners)
	s.listenersMu.RUnlock()

	for _, entry := range entries {
		if err := s.invoke(entry.listener, instrument, bar); err != nil {
			s.listenerFailures.Add(1)
			s.metrics.ListenerFailed()
			s.log.Warn("Bar close listener failed",
				zap.String("instrument", instrument),
				zap.Uint64("listener", entry.id),
				zap.Time("bar_time", bar.Timestamp),
				zap.Error(err),
			)
		}
	}
}

func (s *BarStore) invoke(listener BarCloseListener, instrument string, bar types.Bar) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panic: %v", r)
		}
	}()

	return listener.OnBarClose(instrument, bar)
}
