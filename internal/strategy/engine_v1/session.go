package engine_v1

import (
	"sync"
	"time"

	"github.com/omupade20/prop8/internal/types"
)

// SessionTracker starts a new VWAP session when a closed bar falls on a later
// calendar day, in loc, than every bar seen before it. It implements
// barstore.BarCloseListener and has to be registered ahead of the dispatcher
// so the first bar of a day is evaluated against a fresh session.
type SessionTracker struct {
	engine *Engine
	loc    *time.Location

	mu  sync.Mutex
	day time.Time
}

// NewSessionTracker creates a tracker for engine. A nil loc means UTC.
func NewSessionTracker(engine *Engine, loc *time.Location) *SessionTracker {
	if loc == nil {
		loc = time.UTC
	}

	return &SessionTracker{engine: engine, loc: loc}
}

func (t *SessionTracker) OnBarClose(_ string, bar types.Bar) error {
	local := bar.Timestamp.In(t.loc)
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, t.loc)

	t.mu.Lock()
	reset := !t.day.IsZero() && day.After(t.day)

	if t.day.IsZero() || day.After(t.day) {
		t.day = day
	}
	t.mu.Unlock()

	if reset {
		t.engine.ResetSession()
	}

	return nil
}
