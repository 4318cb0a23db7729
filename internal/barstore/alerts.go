package barstore

import (
	"maps"
	"time"

	"github.com/moznion/go-optional"
	"github.com/omupade20/prop8/internal/types"
)

// AlertState is a copy of an instrument's alert governance state.
type AlertState struct {
	LastAlert   optional.Option[time.Time]    `json:"last_alert"`
	Dedup       map[types.Direction]time.Time `json:"dedup"`
	PausedUntil optional.Option[time.Time]    `json:"paused_until"`
}

// MayAlert reports whether a new alert is allowed: the instrument is not
// paused and at least cooldown has passed since the last alert.
func (s *BarStore) MayAlert(instrument string, cooldown time.Duration) bool {
	series, ok := s.lookup(instrument)
	if !ok {
		return true
	}

	now := s.now()

	series.mu.Lock()
	defer series.mu.Unlock()

	if !series.pausedUntil.IsZero() && now.Before(series.pausedUntil) {
		return false
	}

	if series.lastAlert.IsZero() {
		return true
	}

	return now.Sub(series.lastAlert) >= cooldown
}

// MarkAlertSent records an alert at the current time.
func (s *BarStore) MarkAlertSent(instrument string) {
	series := s.seriesFor(instrument)
	now := s.now()

	series.mu.Lock()
	series.lastAlert = now
	series.mu.Unlock()
}

// IsDuplicate reports whether an alert in direction was already recorded
// within window. When it is not a duplicate the current time is recorded for
// that direction, so check and record happen under one lock.
func (s *BarStore) IsDuplicate(instrument string, direction types.Direction, window time.Duration) bool {
	series := s.seriesFor(instrument)
	now := s.now()

	series.mu.Lock()
	defer series.mu.Unlock()

	if last, ok := series.dedup[direction]; ok && now.Sub(last) < window {
		return true
	}

	series.dedup[direction] = now

	return false
}

// PauseUntil suppresses alerts for the instrument until the given time.
func (s *BarStore) PauseUntil(instrument string, until time.Time) {
	series := s.seriesFor(instrument)

	series.mu.Lock()
	series.pausedUntil = until
	series.mu.Unlock()
}

// AlertState returns a copy of the instrument's alert governance state.
func (s *BarStore) AlertState(instrument string) AlertState {
	state := AlertState{
		LastAlert:   optional.None[time.Time](),
		Dedup:       map[types.Direction]time.Time{},
		PausedUntil: optional.None[time.Time](),
	}

	series, ok := s.lookup(instrument)
	if !ok {
		return state
	}

	series.mu.Lock()
	defer series.mu.Unlock()

	if !series.lastAlert.IsZero() {
		state.LastAlert = optional.Some(series.lastAlert)
	}

	if !series.pausedUntil.IsZero() {
		state.PausedUntil = optional.Some(series.pausedUntil)
	}

	state.Dedup = maps.Clone(series.dedup)

	return state
}
