// Package store holds the two state layers of the service: the in-memory
// event snapshot the dashboard reads from, and the gorm-backed push
// subscription table.
package store

import (
	"sync"
	"time"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// Events is the snapshot store for the event collection. Refreshes replace
// the whole slice under the lock, so readers always see either the previous
// or the next collection, never a mix. Completions carry a start sequence;
// an older completion arriving after a newer one is discarded, which keeps a
// slow stale fetch from overwriting fresher data.
type Events struct {
	mu          sync.RWMutex
	events      []model.ParkingEvent
	inflight    int
	appliedSeq  uint64
	lastRefresh time.Time
	lastError   string
}

// NewEvents returns an empty snapshot store.
func NewEvents() *Events {
	return &Events{}
}

// Snapshot returns the current collection. Callers must treat the slice as
// read-only; the aggregates copy before sorting.
func (s *Events) Snapshot() []model.ParkingEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

// BeginRefresh marks one fetch as in flight. The loading flag stays up until
// every overlapping fetch has ended.
func (s *Events) BeginRefresh() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

// EndRefresh marks one fetch as finished, regardless of outcome.
func (s *Events) EndRefresh() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

// ApplyResult records the outcome of the fetch with the given start
// sequence. A success replaces the collection and clears the error; a
// failure records the error and keeps the last-known-good collection and its
// refresh time. Outcomes older than the newest applied one are dropped, and
// the return value reports whether this one was applied.
func (s *Events) ApplyResult(seq uint64, events []model.ParkingEvent, err error, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.appliedSeq {
		return false
	}
	s.appliedSeq = seq

	if err != nil {
		s.lastError = err.Error()
		return true
	}

	s.events = events
	s.lastError = ""
	s.lastRefresh = at
	return true
}

// Status assembles the refresh status record. The countdown is owned by the
// scheduler and passed through.
func (s *Events) Status(countdownSeconds int) model.RefreshStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := model.RefreshStatus{
		Loading:          s.inflight > 0,
		Error:            s.lastError,
		CountdownSeconds: countdownSeconds,
		EventCount:       len(s.events),
	}
	if !s.lastRefresh.IsZero() {
		t := s.lastRefresh
		st.LastRefresh = &t
	}
	return st
}
