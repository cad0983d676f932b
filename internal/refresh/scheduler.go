// Package refresh drives the periodic fetch-ingest-swap cycle that keeps the
// dashboard's event snapshot current.
package refresh

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/patrickmn/go-cache"

	"github.com/natpakans-stack/carpark-live-dashboard/config"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/ingest"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/notification"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/observability"
	"github.com/natpakans-stack/carpark-live-dashboard/internal/store"
)

// RowSource fetches the current sheet contents. Implemented by sheet.Fetcher;
// tests substitute their own.
type RowSource interface {
	FetchRows(ctx context.Context) ([]model.RawRow, error)
}

// Scheduler runs the refresh loop: a fixed-interval fetch, a one-second
// countdown for the dashboard header, and a manual trigger that feeds into
// the same path. Fetches may overlap; each one claims a start sequence and
// the snapshot store only applies the newest completion, so a slow stale
// response never overwrites fresher data.
type Scheduler struct {
	cfg     *config.Config
	source  RowSource
	events  *store.Events
	resp    *cache.Cache
	pool    *notification.WorkerPool
	metrics *observability.Metrics
	clock   clockwork.Clock

	seq       atomic.Uint64
	countdown atomic.Int64
	trigger   chan struct{}
}

// NewScheduler wires the refresh loop. The worker pool may be nil when push
// is disabled; the response cache is the one the API's caching middleware
// reads, flushed here after every applied swap.
func NewScheduler(cfg *config.Config, source RowSource, events *store.Events, resp *cache.Cache, pool *notification.WorkerPool, metrics *observability.Metrics) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		source:  source,
		events:  events,
		resp:    resp,
		pool:    pool,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
		trigger: make(chan struct{}, 1),
	}
}

// SetClock swaps the scheduler's time source for tests. Pass nil to reset to
// real time. Must be called before Run.
func (s *Scheduler) SetClock(c clockwork.Clock) {
	if c == nil {
		s.clock = clockwork.NewRealClock()
		return
	}
	s.clock = c
}

// Run starts the loop and blocks until the context is cancelled. The
// countdown ticker is a display affordance only: the refresh ticker decides
// when to fetch, and the countdown just wraps back to the interval at zero.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.cfg.Refresh.Enabled {
		log.Println("Refresh loop is disabled. Not starting.")
		return
	}
	log.Println("Starting refresh loop...")

	if s.pool != nil {
		s.pool.Start(ctx)
	}

	s.countdown.Store(int64(s.cfg.Refresh.IntervalSeconds))
	go s.RefreshOnce(ctx)

	refreshTicker := s.clock.NewTicker(s.cfg.Refresh.Interval)
	defer refreshTicker.Stop()
	countdownTicker := s.clock.NewTicker(time.Second)
	defer countdownTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh loop shutting down.")
			return
		case <-refreshTicker.Chan():
			go s.RefreshOnce(ctx)
		case <-s.trigger:
			go s.RefreshOnce(ctx)
		case <-countdownTicker.Chan():
			if s.countdown.Add(-1) <= 0 {
				s.countdown.Store(int64(s.cfg.Refresh.IntervalSeconds))
			}
		}
	}
}

// TriggerRefresh requests a refresh outside the schedule. It never blocks;
// when a trigger is already pending the two collapse into one.
func (s *Scheduler) TriggerRefresh() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Countdown returns the seconds shown in the dashboard header.
func (s *Scheduler) Countdown() int {
	return int(s.countdown.Load())
}

// RefreshOnce performs one fetch-ingest-swap cycle. Run calls it on the
// schedule; callers may invoke it directly for a synchronous refresh.
func (s *Scheduler) RefreshOnce(ctx context.Context) {
	seq := s.seq.Add(1)
	start := s.clock.Now()

	s.events.BeginRefresh()
	defer s.events.EndRefresh()
	defer s.finishCycle(start)

	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		log.Printf("Refresh %d failed: %v", seq, err)
		if s.events.ApplyResult(seq, nil, err, s.clock.Now()) {
			s.metrics.RefreshCycles.WithLabelValues("error").Inc()
		} else {
			s.metrics.RefreshCycles.WithLabelValues("stale").Inc()
		}
		return
	}

	previous := s.events.Snapshot()
	events, stats := ingest.Ingest(rows, s.cfg.Refresh.Location)

	s.metrics.RowsFetched.Add(float64(stats.Total))
	for reason, n := range stats.Rejected {
		s.metrics.RowsRejected.WithLabelValues(reason).Add(float64(n))
	}

	if !s.events.ApplyResult(seq, events, nil, s.clock.Now()) {
		log.Printf("Refresh %d discarded: a newer refresh already applied", seq)
		s.metrics.RefreshCycles.WithLabelValues("stale").Inc()
		return
	}

	s.metrics.RefreshCycles.WithLabelValues("success").Inc()
	s.metrics.EventsCurrent.Set(float64(len(events)))
	log.Printf("Refresh %d applied: %d rows fetched, %d events kept", seq, stats.Total, stats.Kept)

	// Cached view responses are built from the old collection.
	s.resp.Flush()
	s.notifyNew(previous, events)
}

// finishCycle resets the countdown and records the cycle duration. Runs on
// every completion, applied or not.
func (s *Scheduler) finishCycle(start time.Time) {
	s.metrics.RefreshDuration.Observe(s.clock.Since(start).Seconds())
	s.countdown.Store(int64(s.cfg.Refresh.IntervalSeconds))
}

// notifyNew pushes entries that were not in the previous snapshot. The
// collection has no identity across cycles, so RecordedAt doubles as the
// diff key; it is the form's own submit timestamp and unique enough for a
// household log. A cold start stays silent instead of replaying history.
func (s *Scheduler) notifyNew(previous, current []model.ParkingEvent) {
	if s.pool == nil || len(previous) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(previous))
	for _, e := range previous {
		seen[e.RecordedAt] = struct{}{}
	}
	for _, e := range current {
		if _, ok := seen[e.RecordedAt]; !ok {
			s.pool.Dispatch(e)
		}
	}
}
