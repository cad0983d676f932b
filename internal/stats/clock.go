// Package stats computes the dashboard views from the event collection.
// Everything here is a pure full-recompute over the snapshot; nothing caches
// or mutates its input.
package stats

import "github.com/jonboulle/clockwork"

// clock is a package-level time source so tests can freeze "now" for the
// period-scoped averages. Production code uses the real clock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
