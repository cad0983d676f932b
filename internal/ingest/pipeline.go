package ingest

import (
	"time"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// Stats summarizes one ingestion run for logging and metrics.
type Stats struct {
	Total    int
	Kept     int
	Rejected map[string]int
}

// Ingest runs the full normalize-and-filter pass over a fetched row set.
// Input order is preserved and the result is always a fresh slice; the
// previous collection is never mutated. Rows whose exit date cannot be
// resolved at all are dropped too, so every event in the result carries one.
func Ingest(rows []model.RawRow, loc *time.Location) ([]model.ParkingEvent, Stats) {
	stats := Stats{Total: len(rows), Rejected: make(map[string]int)}
	events := make([]model.ParkingEvent, 0, len(rows))

	for _, row := range rows {
		e := Normalize(row, loc)
		if reason, rejected := rejectReason(e); rejected {
			stats.Rejected[reason]++
			continue
		}
		if e.ExitDate == "" {
			stats.Rejected[ReasonNoExitDate]++
			continue
		}
		events = append(events, e)
	}

	stats.Kept = len(events)
	return events, stats
}
