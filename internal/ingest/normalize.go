// Package ingest turns raw sheet rows into the canonical event collection:
// column resolution across schema generations, exit-date backfill, and the
// noise filter that keeps operator artifacts out of the dashboard.
package ingest

import (
	"strings"
	"time"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// Column fallback lists, first match wins. The sheet went through two schema
// generations: the current Thai form headers and the original hand-made
// English sheet. The exit-date header additionally exists with a trailing
// space in some exports, so both spellings are listed.
var (
	recordedAtColumns  = []string{"ประทับเวลา", "Timestamp"}
	timeOfEventColumns = []string{"เวลา", "Time"}
	locationColumns    = []string{"สถานที่", "Location"}
	floorColumns       = []string{"ชั้น", "Floor"}
	noteColumns        = []string{"หมายเหตุ", "Note"}
	exitDateColumns    = []string{"วันที่ออก", "วันที่ออก ", "Exit Date"}
	statusColumns      = []string{"สถานะ", "Status"}
	mapURLColumns      = []string{"พิกัด", "Map"}
)

// Normalize maps one raw row onto a ParkingEvent. It never fails: missing
// columns become empty fields and the filter step decides the row's fate.
// The reference timezone only matters for the exit-date backfill.
func Normalize(row model.RawRow, loc *time.Location) model.ParkingEvent {
	e := model.ParkingEvent{
		RecordedAt:  strings.TrimSpace(row.Field(recordedAtColumns...)),
		TimeOfEvent: strings.TrimSpace(row.Field(timeOfEventColumns...)),
		Location:    strings.TrimSpace(row.Field(locationColumns...)),
		Floor:       strings.TrimSpace(row.Field(floorColumns...)),
		Note:        strings.TrimSpace(row.Field(noteColumns...)),
		Status:      strings.TrimSpace(row.Field(statusColumns...)),
		MapURL:      strings.TrimSpace(row.Field(mapURLColumns...)),
	}

	// The legacy sheet had no status header; the value simply sat in the
	// last column. Known risk: appending a new column to that schema would
	// shift it, but the sheet is frozen, so the rule stays.
	if e.Status == "" {
		e.Status = strings.TrimSpace(row.LastField())
	}

	e.ExitDate = exitDate(row, e.RecordedAt, loc)
	return e
}

// exitDate picks the explicit exit-date cell when present and otherwise
// backfills the calendar date of RecordedAt in the reference timezone.
// Unresolvable rows get an empty date and are dropped by the pipeline.
func exitDate(row model.RawRow, recordedAt string, loc *time.Location) string {
	if v := strings.TrimSpace(row.Field(exitDateColumns...)); v != "" {
		return v
	}
	t, ok := model.ParseRecordedAt(recordedAt, loc)
	if !ok {
		return ""
	}
	return t.In(loc).Format("2006-01-02")
}
