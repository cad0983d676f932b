package stats

import (
	"sort"
	"strings"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// FilterAll is the token that disables one filter dimension.
const FilterAll = "all"

// Selection is the active month/location filter pair. Zero values mean
// "nothing selected", which Normalize turns into FilterAll.
type Selection struct {
	Month    string
	Location string
}

// Normalized returns the selection with empty dimensions widened to
// FilterAll, so callers can pass query parameters straight through.
func (s Selection) Normalized() Selection {
	if s.Month == "" {
		s.Month = FilterAll
	}
	if s.Location == "" {
		s.Location = FilterAll
	}
	return s
}

// Filter reduces the collection to the events matching the selection. The
// month token matches as a prefix of the exit date (a YYYY-MM token matches
// every day of that month), the location token matches exactly. Order is
// preserved and the result is a fresh slice.
func Filter(events []model.ParkingEvent, sel Selection) []model.ParkingEvent {
	sel = sel.Normalized()
	out := make([]model.ParkingEvent, 0, len(events))
	for _, e := range events {
		if sel.Month != FilterAll && !strings.HasPrefix(e.ExitDate, sel.Month) {
			continue
		}
		if sel.Location != FilterAll && e.Location != sel.Location {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Months lists the distinct exit-date months of the full collection,
// ascending, with the FilterAll token first. Facet lists always come from
// the unfiltered collection so selecting a month never hides the others.
func Months(events []model.ParkingEvent) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		if len(e.ExitDate) < 7 {
			continue
		}
		seen[e.ExitDate[:7]] = struct{}{}
	}
	months := make([]string, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Strings(months)
	return append([]string{FilterAll}, months...)
}

// Locations lists the distinct locations of the full collection,
// lexicographic, with the FilterAll token first.
func Locations(events []model.ParkingEvent) []string {
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.Location == "" {
			continue
		}
		seen[e.Location] = struct{}{}
	}
	locations := make([]string, 0, len(seen))
	for l := range seen {
		locations = append(locations, l)
	}
	sort.Strings(locations)
	return append([]string{FilterAll}, locations...)
}
