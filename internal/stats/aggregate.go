package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// recentFeedLimit bounds the dashboard feed.
const recentFeedLimit = 12

// LocationDistribution counts the filtered events per location, most frequent
// first. Equal counts keep their first-encounter order, so the chart does not
// reshuffle between refreshes.
func LocationDistribution(events []model.ParkingEvent) []model.LocationCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range events {
		if _, seen := counts[e.Location]; !seen {
			order = append(order, e.Location)
		}
		counts[e.Location]++
	}

	out := make([]model.LocationCount, 0, len(order))
	for _, name := range order {
		out = append(out, model.LocationCount{Name: name, Value: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// FloorDistribution counts condo floors over the full collection. The view
// ignores the month/location filter: it answers "which floor do we usually
// get", not "which floor this month". Events elsewhere, or with the dash
// sentinel, carry no floor information and are skipped.
func FloorDistribution(events []model.ParkingEvent) []model.FloorCount {
	counts := make(map[string]int)
	var order []string
	for _, e := range events {
		if model.FacetOf(e.Location) != model.FacetCondo {
			continue
		}
		if e.Floor == "" || e.Floor == model.FloorNotApplicable {
			continue
		}
		if _, seen := counts[e.Floor]; !seen {
			order = append(order, e.Floor)
		}
		counts[e.Floor]++
	}

	out := make([]model.FloorCount, 0, len(order))
	for _, floor := range order {
		out = append(out, model.FloorCount{Floor: floor, Count: counts[floor]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// MostFrequentFloor is the headline figure above the floor histogram. An
// empty histogram shows the dash sentinel, not an error.
func MostFrequentFloor(counts []model.FloorCount) string {
	if len(counts) == 0 {
		return model.FloorNotApplicable
	}
	return counts[0].Floor
}

// TiePolicy decides which entry wins when one day has several arrivals for
// the same facet.
type TiePolicy int

const (
	// TieLastInput keeps the last row in sheet order, matching the
	// historical behavior of the dashboard.
	TieLastInput TiePolicy = iota
	// TieLatestRecorded keeps the row with the newest RecordedAt instead,
	// independent of sheet order.
	TieLatestRecorded
)

type trendSample struct {
	minute     int
	recordedAt string
}

func replaceSample(cur *trendSample, minute int, recordedAt string, policy TiePolicy) *trendSample {
	next := &trendSample{minute: minute, recordedAt: recordedAt}
	if cur == nil {
		return next
	}
	if policy == TieLatestRecorded && recordedAt < cur.recordedAt {
		return cur
	}
	return next
}

// ArrivalTrend builds the workday arrival-time series over the full
// collection: per exit date, the minute of day the car reached school and the
// office. Weekends are excluded (no school run, no commute), as are rows
// whose date or time does not parse. Points come out in date order.
func ArrivalTrend(events []model.ParkingEvent, policy TiePolicy) []model.TrendPoint {
	type dayCells struct {
		school *trendSample
		office *trendSample
	}
	days := make(map[string]*dayCells)

	for _, e := range events {
		facet := model.FacetOf(e.Location)
		if facet != model.FacetSchool && facet != model.FacetOffice {
			continue
		}
		day, err := time.Parse("2006-01-02", e.ExitDate)
		if err != nil {
			continue
		}
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		minute, ok := model.MinuteOfDay(e.TimeOfEvent)
		if !ok {
			continue
		}

		cells := days[e.ExitDate]
		if cells == nil {
			cells = &dayCells{}
			days[e.ExitDate] = cells
		}
		if facet == model.FacetSchool {
			cells.school = replaceSample(cells.school, minute, e.RecordedAt, policy)
		} else {
			cells.office = replaceSample(cells.office, minute, e.RecordedAt, policy)
		}
	}

	dates := make([]string, 0, len(days))
	for d := range days {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]model.TrendPoint, 0, len(dates))
	for _, d := range dates {
		cells := days[d]
		p := model.TrendPoint{Date: d}
		if cells.school != nil {
			m := cells.school.minute
			p.School = &m
		}
		if cells.office != nil {
			m := cells.office.minute
			p.Office = &m
		}
		out = append(out, p)
	}
	return out
}

// Period scopes the arrival averages.
type Period string

const (
	PeriodAll   Period = "all"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period query value. Empty means all.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodAll, PeriodWeek, PeriodMonth:
		return Period(s), true
	}
	if s == "" {
		return PeriodAll, true
	}
	return "", false
}

// AverageArrivals computes the mean arrival minute per location over the full
// collection, scoped to the selected period, earliest mean first. Rows
// without a parseable time contribute nothing; a location with no usable
// samples in the period is absent rather than zero.
func AverageArrivals(events []model.ParkingEvent, period Period, loc *time.Location) []model.LocationAverage {
	inPeriod := periodPredicate(period, clock.Now().In(loc), loc)

	sums := make(map[string]int)
	counts := make(map[string]int)
	var order []string
	for _, e := range events {
		minute, ok := model.MinuteOfDay(e.TimeOfEvent)
		if !ok {
			continue
		}
		if !inPeriod(e.ExitDate) {
			continue
		}
		if _, seen := counts[e.Location]; !seen {
			order = append(order, e.Location)
		}
		sums[e.Location] += minute
		counts[e.Location]++
	}

	out := make([]model.LocationAverage, 0, len(order))
	for _, location := range order {
		out = append(out, model.LocationAverage{
			Location:       location,
			AverageMinutes: float64(sums[location]) / float64(counts[location]),
			SampleCount:    counts[location],
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AverageMinutes < out[j].AverageMinutes })
	return out
}

// periodPredicate returns the exit-date membership test for a period,
// evaluated against a fixed "now". The week runs Monday to Monday in the
// reference timezone and is bounded on both sides because exit dates may sit
// in the future (they double as reminders).
func periodPredicate(period Period, now time.Time, loc *time.Location) func(string) bool {
	switch period {
	case PeriodWeek:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		monday := time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, loc)
		nextMonday := monday.AddDate(0, 0, 7)
		return func(exitDate string) bool {
			t, err := time.ParseInLocation("2006-01-02", exitDate, loc)
			if err != nil {
				return false
			}
			return !t.Before(monday) && t.Before(nextMonday)
		}
	case PeriodMonth:
		prefix := now.Format("2006-01")
		return func(exitDate string) bool { return strings.HasPrefix(exitDate, prefix) }
	default:
		return func(string) bool { return true }
	}
}

// DailyCounts counts the filtered events per calendar day of their
// RecordedAt in the reference timezone. This view deliberately keys on when
// the entry was logged, not on the exit date, so a reminder set for next
// month still shows up on the day it was written.
func DailyCounts(events []model.ParkingEvent, loc *time.Location) []model.DailyCount {
	counts := make(map[string]int)
	for _, e := range events {
		t, ok := model.ParseRecordedAt(e.RecordedAt, loc)
		if !ok {
			continue
		}
		counts[t.In(loc).Format("2006-01-02")]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]model.DailyCount, 0, len(dates))
	for _, d := range dates {
		out = append(out, model.DailyCount{Date: d, Count: counts[d]})
	}
	return out
}

// RecentFeed returns the newest events of the filtered collection, exit date
// first and RecordedAt as the tie-break. Both comparisons are plain string
// order, which is correct for the fixed-width date and timestamp formats.
// The input is copied, never reordered in place.
func RecentFeed(events []model.ParkingEvent) []model.RecentEvent {
	sorted := make([]model.ParkingEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ExitDate != sorted[j].ExitDate {
			return sorted[i].ExitDate > sorted[j].ExitDate
		}
		return sorted[i].RecordedAt > sorted[j].RecordedAt
	})
	if len(sorted) > recentFeedLimit {
		sorted = sorted[:recentFeedLimit]
	}

	out := make([]model.RecentEvent, len(sorted))
	for i, e := range sorted {
		out[i] = model.RecentEvent{ParkingEvent: e, DisplayTime: displayTime(e.TimeOfEvent)}
	}
	return out
}

func displayTime(s string) string {
	minute, ok := model.MinuteOfDay(s)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
