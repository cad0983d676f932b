package model

import "time"

// LocationCount is one slice of the location distribution chart.
type LocationCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// FloorCount is one bar of the condo floor histogram.
type FloorCount struct {
	Floor string `json:"floor"`
	Count int    `json:"count"`
}

// TrendPoint carries the arrival times of one workday. A nil minute means the
// day has no logged arrival for that facet.
type TrendPoint struct {
	Date   string `json:"date"`
	School *int   `json:"school,omitempty"`
	Office *int   `json:"office,omitempty"`
}

// LocationAverage is the mean arrival minute-of-day for one location within
// the selected period.
type LocationAverage struct {
	Location       string  `json:"location"`
	AverageMinutes float64 `json:"averageMinutes"`
	SampleCount    int     `json:"sampleCount"`
}

// DailyCount is the number of entries logged on one calendar day.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RecentEvent is a feed entry: the event itself plus the time string the
// dashboard shows next to it.
type RecentEvent struct {
	ParkingEvent
	DisplayTime string `json:"displayTime"`
}

// RefreshStatus describes the refresh loop for the dashboard header.
// LastRefresh stays nil until the first cycle has completed.
type RefreshStatus struct {
	Loading          bool       `json:"loading"`
	LastRefresh      *time.Time `json:"lastRefresh"`
	Error            string     `json:"error,omitempty"`
	CountdownSeconds int        `json:"countdownSeconds"`
	EventCount       int        `json:"eventCount"`
}
