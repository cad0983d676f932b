package model

import (
	"strconv"
	"strings"
	"time"
)

// recordedAtLayouts are the accepted RecordedAt spellings, tried in order.
// Layouts without a zone are interpreted as wall-clock time in the reference
// timezone.
var recordedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRecordedAt parses a RecordedAt string. The bool reports whether any
// accepted layout matched; callers treat false as "skip this row here".
func ParseRecordedAt(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range recordedAtLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MinuteOfDay parses an HH:MM wall-clock string into minutes since midnight.
// A seconds part is tolerated and ignored; anything else reports false.
func MinuteOfDay(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	hour, errH := strconv.Atoi(parts[0])
	min, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0, false
	}
	return hour*60 + min, true
}
