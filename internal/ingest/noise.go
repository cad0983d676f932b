package ingest

import (
	"strings"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// noiseMarkers are note substrings that mark a row as operator noise rather
// than a real entry. Matching is done on the lowercased note, which covers
// the case-insensitive Latin markers and leaves the Thai ones untouched.
// "ปกติ" and other real statuses never appear here.
var noiseMarkers = []string{
	// Keyboard-app clipboard boilerplate pasted into the note cell.
	"welcome to gboard",
	"ยินดีต้อนรับสู่คลิปบอร์ด",
	// Trial entries made while setting up the form.
	"ทดสอบ",
	"test",
}

// Rejection reasons, used as metric labels.
const (
	ReasonMissingLocation  = "missing_location"
	ReasonMissingTimestamp = "missing_timestamp"
	ReasonNoiseNote        = "noise_note"
	ReasonNoExitDate       = "no_exit_date"
)

// Keep reports whether an event survives the noise filter.
func Keep(e model.ParkingEvent) bool {
	_, ok := rejectReason(e)
	return !ok
}

// rejectReason names the first matching rejection rule. The rules are
// independent, so the order only affects which label a doubly-bad row gets.
func rejectReason(e model.ParkingEvent) (string, bool) {
	if e.Location == "" {
		return ReasonMissingLocation, true
	}
	if e.RecordedAt == "" {
		return ReasonMissingTimestamp, true
	}
	if note := strings.ToLower(e.Note); note != "" {
		for _, marker := range noiseMarkers {
			if strings.Contains(note, marker) {
				return ReasonNoiseNote, true
			}
		}
	}
	return "", false
}
