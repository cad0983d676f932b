package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

func TestKeepRejectsNoiseNotes(t *testing.T) {
	cases := []struct {
		name string
		note string
		keep bool
	}{
		{"clipboard artifact", "Welcome to Gboard clipboard, any text you copy will be saved here.", false},
		{"thai clipboard artifact", "ยินดีต้อนรับสู่คลิปบอร์ด Gboard", false},
		{"thai test row", "ทดสอบระบบ", false},
		{"english test row", "Test entry", false},
		{"marker inside longer note", "นี่คือ test จากฟอร์ม", false},
		{"regular note", "ปกติ", true},
		{"empty note", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := model.ParkingEvent{
				RecordedAt: "2024-03-15T08:30:00+07:00",
				Location:   "คอนโด A",
				Note:       tc.note,
			}
			assert.Equal(t, tc.keep, Keep(e))
		})
	}
}

func TestKeepRejectsIncompleteRows(t *testing.T) {
	assert.False(t, Keep(model.ParkingEvent{RecordedAt: "2024-03-15T08:30:00+07:00"}), "missing location")
	assert.False(t, Keep(model.ParkingEvent{Location: "คอนโด A"}), "missing timestamp")
	assert.True(t, Keep(model.ParkingEvent{RecordedAt: "2024-03-15T08:30:00+07:00", Location: "คอนโด A"}))
}

func TestRejectReasonPrecedence(t *testing.T) {
	// A row missing everything counts once, under the first check that fails.
	reason, rejected := rejectReason(model.ParkingEvent{Note: "test"})
	assert.True(t, rejected)
	assert.Equal(t, ReasonMissingLocation, reason)

	reason, rejected = rejectReason(model.ParkingEvent{Location: "คอนโด A", Note: "test"})
	assert.True(t, rejected)
	assert.Equal(t, ReasonMissingTimestamp, reason)

	reason, rejected = rejectReason(model.ParkingEvent{
		RecordedAt: "2024-03-15T08:30:00+07:00",
		Location:   "คอนโด A",
		Note:       "test",
	})
	assert.True(t, rejected)
	assert.Equal(t, ReasonNoiseNote, reason)

	_, rejected = rejectReason(model.ParkingEvent{
		RecordedAt: "2024-03-15T08:30:00+07:00",
		Location:   "คอนโด A",
	})
	assert.False(t, rejected)
}
