package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

func bangkok(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)
	return loc
}

func row(values map[string]string) model.RawRow {
	columns := make([]string, 0, len(values))
	for name := range values {
		columns = append(columns, name)
	}
	return model.RawRow{Columns: columns, Values: values}
}

func TestNormalizeThaiColumns(t *testing.T) {
	e := Normalize(row(map[string]string{
		"ประทับเวลา": "2024-03-15T08:30:00+07:00",
		"เวลา":       "08:25",
		"สถานที่":    "  คอนโด A  ",
		"ชั้น":       "3",
		"หมายเหตุ":   "ปกติ",
		"วันที่ออก":  "2024-03-15",
		"สถานะ":      "ออกแล้ว",
		"พิกัด":      "https://maps.example.com/a",
	}), bangkok(t))

	assert.Equal(t, "2024-03-15T08:30:00+07:00", e.RecordedAt)
	assert.Equal(t, "08:25", e.TimeOfEvent)
	assert.Equal(t, "คอนโด A", e.Location)
	assert.Equal(t, "3", e.Floor)
	assert.Equal(t, "ปกติ", e.Note)
	assert.Equal(t, "2024-03-15", e.ExitDate)
	assert.Equal(t, "ออกแล้ว", e.Status)
	assert.Equal(t, "https://maps.example.com/a", e.MapURL)
}

func TestNormalizeEnglishFallbackColumns(t *testing.T) {
	e := Normalize(row(map[string]string{
		"Timestamp": "2024-03-15T08:30:00+07:00",
		"Time":      "08:25",
		"Location":  "โรงเรียน B",
		"Floor":     "-",
		"Note":      "",
		"Exit Date": "2024-03-16",
		"Status":    "out",
		"Map":       "https://maps.example.com/b",
	}), bangkok(t))

	assert.Equal(t, "โรงเรียน B", e.Location)
	assert.Equal(t, "2024-03-16", e.ExitDate)
	assert.Equal(t, "out", e.Status)
}

func TestNormalizeExitDateTrailingSpaceHeader(t *testing.T) {
	// A stray trailing space in the sheet header must still match.
	e := Normalize(row(map[string]string{
		"ประทับเวลา": "2024-03-15T08:30:00+07:00",
		"สถานที่":    "คอนโด A",
		"วันที่ออก ": "2024-03-17",
	}), bangkok(t))

	assert.Equal(t, "2024-03-17", e.ExitDate)
}

func TestNormalizeBackfillsExitDateFromTimestamp(t *testing.T) {
	cases := []struct {
		name       string
		recordedAt string
		want       string
	}{
		{"rfc3339 with offset", "2024-03-15T08:30:00+07:00", "2024-03-15"},
		// 23:50 UTC is already the next morning in Bangkok.
		{"rfc3339 utc near midnight", "2024-03-15T23:50:00Z", "2024-03-16"},
		{"plain datetime", "2024-03-15T23:50:00", "2024-03-15"},
		{"space separated", "2024-03-15 23:50:00", "2024-03-15"},
		{"date only", "2024-03-15", "2024-03-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := Normalize(row(map[string]string{
				"ประทับเวลา": tc.recordedAt,
				"สถานที่":    "คอนโด A",
			}), bangkok(t))
			assert.Equal(t, tc.want, e.ExitDate)
		})
	}
}

func TestNormalizeExplicitExitDateWins(t *testing.T) {
	e := Normalize(row(map[string]string{
		"ประทับเวลา": "2024-03-15T08:30:00+07:00",
		"สถานที่":    "คอนโด A",
		"วันที่ออก":  "2024-04-01",
	}), bangkok(t))

	assert.Equal(t, "2024-04-01", e.ExitDate)
}

func TestNormalizeUnparseableTimestampLeavesExitDateEmpty(t *testing.T) {
	e := Normalize(row(map[string]string{
		"ประทับเวลา": "last tuesday",
		"สถานที่":    "คอนโด A",
	}), bangkok(t))

	assert.Empty(t, e.ExitDate)
}

func TestNormalizeLegacyStatusFromLastColumn(t *testing.T) {
	// Early sheet generations had no status header; the value rode in the
	// last column of the row.
	r := model.RawRow{
		Columns: []string{"ประทับเวลา", "สถานที่", "สถานะจอด"},
		Values: map[string]string{
			"ประทับเวลา": "2024-03-15T08:30:00+07:00",
			"สถานที่":    "คอนโด A",
			"สถานะจอด":   "ยังจอดอยู่",
		},
	}
	e := Normalize(r, bangkok(t))
	assert.Equal(t, "ยังจอดอยู่", e.Status)
}

func TestNormalizeNamedStatusBeatsLastColumn(t *testing.T) {
	r := model.RawRow{
		Columns: []string{"ประทับเวลา", "สถานที่", "สถานะ", "พิกัด"},
		Values: map[string]string{
			"ประทับเวลา": "2024-03-15T08:30:00+07:00",
			"สถานที่":    "คอนโด A",
			"สถานะ":      "ออกแล้ว",
			"พิกัด":      "https://maps.example.com/a",
		},
	}
	e := Normalize(r, bangkok(t))
	assert.Equal(t, "ออกแล้ว", e.Status)
}
