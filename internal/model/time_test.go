package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordedAtLayouts(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15T08:30:00+07:00", time.Date(2024, 3, 15, 8, 30, 0, 0, loc)},
		{"2024-03-15T08:30:00Z", time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)},
		{"2024-03-15T08:30:00", time.Date(2024, 3, 15, 8, 30, 0, 0, loc)},
		{"2024-03-15 08:30:00", time.Date(2024, 3, 15, 8, 30, 0, 0, loc)},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, loc)},
		{"  2024-03-15  ", time.Date(2024, 3, 15, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		got, ok := ParseRecordedAt(tc.in, loc)
		require.True(t, ok, tc.in)
		assert.True(t, got.Equal(tc.want), "%s: got %v want %v", tc.in, got, tc.want)
	}

	for _, bad := range []string{"", "yesterday", "15/03/2024", "2024-03-15T08:30"} {
		_, ok := ParseRecordedAt(bad, loc)
		assert.False(t, ok, bad)
	}
}

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in     string
		minute int
		ok     bool
	}{
		{"08:30", 510, true},
		{"8:05", 485, true},
		{"08:30:45", 510, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{" 07:15 ", 435, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"830", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{"aa:bb", 0, false},
	}
	for _, tc := range cases {
		minute, ok := MinuteOfDay(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.minute, minute, tc.in)
		}
	}
}
