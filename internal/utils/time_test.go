package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", want: time.Local.String()},
		{name: "Local returns local", timezone: "Local", want: time.Local.String()},
		{name: "UTC", timezone: "UTC", want: "UTC"},
		{name: "America/New_York", timezone: "America/New_York", want: "America/New_York"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if tt.wantErr {
				assert.ErrorContains(t, err, "invalid timezone")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, loc.String())
		})
	}
}

func TestStartOfDayAndSameDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	late := time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), StartOfDay(late, time.UTC))
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, ny), StartOfDay(late, ny))

	early := time.Date(2024, time.March, 6, 1, 0, 0, 0, time.UTC)
	assert.False(t, SameDay(late, early, time.UTC))
	assert.True(t, SameDay(late, early, ny))

	assert.Equal(t, "2024-03-05", DayKey(early, ny))
	assert.Equal(t, "2024-03-06", DayKey(early, time.UTC))
}

func TestParseDateInLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got, err := ParseDateInLocation("2024-07-04", ny)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.July, 4, 0, 0, 0, 0, ny), got)

	_, err = ParseDateInLocation("07/04/2024", ny)
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// spans the spring DST change
	days := DaysBetween(
		time.Date(2024, time.March, 9, 18, 0, 0, 0, ny),
		time.Date(2024, time.March, 11, 6, 0, 0, 0, ny),
		ny,
	)
	require.Len(t, days, 3)
	for i, d := range days {
		assert.Equal(t, time.Date(2024, time.March, 9+i, 0, 0, 0, 0, ny), d)
	}

	same := time.Date(2024, time.March, 9, 8, 0, 0, 0, time.UTC)
	assert.Len(t, DaysBetween(same, same, time.UTC), 1)
	assert.Nil(t, DaysBetween(same, same.AddDate(0, 0, -1), time.UTC))
}

func TestPeriodStarts(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), FirstOfMonth(now, time.UTC))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), FirstOfYear(now, time.UTC))
}
