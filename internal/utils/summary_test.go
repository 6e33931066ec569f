package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habit-tracker/internal/models"
)

func entryAt(id int64, completed bool, t time.Time) models.HabitEntry {
	return models.HabitEntry{ID: id, HabitID: 1, Completed: completed, Date: t}
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	now := day(2024, time.March, 10, 15)
	entries := []models.HabitEntry{
		entryAt(1, true, day(2024, time.February, 20, 9)),
		entryAt(2, true, day(2024, time.March, 1, 9)),
		entryAt(3, false, day(2024, time.March, 5, 9)),
		entryAt(4, true, day(2024, time.March, 5, 21)),
		entryAt(5, false, day(2024, time.March, 10, 8)),
		entryAt(6, true, day(2023, time.December, 31, 12)),
		entryAt(7, true, day(2024, time.March, 11, 9)),
	}

	tests := []struct {
		interval       Interval
		want           Summary
		wantTracking   int
		wantCompletion int
	}{
		{
			interval:       IntervalMonthly,
			want:           Summary{Interval: IntervalMonthly, PossibleDays: 10, TrackedDays: 3, CompletedDays: 2},
			wantTracking:   30,
			wantCompletion: 67,
		},
		{
			interval:       IntervalYearly,
			want:           Summary{Interval: IntervalYearly, PossibleDays: 70, TrackedDays: 4, CompletedDays: 3},
			wantTracking:   6,
			wantCompletion: 75,
		},
		{
			interval:       IntervalTotal,
			want:           Summary{Interval: IntervalTotal, PossibleDays: 71, TrackedDays: 5, CompletedDays: 4},
			wantTracking:   7,
			wantCompletion: 80,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			got := Summarize(entries, tt.interval, now, time.UTC)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantTracking, got.TrackingRate())
			assert.Equal(t, tt.wantCompletion, got.CompletionRate())
		})
	}
}

func TestSummarizeStartsAtFirstEntry(t *testing.T) {
	now := day(2024, time.March, 10, 15)
	entries := []models.HabitEntry{entryAt(1, true, day(2024, time.March, 8, 9))}

	got := Summarize(entries, IntervalMonthly, now, time.UTC)
	assert.Equal(t, 3, got.PossibleDays)
	assert.Equal(t, 33, got.TrackingRate())
	assert.Equal(t, 100, got.CompletionRate())
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, IntervalTotal, time.Now(), time.UTC)
	assert.Equal(t, Summary{Interval: IntervalTotal}, got)
	assert.Zero(t, got.TrackingRate())
	assert.Zero(t, got.CompletionRate())
}

func TestSummarizeGroupsDaysInLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)
	entries := []models.HabitEntry{
		entryAt(1, true, time.Date(2024, time.March, 5, 23, 30, 0, 0, time.UTC)),
		entryAt(2, false, time.Date(2024, time.March, 6, 1, 0, 0, 0, time.UTC)),
	}

	utc := Summarize(entries, IntervalMonthly, now, time.UTC)
	assert.Equal(t, 2, utc.PossibleDays)
	assert.Equal(t, 2, utc.TrackedDays)
	assert.Equal(t, 1, utc.CompletedDays)

	local := Summarize(entries, IntervalMonthly, now, ny)
	assert.Equal(t, 2, local.PossibleDays)
	assert.Equal(t, 1, local.TrackedDays)
	assert.Equal(t, 0, local.CompletedDays)
}
