package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/models"
)

func TestHabitFromRow(t *testing.T) {
	got, err := habitFromRow(row{
		"id":        int64(4),
		"habitType": "appleCalendar",
		"eventIds":  `["a","b"]`,
		"title":     "Gym",
		"question":  []byte("Did you go?"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Habit{
		ID:        4,
		HabitType: models.HabitTypeAppleCalendar,
		EventIDs:  []string{"a", "b"},
		Title:     "Gym",
		Question:  "Did you go?",
	}, got)
}

func TestHabitFromRowErrors(t *testing.T) {
	valid := func() row {
		return row{
			"id":        int64(1),
			"habitType": "daily",
			"eventIds":  "[]",
			"title":     "Read",
			"question":  "Did you read?",
		}
	}

	tests := []struct {
		name   string
		mutate func(row)
		want   error
	}{
		{"missing column", func(r row) { delete(r, "title") }, apperrors.ErrMissingColumn},
		{"id not an integer", func(r row) { r["id"] = "1" }, apperrors.ErrTypeMismatch},
		{"title not text", func(r row) { r["title"] = int64(7) }, apperrors.ErrTypeMismatch},
		{"unknown habit type", func(r row) { r["habitType"] = "weekly" }, apperrors.ErrInvalidEnumValue},
		{"display name is not a tag", func(r row) { r["habitType"] = "Daily" }, apperrors.ErrInvalidEnumValue},
		{"malformed event ids", func(r row) { r["eventIds"] = "[1,2" }, apperrors.ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(r)
			_, err := habitFromRow(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHabitEntryFromRow(t *testing.T) {
	t.Run("integer boolean and text date", func(t *testing.T) {
		got, err := habitEntryFromRow(row{
			"id":        int64(2),
			"habitId":   int64(1),
			"completed": int64(1),
			"date":      "2024-03-10T02:30:15.5Z",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
		assert.True(t, got.Completed)
		assert.Equal(t, time.Date(2024, time.March, 10, 2, 30, 15, 500000000, time.UTC), got.Date)
	})

	t.Run("native boolean", func(t *testing.T) {
		got, err := habitEntryFromRow(row{
			"id":        int64(3),
			"habitId":   int64(1),
			"completed": false,
			"date":      time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.False(t, got.Completed)
	})

	t.Run("boolean out of range", func(t *testing.T) {
		_, err := habitEntryFromRow(row{
			"id":        int64(3),
			"habitId":   int64(1),
			"completed": int64(2),
			"date":      "2024-03-10T00:00:00Z",
		})
		assert.ErrorIs(t, err, apperrors.ErrTypeMismatch)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := habitEntryFromRow(row{
			"id":        int64(3),
			"habitId":   int64(1),
			"completed": int64(0),
		})
		assert.ErrorIs(t, err, apperrors.ErrMissingColumn)
	})
}

func TestCalendarEventFromRow(t *testing.T) {
	got, err := calendarEventFromRow(row{
		"id":         "evt-1",
		"name":       "Gym",
		"startDate":  float64(1736146800),
		"recurrence": "FREQ=WEEKLY",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CalendarEvent{
		ID:         "evt-1",
		Name:       "Gym",
		StartDate:  time.Date(2025, time.January, 6, 7, 0, 0, 0, time.UTC),
		Recurrence: "FREQ=WEEKLY",
	}, got)
}
