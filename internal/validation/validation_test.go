package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/habit-tracker/internal/models"
)

func TestValidateHabit(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		habitType models.HabitType
		eventIDs  []string
		title     string
		question  string
		want      []ConflictType
	}{
		{
			name:      "valid daily habit",
			habitType: models.HabitTypeDaily,
			title:     "Drink water",
			question:  "Did you drink water?",
		},
		{
			name:      "valid calendar habit with events",
			habitType: models.HabitTypeAppleCalendar,
			eventIDs:  []string{"event-1", "event-2"},
			title:     "Gym",
			question:  "Did you go to the gym?",
		},
		{
			name:      "calendar habit without events",
			habitType: models.HabitTypeAppleCalendar,
			eventIDs:  []string{},
			title:     "Gym",
			question:  "Did you go?",
		},
		{
			name:      "daily habit with events",
			habitType: models.HabitTypeDaily,
			eventIDs:  []string{"event-1"},
			title:     "Read",
			question:  "Did you read?",
			want:      []ConflictType{ConflictUnexpectedEventIDs},
		},
		{
			name:      "blank fields",
			habitType: models.HabitTypeDaily,
			title:     "   ",
			question:  "",
			want:      []ConflictType{ConflictMissingTitle, ConflictMissingQuestion},
		},
		{
			name:      "zero habit type",
			habitType: models.HabitType(0),
			title:     "Read",
			question:  "Did you read?",
			want:      []ConflictType{ConflictInvalidHabitType},
		},
		{
			name:      "blank event id",
			habitType: models.HabitTypeAppleCalendar,
			eventIDs:  []string{"ok", " "},
			title:     "Read",
			question:  "Did you read?",
			want:      []ConflictType{ConflictBlankEventID},
		},
		{
			name:      "event id with invalid utf-8",
			habitType: models.HabitTypeAppleCalendar,
			eventIDs:  []string{"evt-1", "evt-\xff"},
			title:     "Gym",
			question:  "Did you go?",
			want:      []ConflictType{ConflictInvalidEventID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateHabit(tt.habitType, tt.eventIDs, tt.title, tt.question)

			var got []ConflictType
			for _, c := range result.Conflicts {
				got = append(got, c.Type)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) > 0, result.HasConflicts())
		})
	}
}

func TestValidateUpdateRequiresPositiveID(t *testing.T) {
	result := New().ValidateUpdate(models.UpdateHabitRequest{
		ID:        0,
		HabitType: models.HabitTypeDaily,
		Title:     "Read",
		Question:  "Did you read?",
	})

	assert.True(t, result.Has(ConflictInvalidHabitID))
}

func TestValidateEntries(t *testing.T) {
	v := New()

	empty := v.ValidateEntries(nil)
	assert.True(t, empty.Has(ConflictEmptyBatch))

	ok := v.ValidateEntries([]models.InsertHabitEntryItem{{HabitID: 1, Completed: true}})
	assert.False(t, ok.HasConflicts())

	bad := v.ValidateEntries([]models.InsertHabitEntryItem{
		{HabitID: 1, Completed: true},
		{HabitID: -4},
	})
	if assert.Len(t, bad.Conflicts, 1) {
		assert.Equal(t, ConflictInvalidHabitID, bad.Conflicts[0].Type)
		assert.Equal(t, 1, bad.Conflicts[0].Index)
	}
}

func TestValidateCalendarEvents(t *testing.T) {
	v := New()

	none := v.ValidateCalendarEvents(nil)
	assert.False(t, none.HasConflicts())

	result := v.ValidateCalendarEvents([]models.CalendarEvent{
		{ID: "a"},
		{ID: ""},
		{ID: "a"},
	})
	assert.True(t, result.Has(ConflictMissingEventID))
	assert.True(t, result.Has(ConflictDuplicateEventID))
}

func TestFormatReport(t *testing.T) {
	var empty ValidationResult
	assert.Equal(t, "No conflicts detected.", empty.FormatReport())

	result := New().ValidateHabit(models.HabitTypeDaily, nil, "", "")
	assert.Equal(t, "title must not be empty; question must not be empty", result.FormatReport())
}

func TestValidateDatesOutOfRange(t *testing.T) {
	v := New()

	farFuture := time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC)
	beforeYearZero := time.Date(-1, time.December, 31, 0, 0, 0, 0, time.UTC)
	ok := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

	entries := v.ValidateEntries([]models.InsertHabitEntryItem{
		{HabitID: 1, Date: &ok},
		{HabitID: 1, Date: &farFuture},
		{HabitID: 1, Date: &beforeYearZero},
	})
	if assert.Len(t, entries.Conflicts, 2) {
		assert.Equal(t, ConflictDateOutOfRange, entries.Conflicts[0].Type)
		assert.Equal(t, 1, entries.Conflicts[0].Index)
		assert.Equal(t, 2, entries.Conflicts[1].Index)
	}

	events := v.ValidateCalendarEvents([]models.CalendarEvent{
		{ID: "a", StartDate: ok},
		{ID: "b", StartDate: farFuture},
	})
	if assert.Len(t, events.Conflicts, 1) {
		assert.Equal(t, ConflictDateOutOfRange, events.Conflicts[0].Type)
		assert.Equal(t, 1, events.Conflicts[0].Index)
	}
}
