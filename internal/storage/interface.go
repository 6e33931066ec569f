package storage

import "github.com/julianstephens/habit-tracker/internal/models"

// Provider is the single entry point callers use to read and write habit data.
// Implementations own their database handle exclusively.
type Provider interface {
	// Lifecycle
	Close() error
	Path() string

	// Habits
	CreateHabit(models.CreateHabitRequest) (models.Habit, error)
	UpdateHabit(models.UpdateHabitRequest) (models.Habit, error)
	ListHabits() ([]models.Habit, error)

	// Habit Entries
	ListHabitEntries() ([]models.HabitEntry, error)
	InsertHabitEntries([]models.InsertHabitEntryItem) ([]models.HabitEntry, error)

	// Calendar Events (only when the calendar feature is enabled)
	CalendarEnabled() bool
	ListCalendarEvents() ([]models.CalendarEvent, error)
	ReplaceCalendarEvents([]models.CalendarEvent) ([]models.CalendarEvent, error)
}
