package sqlite

import (
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/codec"
	"github.com/julianstephens/habit-tracker/internal/models"
)

const calendarEventColumns = "id, name, startDate, recurrence"

// CalendarEventRepository caches exported calendar events. The cache is only
// ever replaced as a whole.
type CalendarEventRepository struct{}

// List returns events in the order they were inserted.
func (CalendarEventRepository) List(q DBTX) ([]models.CalendarEvent, error) {
	return queryAll(q, calendarEventFromRow,
		"SELECT "+calendarEventColumns+" FROM appleCalendarEvent ORDER BY rowid")
}

// ReplaceAll deletes every cached event and inserts events. q must be a
// transaction for readers never to observe a partial set.
func (r CalendarEventRepository) ReplaceAll(q DBTX, events []models.CalendarEvent) ([]models.CalendarEvent, error) {
	if _, err := q.Exec("DELETE FROM appleCalendarEvent"); err != nil {
		return nil, err
	}

	for i, ev := range events {
		_, err := q.Exec(`
			INSERT INTO appleCalendarEvent (id, name, startDate, recurrence)
			VALUES (?, ?, ?, ?)`, ev.ID, ev.Name, codec.TimeToSQL(ev.StartDate), ev.Recurrence)
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, ev.ID, err)
		}
	}

	return r.List(q)
}
