package models

import "time"

// CalendarEvent is a cached occurrence exported from the platform calendar.
// The whole set is replaced on every sync.
type CalendarEvent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartDate  time.Time `json:"start_date"`
	Recurrence string    `json:"recurrence"`
}
