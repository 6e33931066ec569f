package models

import (
	"fmt"
	"strings"
	"time"
)

// HabitType decides whether entries for a habit are recorded by hand or derived
// from calendar events. The zero value is not a valid habit type.
type HabitType int

const (
	HabitTypeDaily HabitType = iota + 1
	HabitTypeAppleCalendar
)

// HabitTypes lists every valid habit type in declaration order.
var HabitTypes = []HabitType{HabitTypeDaily, HabitTypeAppleCalendar}

func (t HabitType) String() string {
	switch t {
	case HabitTypeDaily:
		return "Daily"
	case HabitTypeAppleCalendar:
		return "AppleCalendar"
	default:
		return fmt.Sprintf("HabitType(%d)", int(t))
	}
}

// Valid reports whether t is one of the declared habit types.
func (t HabitType) Valid() bool {
	return t == HabitTypeDaily || t == HabitTypeAppleCalendar
}

// ParseHabitType accepts the display name or the short form used on the command line.
func ParseHabitType(s string) (HabitType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return HabitTypeDaily, nil
	case "applecalendar", "apple-calendar", "calendar":
		return HabitTypeAppleCalendar, nil
	default:
		return 0, fmt.Errorf("invalid habit type: %q", s)
	}
}

func (t HabitType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid habit type: %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *HabitType) UnmarshalText(text []byte) error {
	parsed, err := ParseHabitType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type Habit struct {
	ID        int64     `json:"id"`
	HabitType HabitType `json:"habit_type"`
	EventIDs  []string  `json:"event_ids"`
	Title     string    `json:"title"`
	Question  string    `json:"question"`
}

type HabitEntry struct {
	ID        int64     `json:"id"`
	HabitID   int64     `json:"habit_id"`
	Completed bool      `json:"completed"`
	Date      time.Time `json:"date"`
}

type CreateHabitRequest struct {
	HabitType HabitType `json:"habit_type"`
	EventIDs  []string  `json:"event_ids"`
	Title     string    `json:"title"`
	Question  string    `json:"question"`
}

// UpdateHabitRequest replaces every mutable field of the habit with the given ID.
type UpdateHabitRequest struct {
	ID        int64     `json:"id"`
	HabitType HabitType `json:"habit_type"`
	EventIDs  []string  `json:"event_ids"`
	Title     string    `json:"title"`
	Question  string    `json:"question"`
}

// InsertHabitEntryItem is one row of an entry batch. Date is optional; the
// store records the insertion time when it is nil.
type InsertHabitEntryItem struct {
	HabitID   int64      `json:"habit_id"`
	Completed bool       `json:"completed"`
	Date      *time.Time `json:"date,omitempty"`
}
