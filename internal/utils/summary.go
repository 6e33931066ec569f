package utils

import (
	"time"

	"github.com/julianstephens/habit-tracker/internal/models"
)

type Interval string

const (
	IntervalMonthly Interval = "Monthly"
	IntervalYearly  Interval = "Yearly"
	IntervalTotal   Interval = "Total"
)

// Summary describes how consistently one habit was tracked over an interval.
type Summary struct {
	Interval Interval
	// PossibleDays is the number of days in the interval.
	PossibleDays int
	// TrackedDays counts days with at least one entry.
	TrackedDays int
	// CompletedDays counts days whose latest entry is completed.
	CompletedDays int
}

// TrackingRate is the rounded percentage of possible days that were tracked.
func (s Summary) TrackingRate() int {
	return percent(s.TrackedDays, s.PossibleDays)
}

// CompletionRate is the rounded percentage of tracked days that were completed.
func (s Summary) CompletionRate() int {
	return percent(s.CompletedDays, s.TrackedDays)
}

func percent(n, d int) int {
	if d == 0 {
		return 0
	}
	return (n*100 + d/2) / d
}

// Summarize computes the summary of entries for the interval ending on now.
// Monthly and yearly intervals start at the later of the period start and the
// first tracked day; the total interval starts at the first tracked day.
// Entries outside the interval are ignored, and several entries on the same
// day count once, the latest by id deciding completion.
func Summarize(entries []models.HabitEntry, interval Interval, now time.Time, loc *time.Location) Summary {
	s := Summary{Interval: interval}
	if len(entries) == 0 {
		return s
	}

	first := entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.Before(first) {
			first = e.Date
		}
	}
	start := StartOfDay(first, loc)
	switch interval {
	case IntervalMonthly:
		if m := FirstOfMonth(now, loc); m.After(start) {
			start = m
		}
	case IntervalYearly:
		if y := FirstOfYear(now, loc); y.After(start) {
			start = y
		}
	}

	days := DaysBetween(start, now, loc)
	s.PossibleDays = len(days)

	type dayState struct {
		id        int64
		completed bool
	}
	byDay := make(map[string]dayState)
	for _, e := range entries {
		day := StartOfDay(e.Date, loc)
		if day.Before(start) || day.After(StartOfDay(now, loc)) {
			continue
		}
		key := DayKey(e.Date, loc)
		if prev, ok := byDay[key]; ok && prev.id > e.ID {
			continue
		}
		byDay[key] = dayState{id: e.ID, completed: e.Completed}
	}

	s.TrackedDays = len(byDay)
	for _, st := range byDay {
		if st.completed {
			s.CompletedDays++
		}
	}
	return s
}
