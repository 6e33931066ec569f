package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// RenderHabits renders habits as a table, one row per habit.
func RenderHabits(habits []models.Habit) string {
	t := newTable("ID", "Type", "Title", "Question", "Events")
	for _, h := range habits {
		t.Row(
			fmt.Sprint(h.ID),
			h.HabitType.String(),
			h.Title,
			h.Question,
			strings.Join(h.EventIDs, ", "),
		)
	}
	return t.Render()
}

// RenderEntries renders entries with the title of their habit when known.
func RenderEntries(entries []models.HabitEntry, titles map[int64]string) string {
	t := newTable("ID", "Habit", "Completed", "Date")
	for _, e := range entries {
		habit := fmt.Sprint(e.HabitID)
		if title, ok := titles[e.HabitID]; ok {
			habit = fmt.Sprintf("%s (%d)", title, e.HabitID)
		}
		done := "no"
		if e.Completed {
			done = "yes"
		}
		t.Row(fmt.Sprint(e.ID), habit, done, e.Date.Local().Format(constants.DateFormat+" 15:04"))
	}
	return t.Render()
}

func RenderCalendarEvents(events []models.CalendarEvent) string {
	t := newTable("ID", "Name", "Start", "Recurrence")
	for _, ev := range events {
		t.Row(ev.ID, ev.Name, ev.StartDate.Local().Format(constants.DateFormat+" 15:04"), ev.Recurrence)
	}
	return t.Render()
}

// RenderSummaries renders one row per habit; habits and summaries are parallel.
func RenderSummaries(habits []models.Habit, summaries []utils.Summary) string {
	t := newTable("Habit", "Interval", "Tracked", "Tracking", "Victories", "Setbacks", "Completion")
	for i, h := range habits {
		s := summaries[i]
		t.Row(
			fmt.Sprintf("%s (%d)", h.Title, h.ID),
			string(s.Interval),
			fmt.Sprintf("%d/%d", s.TrackedDays, s.PossibleDays),
			fmt.Sprintf("%d%%", s.TrackingRate()),
			fmt.Sprint(s.CompletedDays),
			fmt.Sprint(s.TrackedDays-s.CompletedDays),
			fmt.Sprintf("%d%%", s.CompletionRate()),
		)
	}
	return t.Render()
}
