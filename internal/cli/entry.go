package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/utils"
)

type EntryCmd struct {
	Track   EntryTrackCmd   `cmd:"" help:"Record completion for one or more habits."`
	List    EntryListCmd    `cmd:"" help:"List habit entries."`
	Summary EntrySummaryCmd `cmd:"" help:"Show tracking and completion rates per habit."`
}

type EntryTrackCmd struct {
	Habits []string `arg:"" help:"Habit IDs, optionally suffixed with :done or :missed (default done)."`
	Date   string   `help:"Date in YYYY-MM-DD format (default: now)."`
}

// Run records every listed habit in one batch; either all entries are saved
// or none are.
func (c *EntryTrackCmd) Run(ctx *Context) error {
	date, err := ParseDate(c.Date)
	if err != nil {
		return err
	}

	items := make([]models.InsertHabitEntryItem, 0, len(c.Habits))
	for _, arg := range c.Habits {
		item, err := parseTrackArg(arg)
		if err != nil {
			return err
		}
		item.Date = date
		items = append(items, item)
	}

	entries, err := ctx.Store.InsertHabitEntries(items)
	if err != nil {
		return err
	}

	for _, e := range entries {
		status := "done"
		if !e.Completed {
			status = "missed"
		}
		ctx.Printf("Tracked habit %d as %s (entry %d)\n", e.HabitID, status, e.ID)
	}
	return nil
}

func parseTrackArg(arg string) (models.InsertHabitEntryItem, error) {
	idPart, status, hasStatus := strings.Cut(arg, ":")

	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		return models.InsertHabitEntryItem{}, fmt.Errorf("invalid habit id %q", idPart)
	}

	item := models.InsertHabitEntryItem{HabitID: id, Completed: true}
	if hasStatus {
		switch strings.ToLower(strings.TrimSpace(status)) {
		case "done", "yes", "y", "1":
		case "missed", "no", "n", "0":
			item.Completed = false
		default:
			return models.InsertHabitEntryItem{}, fmt.Errorf("invalid status %q for habit %d (expected done or missed)", status, id)
		}
	}
	return item, nil
}

type EntryListCmd struct {
	Habit int64 `help:"Only show entries for this habit ID."`
}

func (c *EntryListCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.ListHabitEntries()
	if err != nil {
		return err
	}
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}

	titles := make(map[int64]string, len(habits))
	for _, h := range habits {
		titles[h.ID] = h.Title
	}

	if c.Habit > 0 {
		filtered := entries[:0]
		for _, e := range entries {
			if e.HabitID == c.Habit {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		ctx.Printf("No entries found.\n")
		return nil
	}

	ctx.Printf("%s\n", RenderEntries(entries, titles))
	return nil
}

type EntrySummaryCmd struct {
	Habit    int64  `help:"Only summarize this habit ID."`
	Interval string `help:"Summary interval: monthly, yearly, or total." enum:"monthly,yearly,total" default:"monthly"`
	Timezone string `help:"IANA timezone used to group entries by day." default:"Local"`

	now func() time.Time
}

func (c *EntrySummaryCmd) Run(ctx *Context) error {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return err
	}
	interval, err := parseInterval(c.Interval)
	if err != nil {
		return err
	}
	now := time.Now()
	if c.now != nil {
		now = c.now()
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.ListHabitEntries()
	if err != nil {
		return err
	}

	byHabit := make(map[int64][]models.HabitEntry, len(habits))
	for _, e := range entries {
		byHabit[e.HabitID] = append(byHabit[e.HabitID], e)
	}

	var (
		shown     []models.Habit
		summaries []utils.Summary
	)
	for _, h := range habits {
		if c.Habit > 0 && h.ID != c.Habit {
			continue
		}
		shown = append(shown, h)
		summaries = append(summaries, utils.Summarize(byHabit[h.ID], interval, now, loc))
	}

	if len(shown) == 0 {
		if c.Habit > 0 {
			return fmt.Errorf("habit %d not found", c.Habit)
		}
		ctx.Printf("No habits found.\n")
		return nil
	}

	ctx.Printf("%s\n", RenderSummaries(shown, summaries))
	return nil
}

func parseInterval(s string) (utils.Interval, error) {
	switch strings.ToLower(s) {
	case "", "monthly":
		return utils.IntervalMonthly, nil
	case "yearly":
		return utils.IntervalYearly, nil
	case "total":
		return utils.IntervalTotal, nil
	default:
		return "", fmt.Errorf("invalid interval %q", s)
	}
}
