package cli

import (
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/models"
)

type HabitCmd struct {
	Add  HabitAddCmd  `cmd:"" help:"Add a new habit."`
	Edit HabitEditCmd `cmd:"" help:"Replace every field of an existing habit."`
	List HabitListCmd `cmd:"" help:"List habits."`
}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Question string `arg:"" help:"Question asked when tracking the habit."`
	Type     string `help:"Habit type (daily, calendar)." default:"daily" short:"t"`
	Events   string `help:"Comma-separated calendar event IDs (calendar habits only)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habitType, err := models.ParseHabitType(c.Type)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.CreateHabit(models.CreateHabitRequest{
		HabitType: habitType,
		EventIDs:  SplitEventIDs(c.Events),
		Title:     c.Title,
		Question:  c.Question,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added habit %d: %s\n", habit.ID, habit.Title)
	return nil
}

type HabitEditCmd struct {
	ID       int64   `arg:"" help:"Habit ID."`
	Title    string  `help:"New title (default: keep)."`
	Question string  `help:"New question (default: keep)."`
	Type     string  `help:"New habit type (daily, calendar)." short:"t"`
	Events   *string `help:"Comma-separated calendar event IDs; an empty value clears them."`
}

// Run fills unset flags from the current record, then replaces the whole row.
func (c *HabitEditCmd) Run(ctx *Context) error {
	current, err := findHabit(ctx, c.ID)
	if err != nil {
		return err
	}

	req := models.UpdateHabitRequest{
		ID:        current.ID,
		HabitType: current.HabitType,
		EventIDs:  current.EventIDs,
		Title:     current.Title,
		Question:  current.Question,
	}
	if c.Type != "" {
		if req.HabitType, err = models.ParseHabitType(c.Type); err != nil {
			return err
		}
		if req.HabitType == models.HabitTypeDaily {
			req.EventIDs = []string{}
		}
	}
	if c.Events != nil {
		req.EventIDs = SplitEventIDs(*c.Events)
	}
	if c.Title != "" {
		req.Title = c.Title
	}
	if c.Question != "" {
		req.Question = c.Question
	}

	habit, err := ctx.Store.UpdateHabit(req)
	if err != nil {
		return err
	}

	ctx.Printf("Updated habit %d: %s\n", habit.ID, habit.Title)
	return nil
}

type HabitListCmd struct {
	Type string `help:"Only show habits of this type (daily, calendar)." short:"t"`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}

	if c.Type != "" {
		habitType, err := models.ParseHabitType(c.Type)
		if err != nil {
			return err
		}
		filtered := habits[:0]
		for _, h := range habits {
			if h.HabitType == habitType {
				filtered = append(filtered, h)
			}
		}
		habits = filtered
	}

	if len(habits) == 0 {
		ctx.Printf("No habits found.\n")
		return nil
	}

	ctx.Printf("%s\n", RenderHabits(habits))
	return nil
}

// findHabit looks a habit up by id through the list operation, the only read
// the store exposes.
func findHabit(ctx *Context, id int64) (models.Habit, error) {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %d not found", id)
}
