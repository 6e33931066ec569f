package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/models"
)

type DebugCmd struct {
	DBPath      *DebugDBPathCmd      `cmd:"" help:"Show database path."`
	DumpHabit   *DebugDumpHabitCmd   `cmd:"" help:"Dump habit data as JSON."`
	DumpEntries *DebugDumpEntriesCmd `cmd:"" help:"Dump habit entries as JSON."`
	DumpEvents  *DebugDumpEventsCmd  `cmd:"" help:"Dump cached calendar events as JSON."`
	DumpConfig  *DebugDumpConfigCmd  `cmd:"" help:"Dump the resolved configuration as JSON."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Printf("%s\n", jsonBytes)
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path": ctx.Store.Path(),
	})
}

type DebugDumpHabitCmd struct {
	ID int64 `arg:"" optional:"" help:"ID of the habit to dump (default: all)."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	if cmd.ID == 0 {
		return printJSON(ctx, habits)
	}

	for _, h := range habits {
		if h.ID == cmd.ID {
			return printJSON(ctx, h)
		}
	}
	return fmt.Errorf("habit not found: %d", cmd.ID)
}

type DebugDumpEntriesCmd struct {
	Habit int64 `help:"Only dump entries of this habit ID."`
}

func (cmd *DebugDumpEntriesCmd) Run(ctx *cli.Context) error {
	entries, err := ctx.Store.ListHabitEntries()
	if err != nil {
		return fmt.Errorf("failed to list habit entries: %w", err)
	}
	if cmd.Habit == 0 {
		return printJSON(ctx, entries)
	}

	filtered := []models.HabitEntry{}
	for _, e := range entries {
		if e.HabitID == cmd.Habit {
			filtered = append(filtered, e)
		}
	}
	return printJSON(ctx, filtered)
}

type DebugDumpEventsCmd struct{}

func (cmd *DebugDumpEventsCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Store.ListCalendarEvents()
	if err != nil {
		return fmt.Errorf("failed to list calendar events: %w", err)
	}
	return printJSON(ctx, events)
}

type DebugDumpConfigCmd struct{}

func (cmd *DebugDumpConfigCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, ctx.Config)
}
