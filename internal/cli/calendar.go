package cli

import (
	"context"

	"github.com/julianstephens/habit-tracker/internal/calendar"
)

type CalendarCmd struct {
	Sync CalendarSyncCmd `cmd:"" help:"Replace cached calendar events with a fresh export."`
	List CalendarListCmd `cmd:"" help:"List cached calendar events."`
}

type CalendarSyncCmd struct{}

func (c *CalendarSyncCmd) Run(ctx *Context) error {
	return SyncCalendar(context.Background(), ctx)
}

// SyncCalendar runs the configured export command once and stores its events.
func SyncCalendar(goCtx context.Context, ctx *Context) error {
	source := &calendar.CommandSource{
		Command: ctx.Config.Calendar.Command,
		Args:    ctx.Config.Calendar.Args,
		Timeout: ctx.Config.Calendar.Timeout,
	}

	events, err := calendar.NewSyncer(source, ctx.Store).Sync(goCtx)
	if err != nil {
		return err
	}

	ctx.Printf("Calendar sync completed successfully (%d events)\n", len(events))
	return nil
}

type CalendarListCmd struct{}

func (c *CalendarListCmd) Run(ctx *Context) error {
	events, err := ctx.Store.ListCalendarEvents()
	if err != nil {
		return err
	}

	if len(events) == 0 {
		ctx.Printf("No calendar events cached. Run 'calendar sync' first.\n")
		return nil
	}

	ctx.Printf("%s\n", RenderCalendarEvents(events))
	return nil
}
