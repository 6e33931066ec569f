package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/migration"
	"github.com/julianstephens/habit-tracker/internal/storage/sqlite"
	"github.com/julianstephens/habit-tracker/internal/validation"
	"github.com/julianstephens/habit-tracker/migrations"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// warnOnly failures do not fail the command
	warnOnly bool
}

var doctorChecks = []check{
	{name: "Schema version", run: checkSchemaVersion},
	{name: "Habit integrity", run: checkHabitsIntegrity},
	{name: "Orphaned entries", run: checkOrphanedEntries},
	{name: "Calendar links", run: checkCalendarLinks, warnOnly: true},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Printf("Running diagnostics...\n\n")

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		for _, c := range doctorChecks {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
		}
		return fmt.Errorf("diagnostics failed")
	}
	ctx.Printf("✓ Database reachable: OK\n")

	hasError := false
	for _, c := range doctorChecks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Printf("\n")
	if hasError {
		return fmt.Errorf("diagnostics failed")
	}
	ctx.Printf("All checks passed.\n")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if store, ok := ctx.Store.(*sqlite.Store); ok {
		if err := store.GetDB().Ping(); err != nil {
			return err
		}
	}
	_, err := ctx.Store.ListHabits()
	return err
}

func checkSchemaVersion(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(store.GetDB(), subFS)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema at version %d, expected %d", current, latest)
	}
	return nil
}

// checkHabitsIntegrity decodes every habit and re-validates it.
func checkHabitsIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}

	v := validation.New()
	invalid := 0
	var first string
	for _, h := range habits {
		result := v.ValidateHabit(h.HabitType, h.EventIDs, h.Title, h.Question)
		if result.HasConflicts() {
			if invalid == 0 {
				first = fmt.Sprintf("habit %d: %s", h.ID, result.FormatReport())
			}
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("found %d invalid habit(s), first: %s", invalid, first)
	}
	return nil
}

// checkOrphanedEntries finds entries written while foreign keys were off.
func checkOrphanedEntries(ctx *cli.Context) error {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}

	var orphaned int
	err := store.GetDB().QueryRow(`
		SELECT COUNT(*)
		FROM habitEntry he
		LEFT JOIN habit h ON he.habitId = h.id
		WHERE h.id IS NULL
	`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned habit entries: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d orphaned habit entries (referencing non-existent habits)", orphaned)
	}
	return nil
}

// checkCalendarLinks reports calendar habits that point at events missing
// from the cache, which usually means a sync is due.
func checkCalendarLinks(ctx *cli.Context) error {
	if !ctx.Store.CalendarEnabled() {
		return nil
	}

	events, err := ctx.Store.ListCalendarEvents()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(events))
	for _, ev := range events {
		known[ev.ID] = true
	}

	habits, err := ctx.Store.ListHabits()
	if err != nil {
		return err
	}
	missing := 0
	for _, h := range habits {
		for _, id := range h.EventIDs {
			if !known[id] {
				missing++
			}
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d linked event(s) are not in the calendar cache; run 'calendar sync'", missing)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := time.Parse(constants.DateFormat, now.Format(constants.DateFormat)); err != nil {
		return fmt.Errorf("local date does not round-trip: %w", err)
	}
	return nil
}
