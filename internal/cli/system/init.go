package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/constants"
)

// defaultConfigYAML is written to config.yaml on init when no file exists.
const defaultConfigYAML = `# Habit Tracker configuration
# Environment variables prefixed with HABIT_TRACKER_ override these values.

# Database location per environment (selected with APP_ENV, default dev).
# The test environment always uses an in-memory database.
# dev:
#   db_path: ~/HabitTracker/habits-dev.db
# prod:
#   db_path: ~/HabitTracker/habits.db

calendar:
  # enabled: true
  # Program that prints calendar events as a JSON array on stdout.
  command: ""
  args: []
  timeout: 30s

log:
  debug: false
`

type InitCmd struct {
	Force bool `help:"Overwrite an existing config file with the defaults."`
}

// Run writes the default config file. The store is opened, and its tables
// created, before any command runs.
func (c *InitCmd) Run(ctx *cli.Context) error {
	dir := ctx.Config.DataDir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dir, constants.ConfigFileName+"."+constants.ConfigFileType)
	written, err := writeDefaultConfig(path, c.Force)
	if err != nil {
		return err
	}
	if written {
		ctx.Printf("Wrote default config to: %s\n", path)
	} else {
		ctx.Printf("Config already exists at: %s (use --force to reset)\n", path)
	}

	ctx.Printf("Initialized habit store at: %s\n", ctx.Store.Path())
	if ctx.Store.CalendarEnabled() {
		ctx.Printf("Calendar sync: enabled\n")
	} else {
		ctx.Printf("Calendar sync: disabled\n")
	}
	return nil
}

func writeDefaultConfig(path string, force bool) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		return false, nil
	case err != nil && !os.IsNotExist(err):
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return false, fmt.Errorf("write config file: %w", err)
	}
	return true, nil
}
