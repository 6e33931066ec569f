package system

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/logger"
)

// confirm asks a yes/no question. Tests replace it.
var confirm = func(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()
	return ok, err
}

type CleanupCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

// Run permanently removes the data directory: database, config and logs.
func (c *CleanupCmd) Run(ctx *cli.Context) error {
	dir := ctx.Config.DataDir
	ctx.Printf("Data directory: %s\n", dir)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		ctx.Printf("Data directory doesn't exist - nothing to clean up!\n")
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access data directory: %w", err)
	}

	if !c.Yes {
		ok, err := confirm(
			"Delete all habit tracker data?",
			"This removes every habit, entry, cached calendar event, the config file and the logs. It cannot be undone.",
		)
		if err != nil {
			return fmt.Errorf("confirmation prompt failed: %w", err)
		}
		if !ok {
			ctx.Printf("Cleanup cancelled\n")
			return nil
		}
	}

	if ctx.Store != nil {
		if err := ctx.Store.Close(); err != nil {
			logger.Warn("Failed to close store before cleanup", "error", err)
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove data directory (you may need to remove it manually: %s): %w", dir, err)
	}

	ctx.Printf("Removed: %s\n", dir)
	return nil
}
