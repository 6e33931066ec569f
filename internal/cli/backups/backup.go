package backups

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/habit-tracker/internal/backup"
	"github.com/julianstephens/habit-tracker/internal/cli"
)

type BackupCmd struct {
	Create BackupCreateCmd `cmd:"" help:"Create a backup of the habit database."`
	List   BackupListCmd   `cmd:"" help:"List available backups."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	src, ok := ctx.Store.(backup.Snapshotter)
	if !ok {
		return fmt.Errorf("the configured store does not support backups")
	}

	mgr := backup.NewManager(ctx.Config.DataDir)
	path, err := mgr.Create(src)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Config.DataDir)
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Printf("No backups found.\n")
		ctx.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			float64(b.Size)/1024.0,
		)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}
