package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/cli/backups"
	"github.com/julianstephens/habit-tracker/internal/cli/system"
	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/constants"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
)

var CLI struct {
	Version   kong.VersionFlag
	DB        string `help:"Database file path (overrides config and environment)." name:"db" type:"path"`
	Env       string `help:"Environment section to use (dev, prod, test). Defaults to APP_ENV or dev."`
	ConfigDir string `help:"Directory containing config.yaml." type:"path"`
	Verbose   bool   `help:"Enable debug logging to stderr." short:"v"`

	Init     system.InitCmd    `cmd:"" help:"Initialize habit tracker storage and config."`
	Habit    cli.HabitCmd      `cmd:"" help:"Manage habits."`
	Entry    cli.EntryCmd      `cmd:"" help:"Track and list habit entries."`
	Calendar cli.CalendarCmd   `cmd:"" help:"Sync and list calendar events."`
	Backup   backups.BackupCmd `cmd:"" help:"Create and list database backups."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Debug    system.DebugCmd   `cmd:"" help:"Debug commands for troubleshooting."`
	Cleanup  system.CleanupCmd `cmd:"" help:"Permanently delete all habit tracker data."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track daily and calendar-backed habits"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	// cleanup removes the directory the store lives in, so it runs without one
	openStore := kctx.Selected() == nil || kctx.Selected().Name != "cleanup"

	appCtx, err := cli.Setup(config.Options{
		ConfigDir: CLI.ConfigDir,
		Env:       CLI.Env,
		DBPath:    CLI.DB,
		Debug:     CLI.Verbose,
	}, openStore)
	if err != nil {
		apperrors.Fatal(err)
	}

	err = kctx.Run(appCtx)
	if closeErr := appCtx.Close(); err == nil {
		err = closeErr
	}
	apperrors.Fatal(err)
}
