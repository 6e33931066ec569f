package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habit-tracker/internal/cli"
	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/constants"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
)

var CLI struct {
	Version   kong.VersionFlag
	DB        string `help:"Database file path (overrides config and environment)." name:"db" type:"path"`
	ConfigDir string `help:"Directory containing config.yaml." type:"path"`
	Verbose   bool   `help:"Enable debug logging to stderr." short:"v"`
}

// habit-sync runs one calendar sync and exits. It is meant to be started by
// launchd or cron.
func main() {
	kong.Parse(&CLI,
		kong.Name("habit-sync"),
		kong.Description("Replace cached calendar events with a fresh export"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	appCtx, err := cli.Setup(config.Options{
		ConfigDir: CLI.ConfigDir,
		DBPath:    CLI.DB,
		Debug:     CLI.Verbose,
	}, true)
	if err != nil {
		apperrors.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = cli.SyncCalendar(ctx, appCtx)
	stop()

	if closeErr := appCtx.Close(); err == nil {
		err = closeErr
	}
	apperrors.Fatal(err)
}
