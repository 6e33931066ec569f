package cli

import (
	"fmt"

	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/storage/sqlite"
)

// Setup loads the configuration, starts logging and opens the store. With
// openStore unset it only loads the configuration: commands that delete the
// data directory must not create the store or the log file inside it.
func Setup(opts config.Options, openStore bool) (*Context, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ctx := &Context{Config: cfg}
	if !openStore {
		return ctx, nil
	}

	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, Dir: cfg.Log.Dir}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("Loaded config", "env", cfg.Env, "db", cfg.DBPath, "calendar", cfg.Calendar.Enabled)

	store, err := sqlite.Open(sqlite.Config{
		Path:     cfg.DBPath,
		Calendar: cfg.Calendar.Enabled,
	})
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	ctx.Store = store
	return ctx, nil
}

// Close releases the store if one was opened, then the log file.
func (c *Context) Close() error {
	var err error
	if c.Store != nil {
		err = c.Store.Close()
	}
	if logErr := logger.Close(); err == nil {
		err = logErr
	}
	return err
}
