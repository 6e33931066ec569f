package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/habit-tracker/internal/constants"
)

// Config keys. Nested keys map to HABIT_TRACKER_<SECTION>_<KEY> environment variables.
const (
	keyEnv             = "env"
	keyDataDir         = "data_dir"
	keyDBPath          = "db_path"
	keyEnvDBPath       = "env_db_path"
	keyCalendarEnabled = "calendar.enabled"
	keyCalendarCommand = "calendar.command"
	keyCalendarArgs    = "calendar.args"
	keyCalendarTimeout = "calendar.timeout"
	keyLogDebug        = "log.debug"
	keyLogDir          = "log.dir"
)

type (
	Config struct {
		// Env is the selected environment section (dev, prod, test).
		Env string `json:"env"`
		// DataDir holds the database, the config file and the logs by default.
		DataDir string `json:"data_dir"`
		// DBPath is a database file or constants.MemoryDBPath.
		DBPath   string   `json:"db_path"`
		Calendar Calendar `json:"calendar"`
		Log      Log      `json:"log"`
	}

	Calendar struct {
		Enabled bool `json:"enabled"`
		// Command is the one-shot export program that prints events as JSON.
		Command string        `json:"command"`
		Args    []string      `json:"args"`
		Timeout time.Duration `json:"timeout"`
	}

	Log struct {
		Debug bool   `json:"debug"`
		Dir   string `json:"dir"`
	}
)

// Options are explicit overrides, usually command line flags. They take
// precedence over every other source.
type Options struct {
	// ConfigDir is searched for config.yaml. Defaults to the data directory.
	ConfigDir string
	Env       string
	DBPath    string
	Debug     bool
}

// DefaultDataDir returns the per-user application directory.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(base, constants.AppDataDir), nil
}

// Load resolves the configuration from, lowest precedence first: defaults,
// config.yaml, HABIT_TRACKER_* environment variables and opts.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	dataDir, err := DefaultDataDir()
	if err != nil {
		return nil, err
	}

	v.SetDefault(keyEnv, constants.EnvDev)
	v.SetDefault(keyDataDir, dataDir)
	v.SetDefault(keyCalendarEnabled, runtime.GOOS == "darwin")
	v.SetDefault(keyCalendarCommand, "")
	v.SetDefault(keyCalendarArgs, []string{})
	v.SetDefault(keyCalendarTimeout, constants.DefaultCalendarTimeout)
	v.SetDefault(keyLogDebug, false)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// APP_ENV is unprefixed
	if err := v.BindEnv(keyEnv, constants.EnvSelector); err != nil {
		return nil, fmt.Errorf("bind %s: %w", constants.EnvSelector, err)
	}
	if err := v.BindEnv(keyEnvDBPath, constants.EnvPrefix+"_DB_PATH"); err != nil {
		return nil, fmt.Errorf("bind db path: %w", err)
	}

	configDir := opts.ConfigDir
	if configDir == "" {
		configDir = v.GetString(keyDataDir)
	}
	v.SetConfigName(constants.ConfigFileName)
	v.SetConfigType(constants.ConfigFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Env:     strings.ToLower(strings.TrimSpace(v.GetString(keyEnv))),
		DataDir: v.GetString(keyDataDir),
		Calendar: Calendar{
			Enabled: v.GetBool(keyCalendarEnabled),
			Command: v.GetString(keyCalendarCommand),
			Args:    v.GetStringSlice(keyCalendarArgs),
			Timeout: v.GetDuration(keyCalendarTimeout),
		},
		Log: Log{
			Debug: v.GetBool(keyLogDebug) || opts.Debug,
			Dir:   v.GetString(keyLogDir),
		},
	}
	if opts.Env != "" {
		cfg.Env = strings.ToLower(opts.Env)
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = filepath.Join(cfg.DataDir, constants.LogDirName)
	}
	cfg.DBPath = resolveDBPath(v, cfg, opts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDBPath picks the database location. The test environment is always
// in-memory; otherwise the first of the flag, HABIT_TRACKER_DB_PATH,
// <env>.db_path, db_path and the default file wins.
func resolveDBPath(v *viper.Viper, cfg *Config, opts Options) string {
	if cfg.Env == constants.EnvTest {
		return constants.MemoryDBPath
	}
	candidates := []string{
		opts.DBPath,
		v.GetString(keyEnvDBPath),
		v.GetString(cfg.Env + "." + keyDBPath),
		v.GetString(keyDBPath),
	}
	for _, p := range candidates {
		if p = strings.TrimSpace(p); p != "" {
			return expandHome(p)
		}
	}
	return filepath.Join(cfg.DataDir, constants.DefaultDBFileName)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	switch c.Env {
	case constants.EnvDev, constants.EnvProd, constants.EnvTest:
	default:
		return fmt.Errorf("unknown environment %q (expected %s, %s or %s)", c.Env, constants.EnvDev, constants.EnvProd, constants.EnvTest)
	}
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	if c.Calendar.Timeout <= 0 {
		return fmt.Errorf("calendar.timeout must be positive, got %v", c.Calendar.Timeout)
	}
	return nil
}

// InMemory reports whether the database lives only as long as its connection.
func (c *Config) InMemory() bool {
	return c.DBPath == constants.MemoryDBPath
}
