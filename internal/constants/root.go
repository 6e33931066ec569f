package constants

import "time"

const (
	AppName     = "habit-tracker"
	AppDataDir  = "HabitTracker"
	Version     = "v0.3.0"
	EnvPrefix   = "HABIT_TRACKER"
	EnvSelector = "APP_ENV"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MemoryDBPath selects an ephemeral in-memory database instead of a file
	MemoryDBPath = ":memory:"

	// Environment names
	EnvDev  = "dev"
	EnvProd = "prod"
	EnvTest = "test"

	// Storage defaults
	DefaultDBFileName  = "habits.db"
	DefaultBusyTimeout = 5 * time.Second

	// Logging
	LogDirName  = "logs"
	LogFileName = "habit-tracker.log"

	// Calendar sync
	FeatureCalendar        = "calendar"
	DefaultCalendarTimeout = 30 * time.Second

	// Config file
	ConfigFileName = "config"
	ConfigFileType = "yaml"
)
