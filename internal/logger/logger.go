// Package logger writes the application log to a rotating file under the data
// directory. The helpers are no-ops until Init runs, so packages can log
// without caring whether the CLI set logging up.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habit-tracker/internal/constants"
)

var (
	std  *log.Logger
	file *lumberjack.Logger
)

type Config struct {
	// Debug lowers the level to debug and mirrors output to stderr.
	Debug bool
	// Dir is the directory the rotating log file is written to
	Dir string
}

// Init replaces the package logger, closing any file opened by an earlier call.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return err
	}
	_ = Close()

	file = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, constants.LogFileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}

	var w io.Writer = file
	level := log.InfoLevel
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, file)
		level = log.DebugLevel
	}

	std = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Close flushes and releases the log file. Later calls log nothing.
func Close() error {
	std = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, keyvals ...any) {
	if std != nil {
		std.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if std != nil {
		std.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if std != nil {
		std.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if std != nil {
		std.Error(msg, keyvals...)
	}
}
