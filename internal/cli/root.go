package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/config"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// ParseDate parses a YYYY-MM-DD day in the local time zone, or an RFC 3339
// timestamp. An empty string yields nil so the store records the current time.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat, s, time.Local); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or RFC 3339)", s)
}

// SplitEventIDs parses a comma-separated list of event ids, dropping blanks.
func SplitEventIDs(s string) []string {
	ids := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
