package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habit-tracker/internal/codec"
	"github.com/julianstephens/habit-tracker/internal/constants"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// ErrNoCommand is returned when no export command is configured.
var ErrNoCommand = errors.New("calendar export command is not configured")

// eventNamespace scopes the ids generated for events exported without one.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/julianstephens/habit-tracker/calendar-event"))

// Source supplies the current set of calendar events.
type Source interface {
	Events(ctx context.Context) ([]models.CalendarEvent, error)
}

// CommandSource runs an export program once per call and decodes the JSON
// array it prints on stdout.
type CommandSource struct {
	Command string
	Args    []string
	// Env is appended to the current process environment.
	Env     []string
	Timeout time.Duration
}

type exportedEvent struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	StartDate  json.RawMessage `json:"start_date"`
	Recurrence string          `json:"recurrence"`
}

func (s *CommandSource) Events(ctx context.Context) ([]models.CalendarEvent, error) {
	if strings.TrimSpace(s.Command) == "" {
		return nil, ErrNoCommand
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultCalendarTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.Command, s.Args...)
	cmd.Env = append(os.Environ(), s.Env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running calendar export", "command", s.Command, "args", s.Args)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("calendar export timed out after %v: %w", timeout, ctx.Err())
		}
		return nil, fmt.Errorf("calendar export failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return Decode(stdout.Bytes())
}

// Decode parses an export document. start_date is unix seconds or a timestamp
// string; events without an id get one derived from their name and start.
func Decode(data []byte) ([]models.CalendarEvent, error) {
	var raw []exportedEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode calendar export: %w", err)
	}

	events := make([]models.CalendarEvent, 0, len(raw))
	for i, r := range raw {
		start, err := decodeStart(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("event %d (%s): %w", i, r.Name, err)
		}

		ev := models.CalendarEvent{
			ID:         strings.TrimSpace(r.ID),
			Name:       r.Name,
			StartDate:  start,
			Recurrence: r.Recurrence,
		}
		if ev.ID == "" {
			ev.ID = EventID(ev.Name, ev.StartDate)
		}
		events = append(events, ev)
	}
	return events, nil
}

func decodeStart(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, errors.New("start_date is missing")
	}

	var seconds float64
	if err := json.Unmarshal(raw, &seconds); err == nil {
		return codec.TimeFromSQL(seconds)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return time.Time{}, fmt.Errorf("start_date %s is neither a number nor a string", raw)
	}
	return codec.TimeFromSQL(text)
}

// EventID derives a stable id for an event exported without one.
func EventID(name string, start time.Time) string {
	return uuid.NewSHA1(eventNamespace, []byte(name+"|"+codec.TimeToSQL(start))).String()
}
