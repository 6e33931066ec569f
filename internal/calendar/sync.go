package calendar

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// EventStore is the part of the habit store a sync writes to.
type EventStore interface {
	CalendarEnabled() bool
	ReplaceCalendarEvents([]models.CalendarEvent) ([]models.CalendarEvent, error)
}

// Syncer copies one snapshot of a Source into the event cache.
type Syncer struct {
	source Source
	store  EventStore
}

func NewSyncer(source Source, store EventStore) *Syncer {
	return &Syncer{source: source, store: store}
}

// Sync replaces the cached events with the source's current set and returns
// what was stored. The cache is untouched if the source fails.
func (s *Syncer) Sync(ctx context.Context) ([]models.CalendarEvent, error) {
	if !s.store.CalendarEnabled() {
		return nil, apperrors.E("sync calendar events", apperrors.ErrFeatureDisabled, nil)
	}

	start := time.Now()
	events, err := s.source.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar events: %w", err)
	}

	stored, err := s.store.ReplaceCalendarEvents(events)
	if err != nil {
		return nil, err
	}

	logger.Info("Calendar sync completed", "events", len(stored), "duration", time.Since(start))
	return stored, nil
}
