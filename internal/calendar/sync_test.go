package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habit-tracker/internal/constants"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage/sqlite"
)

type staticSource struct {
	events []models.CalendarEvent
	err    error
}

func (s staticSource) Events(context.Context) ([]models.CalendarEvent, error) {
	return s.events, s.err
}

func openStore(t *testing.T, calendar bool) *sqlite.Store {
	t.Helper()

	store, err := sqlite.Open(sqlite.Config{Path: constants.MemoryDBPath, Calendar: calendar})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSyncReplacesEvents(t *testing.T) {
	store := openStore(t, true)
	start := time.Date(2025, time.January, 6, 7, 0, 0, 0, time.UTC)

	_, err := NewSyncer(staticSource{events: []models.CalendarEvent{
		{ID: "old", Name: "Old", StartDate: start},
	}}, store).Sync(context.Background())
	require.NoError(t, err)

	fresh := []models.CalendarEvent{
		{ID: "evt-1", Name: "Gym", StartDate: start, Recurrence: "FREQ=WEEKLY"},
		{ID: "evt-2", Name: "Swim", StartDate: start.Add(time.Hour)},
	}
	stored, err := NewSyncer(staticSource{events: fresh}, store).Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fresh, stored)

	listed, err := store.ListCalendarEvents()
	require.NoError(t, err)
	assert.Equal(t, fresh, listed)
}

func TestSyncSourceFailureKeepsCache(t *testing.T) {
	store := openStore(t, true)
	start := time.Date(2025, time.January, 6, 7, 0, 0, 0, time.UTC)
	cached := []models.CalendarEvent{{ID: "evt-1", Name: "Gym", StartDate: start}}

	_, err := store.ReplaceCalendarEvents(cached)
	require.NoError(t, err)

	boom := errors.New("export crashed")
	_, err = NewSyncer(staticSource{err: boom}, store).Sync(context.Background())
	assert.ErrorIs(t, err, boom)

	listed, err := store.ListCalendarEvents()
	require.NoError(t, err)
	assert.Equal(t, cached, listed)
}

func TestSyncFeatureDisabled(t *testing.T) {
	store := openStore(t, false)

	_, err := NewSyncer(staticSource{}, store).Sync(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrFeatureDisabled)
}
