package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habit-tracker/internal/constants"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/logger"
	"github.com/julianstephens/habit-tracker/internal/migration"
	"github.com/julianstephens/habit-tracker/internal/models"
	"github.com/julianstephens/habit-tracker/internal/storage"
	"github.com/julianstephens/habit-tracker/internal/validation"
	"github.com/julianstephens/habit-tracker/migrations"
)

var _ storage.Provider = (*Store)(nil)

// Config selects the backing database and optional features.
type Config struct {
	// Path is a database file, or constants.MemoryDBPath for an ephemeral database.
	Path string
	// Calendar enables the calendar event cache table and operations.
	Calendar bool
	// BusyTimeout bounds how long a statement waits on a lock held by another process.
	BusyTimeout time.Duration
}

// Option customizes a Store at construction.
type Option func(*Store)

// WithLocker sets the lock every mutating call holds. Callers sharing one
// lock across several services serialize all of them.
func WithLocker(l sync.Locker) Option {
	return func(s *Store) {
		s.mu = l
	}
}

// Store is the SQLite habit store. It owns its connection exclusively.
type Store struct {
	path      string
	db        *sql.DB
	mu        sync.Locker
	calendar  bool
	validator *validation.Validator

	habits  HabitRepository
	entries EntryRepository
	events  CalendarEventRepository
}

// Open opens or creates the database, then creates any missing tables. No
// Store is returned unless both steps succeed.
func Open(cfg Config, opts ...Option) (*Store, error) {
	if cfg.Path == "" {
		return nil, apperrors.E("open", apperrors.ErrConnection, errors.New("database path is empty"))
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = constants.DefaultBusyTimeout
	}

	s := &Store{
		path:      cfg.Path,
		mu:        &sync.Mutex{},
		calendar:  cfg.Calendar,
		validator: validation.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.Path != constants.MemoryDBPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
			return nil, apperrors.E("open", apperrors.ErrConnection, fmt.Errorf("failed to create data directory: %w", err))
		}
	}

	db, err := sql.Open("sqlite", dsn(cfg.Path, cfg.BusyTimeout))
	if err != nil {
		return nil, apperrors.E("open", apperrors.ErrConnection, err)
	}
	// One connection: an in-memory database lives and dies with it, and a
	// single writer never waits on itself.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.E("open", apperrors.ErrConnection, err)
	}
	s.db = db

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, apperrors.E("initialize schema", apperrors.ErrSchema, err)
	}

	logger.Debug("Opened habit store", "path", cfg.Path, "calendar", cfg.Calendar)
	return s, nil
}

func dsn(path string, busyTimeout time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))
	return path + "?" + q.Encode()
}

func (s *Store) initSchema() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	var features []string
	if s.calendar {
		features = append(features, constants.FeatureCalendar)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(features, func(msg string) {
		logger.Debug(msg)
	})
	return err
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Path() string {
	return s.path
}

// GetDB returns the underlying database connection.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

func (s *Store) CalendarEnabled() bool {
	return s.calendar
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func constraintError(op string, result validation.ValidationResult) error {
	return apperrors.E(op, apperrors.ErrConstraintViolation, errors.New(result.FormatReport()))
}

// Habits

func (s *Store) CreateHabit(req models.CreateHabitRequest) (models.Habit, error) {
	const op = "create habit"

	if result := s.validator.ValidateCreate(req); result.HasConflicts() {
		return models.Habit{}, constraintError(op, result)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := s.habits.Create(s.db, req)
	if err != nil {
		return models.Habit{}, classify(op, err, apperrors.ErrConnection)
	}

	logger.Info("Created habit", "id", habit.ID, "type", habit.HabitType)
	return habit, nil
}

func (s *Store) UpdateHabit(req models.UpdateHabitRequest) (models.Habit, error) {
	const op = "update habit"

	if result := s.validator.ValidateUpdate(req); result.HasConflicts() {
		return models.Habit{}, constraintError(op, result)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	habit, err := s.habits.Update(s.db, req)
	if err != nil {
		return models.Habit{}, classify(fmt.Sprintf("%s %d", op, req.ID), err, apperrors.ErrConnection)
	}

	logger.Info("Updated habit", "id", habit.ID)
	return habit, nil
}

func (s *Store) ListHabits() ([]models.Habit, error) {
	habits, err := s.habits.List(s.db)
	if err != nil {
		return nil, classify("list habits", err, apperrors.ErrConnection)
	}
	return habits, nil
}

// Habit Entries

func (s *Store) ListHabitEntries() ([]models.HabitEntry, error) {
	entries, err := s.entries.List(s.db)
	if err != nil {
		return nil, classify("list habit entries", err, apperrors.ErrConnection)
	}
	return entries, nil
}

// InsertHabitEntries inserts the whole batch or nothing. Entries come back in
// the order of items.
func (s *Store) InsertHabitEntries(items []models.InsertHabitEntryItem) ([]models.HabitEntry, error) {
	const op = "insert habit entries"

	if result := s.validator.ValidateEntries(items); result.HasConflicts() {
		return nil, constraintError(op, result)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []models.HabitEntry
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		entries, err = s.entries.InsertBatch(tx, items)
		return err
	})
	if err != nil {
		return nil, apperrors.E(op, apperrors.ErrTransaction, classify("insert batch", err, apperrors.ErrConnection))
	}

	logger.Info("Inserted habit entries", "count", len(entries))
	return entries, nil
}

// Calendar Events

func (s *Store) ListCalendarEvents() ([]models.CalendarEvent, error) {
	const op = "list calendar events"

	if !s.calendar {
		return nil, apperrors.E(op, apperrors.ErrFeatureDisabled, nil)
	}

	events, err := s.events.List(s.db)
	if err != nil {
		return nil, classify(op, err, apperrors.ErrConnection)
	}
	return events, nil
}

// ReplaceCalendarEvents swaps the cached events for events in one transaction.
func (s *Store) ReplaceCalendarEvents(events []models.CalendarEvent) ([]models.CalendarEvent, error) {
	const op = "replace calendar events"

	if !s.calendar {
		return nil, apperrors.E(op, apperrors.ErrFeatureDisabled, nil)
	}
	if result := s.validator.ValidateCalendarEvents(events); result.HasConflicts() {
		return nil, constraintError(op, result)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var stored []models.CalendarEvent
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		stored, err = s.events.ReplaceAll(tx, events)
		return err
	})
	if err != nil {
		return nil, apperrors.E(op, apperrors.ErrTransaction, classify("replace batch", err, apperrors.ErrConnection))
	}

	logger.Info("Replaced calendar events", "count", len(stored))
	return stored, nil
}
