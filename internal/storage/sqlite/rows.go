package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/habit-tracker/internal/codec"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/models"
)

// row is one result row keyed by column name.
type row map[string]any

// DBTX is the handle repositories run statements on. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func scanRow(rows *sql.Rows) (row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	r := make(row, len(cols))
	for i, col := range cols {
		r[col] = values[i]
	}
	return r, nil
}

// queryAll runs query and maps every row with mapFn. The result is never nil.
func queryAll[T any](q DBTX, mapFn func(row) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		v, err := mapFn(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// queryOne returns sql.ErrNoRows when query matches nothing.
func queryOne[T any](q DBTX, mapFn func(row) (T, error), query string, args ...any) (T, error) {
	var zero T
	all, err := queryAll(q, mapFn, query, args...)
	if err != nil {
		return zero, err
	}
	if len(all) == 0 {
		return zero, sql.ErrNoRows
	}
	return all[0], nil
}

func (r row) value(col string) (any, error) {
	v, ok := r[col]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrMissingColumn, col)
	}
	return v, nil
}

func (r row) intCol(col string) (int64, error) {
	v, err := r.value(col)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: column %q holds %T, want integer", apperrors.ErrTypeMismatch, col, v)
	}
	return n, nil
}

func (r row) textCol(col string) (string, error) {
	v, err := r.value(col)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return "", fmt.Errorf("%w: column %q holds %T, want text", apperrors.ErrTypeMismatch, col, v)
	}
}

func (r row) boolCol(col string) (bool, error) {
	v, err := r.value(col)
	if err != nil {
		return false, err
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	}
	return false, fmt.Errorf("%w: column %q holds %v, want boolean", apperrors.ErrTypeMismatch, col, v)
}

func (r row) timeCol(col string) (time.Time, error) {
	v, err := r.value(col)
	if err != nil {
		return time.Time{}, err
	}
	t, err := codec.TimeFromSQL(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %q: %w", col, err)
	}
	return t, nil
}

func habitFromRow(r row) (models.Habit, error) {
	var h models.Habit
	var err error

	if h.ID, err = r.intCol("id"); err != nil {
		return models.Habit{}, err
	}
	tag, err := r.textCol("habitType")
	if err != nil {
		return models.Habit{}, err
	}
	if h.HabitType, err = codec.HabitTypeFromSQL(tag); err != nil {
		return models.Habit{}, fmt.Errorf("habit %d: %w", h.ID, err)
	}
	eventIDs, err := r.value("eventIds")
	if err != nil {
		return models.Habit{}, err
	}
	if h.EventIDs, err = codec.EventIDsFromSQL(eventIDs); err != nil {
		return models.Habit{}, fmt.Errorf("habit %d: %w", h.ID, err)
	}
	if h.Title, err = r.textCol("title"); err != nil {
		return models.Habit{}, err
	}
	if h.Question, err = r.textCol("question"); err != nil {
		return models.Habit{}, err
	}

	return h, nil
}

func habitEntryFromRow(r row) (models.HabitEntry, error) {
	var e models.HabitEntry
	var err error

	if e.ID, err = r.intCol("id"); err != nil {
		return models.HabitEntry{}, err
	}
	if e.HabitID, err = r.intCol("habitId"); err != nil {
		return models.HabitEntry{}, err
	}
	if e.Completed, err = r.boolCol("completed"); err != nil {
		return models.HabitEntry{}, err
	}
	if e.Date, err = r.timeCol("date"); err != nil {
		return models.HabitEntry{}, fmt.Errorf("habit entry %d: %w", e.ID, err)
	}

	return e, nil
}

func calendarEventFromRow(r row) (models.CalendarEvent, error) {
	var ev models.CalendarEvent
	var err error

	if ev.ID, err = r.textCol("id"); err != nil {
		return models.CalendarEvent{}, err
	}
	if ev.Name, err = r.textCol("name"); err != nil {
		return models.CalendarEvent{}, err
	}
	if ev.StartDate, err = r.timeCol("startDate"); err != nil {
		return models.CalendarEvent{}, fmt.Errorf("calendar event %s: %w", ev.ID, err)
	}
	if ev.Recurrence, err = r.textCol("recurrence"); err != nil {
		return models.CalendarEvent{}, err
	}

	return ev, nil
}
