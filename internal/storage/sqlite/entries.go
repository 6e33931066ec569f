package sqlite

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habit-tracker/internal/codec"
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
	"github.com/julianstephens/habit-tracker/internal/models"
)

const (
	habitEntryColumns = "id, habitId, completed, date"

	// readBackChunk keeps IN lists well below SQLite's bound parameter limit
	readBackChunk = 500
)

// EntryRepository appends to and scans the habitEntry table.
type EntryRepository struct{}

// InsertBatch inserts one row per item on q, which must be a transaction for
// the batch to be atomic. Rows are read back by the ids the inserts returned,
// in ascending id order, which is the order of items.
func (r EntryRepository) InsertBatch(q DBTX, items []models.InsertHabitEntryItem) ([]models.HabitEntry, error) {
	ids := make([]int64, 0, len(items))
	for i, item := range items {
		var id int64
		var err error
		if item.Date != nil {
			id, err = insertReturningID(q, `
				INSERT INTO habitEntry (completed, habitId, date)
				VALUES (?, ?, ?)`, item.Completed, item.HabitID, codec.TimeToSQL(*item.Date))
		} else {
			id, err = insertReturningID(q, `
				INSERT INTO habitEntry (completed, habitId)
				VALUES (?, ?)`, item.Completed, item.HabitID)
		}
		if err != nil {
			return nil, fmt.Errorf("entry %d (habit %d): %w", i, item.HabitID, err)
		}
		ids = append(ids, id)
	}

	return r.GetByIDs(q, ids)
}

// GetByIDs returns the entries with the given ids ordered by ascending id.
// It fails with ErrNotFound unless every id matches a row.
func (EntryRepository) GetByIDs(q DBTX, ids []int64) ([]models.HabitEntry, error) {
	entries := make([]models.HabitEntry, 0, len(ids))
	for start := 0; start < len(ids); start += readBackChunk {
		end := min(start+readBackChunk, len(ids))
		chunk := ids[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(chunk)), ",")
		args := make([]any, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		got, err := queryAll(q, habitEntryFromRow,
			"SELECT "+habitEntryColumns+" FROM habitEntry WHERE id IN ("+placeholders+") ORDER BY id", args...)
		if err != nil {
			return nil, err
		}
		entries = append(entries, got...)
	}

	if len(entries) != len(ids) {
		return nil, fmt.Errorf("%w: read back %d of %d habit entries", apperrors.ErrNotFound, len(entries), len(ids))
	}
	return entries, nil
}

func (EntryRepository) List(q DBTX) ([]models.HabitEntry, error) {
	return queryAll(q, habitEntryFromRow, "SELECT "+habitEntryColumns+" FROM habitEntry ORDER BY id")
}

func insertReturningID(q DBTX, query string, args ...any) (int64, error) {
	result, err := q.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
