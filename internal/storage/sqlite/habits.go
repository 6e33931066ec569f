package sqlite

import (
	"github.com/julianstephens/habit-tracker/internal/codec"
	"github.com/julianstephens/habit-tracker/internal/models"
)

const habitColumns = "id, habitType, eventIds, title, question"

// HabitRepository reads and writes the habit table on the handle it is given.
type HabitRepository struct{}

// habitArgs encodes the mutable habit fields in column order.
func habitArgs(habitType models.HabitType, eventIDs []string, title, question string) ([]any, error) {
	tag, err := codec.HabitTypeToSQL(habitType)
	if err != nil {
		return nil, err
	}
	ids, err := codec.EventIDsToSQL(eventIDs)
	if err != nil {
		return nil, err
	}
	return []any{tag, ids, title, question}, nil
}

// Create inserts one habit and returns it as stored.
func (HabitRepository) Create(q DBTX, req models.CreateHabitRequest) (models.Habit, error) {
	args, err := habitArgs(req.HabitType, req.EventIDs, req.Title, req.Question)
	if err != nil {
		return models.Habit{}, err
	}

	result, err := q.Exec(`
		INSERT INTO habit (habitType, eventIds, title, question)
		VALUES (?, ?, ?, ?)`, args...)
	if err != nil {
		return models.Habit{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Habit{}, err
	}

	return HabitRepository{}.Get(q, id)
}

// Get returns sql.ErrNoRows when no habit has the given id.
func (HabitRepository) Get(q DBTX, id int64) (models.Habit, error) {
	return queryOne(q, habitFromRow, "SELECT "+habitColumns+" FROM habit WHERE id = ?", id)
}

func (HabitRepository) List(q DBTX) ([]models.Habit, error) {
	return queryAll(q, habitFromRow, "SELECT "+habitColumns+" FROM habit ORDER BY id")
}

// Update replaces every mutable field and re-reads the row. A missing id
// updates nothing and the re-read reports sql.ErrNoRows.
func (HabitRepository) Update(q DBTX, req models.UpdateHabitRequest) (models.Habit, error) {
	args, err := habitArgs(req.HabitType, req.EventIDs, req.Title, req.Question)
	if err != nil {
		return models.Habit{}, err
	}

	_, err = q.Exec(`
		UPDATE habit SET habitType = ?, eventIds = ?, title = ?, question = ?
		WHERE id = ?`, append(args, req.ID)...)
	if err != nil {
		return models.Habit{}, err
	}

	return HabitRepository{}.Get(q, req.ID)
}
