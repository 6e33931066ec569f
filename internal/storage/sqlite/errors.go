package sqlite

import (
	"database/sql"
	"errors"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
)

// passthroughKinds are error kinds raised below the store (codec, row mapper)
// that keep their kind when surfaced.
var passthroughKinds = []error{
	apperrors.ErrNotFound,
	apperrors.ErrConstraintViolation,
	apperrors.ErrInvalidEnumValue,
	apperrors.ErrInvalidEncoding,
	apperrors.ErrMissingColumn,
	apperrors.ErrTypeMismatch,
}

// classify turns err into a StorageError for op. Errors with no more specific
// kind get fallback.
func classify(op string, err error, fallback error) error {
	if err == nil {
		return nil
	}

	var se *apperrors.StorageError
	if errors.As(err, &se) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.E(op, apperrors.ErrNotFound, err)
	}
	if isConstraintError(err) {
		return apperrors.E(op, apperrors.ErrConstraintViolation, err)
	}
	for _, kind := range passthroughKinds {
		if errors.Is(err, kind) {
			return apperrors.E(op, kind, err)
		}
	}
	return apperrors.E(op, fallback, err)
}

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// extended result codes keep the primary code in the low byte
	return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
