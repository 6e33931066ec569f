package sqlite

import (
	apperrors "github.com/julianstephens/habit-tracker/internal/errors"
)

// BackupTo writes a consistent copy of the database to dest using VACUUM INTO.
// dest must not exist yet.
func (s *Store) BackupTo(dest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("VACUUM INTO ?", dest); err != nil {
		return classify("backup", err, apperrors.ErrConnection)
	}
	return nil
}
