package migration

import (
	"bufio"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
	"time"
)

const featureDirective = "-- feature:"

// Migration represents a single schema file
type Migration struct {
	Version int
	Name    string
	// Feature names the optional feature this migration belongs to. Empty means
	// the migration is always applied.
	Feature string
	SQL     string
}

// Runner manages the database schema
type Runner struct {
	db *sql.DB
	fs fs.FS
}

type execQuerier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// NewRunner creates a new migration runner
func NewRunner(db *sql.DB, migrationFS fs.FS) *Runner {
	return &Runner{
		db: db,
		fs: migrationFS,
	}
}

func ensureSchemaVersionTable(q execQuerier) error {
	_, err := q.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

func currentVersion(q execQuerier) (int, error) {
	if err := ensureSchemaVersionTable(q); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := q.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No version set yet, this is a fresh database
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func setVersion(q execQuerier, version int) error {
	if _, err := q.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	if _, err := q.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

// GetCurrentVersion returns the current schema version from the database.
// Returns 0 if no version is set (fresh database)
func (r *Runner) GetCurrentVersion() (int, error) {
	return currentVersion(r.db)
}

// SetVersion sets the current schema version in the database
func (r *Runner) SetVersion(version int) error {
	if err := ensureSchemaVersionTable(r.db); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return setVersion(r.db, version)
}

// ReadMigrationFiles reads and parses migration files from the migrations directory.
// Returns migrations sorted by version number
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	files, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		// Parse version from filename (e.g., "001_habit.sql" -> 1)
		parts := strings.SplitN(file.Name(), "_", 2)
		if len(parts) < 2 {
			return nil, fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", file.Name())
		}

		version, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid version number in filename %s: %w", file.Name(), err)
		}
		if version < 1 {
			return nil, fmt.Errorf("invalid version number in filename %s: version must be at least 1", file.Name())
		}

		content, err := fs.ReadFile(r.fs, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".sql"),
			Feature: parseFeature(string(content)),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i := 1; i < len(migrations); i++ {
		if migrations[i].Version == migrations[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", migrations[i].Version)
		}
	}

	return migrations, nil
}

// parseFeature reads a "-- feature: name" directive from the leading comment block.
func parseFeature(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "--") {
			return ""
		}
		if strings.HasPrefix(line, featureDirective) {
			return strings.TrimSpace(strings.TrimPrefix(line, featureDirective))
		}
	}
	return ""
}

// GetLatestVersion returns the highest migration version available
func (r *Runner) GetLatestVersion() (int, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}

	if len(migrations) == 0 {
		return 0, nil
	}

	return migrations[len(migrations)-1].Version, nil
}

// ApplyMigrations applies pending migrations, together with the schema_version
// update, inside a single transaction. Core migrations run once, when their
// version is above the recorded one. Feature migrations run on every start
// while their feature is enabled, so a feature switched on after the first run
// still gets its tables; they must be idempotent (IF NOT EXISTS).
// Returns the number of migrations applied.
func (r *Runner) ApplyMigrations(features []string, logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(s string) {}
	}

	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}

	if len(migrations) == 0 {
		logFn("No migration files found")
		return 0, nil
	}

	enabled := make(map[string]bool, len(features))
	for _, f := range features {
		enabled[f] = true
	}

	latestVersion := migrations[len(migrations)-1].Version
	startTime := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, err := currentVersion(tx)
	if err != nil {
		return 0, err
	}
	if current > latestVersion {
		return 0, fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", current, latestVersion)
	}

	applied := 0
	for _, m := range migrations {
		if m.Feature != "" && !enabled[m.Feature] {
			logFn(fmt.Sprintf("  Skipping migration %d: %s (feature %q disabled)", m.Version, m.Name, m.Feature))
			continue
		}
		if m.Feature == "" && m.Version <= current {
			continue
		}
		logFn(fmt.Sprintf("  Applying migration %d: %s", m.Version, m.Name))
		if _, err := tx.Exec(m.SQL); err != nil {
			return 0, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		applied++
	}

	if err := setVersion(tx, latestVersion); err != nil {
		return 0, fmt.Errorf("failed to record schema version %d: %w", latestVersion, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit schema: %w", err)
	}

	logFn(fmt.Sprintf("Schema at version %d (%d migration(s) applied in %v)", latestVersion, applied, time.Since(startTime)))
	return applied, nil
}

// ValidateVersion checks if the database version is compatible with the application
func (r *Runner) ValidateVersion() error {
	currentVersion, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}

	latestVersion, err := r.GetLatestVersion()
	if err != nil {
		return err
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", currentVersion, latestVersion)
	}

	return nil
}
