package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/habit-tracker/internal/logger"
)

const (
	// MaxBackups is the maximum number of backups to keep
	MaxBackups = 14
	// DirName is the name of the backup directory inside the data directory
	DirName = "backups"
	// FilePrefix is the prefix for backup files
	FilePrefix = "habits-"
	// FileSuffix is the suffix for backup files
	FileSuffix = ".db"

	timestampFormat = "20060102-150405"
)

// Snapshotter writes a copy of a live database to a new file.
type Snapshotter interface {
	BackupTo(dest string) error
}

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists and rotates backups in a single directory.
type Manager struct {
	dir  string
	keep int
	now  func() time.Time
}

// NewManager creates a manager storing backups under dataDir/backups.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dir:  filepath.Join(dataDir, DirName),
		keep: MaxBackups,
		now:  time.Now,
	}
}

// Dir returns the backup directory path.
func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots src into a new timestamped file and rotates old backups.
func (m *Manager) Create(src Snapshotter) (string, error) {
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := src.BackupTo(path); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}

	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) nextPath() (string, error) {
	base := FilePrefix + m.now().Format(timestampFormat)
	path := filepath.Join(m.dir, base+FileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s-%d%s", base, counter, FileSuffix))
	}
}

// List returns all backups, newest first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)
		if len(stamp) > len(timestampFormat) {
			// drop the "-N" collision counter
			stamp = stamp[:len(timestampFormat)]
		}
		ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	slices.SortStableFunc(backups, func(a, b Info) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) <= m.keep {
		return nil
	}

	for _, b := range backups[m.keep:] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Path, err)
		}
		logger.Debug("Removed old backup", "path", b.Path)
	}
	return nil
}
