package migration

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig holds SQLite-specific database configuration.
type SQLiteConfig struct {
	// DSN is the database file path or connection string.
	DSN string

	// BusyTimeout sets how long to wait for database locks.
	BusyTimeout time.Duration

	// EnableForeignKeys enables foreign key constraint checking.
	EnableForeignKeys bool

	// JournalMode sets the SQLite journal mode (WAL, DELETE, ...).
	JournalMode string

	// Synchronous sets the synchronous mode (FULL, NORMAL, OFF).
	Synchronous string

	// MaxOpenConns sets the maximum number of open connections.
	MaxOpenConns int

	// MaxIdleConns sets the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime sets the maximum lifetime of connections.
	ConnMaxLifetime time.Duration
}

// DefaultSQLiteConfig returns the configuration the service uses unless
// overridden.
func DefaultSQLiteConfig(dsn string) SQLiteConfig {
	return SQLiteConfig{
		DSN:               dsn,
		BusyTimeout:       5 * time.Second,
		EnableForeignKeys: true,
		JournalMode:       "WAL",
		Synchronous:       "NORMAL",
		MaxOpenConns:      1,
		MaxIdleConns:      1,
	}
}

// TempFileTestSQLiteConfig returns a SQLite configuration for temporary
// file-based testing.
func TempFileTestSQLiteConfig(tempFilePath string) SQLiteConfig {
	return SQLiteConfig{
		DSN:               tempFilePath,
		BusyTimeout:       5 * time.Second,
		EnableForeignKeys: true,
		JournalMode:       "MEMORY",
		Synchronous:       "OFF",
		MaxOpenConns:      1,
		MaxIdleConns:      1,
		ConnMaxLifetime:   1 * time.Minute,
	}
}

// ConnectionManager manages SQLite database connections.
type ConnectionManager interface {
	// GetConnection returns a configured SQLite database connection.
	GetConnection() (*sql.DB, error)

	// ConfigureDatabase applies SQLite settings to an existing connection.
	ConfigureDatabase(db *sql.DB) error

	// CreateDatabaseFile creates the database file if it does not exist.
	CreateDatabaseFile() error

	// ValidateConfig validates the SQLite configuration.
	ValidateConfig() error
}

type sqliteConnectionManager struct {
	config SQLiteConfig
}

// NewConnectionManager creates a new SQLite connection manager.
func NewConnectionManager(config SQLiteConfig) ConnectionManager {
	return &sqliteConnectionManager{config: config}
}

// GetConnection returns a configured SQLite database connection.
func (cm *sqliteConnectionManager) GetConnection() (*sql.DB, error) {
	if err := cm.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid SQLite configuration: %w", err)
	}

	if err := cm.CreateDatabaseFile(); err != nil {
		return nil, fmt.Errorf("failed to create database file: %w", err)
	}

	db, err := sql.Open("sqlite", cm.config.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if cm.config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cm.config.MaxOpenConns)
	}
	if cm.config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cm.config.MaxIdleConns)
	}
	if cm.config.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cm.config.ConnMaxLifetime)
	}

	if err := cm.ConfigureDatabase(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase applies PRAGMA settings to an existing connection.
func (cm *sqliteConnectionManager) ConfigureDatabase(db *sql.DB) error {
	pragmas := []struct {
		name  string
		value any
	}{
		{"busy_timeout", int(cm.config.BusyTimeout.Milliseconds())},
		{"journal_mode", cm.config.JournalMode},
		{"synchronous", cm.config.Synchronous},
	}

	if cm.config.EnableForeignKeys {
		pragmas = append(pragmas, struct {
			name  string
			value any
		}{"foreign_keys", "ON"})
	}

	for _, pragma := range pragmas {
		var stmt string
		switch v := pragma.value.(type) {
		case string:
			if v == "" {
				continue
			}
			stmt = fmt.Sprintf("PRAGMA %s = %s", pragma.name, v)
		case int:
			stmt = fmt.Sprintf("PRAGMA %s = %d", pragma.name, v)
		default:
			stmt = fmt.Sprintf("PRAGMA %s = %v", pragma.name, v)
		}

		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to set PRAGMA %s: %w", pragma.name, err)
		}
	}

	return nil
}

// CreateDatabaseFile creates the database file if it does not already exist.
func (cm *sqliteConnectionManager) CreateDatabaseFile() error {
	dsn := cm.config.DSN
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		return nil
	}

	// file: DSNs carry options after '?'; the path is what precedes them.
	path := strings.TrimPrefix(dsn, "file:")
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}
	if path == "" {
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create database file %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close database file %s: %w", path, err)
	}

	return nil
}

// ValidateConfig validates the SQLite configuration.
func (cm *sqliteConnectionManager) ValidateConfig() error {
	if cm.config.DSN == "" {
		return fmt.Errorf("DSN cannot be empty")
	}
	if cm.config.BusyTimeout < 0 {
		return fmt.Errorf("BusyTimeout cannot be negative")
	}

	validJournalModes := map[string]bool{
		"DELETE": true, "TRUNCATE": true, "PERSIST": true,
		"MEMORY": true, "WAL": true, "OFF": true,
	}
	if cm.config.JournalMode != "" && !validJournalModes[strings.ToUpper(cm.config.JournalMode)] {
		return fmt.Errorf("invalid journal mode: %s", cm.config.JournalMode)
	}

	validSyncModes := map[string]bool{
		"OFF": true, "NORMAL": true, "FULL": true, "EXTRA": true,
	}
	if cm.config.Synchronous != "" && !validSyncModes[strings.ToUpper(cm.config.Synchronous)] {
		return fmt.Errorf("invalid synchronous mode: %s", cm.config.Synchronous)
	}

	return nil
}
