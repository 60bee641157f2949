package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrMigrationFailed indicates that a migration execution failed.
	ErrMigrationFailed = errors.New("migration execution failed")

	// ErrInvalidVersion indicates that a migration version is malformed.
	ErrInvalidVersion = errors.New("invalid migration version")

	// ErrDuplicateVersion indicates that two migrations share a version.
	ErrDuplicateVersion = errors.New("duplicate migration version")

	// ErrVersionTableCorrupt indicates the schema_migrations table cannot
	// be read.
	ErrVersionTableCorrupt = errors.New("schema_migrations table is corrupted")
)

// MigrationError wraps migration-specific failures with context.
type MigrationError struct {
	Version   string
	Operation string
	Err       error
}

// NewMigrationError constructs a MigrationError.
func NewMigrationError(version, operation string, err error) *MigrationError {
	return &MigrationError{Version: version, Operation: operation, Err: err}
}

// Error implements the error interface.
func (e *MigrationError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("migration %s: %s: %v", e.Version, e.Operation, e.Err)
	}
	return fmt.Sprintf("migration: %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *MigrationError) Unwrap() error {
	return e.Err
}
