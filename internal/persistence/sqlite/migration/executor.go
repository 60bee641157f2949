package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLiteExecutor implements the Executor interface for SQLite databases.
type SQLiteExecutor struct {
	db *sql.DB
}

// NewSQLiteExecutor creates a new SQLite migration executor.
func NewSQLiteExecutor(db *sql.DB) *SQLiteExecutor {
	return &SQLiteExecutor{db: db}
}

// ExecuteMigration runs a single migration within a transaction.
func (e *SQLiteExecutor) ExecuteMigration(ctx context.Context, migration Migration) (err error) {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return NewMigrationError(migration.Version, "begin transaction", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rollbackErr)
			}
		}
	}()

	statements := splitStatements(migration.SQL)
	if len(statements) == 0 {
		err = NewMigrationError(migration.Version, "parse SQL", fmt.Errorf("no SQL statements found in migration"))
		return err
	}

	for i, stmt := range statements {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			err = NewMigrationError(migration.Version, fmt.Sprintf("execute statement %d", i+1),
				fmt.Errorf("%w: %v", ErrMigrationFailed, execErr))
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		err = NewMigrationError(migration.Version, "commit transaction", err)
		return err
	}

	return nil
}

// InitializeVersionTable creates the schema_migrations table if needed.
func (e *SQLiteExecutor) InitializeVersionTable(ctx context.Context) error {
	createTableSQL := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
			execution_time_ms INTEGER
		);
	`

	if _, err := e.db.ExecContext(ctx, createTableSQL); err != nil {
		return NewMigrationError("", "create schema_migrations table", err)
	}
	return nil
}

// RecordMigration records a successful migration in the version table.
func (e *SQLiteExecutor) RecordMigration(ctx context.Context, version string, executionTime time.Duration) error {
	insertSQL := `
		INSERT INTO schema_migrations (version, applied_at, execution_time_ms)
		VALUES (?, ?, ?)
	`

	appliedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := e.db.ExecContext(ctx, insertSQL, version, appliedAt, executionTime.Milliseconds()); err != nil {
		return NewMigrationError(version, "record migration", err)
	}
	return nil
}

// IsVersionApplied checks if a migration version has been applied.
func (e *SQLiteExecutor) IsVersionApplied(ctx context.Context, version string) (bool, error) {
	querySQL := `SELECT 1 FROM schema_migrations WHERE version = ? LIMIT 1`

	var exists int
	err := e.db.QueryRowContext(ctx, querySQL, version).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, NewMigrationError(version, "check version applied", err)
	}
	return true, nil
}

// GetAppliedVersions returns all applied migration versions, oldest first.
func (e *SQLiteExecutor) GetAppliedVersions(ctx context.Context) ([]AppliedMigration, error) {
	querySQL := `
		SELECT version, applied_at, COALESCE(execution_time_ms, 0)
		FROM schema_migrations
		ORDER BY version ASC
	`

	rows, err := e.db.QueryContext(ctx, querySQL)
	if err != nil {
		return nil, NewMigrationError("", "list applied versions", fmt.Errorf("%w: %v", ErrVersionTableCorrupt, err))
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var entry AppliedMigration
		var appliedAt string
		var executionMs int64
		if err := rows.Scan(&entry.Version, &appliedAt, &executionMs); err != nil {
			return nil, NewMigrationError("", "scan applied version", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339, appliedAt); parseErr == nil {
			entry.AppliedAt = parsed
		}
		entry.ExecutionTime = time.Duration(executionMs) * time.Millisecond
		applied = append(applied, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, NewMigrationError("", "iterate applied versions", err)
	}

	return applied, nil
}

// splitStatements breaks a migration script into individual statements.
// Semicolons inside string literals are not expected in our migrations.
func splitStatements(script string) []string {
	parts := strings.Split(script, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		statements = append(statements, trimmed)
	}
	return statements
}
