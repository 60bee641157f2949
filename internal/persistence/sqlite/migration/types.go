package migration

import (
	"context"
	"time"
)

// Migration represents a schema change applied to the pousada database.
type Migration struct {
	Version     string // Version identifier (e.g., "001", "002")
	Description string // Human-readable description of the migration
	SQL         string // SQL statements to execute
}

// AppliedMigration represents a migration recorded in schema_migrations.
type AppliedMigration struct {
	Version       string
	AppliedAt     time.Time
	ExecutionTime time.Duration
}

// Executor handles the execution of migrations against the database.
type Executor interface {
	// ExecuteMigration runs a single migration within a transaction.
	ExecuteMigration(ctx context.Context, migration Migration) error

	// InitializeVersionTable creates the schema_migrations table if needed.
	InitializeVersionTable(ctx context.Context) error

	// RecordMigration records a successful migration.
	RecordMigration(ctx context.Context, version string, executionTime time.Duration) error

	// IsVersionApplied checks if a migration version has been applied.
	IsVersionApplied(ctx context.Context, version string) (bool, error)

	// GetAppliedVersions returns all applied migration versions.
	GetAppliedVersions(ctx context.Context) ([]AppliedMigration, error)
}
