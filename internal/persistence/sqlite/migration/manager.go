package migration

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"
)

// Manager orchestrates the migration process over a registered migration set.
type Manager struct {
	executor   Executor
	migrations []Migration
}

// NewManager creates a Manager for the provided migrations. Migrations are
// sorted by version; duplicate or empty versions are rejected at run time.
func NewManager(executor Executor, migrations []Migration) *Manager {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
	return &Manager{executor: executor, migrations: sorted}
}

// RunMigrations executes all pending migrations in sequential order.
func (m *Manager) RunMigrations(ctx context.Context) error {
	if m == nil || m.executor == nil {
		return fmt.Errorf("migration manager not configured")
	}

	if err := m.validateVersions(); err != nil {
		return err
	}

	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		return fmt.Errorf("failed to initialize version table: %w", err)
	}

	pending, err := m.GetPendingMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending migrations: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	for i, mig := range pending {
		start := time.Now()
		log.Printf("applying migration %s: %s (%d/%d)", mig.Version, mig.Description, i+1, len(pending))

		if err := m.executor.ExecuteMigration(ctx, mig); err != nil {
			return err
		}
		if err := m.executor.RecordMigration(ctx, mig.Version, time.Since(start)); err != nil {
			return err
		}
	}

	return nil
}

// GetAppliedVersions returns the versions already recorded in the database.
func (m *Manager) GetAppliedVersions(ctx context.Context) ([]string, error) {
	applied, err := m.executor.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(applied))
	for _, entry := range applied {
		versions = append(versions, entry.Version)
	}
	return versions, nil
}

// GetPendingMigrations returns registered migrations not yet applied, in
// version order.
func (m *Manager) GetPendingMigrations(ctx context.Context) ([]Migration, error) {
	applied, err := m.executor.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	appliedSet := make(map[string]bool, len(applied))
	for _, entry := range applied {
		appliedSet[entry.Version] = true
	}

	var pending []Migration
	for _, mig := range m.migrations {
		if !appliedSet[mig.Version] {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

func (m *Manager) validateVersions() error {
	seen := make(map[string]bool, len(m.migrations))
	for _, mig := range m.migrations {
		if mig.Version == "" {
			return fmt.Errorf("%w: empty version for %q", ErrInvalidVersion, mig.Description)
		}
		if seen[mig.Version] {
			return fmt.Errorf("%w: %s", ErrDuplicateVersion, mig.Version)
		}
		seen[mig.Version] = true
	}
	return nil
}
