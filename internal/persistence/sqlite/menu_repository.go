package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

// MenuRepository implements persistence.MenuRepository using SQLite
type MenuRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewMenuRepository creates a new SQLite menu repository
func NewMenuRepository(pool *ConnectionPool) *MenuRepository {
	return &MenuRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateMenuItem inserts a new menu item into the database
func (r *MenuRepository) CreateMenuItem(ctx context.Context, item persistence.MenuItem) error {
	if item.ID == "" || item.Name == "" {
		return persistence.ErrConstraintViolation
	}
	if item.Price < 0 {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO menu_items (id, name, category, price, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Price,
		boolToInt(item.Active),
		item.CreatedAt.Format(time.RFC3339),
		item.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return r.mapper.MapError(err)
	}

	return nil
}

// UpdateMenuItem updates an existing menu item
func (r *MenuRepository) UpdateMenuItem(ctx context.Context, item persistence.MenuItem) error {
	if item.ID == "" || item.Name == "" {
		return persistence.ErrConstraintViolation
	}
	if item.Price < 0 {
		return persistence.ErrConstraintViolation
	}

	query := `
		UPDATE menu_items
		SET name = ?, category = ?, price = ?, active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		item.Name,
		item.Category,
		item.Price,
		boolToInt(item.Active),
		item.UpdatedAt.Format(time.RFC3339),
		item.ID,
	)

	if err != nil {
		return r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return persistence.ErrNotFound
	}

	return nil
}

// GetMenuItem retrieves a menu item by ID
func (r *MenuRepository) GetMenuItem(ctx context.Context, id string) (persistence.MenuItem, error) {
	if id == "" {
		return persistence.MenuItem{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, name, category, price, active, created_at, updated_at
		FROM menu_items
		WHERE id = ?
	`

	row := r.helper.QueryRow(ctx, query, id)

	item, err := scanMenuItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.MenuItem{}, persistence.ErrNotFound
		}
		return persistence.MenuItem{}, r.mapper.MapError(err)
	}

	return item, nil
}

// ListMenuItems returns menu items grouped by category then name. When
// activeOnly is set, items removed from the menu are excluded.
func (r *MenuRepository) ListMenuItems(ctx context.Context, activeOnly bool) ([]persistence.MenuItem, error) {
	query := `
		SELECT id, name, category, price, active, created_at, updated_at
		FROM menu_items
	`
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY category ASC, name ASC"

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var items []persistence.MenuItem

	for rows.Next() {
		item, err := scanMenuItem(rows.Scan)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return items, nil
}

// scanMenuItem reads one menu item via the given scan function
func scanMenuItem(scan func(dest ...any) error) (persistence.MenuItem, error) {
	var item persistence.MenuItem
	var createdAtStr, updatedAtStr string
	var active int

	err := scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Price,
		&active,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.MenuItem{}, err
	}

	item.Active = active != 0

	if item.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.MenuItem{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.MenuItem{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return item, nil
}
