package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

// OrderRepository implements persistence.OrderRepository using SQLite
type OrderRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewOrderRepository creates a new SQLite order repository
func NewOrderRepository(pool *ConnectionPool) *OrderRepository {
	return &OrderRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateOrder inserts a new order into the database
func (r *OrderRepository) CreateOrder(ctx context.Context, order persistence.Order) error {
	if order.ID == "" || order.RoomNumber == "" {
		return persistence.ErrConstraintViolation
	}
	if len(order.Items) == 0 {
		return persistence.ErrConstraintViolation
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, items, total, status, room_number, guest_name, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.helper.Exec(ctx, query,
		order.ID,
		string(itemsJSON),
		order.Total,
		order.Status,
		order.RoomNumber,
		order.GuestName,
		order.CreatedBy,
		order.CreatedAt.Format(time.RFC3339),
		order.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return r.mapOrderError(err)
	}

	return nil
}

// GetOrder retrieves an order by ID
func (r *OrderRepository) GetOrder(ctx context.Context, id string) (persistence.Order, error) {
	if id == "" {
		return persistence.Order{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, items, total, status, room_number, guest_name, created_by, created_at, updated_at
		FROM orders
		WHERE id = ?
	`

	row := r.helper.QueryRow(ctx, query, id)

	order, err := scanOrder(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Order{}, persistence.ErrNotFound
		}
		return persistence.Order{}, r.mapper.MapError(err)
	}

	return order, nil
}

// UpdateOrderStatus transitions an order to a new status
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE orders
		SET status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query, status, updatedAt.Format(time.RFC3339), id)
	if err != nil {
		return r.mapOrderError(err)
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

// ListOrders returns all orders, newest first
func (r *OrderRepository) ListOrders(ctx context.Context) ([]persistence.Order, error) {
	query := `
		SELECT id, items, total, status, room_number, guest_name, created_by, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC, id ASC
	`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var orders []persistence.Order

	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return orders, nil
}

// scanOrder reads one order via the given scan function
func scanOrder(scan func(dest ...any) error) (persistence.Order, error) {
	var order persistence.Order
	var itemsJSON, createdAtStr, updatedAtStr string

	err := scan(
		&order.ID,
		&itemsJSON,
		&order.Total,
		&order.Status,
		&order.RoomNumber,
		&order.GuestName,
		&order.CreatedBy,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.Order{}, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return persistence.Order{}, fmt.Errorf("failed to decode order items: %w", err)
	}

	if order.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Order{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if order.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.Order{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return order, nil
}

// mapOrderError maps SQLite errors to appropriate persistence errors for order operations
func (r *OrderRepository) mapOrderError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if containsAny(errStr, []string{"UNIQUE constraint failed"}) {
		return persistence.ErrDuplicate
	}
	if containsAny(errStr, []string{"CHECK constraint failed"}) {
		return persistence.ErrConstraintViolation
	}

	return r.mapper.MapError(err)
}
