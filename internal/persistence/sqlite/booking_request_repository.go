package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

// BookingRequestRepository implements persistence.BookingRequestRepository using SQLite
type BookingRequestRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewBookingRequestRepository creates a new SQLite booking request repository
func NewBookingRequestRepository(pool *ConnectionPool) *BookingRequestRepository {
	return &BookingRequestRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateBookingRequest inserts a new booking request into the database
func (r *BookingRequestRepository) CreateBookingRequest(ctx context.Context, request persistence.BookingRequest) error {
	if request.ID == "" || request.RoomID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO booking_requests (id, room_id, guest_name, guest_email, guest_phone, check_in, check_out, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		request.ID,
		request.RoomID,
		request.GuestName,
		request.GuestEmail,
		request.GuestPhone,
		request.CheckIn.Format(time.RFC3339),
		request.CheckOut.Format(time.RFC3339),
		request.Status,
		nullableString(request.Notes),
		request.CreatedAt.Format(time.RFC3339),
		request.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return r.mapRequestError(err)
	}

	return nil
}

// GetBookingRequest retrieves a booking request by ID
func (r *BookingRequestRepository) GetBookingRequest(ctx context.Context, id string) (persistence.BookingRequest, error) {
	if id == "" {
		return persistence.BookingRequest{}, persistence.ErrNotFound
	}

	query := requestSelectColumns + ` WHERE id = ?`

	row := r.helper.QueryRow(ctx, query, id)

	request, err := scanBookingRequest(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.BookingRequest{}, persistence.ErrNotFound
		}
		return persistence.BookingRequest{}, r.mapper.MapError(err)
	}

	return request, nil
}

// UpdateBookingRequestStatus transitions a booking request to a new status
func (r *BookingRequestRepository) UpdateBookingRequestStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE booking_requests
		SET status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query, status, updatedAt.Format(time.RFC3339), id)
	if err != nil {
		return r.mapRequestError(err)
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

// ListBookingRequests returns all booking requests, newest first
func (r *BookingRequestRepository) ListBookingRequests(ctx context.Context) ([]persistence.BookingRequest, error) {
	query := requestSelectColumns + ` ORDER BY created_at DESC, id ASC`

	return r.queryRequests(ctx, query)
}

// ListBookingRequestsByStatus returns booking requests in the given status, newest first
func (r *BookingRequestRepository) ListBookingRequestsByStatus(ctx context.Context, status string) ([]persistence.BookingRequest, error) {
	query := requestSelectColumns + ` WHERE status = ? ORDER BY created_at DESC, id ASC`

	return r.queryRequests(ctx, query, status)
}

// DeleteBookingRequest removes a booking request by ID
func (r *BookingRequestRepository) DeleteBookingRequest(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, "DELETE FROM booking_requests WHERE id = ?", id)
	if err != nil {
		return r.mapRequestError(err)
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

const requestSelectColumns = `
	SELECT id, room_id, guest_name, guest_email, guest_phone, check_in, check_out, status, notes, created_at, updated_at
	FROM booking_requests`

func (r *BookingRequestRepository) queryRequests(ctx context.Context, query string, args ...any) ([]persistence.BookingRequest, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var requests []persistence.BookingRequest

	for rows.Next() {
		request, err := scanBookingRequest(rows.Scan)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return requests, nil
}

// scanBookingRequest reads one booking request via the given scan function
func scanBookingRequest(scan func(dest ...any) error) (persistence.BookingRequest, error) {
	var request persistence.BookingRequest
	var checkInStr, checkOutStr, createdAtStr, updatedAtStr string
	var notes sql.NullString

	err := scan(
		&request.ID,
		&request.RoomID,
		&request.GuestName,
		&request.GuestEmail,
		&request.GuestPhone,
		&checkInStr,
		&checkOutStr,
		&request.Status,
		&notes,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.BookingRequest{}, err
	}

	if notes.Valid {
		request.Notes = &notes.String
	}

	if request.CheckIn, err = time.Parse(time.RFC3339, checkInStr); err != nil {
		return persistence.BookingRequest{}, fmt.Errorf("failed to parse check_in: %w", err)
	}
	if request.CheckOut, err = time.Parse(time.RFC3339, checkOutStr); err != nil {
		return persistence.BookingRequest{}, fmt.Errorf("failed to parse check_out: %w", err)
	}
	if request.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.BookingRequest{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if request.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.BookingRequest{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return request, nil
}

// mapRequestError maps SQLite errors to appropriate persistence errors for booking request operations
func (r *BookingRequestRepository) mapRequestError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if containsAny(errStr, []string{"UNIQUE constraint failed"}) {
		return persistence.ErrDuplicate
	}
	if containsAny(errStr, []string{"FOREIGN KEY constraint failed", "CHECK constraint failed"}) {
		return persistence.ErrConstraintViolation
	}

	return r.mapper.MapError(err)
}
