package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

// BookingRepository implements persistence.BookingRepository using SQLite
type BookingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewBookingRepository creates a new SQLite booking repository
func NewBookingRepository(pool *ConnectionPool) *BookingRepository {
	return &BookingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateBooking inserts a new booking into the database
func (r *BookingRepository) CreateBooking(ctx context.Context, booking persistence.Booking) error {
	if booking.ID == "" || booking.RoomID == "" {
		return persistence.ErrConstraintViolation
	}
	if booking.TotalAmount < 0 {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO bookings (id, room_id, request_id, guest_name, guest_email, guest_phone, check_in, check_out, status, total_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		booking.ID,
		booking.RoomID,
		nullableString(booking.RequestID),
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.CheckIn.Format(time.RFC3339),
		booking.CheckOut.Format(time.RFC3339),
		booking.Status,
		booking.TotalAmount,
		booking.CreatedAt.Format(time.RFC3339),
		booking.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return r.mapBookingError(err)
	}

	return nil
}

// GetBooking retrieves a booking by ID
func (r *BookingRepository) GetBooking(ctx context.Context, id string) (persistence.Booking, error) {
	if id == "" {
		return persistence.Booking{}, persistence.ErrNotFound
	}

	query := bookingSelectColumns + ` WHERE id = ?`

	row := r.helper.QueryRow(ctx, query, id)

	booking, err := scanBooking(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Booking{}, persistence.ErrNotFound
		}
		return persistence.Booking{}, r.mapper.MapError(err)
	}

	return booking, nil
}

// UpdateBookingStatus transitions a booking to a new status
func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	query := `
		UPDATE bookings
		SET status = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query, status, updatedAt.Format(time.RFC3339), id)
	if err != nil {
		return r.mapBookingError(err)
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

// ListBookings returns bookings matching the filter, newest first
func (r *BookingRepository) ListBookings(ctx context.Context, filter persistence.BookingFilter) ([]persistence.Booking, error) {
	query := bookingSelectColumns
	var conditions []string
	var args []any

	if filter.RoomID != "" {
		conditions = append(conditions, "room_id = ?")
		args = append(args, filter.RoomID)
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, status)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"

	return r.queryBookings(ctx, query, args...)
}

// ListBookingsByGuestEmail returns the stay history for a guest, newest first
func (r *BookingRepository) ListBookingsByGuestEmail(ctx context.Context, email string) ([]persistence.Booking, error) {
	if email == "" {
		return nil, nil
	}

	query := bookingSelectColumns + ` WHERE guest_email = ? ORDER BY check_in DESC, id ASC`

	return r.queryBookings(ctx, query, email)
}

const bookingSelectColumns = `
	SELECT id, room_id, request_id, guest_name, guest_email, guest_phone, check_in, check_out, status, total_amount, created_at, updated_at
	FROM bookings`

func (r *BookingRepository) queryBookings(ctx context.Context, query string, args ...any) ([]persistence.Booking, error) {
	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var bookings []persistence.Booking

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return bookings, nil
}

// scanBooking reads one booking via the given scan function
func scanBooking(scan func(dest ...any) error) (persistence.Booking, error) {
	var booking persistence.Booking
	var checkInStr, checkOutStr, createdAtStr, updatedAtStr string
	var requestID sql.NullString

	err := scan(
		&booking.ID,
		&booking.RoomID,
		&requestID,
		&booking.GuestName,
		&booking.GuestEmail,
		&booking.GuestPhone,
		&checkInStr,
		&checkOutStr,
		&booking.Status,
		&booking.TotalAmount,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.Booking{}, err
	}

	if requestID.Valid {
		booking.RequestID = &requestID.String
	}

	if booking.CheckIn, err = time.Parse(time.RFC3339, checkInStr); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse check_in: %w", err)
	}
	if booking.CheckOut, err = time.Parse(time.RFC3339, checkOutStr); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse check_out: %w", err)
	}
	if booking.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if booking.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.Booking{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return booking, nil
}

// mapBookingError maps SQLite errors to appropriate persistence errors for booking operations
func (r *BookingRepository) mapBookingError(err error) error {
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
