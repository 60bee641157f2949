package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

// RoomRepository implements persistence.RoomRepository using SQLite
type RoomRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewRoomRepository creates a new SQLite room repository
func NewRoomRepository(pool *ConnectionPool) *RoomRepository {
	return &RoomRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateRoom inserts a new room into the database
func (r *RoomRepository) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Number == "" {
		return persistence.ErrConstraintViolation
	}
	if room.DailyRate < 0 {
		return persistence.ErrConstraintViolation
	}

	featuresJSON, err := encodeFeatures(room.Features)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO rooms (id, number, category, daily_rate, features, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.helper.Exec(ctx, query,
		room.ID,
		room.Number,
		room.Category,
		room.DailyRate,
		featuresJSON,
		nullableString(room.Notes),
		room.CreatedAt.Format(time.RFC3339),
		room.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return r.mapRoomError(err)
	}

	return nil
}

// UpdateRoom updates an existing room in the database
func (r *RoomRepository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Number == "" {
		return persistence.ErrConstraintViolation
	}
	if room.DailyRate < 0 {
		return persistence.ErrConstraintViolation
	}

	featuresJSON, err := encodeFeatures(room.Features)
	if err != nil {
		return err
	}

	query := `
		UPDATE rooms
		SET number = ?, category = ?, daily_rate = ?, features = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		room.Number,
		room.Category,
		room.DailyRate,
		featuresJSON,
		nullableString(room.Notes),
		room.UpdatedAt.Format(time.RFC3339),
		room.ID,
	)

	if err != nil {
		return r.mapRoomError(err)
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

// GetRoom retrieves a room by ID from the database
func (r *RoomRepository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	if id == "" {
		return persistence.Room{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, number, category, daily_rate, features, notes, created_at, updated_at
		FROM rooms
		WHERE id = ?
	`

	return r.scanRoom(r.helper.QueryRow(ctx, query, id))
}

// GetRoomByNumber retrieves a room by its unique number
func (r *RoomRepository) GetRoomByNumber(ctx context.Context, number string) (persistence.Room, error) {
	if number == "" {
		return persistence.Room{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, number, category, daily_rate, features, notes, created_at, updated_at
		FROM rooms
		WHERE number = ?
	`

	return r.scanRoom(r.helper.QueryRow(ctx, query, number))
}

// ListRooms returns all rooms ordered by number then ID
func (r *RoomRepository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	query := `
		SELECT id, number, category, daily_rate, features, notes, created_at, updated_at
		FROM rooms
		ORDER BY number ASC, id ASC
	`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var rooms []persistence.Room

	for rows.Next() {
		var room persistence.Room
		var createdAtStr, updatedAtStr, featuresJSON string
		var notes sql.NullString

		err := rows.Scan(
			&room.ID,
			&room.Number,
			&room.Category,
			&room.DailyRate,
			&featuresJSON,
			&notes,
			&createdAtStr,
			&updatedAtStr,
		)

		if err != nil {
			return nil, r.mapper.MapError(err)
		}

		if notes.Valid {
			room.Notes = &notes.String
		}
		if room.Features, err = decodeFeatures(featuresJSON); err != nil {
			return nil, err
		}

		if room.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if room.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}

		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return rooms, nil
}

// DeleteRoom removes a room by ID from the database
func (r *RoomRepository) DeleteRoom(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, "DELETE FROM rooms WHERE id = ?", id)
	if err != nil {
		return r.mapRoomError(err)
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

// scanRoom reads a single room row
func (r *RoomRepository) scanRoom(row *sql.Row) (persistence.Room, error) {
	var room persistence.Room
	var createdAtStr, updatedAtStr, featuresJSON string
	var notes sql.NullString

	err := row.Scan(
		&room.ID,
		&room.Number,
		&room.Category,
		&room.DailyRate,
		&featuresJSON,
		&notes,
		&createdAtStr,
		&updatedAtStr,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, r.mapper.MapError(err)
	}

	if notes.Valid {
		room.Notes = &notes.String
	}
	if room.Features, err = decodeFeatures(featuresJSON); err != nil {
		return persistence.Room{}, err
	}

	if room.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.Room{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if room.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.Room{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return room, nil
}

// mapRoomError maps SQLite errors to appropriate persistence errors for room operations
func (r *RoomRepository) mapRoomError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	// Room numbers are unique across the property
	if containsAny(errStr, []string{"UNIQUE constraint failed"}) {
		return persistence.ErrDuplicate
	}

	if containsAny(errStr, []string{"CHECK constraint failed"}) {
		return persistence.ErrConstraintViolation
	}

	return r.mapper.MapError(err)
}

// encodeFeatures serializes the feature list into its TEXT column form
func encodeFeatures(features []string) (string, error) {
	if features == nil {
		features = []string{}
	}
	data, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("failed to encode features: %w", err)
	}
	return string(data), nil
}

// decodeFeatures parses the feature list from its TEXT column form
func decodeFeatures(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var features []string
	if err := json.Unmarshal([]byte(raw), &features); err != nil {
		return nil, fmt.Errorf("failed to decode features: %w", err)
	}
	if len(features) == 0 {
		return nil, nil
	}
	return features, nil
}

// nullableString converts an optional string into its SQL representation
func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
