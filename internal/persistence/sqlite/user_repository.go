package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/pousada-manager/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite
type UserRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewUserRepository creates a new SQLite user repository
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.Email == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO users (id, email, name, phone, address, birth_date, password_hash, is_admin, disabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Phone,
		nullableString(user.Address),
		nullableTime(user.BirthDate),
		user.PasswordHash,
		boolToInt(user.IsAdmin),
		boolToInt(user.Disabled),
		user.CreatedAt.Format(time.RFC3339),
		user.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return r.mapUserError(err)
	}

	return nil
}

// UpdateUser updates an existing user in the database
func (r *UserRepository) UpdateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.Email == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		UPDATE users
		SET email = ?, name = ?, phone = ?, address = ?, birth_date = ?, password_hash = ?, is_admin = ?, disabled = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		user.Email,
		user.Name,
		user.Phone,
		nullableString(user.Address),
		nullableTime(user.BirthDate),
		user.PasswordHash,
		boolToInt(user.IsAdmin),
		boolToInt(user.Disabled),
		user.UpdatedAt.Format(time.RFC3339),
		user.ID,
	)

	if err != nil {
		return r.mapUserError(err)
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

// GetUser retrieves a user by ID from the database
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if id == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := userSelectColumns + ` WHERE id = ?`

	return r.scanUser(r.helper.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	if email == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	query := userSelectColumns + ` WHERE email = ?`

	return r.scanUser(r.helper.QueryRow(ctx, query, email))
}

// ListUsers returns all users ordered by name then ID
func (r *UserRepository) ListUsers(ctx context.Context) ([]persistence.User, error) {
	query := userSelectColumns + ` ORDER BY name ASC, id ASC`

	rows, err := r.helper.Query(ctx, query)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var users []persistence.User

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, r.mapper.MapError(err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return users, nil
}

// DeleteUser removes a user by ID from the database
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		// Sessions for a removed account must not survive it
		_, err := r.helper.ExecTx(tx, "DELETE FROM sessions WHERE user_id = ?", id)
		if err != nil {
			return r.mapper.MapError(err)
		}

		result, err := r.helper.ExecTx(tx, "DELETE FROM users WHERE id = ?", id)
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
	})
}

const userSelectColumns = `
	SELECT id, email, name, phone, address, birth_date, password_hash, is_admin, disabled, created_at, updated_at
	FROM users`

// scanUser reads a single user row
func (r *UserRepository) scanUser(row *sql.Row) (persistence.User, error) {
	var user persistence.User
	var createdAtStr, updatedAtStr string
	var address, birthDate sql.NullString
	var isAdmin, disabled int

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&address,
		&birthDate,
		&user.PasswordHash,
		&isAdmin,
		&disabled,
		&createdAtStr,
		&updatedAtStr,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, r.mapper.MapError(err)
	}

	return buildUser(user, address, birthDate, isAdmin, disabled, createdAtStr, updatedAtStr)
}

// scanUserRow reads a user from a multi-row result set
func scanUserRow(rows *sql.Rows) (persistence.User, error) {
	var user persistence.User
	var createdAtStr, updatedAtStr string
	var address, birthDate sql.NullString
	var isAdmin, disabled int

	err := rows.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&address,
		&birthDate,
		&user.PasswordHash,
		&isAdmin,
		&disabled,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return persistence.User{}, err
	}

	return buildUser(user, address, birthDate, isAdmin, disabled, createdAtStr, updatedAtStr)
}

func buildUser(user persistence.User, address, birthDate sql.NullString, isAdmin, disabled int, createdAtStr, updatedAtStr string) (persistence.User, error) {
	if address.Valid {
		user.Address = &address.String
	}
	if birthDate.Valid {
		parsed, err := time.Parse(time.RFC3339, birthDate.String)
		if err != nil {
			return persistence.User{}, fmt.Errorf("failed to parse birth_date: %w", err)
		}
		user.BirthDate = &parsed
	}
	user.IsAdmin = isAdmin != 0
	user.Disabled = disabled != 0

	var err error
	if user.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return persistence.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if user.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return persistence.User{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return user, nil
}

// mapUserError maps SQLite errors to appropriate persistence errors for user operations
func (r *UserRepository) mapUserError(err error) error {
	if err == nil {
		return nil
	}

	if containsAny(err.Error(), []string{"UNIQUE constraint failed"}) {
		return persistence.ErrDuplicate
	}

	return r.mapper.MapError(err)
}

// boolToInt converts a bool to its SQLite integer representation
func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

// nullableTime converts an optional timestamp into its SQL representation
func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.Format(time.RFC3339)
}
