package application

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/example/pousada-manager/internal/availability"
	"github.com/example/pousada-manager/internal/persistence"
)

// UserRepository captures the persistence operations needed by the user service.
type UserRepository interface {
	CreateUser(ctx context.Context, user User, passwordHash string) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	UpdateUser(ctx context.Context, user User, passwordHash string) (User, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]User, error)
}

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher func(password string) (string, error)

// UserService orchestrates validation, authorization, and persistence for accounts.
type UserService struct {
	users       UserRepository
	hashAccount PasswordHasher
	idGenerator func() string
	now         func() time.Time
}

// NewUserService wires dependencies for the user service.
func NewUserService(users UserRepository, hasher PasswordHasher, idGenerator func() string, now func() time.Time) *UserService {
	if hasher == nil {
		hasher = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		}
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, hashAccount: hasher, idGenerator: idGenerator, now: now}
}

// CreateUser validates input and persists a new account for administrators.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}
	if !params.Principal.IsAdmin {
		return User{}, ErrUnauthorized
	}

	normalized := normalizeUserInput(params.Input)
	vErr := validateUserInput(normalized, true)
	if vErr.HasErrors() {
		return User{}, vErr
	}

	birthDate, vErr := parseOptionalBirthDate(normalized.BirthDate)
	if vErr.HasErrors() {
		return User{}, vErr
	}

	passwordHash, err := s.hashAccount(normalized.Password)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:        s.idGenerator(),
		Email:     normalized.Email,
		Name:      normalized.Name,
		Phone:     normalized.Phone,
		Address:   normalizeOptionalString(normalized.Address),
		BirthDate: birthDate,
		IsAdmin:   normalized.IsAdmin,
		CreatedAt: s.now(),
	}
	user.UpdatedAt = user.CreatedAt

	if s.users == nil {
		return user, nil
	}

	persisted, err := s.users.CreateUser(ctx, user, passwordHash)
	if err != nil {
		return User{}, mapUserRepoError(err)
	}

	return persisted, nil
}

// UpdateUser validates input and updates an existing account for administrators.
// An empty password keeps the stored hash.
func (s *UserService) UpdateUser(ctx context.Context, params UpdateUserParams) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}
	if !params.Principal.IsAdmin {
		return User{}, ErrUnauthorized
	}
	if s.users == nil {
		return User{}, fmt.Errorf("user repository not configured")
	}

	existing, err := s.users.GetUser(ctx, params.UserID)
	if err != nil {
		return User{}, mapUserRepoError(err)
	}

	normalized := normalizeUserInput(params.Input)
	vErr := validateUserInput(normalized, false)
	if vErr.HasErrors() {
		return User{}, vErr
	}

	birthDate, vErr := parseOptionalBirthDate(normalized.BirthDate)
	if vErr.HasErrors() {
		return User{}, vErr
	}

	var passwordHash string
	if normalized.Password != "" {
		passwordHash, err = s.hashAccount(normalized.Password)
		if err != nil {
			return User{}, err
		}
	}

	updated := existing
	updated.Email = normalized.Email
	updated.Name = normalized.Name
	updated.Phone = normalized.Phone
	updated.Address = normalizeOptionalString(normalized.Address)
	updated.BirthDate = birthDate
	updated.IsAdmin = normalized.IsAdmin
	updated.UpdatedAt = s.now()

	persisted, err := s.users.UpdateUser(ctx, updated, passwordHash)
	if err != nil {
		return User{}, mapUserRepoError(err)
	}

	return persisted, nil
}

// SetDisabled toggles whether an account can sign in.
func (s *UserService) SetDisabled(ctx context.Context, principal Principal, userID string, disabled bool) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}
	if !principal.IsAdmin {
		return User{}, ErrUnauthorized
	}
	if s.users == nil {
		return User{}, fmt.Errorf("user repository not configured")
	}

	existing, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return User{}, mapUserRepoError(err)
	}

	existing.Disabled = disabled
	existing.UpdatedAt = s.now()

	persisted, err := s.users.UpdateUser(ctx, existing, "")
	if err != nil {
		return User{}, mapUserRepoError(err)
	}

	return persisted, nil
}

// DeleteUser removes an account when requested by an administrator.
func (s *UserService) DeleteUser(ctx context.Context, principal Principal, userID string) error {
	if s == nil {
		return fmt.Errorf("UserService is nil")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	if s.users == nil {
		return fmt.Errorf("user repository not configured")
	}
	if principal.UserID == userID {
		vErr := &ValidationError{}
		vErr.add("user_id", "cannot delete the signed-in account")
		return vErr
	}

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return mapUserRepoError(err)
	}

	return nil
}

// ListUsers returns all accounts for administrators.
func (s *UserService) ListUsers(ctx context.Context, principal Principal) ([]User, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}
	if !principal.IsAdmin {
		return nil, ErrUnauthorized
	}
	if s.users == nil {
		return nil, nil
	}

	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, mapUserRepoError(err)
	}

	out := make([]User, len(users))
	copy(out, users)

	sort.Slice(out, func(i, j int) bool {
		if strings.EqualFold(out[i].Email, out[j].Email) {
			return out[i].ID < out[j].ID
		}
		return strings.ToLower(out[i].Email) < strings.ToLower(out[j].Email)
	})

	return out, nil
}

func normalizeUserInput(input UserInput) UserInput {
	return UserInput{
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   input.Address,
		BirthDate: input.BirthDate,
		Password:  input.Password,
		IsAdmin:   input.IsAdmin,
	}
}

func validateUserInput(input UserInput, passwordRequired bool) *ValidationError {
	vErr := &ValidationError{}

	if input.Email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		vErr.add("email", "email is invalid")
	}

	if input.Name == "" {
		vErr.add("name", "name is required")
	}

	if passwordRequired && input.Password == "" {
		vErr.add("password", "password is required")
	}
	if input.Password != "" && len(input.Password) < 8 {
		vErr.add("password", "password must have at least 8 characters")
	}

	return vErr
}

func parseOptionalBirthDate(value *string) (*time.Time, *ValidationError) {
	vErr := &ValidationError{}
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, vErr
	}

	parsed, err := availability.ParseDate(strings.TrimSpace(*value))
	if err != nil {
		vErr.add("birth_date", "birth date must be YYYY-MM-DD")
		return nil, vErr
	}
	return &parsed, vErr
}

func mapUserRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
