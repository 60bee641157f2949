package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// CredentialRepository resolves staff accounts for login and session checks.
type CredentialRepository interface {
	GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error)
	GetUser(ctx context.Context, id string) (User, error)
}

// SessionStore persists issued session tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	UpdateSession(ctx context.Context, session Session) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

const defaultSessionTTL = 12 * time.Hour

// AuthService issues, refreshes, revokes and validates staff sessions.
type AuthService struct {
	credentials    CredentialRepository
	sessions       SessionStore
	verifyPassword PasswordVerifier
	tokenGenerator func() string
	now            func() time.Time
	sessionTTL     time.Duration
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(credentials CredentialRepository, sessions SessionStore, verify PasswordVerifier, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration) *AuthService {
	return NewAuthServiceWithLogger(credentials, sessions, verify, tokenGenerator, now, sessionTTL, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(credentials CredentialRepository, sessions SessionStore, verify PasswordVerifier, tokenGenerator func() string, now func() time.Time, sessionTTL time.Duration, logger *slog.Logger) *AuthService {
	if verify == nil {
		verify = VerifyPassword
	}
	if tokenGenerator == nil {
		tokenGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		credentials:    credentials,
		sessions:       sessions,
		verifyPassword: verify,
		tokenGenerator: tokenGenerator,
		now:            now,
		sessionTTL:     sessionTTL,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// issueSession builds a fresh session for the user. Two generator calls per
// session: one for the record ID, one for the opaque token.
func (s *AuthService) issueSession(userID, fingerprint string, now time.Time) Session {
	id := s.tokenGenerator()
	token := s.tokenGenerator()
	if token == "" {
		token = id
	}
	return Session{
		ID:          id,
		UserID:      userID,
		Token:       token,
		Fingerprint: strings.TrimSpace(fingerprint),
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiresAt:   now.Add(s.sessionTTL),
	}
}

// sessionState reports whether a stored session can still be used. Revocation
// is checked before expiry so a revoked token never reads as merely expired.
func sessionState(session Session, now time.Time) error {
	if session.RevokedAt != nil && !session.RevokedAt.IsZero() {
		return ErrSessionRevoked
	}
	if !session.ExpiresAt.IsZero() && !session.ExpiresAt.After(now) {
		return ErrSessionExpired
	}
	return nil
}

// Authenticate checks an email/password pair and opens a session for the
// account. Unknown emails and wrong passwords collapse into the same error so
// callers cannot probe which accounts exist.
func (s *AuthService) Authenticate(ctx context.Context, params AuthenticateParams) (result AuthenticateResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.credentials == nil {
		err = fmt.Errorf("credential repository not configured")
		return
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	logger := s.loggerWith(ctx, "Authenticate", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"user_id", result.User.ID,
			"session_id", result.Session.ID,
		).InfoContext(ctx, "session opened")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	creds, lookupErr := s.credentials.GetUserCredentialsByEmail(ctx, email)
	if lookupErr != nil {
		err = lookupErr
		if errors.Is(lookupErr, ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}
	if creds.Disabled {
		err = ErrAccountDisabled
		return
	}
	if s.verifyPassword(creds.PasswordHash, params.Password) != nil {
		err = ErrInvalidCredentials
		return
	}

	now := s.now()
	session := s.issueSession(creds.User.ID, params.Fingerprint, now)

	if s.sessions != nil {
		if err = s.sessions.DeleteExpiredSessions(ctx, now); err != nil {
			return
		}
		session, err = s.sessions.CreateSession(ctx, session)
		if err != nil {
			return
		}
	}

	result = AuthenticateResult{User: creds.User, Session: session}
	return
}

// RefreshSession swaps the token of a live session for a new one and pushes
// its expiry out by the configured TTL. Revoked and expired sessions cannot
// be refreshed back to life.
func (s *AuthService) RefreshSession(ctx context.Context, params RefreshSessionParams) (result RefreshSessionResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session store not configured")
		return
	}

	token := strings.TrimSpace(params.Token)
	logger := s.loggerWith(ctx, "RefreshSession", "token_provided", token != "")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "session refresh rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With(
			"session_id", result.Session.ID,
			"user_id", result.Session.UserID,
		).InfoContext(ctx, "session refreshed")
	}()

	if token == "" {
		err = ErrInvalidCredentials
		return
	}

	session, lookupErr := s.sessions.GetSession(ctx, token)
	if lookupErr != nil {
		err = lookupErr
		if errors.Is(lookupErr, ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	now := s.now()
	if err = sessionState(session, now); err != nil {
		return
	}

	if rotated := s.tokenGenerator(); rotated != "" {
		session.Token = rotated
	}
	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.sessionTTL)
	if fingerprint := strings.TrimSpace(params.Fingerprint); fingerprint != "" {
		session.Fingerprint = fingerprint
	}

	session, err = s.sessions.UpdateSession(ctx, session)
	if err != nil {
		return
	}

	result = RefreshSessionResult{Session: session}
	return
}

// RevokeSession closes the session behind a token. Expired sessions are
// pruned opportunistically afterwards; a prune failure does not undo the
// revocation and is only logged.
func (s *AuthService) RevokeSession(ctx context.Context, token string) error {
	if s == nil {
		return fmt.Errorf("AuthService is nil")
	}
	if s.sessions == nil {
		return fmt.Errorf("session store not configured")
	}

	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return ErrInvalidCredentials
	}

	logger := s.loggerWith(ctx, "RevokeSession")

	now := s.now()
	if _, err := s.sessions.RevokeSession(ctx, trimmed, now); err != nil {
		if errors.Is(err, ErrNotFound) {
			err = ErrInvalidCredentials
		}
		logger.ErrorContext(ctx, "session revocation rejected", "error", err, "error_kind", ErrorKind(err))
		return err
	}

	if err := s.sessions.DeleteExpiredSessions(ctx, now); err != nil {
		logger.WarnContext(ctx, "failed to prune expired sessions", "error", err)
	}

	logger.InfoContext(ctx, "session revoked")
	return nil
}

// ValidateSession resolves a token into the acting principal. The account is
// re-read on every call so disabling a user locks out their live sessions
// immediately.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (principal Principal, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.sessions == nil {
		err = fmt.Errorf("session store not configured")
		return
	}
	if s.credentials == nil {
		err = fmt.Errorf("credential repository not configured")
		return
	}

	trimmed := strings.TrimSpace(token)
	logger := s.loggerWith(ctx, "ValidateSession", "token_provided", trimmed != "")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "session validation rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("principal_id", principal.UserID).InfoContext(ctx, "session validated")
	}()

	if trimmed == "" {
		err = ErrInvalidCredentials
		return
	}

	session, lookupErr := s.sessions.GetSession(ctx, trimmed)
	if lookupErr != nil {
		err = lookupErr
		if errors.Is(lookupErr, ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}
	if err = sessionState(session, s.now()); err != nil {
		return
	}

	user, lookupErr := s.credentials.GetUser(ctx, session.UserID)
	if lookupErr != nil {
		err = lookupErr
		if errors.Is(lookupErr, ErrNotFound) {
			err = ErrUnauthorized
		}
		return
	}
	if user.Disabled {
		err = ErrAccountDisabled
		return
	}

	principal = Principal{UserID: user.ID, IsAdmin: user.IsAdmin}
	return
}
