// Package service implements the authentication flows: registration, login,
// password change, and logout. Flows validate nothing themselves - callers run
// payloads through the schema engine first - but they own credential checks,
// token issue, and session state propagation.
package service

import (
	"context"
	"errors"
	"log/slog"

	"propertyhub/internal/auth/models"
	"propertyhub/pkg/domain"
	dErrors "propertyhub/pkg/domain-errors"
	"propertyhub/pkg/secrets"
)

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id domain.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id domain.UserID, passwordHash string) error
}

// TokenIssuer signs fresh access tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, userID domain.UserID, role domain.RoleID) (string, error)
}

// TokenPersister writes the issued token to the client-visible store.
type TokenPersister interface {
	Persist(ctx context.Context, token string) error
}

// SessionUpdater is the session manager seam: flows push fresh tokens into it
// and delegate logout so auth state has a single owner.
type SessionUpdater interface {
	UpdateAuthState(ctx context.Context, token string, role domain.RoleID)
	Logout(ctx context.Context)
}

// Service wires the authentication flows.
type Service struct {
	users    UserStore
	issuer   TokenIssuer
	tokens   TokenPersister
	sessions SessionUpdater
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger overrides the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs the auth service.
func New(users UserStore, issuer TokenIssuer, tokens TokenPersister, sessions SessionUpdater, opts ...Option) (*Service, error) {
	if users == nil || issuer == nil || tokens == nil || sessions == nil {
		return nil, errors.New("users, issuer, tokens, and sessions are required")
	}
	s := &Service{
		users:    users,
		issuer:   issuer,
		tokens:   tokens,
		sessions: sessions,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Register creates an account and signs the caller in immediately.
func (s *Service) Register(ctx context.Context, in models.RegisterInput) (*models.AuthResult, error) {
	role := in.Role
	if !role.IsValid() {
		role = domain.RoleTenant
	}

	hash, err := secrets.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Role:         role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	observeUserCreated()

	tok, err := s.completeSignIn(ctx, user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{User: user, Token: tok}, nil
}

// Login authenticates credentials and establishes the session. Lookup and
// password failures collapse into one unauthorized answer so the response
// does not reveal which half was wrong.
func (s *Service) Login(ctx context.Context, creds models.Credentials) (*models.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		observeAuthFailure()
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}
	if err := secrets.Verify(creds.Password, user.PasswordHash); err != nil {
		observeAuthFailure()
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	tok, err := s.completeSignIn(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "login",
		"user_id", user.ID.String(),
		"role", user.Role.String(),
		"device", creds.Device,
	)
	return &models.AuthResult{User: user, Token: tok}, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *Service) ChangePassword(ctx context.Context, userID domain.UserID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := secrets.Verify(currentPassword, user.PasswordHash); err != nil {
		observeAuthFailure()
		return dErrors.New(dErrors.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := secrets.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// Logout delegates to the session manager, which purges the stored token and
// resets auth state.
func (s *Service) Logout(ctx context.Context) {
	s.sessions.Logout(ctx)
}

// completeSignIn issues a token, persists it, and updates session state.
// Persist failures are logged but do not fail the sign-in: the session
// manager already holds the fresh token and the periodic recheck will retry
// convergence against the store.
func (s *Service) completeSignIn(ctx context.Context, user *models.User) (string, error) {
	tok, err := s.issuer.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not issue token")
	}
	if err := s.tokens.Persist(ctx, tok); err != nil {
		s.logger.WarnContext(ctx, "token persist failed after sign-in", "error", err)
	}
	s.sessions.UpdateAuthState(ctx, tok, user.Role)
	return tok, nil
}
