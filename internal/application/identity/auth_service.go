package identity

import (
	"context"
	"errors"
	"time"

	"github.com/erp/pos/internal/application/validation"
	"github.com/erp/pos/internal/domain/identity"
	"github.com/erp/pos/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrStoreUnavailable is returned when registration cannot read or write the store
var ErrStoreUnavailable = shared.NewDomainError("STORE_UNAVAILABLE", "Credential store is unavailable")

// AuthService handles login and registration against the credential store
type AuthService struct {
	repo   identity.CredentialRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(repo identity.CredentialRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Login checks the credentials against the store. It fails closed: a store
// that cannot be read denies access the same way a wrong password does.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	s.logger.Info("Login attempt", zap.String("username", input.Username))

	creds, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("Credential store unreadable, denying login",
			zap.String("username", input.Username),
			zap.Error(err))
		return nil, identity.ErrInvalidCredentials
	}

	if _, ok := identity.FindMatch(creds, input.Username, input.Password); !ok {
		s.logger.Warn("Invalid login attempt", zap.String("username", input.Username))
		return nil, identity.ErrInvalidCredentials
	}

	result := &LoginResult{
		SessionID:  uuid.New(),
		Username:   input.Username,
		LoggedInAt: s.now(),
	}
	s.logger.Info("User logged in",
		zap.String("username", input.Username),
		zap.String("session_id", result.SessionID.String()))
	return result, nil
}

// Register appends a new credential. A missing store counts as empty; any
// other read failure rejects the registration.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	cred, err := identity.NewCredential(input.Username, input.Password)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindAll(ctx)
	if err != nil && !errors.Is(err, identity.ErrStoreNotFound) {
		s.logger.Error("Failed to read credential store", zap.Error(err))
		return ErrStoreUnavailable
	}

	if err := identity.CheckRegistration(existing, cred.Username); err != nil {
		s.logger.Warn("Registration rejected",
			zap.String("username", cred.Username),
			zap.String("reason", shared.CodeOf(err)))
		return err
	}

	if err := s.repo.Append(ctx, cred); err != nil {
		s.logger.Error("Failed to append credential", zap.String("username", cred.Username), zap.Error(err))
		return ErrStoreUnavailable
	}

	s.logger.Info("User registered", zap.String("username", cred.Username))
	return nil
}

// HasAccount reports whether registration is already closed. A store that
// exists but cannot be read counts as having an account, since registering
// into it would fail anyway.
func (s *AuthService) HasAccount(ctx context.Context) bool {
	creds, err := s.repo.FindAll(ctx)
	if err != nil {
		return !errors.Is(err, identity.ErrStoreNotFound)
	}
	return len(creds) > 0
}
