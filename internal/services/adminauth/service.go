package adminauth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/promoarcade/snakesladders/internal/dependencies/clock"
	"github.com/promoarcade/snakesladders/internal/model"
	"github.com/promoarcade/snakesladders/internal/storage"
)

const (
	// DefaultUsername and DefaultPassword seed the credential store on
	// first boot. The default password is expected to be changed
	// immediately; deployments should set it via configuration instead.
	DefaultUsername = "admin"
	DefaultPassword = "ChangeMe123!"

	// MinPasswordLength applies to password changes, not the bootstrap
	// value
	MinPasswordLength = 8

	bcryptCost = 10
)

// Config holds bootstrap credential settings
type Config struct {
	Username string
	Password string
}

// DefaultConfig returns the development bootstrap credentials
func DefaultConfig() Config {
	return Config{
		Username: DefaultUsername,
		Password: DefaultPassword,
	}
}

// Service manages the administrator credential
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates an admin auth service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Bootstrap seeds the credential store if it is empty. An existing
// credential is left untouched, so a password changed through the API
// survives restarts even when the configured bootstrap password differs.
func (s *Service) Bootstrap(ctx context.Context, cfg Config) error {
	_, err := s.storage.GetAdminCredential(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrAdminCredentialNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcryptCost)
	if err != nil {
		return err
	}

	if err := s.storage.SaveAdminCredential(ctx, &model.AdminCredential{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		UpdatedAt:    s.clock.Now(),
	}); err != nil {
		return err
	}

	if cfg.Password == DefaultPassword {
		s.logger.WarnContext(ctx, "admin credential seeded with default password; change it",
			slog.String("username", cfg.Username))
	} else {
		s.logger.InfoContext(ctx, "admin credential seeded",
			slog.String("username", cfg.Username))
	}
	return nil
}

// Login verifies the username and password against the stored credential.
// A missing credential and a wrong password both report
// ErrInvalidCredentials, so callers cannot probe for valid usernames.
func (s *Service) Login(ctx context.Context, username, password string) error {
	cred, err := s.storage.GetAdminCredential(ctx)
	if err != nil {
		if errors.Is(err, model.ErrAdminCredentialNotFound) {
			return model.ErrInvalidCredentials
		}
		return err
	}

	if cred.Username != username {
		return model.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return model.ErrInvalidCredentials
	}
	return nil
}

// ChangePassword replaces the admin password after verifying the current
// one
func (s *Service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return model.ErrPasswordTooWeak
	}

	cred, err := s.storage.GetAdminCredential(ctx)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(currentPassword)); err != nil {
		return model.ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}

	cred.PasswordHash = string(hash)
	cred.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveAdminCredential(ctx, cred); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "admin password changed",
		slog.String("username", cred.Username))
	return nil
}
