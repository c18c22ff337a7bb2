package services

import (
	"context"
	"errors"

	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/platform/config"
	"github.com/codify-lk/receipts_backend/internal/utils"
)

// ErrInvalidCredentials is returned for any failed login attempt. The
// message is deliberately identical for unknown users and wrong
// passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// authService checks credentials against the configured user list.
// There is no user store behind it; this is the whole credential
// boundary.
type authService struct {
	users []config.UserCredential
}

// NewAuthService creates a new credential check service.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{users: cfg.Users}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Authenticate returns the canonical username on success. A configured
// bcrypt hash takes precedence; plaintext fallbacks are compared in
// constant time.
func (s *authService) Authenticate(ctx context.Context, username, password string) (string, error) {
	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		secret := u.PasswordHash
		if secret == "" && utils.IsBcryptHash(u.Password) {
			secret = u.Password
		}
		if secret != "" {
			if utils.CheckPasswordHash(password, secret) {
				return u.Username, nil
			}
			continue
		}
		if utils.SecureCompare(password, u.Password) {
			return u.Username, nil
		}
	}
	return "", ErrInvalidCredentials
}
