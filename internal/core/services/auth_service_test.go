package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codify-lk/receipts_backend/internal/core/services"
	"github.com/codify-lk/receipts_backend/internal/platform/config"
	"github.com/codify-lk/receipts_backend/internal/utils"
)

func TestAuthenticate_PlaintextCredential(t *testing.T) {
	svc := services.NewAuthService(&config.Config{
		Users: []config.UserCredential{
			{Username: "admin", Password: "Codify@26"},
		},
	})

	username, err := svc.Authenticate(context.Background(), "admin", "Codify@26")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := services.NewAuthService(&config.Config{
		Users: []config.UserCredential{
			{Username: "admin", Password: "Codify@26"},
		},
	})

	_, err := svc.Authenticate(context.Background(), "admin", "not-the-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc := services.NewAuthService(&config.Config{
		Users: []config.UserCredential{
			{Username: "admin", Password: "Codify@26"},
		},
	})

	_, err := svc.Authenticate(context.Background(), "nobody", "Codify@26")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthenticate_BcryptHashPreferred(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)

	svc := services.NewAuthService(&config.Config{
		Users: []config.UserCredential{
			{Username: "user", Password: "ignored-plaintext", PasswordHash: hash},
		},
	})

	username, err := svc.Authenticate(context.Background(), "user", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user", username)

	// The plaintext fallback must not work once a hash is configured
	_, err = svc.Authenticate(context.Background(), "user", "ignored-plaintext")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthenticate_BcryptLookingPasswordTreatedAsHash(t *testing.T) {
	hash, err := utils.HashPassword("hunter2")
	require.NoError(t, err)

	svc := services.NewAuthService(&config.Config{
		Users: []config.UserCredential{
			{Username: "user", Password: hash},
		},
	})

	username, err := svc.Authenticate(context.Background(), "user", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "user", username)
}
