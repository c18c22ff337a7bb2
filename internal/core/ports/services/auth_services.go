package services

import "context"

// AuthSvcFacade performs the credential check against the configured
// user list. It returns the canonical username on success so the caller
// can mint a token for it.
type AuthSvcFacade interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
}
