// Package auth provides account registration, password login and the JWT
// tokens that identify callers to the RPC services.
package auth

import (
	"context"

	"github.com/mmynk/homegame/internal/models"
)

// Authenticator verifies account credentials. Services depend on this
// interface so a different login method can replace passwords later.
type Authenticator interface {
	// Register creates an account for email. The credential format depends
	// on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account for email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that may not be registered.
	ValidateCredential(credential string) error
}
