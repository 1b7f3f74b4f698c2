package auth

import (
	"context"

	"github.com/mmynk/vibewalk/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account with the given username and credential.
	// Returns ErrUsernameExists if the username is taken.
	Register(ctx context.Context, username, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Any mismatch yields ErrInvalidCredentials, whichever field was wrong.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)
}
