package client

import (
	"context"
	"time"

	"github.com/avasilyev/cmskeeper/internal/client/models"
)

// Client is the credential service capability consumed by the session core.
// It owns the stored session token: callers trigger its lifecycle (written on
// a successful Login/Register, deleted on Logout) but never interpret it.
//
// Contract:
//   - Login: exchange credentials for a session token and store it.
//   - Register: create an account remotely, then store the returned token.
//   - Logout: delete the stored token.
//   - Token: return the stored token, or "" when absent.
//   - CurrentUser: fetch the principal owning the stored token.
//   - TokenExpiry: expiry of the stored token, for display only.
//   - Close: release underlying resources.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, identifier string, password []byte) error
	Register(ctx context.Context, username, email string, password []byte) error
	Logout(ctx context.Context) error
	Token(ctx context.Context) (string, error)
	CurrentUser(ctx context.Context) (models.User, error)
	TokenExpiry(ctx context.Context) (time.Time, error)
	Close() error
}
