package ports

import (
	"context"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
	ClientID  string
}

// AuthResult is returned on successful registration or login: a fresh session
// token plus the public profile. The password hash never leaves the service.
type AuthResult struct {
	Token  string
	User   *domain.User
	Client *domain.ClientSummary
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// RequestPasswordReset mints an opaque single-use token valid for one hour
	// and hands it to the notifier. Delivery is fire-and-forget.
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// Logout revokes the presented session token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
