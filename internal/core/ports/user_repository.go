package ports

import (
	"context"
	"time"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Email uniqueness is enforced by the store; Create surfaces a violation as
// domain.ErrEmailTaken rather than pre-checking and racing.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users, or only those of one tenant when clientID is set.
	List(ctx context.Context, clientID string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error
	// RedeemResetToken atomically matches an unexpired reset token, installs
	// the new password hash and clears the token pair. Exactly-once: a second
	// redemption of the same token fails with domain.ErrInvalidResetToken.
	RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error)
}
