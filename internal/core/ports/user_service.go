package ports

import (
	"context"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// UserDetail pairs a user with the summary of its owning tenant, if any.
type UserDetail struct {
	User   *domain.User
	Client *domain.ClientSummary
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *domain.Role
	ClientID  *string
}

// UpdateProfileInput is the self-service subset of UpdateUserInput.
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UserService implements user administration. Every operation takes the
// acting user; tenant scoping and scope-masking happen here, not in handlers.
type UserService interface {
	List(ctx context.Context, actor *domain.User) ([]*UserDetail, error)
	Get(ctx context.Context, actor *domain.User, id string) (*UserDetail, error)
	Update(ctx context.Context, actor *domain.User, id string, input UpdateUserInput) (*UserDetail, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	UpdateProfile(ctx context.Context, actor *domain.User, input UpdateProfileInput) (*UserDetail, error)
}
