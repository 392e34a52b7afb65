package ports

import (
	"context"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// ClientInput carries the writable fields of a tenant.
type ClientInput struct {
	Name         string
	ContactEmail string
	Phone        string
	Address      string
}

type ClientService interface {
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Client, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Client, error)
	Update(ctx context.Context, id string, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
