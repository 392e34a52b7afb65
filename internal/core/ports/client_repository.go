package ports

import (
	"context"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// ClientRepository defines the persistence contract for tenants.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error
}
