package ports

import (
	"context"

	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// VisitFilter narrows List to one tenant and/or one technician.
// Zero values mean "no restriction".
type VisitFilter struct {
	ClientID     string
	TechnicianID string
}

// VisitRepository defines the persistence contract for field visits.
type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error)
	FindByID(ctx context.Context, id string) (*domain.Visit, error)
	List(ctx context.Context, filter VisitFilter) ([]*domain.Visit, error)
	Update(ctx context.Context, visit *domain.Visit) error
	Delete(ctx context.Context, id string) error
}
