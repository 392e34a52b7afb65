package ports

import (
	"context"
	"time"

	"github.com/ecotriz/cee-visits/internal/core/cee"
	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// CreateVisitInput carries the fields of a new field visit.
type CreateVisitInput struct {
	ClientID     string
	TechnicianID string
	ScheduledAt  time.Time
	SiteAddress  string
	Notes        string
	Operations   []cee.Entry
}

// UpdateVisitInput is a partial update of visit details; nil fields are left
// untouched. Status changes go through UpdateStatus instead.
type UpdateVisitInput struct {
	TechnicianID *string
	ScheduledAt  *time.Time
	SiteAddress  *string
	Notes        *string
	Operations   []cee.Entry
}

// StatusCount is one row of the report summary.
type StatusCount struct {
	Status domain.VisitStatus `json:"status"`
	Count  int                `json:"count"`
}

// ReportSummary aggregates the actor-visible visits: counts by status plus
// credit totals over completed visits.
type ReportSummary struct {
	Visits        []StatusCount `json:"visits"`
	TotalKWhCumac float64       `json:"total_kwh_cumac"`
	TotalValueEUR float64       `json:"total_value_eur"`
	RatePerMWh    float64       `json:"rate_eur_per_mwh"`
}

type VisitService interface {
	Create(ctx context.Context, actor *domain.User, input CreateVisitInput) (*domain.Visit, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Visit, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Visit, error)
	Update(ctx context.Context, actor *domain.User, id string, input UpdateVisitInput) (*domain.Visit, error)
	UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.VisitStatus, notes string) (*domain.Visit, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	ReportSummary(ctx context.Context, actor *domain.User) (*ReportSummary, error)
}
