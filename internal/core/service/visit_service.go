package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ecotriz/cee-visits/internal/core/cee"
	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

// VisitService implements the field-visit lifecycle. CEE credits are derived
// at write time so stored visits always carry consistent totals.
type VisitService struct {
	visits     ports.VisitRepository
	clients    ports.ClientRepository
	ratePerMWh float64
	logger     zerolog.Logger
}

func NewVisitService(visits ports.VisitRepository, clients ports.ClientRepository, ratePerMWh float64, logger zerolog.Logger) *VisitService {
	return &VisitService{visits: visits, clients: clients, ratePerMWh: ratePerMWh, logger: logger}
}

// Create schedules a visit. A client admin may only create visits for their
// own tenant; the target tenant must exist.
func (s *VisitService) Create(ctx context.Context, actor *domain.User, input ports.CreateVisitInput) (*domain.Visit, error) {
	if actor.Role == domain.RoleClientAdmin && input.ClientID != actor.ClientID {
		return nil, domain.ErrForbidden
	}
	if _, err := s.clients.FindByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	visit := &domain.Visit{
		ID:           uuid.NewString(),
		ClientID:     input.ClientID,
		TechnicianID: input.TechnicianID,
		ScheduledAt:  input.ScheduledAt,
		SiteAddress:  input.SiteAddress,
		Status:       domain.VisitScheduled,
		Notes:        input.Notes,
		StatusHistory: []domain.StatusChange{
			{Status: domain.VisitScheduled, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.applyOperations(visit, input.Operations); err != nil {
		return nil, err
	}

	created, err := s.visits.Create(ctx, visit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create visit")
		return nil, err
	}

	s.logger.Info().Str("visit_id", created.ID).Str("client_id", created.ClientID).Msg("visit scheduled")
	return created, nil
}

func (s *VisitService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Visit, error) {
	return s.visibleVisit(ctx, actor, id)
}

// List returns the visits the actor may see: everything for admins, the
// tenant's visits for client admins, their own assignments for technicians.
func (s *VisitService) List(ctx context.Context, actor *domain.User) ([]*domain.Visit, error) {
	return s.visits.List(ctx, s.scopeFilter(actor))
}

func (s *VisitService) Update(ctx context.Context, actor *domain.User, id string, input ports.UpdateVisitInput) (*domain.Visit, error) {
	visit, err := s.visibleVisit(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.TechnicianID != nil {
		visit.TechnicianID = *input.TechnicianID
	}
	if input.ScheduledAt != nil {
		visit.ScheduledAt = *input.ScheduledAt
	}
	if input.SiteAddress != nil {
		visit.SiteAddress = *input.SiteAddress
	}
	if input.Notes != nil {
		visit.Notes = *input.Notes
	}
	if input.Operations != nil {
		if err := s.applyOperations(visit, input.Operations); err != nil {
			return nil, err
		}
	}
	visit.UpdatedAt = time.Now().UTC()

	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// UpdateStatus advances the visit state machine and appends to the history.
func (s *VisitService) UpdateStatus(ctx context.Context, actor *domain.User, id string, status domain.VisitStatus, notes string) (*domain.Visit, error) {
	if !status.Known() {
		return nil, domain.ErrUnknownStatus
	}

	visit, err := s.visibleVisit(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !visit.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	visit.Status = status
	visit.StatusHistory = append(visit.StatusHistory, domain.StatusChange{Status: status, Timestamp: now, Notes: notes})
	visit.UpdatedAt = now

	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, err
	}

	s.logger.Info().Str("visit_id", visit.ID).Str("status", string(status)).Msg("visit status updated")
	return visit, nil
}

func (s *VisitService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if _, err := s.visibleVisit(ctx, actor, id); err != nil {
		return err
	}
	if err := s.visits.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("visit_id", id).Str("actor_id", actor.ID).Msg("visit deleted")
	return nil
}

// ReportSummary aggregates the actor-visible visits: counts by status and
// credit totals over completed visits.
func (s *VisitService) ReportSummary(ctx context.Context, actor *domain.User) (*ports.ReportSummary, error) {
	visits, err := s.visits.List(ctx, s.scopeFilter(actor))
	if err != nil {
		return nil, err
	}

	counts := map[domain.VisitStatus]int{}
	var totalCumac float64
	for _, v := range visits {
		counts[v.Status]++
		if v.Status == domain.VisitCompleted {
			totalCumac += v.TotalKWhCumac
		}
	}

	summary := &ports.ReportSummary{
		TotalKWhCumac: totalCumac,
		TotalValueEUR: cee.MonetaryValue(totalCumac, s.ratePerMWh),
		RatePerMWh:    s.ratePerMWh,
	}
	for _, status := range []domain.VisitStatus{domain.VisitScheduled, domain.VisitInProgress, domain.VisitCompleted, domain.VisitCancelled} {
		summary.Visits = append(summary.Visits, ports.StatusCount{Status: status, Count: counts[status]})
	}
	return summary, nil
}

// applyOperations values the entries and replaces the visit's operations and
// totals. Invalid entries reject the whole write.
func (s *VisitService) applyOperations(visit *domain.Visit, entries []cee.Entry) error {
	result, err := cee.Compute(entries, s.ratePerMWh)
	if err != nil {
		return err
	}

	ops := make([]domain.VisitOperation, 0, len(result.Entries))
	for _, e := range result.Entries {
		ops = append(ops, domain.VisitOperation{
			TypeCode: e.TypeCode,
			Quantity: e.Quantity,
			Zone:     e.Zone,
			KWhCumac: e.KWhCumac,
			ValueEUR: cee.MonetaryValue(e.KWhCumac, s.ratePerMWh),
		})
	}
	visit.Operations = ops
	visit.TotalKWhCumac = result.TotalKWhCumac
	visit.TotalValueEUR = result.TotalValueEUR
	return nil
}

// visibleVisit loads a visit and applies scope-masking: outside the actor's
// scope the visit simply does not exist.
func (s *VisitService) visibleVisit(ctx context.Context, actor *domain.User, id string) (*domain.Visit, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case domain.RoleClientAdmin:
		if visit.ClientID != actor.ClientID {
			return nil, domain.ErrVisitNotFound
		}
	case domain.RoleTechnician:
		if visit.TechnicianID != actor.ID {
			return nil, domain.ErrVisitNotFound
		}
	}
	return visit, nil
}

func (s *VisitService) scopeFilter(actor *domain.User) ports.VisitFilter {
	switch actor.Role {
	case domain.RoleClientAdmin:
		return ports.VisitFilter{ClientID: actor.ClientID}
	case domain.RoleTechnician:
		return ports.VisitFilter{TechnicianID: actor.ID}
	}
	return ports.VisitFilter{}
}
