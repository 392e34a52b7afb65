package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecotriz/cee-visits/internal/core/cee"
	"github.com/ecotriz/cee-visits/internal/core/domain"
	"github.com/ecotriz/cee-visits/internal/core/ports"
)

const testRate = 8.5

func newVisitFixture(t *testing.T) (*VisitService, *stubVisitRepo, *stubClientRepo) {
	t.Helper()
	clients := newStubClientRepo()
	_, _ = clients.Create(context.Background(), &domain.Client{ID: "client-1", Name: "Acme Energie"})
	_, _ = clients.Create(context.Background(), &domain.Client{ID: "client-2", Name: "Bati Sud"})
	visits := newStubVisitRepo()
	return NewVisitService(visits, clients, testRate, zerolog.Nop()), visits, clients
}

func adminActor() *domain.User {
	return &domain.User{ID: "admin-1", Role: domain.RoleAdmin}
}

func clientAdminActor() *domain.User {
	return &domain.User{ID: "ca-1", Role: domain.RoleClientAdmin, ClientID: "client-1"}
}

func technicianActor() *domain.User {
	return &domain.User{ID: "tech-1", Role: domain.RoleTechnician, ClientID: "client-1"}
}

func createInput(clientID string) ports.CreateVisitInput {
	return ports.CreateVisitInput{
		ClientID:     clientID,
		TechnicianID: "tech-1",
		ScheduledAt:  time.Now().Add(48 * time.Hour),
		SiteAddress:  "12 rue des Lilas, Lyon",
		Operations: []cee.Entry{
			{TypeCode: "BAT-EN-101", Quantity: 100, Zone: cee.ZoneH1},
		},
	}
}

func TestVisitService_Create_DerivesTotals(t *testing.T) {
	svc, _, _ := newVisitFixture(t)

	visit, err := svc.Create(context.Background(), adminActor(), createInput("client-1"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if visit.Status != domain.VisitScheduled {
		t.Fatalf("new visit status = %s", visit.Status)
	}
	if math.Abs(visit.TotalKWhCumac-660000) > 1e-9 {
		t.Fatalf("total cumac = %v, want 660000", visit.TotalKWhCumac)
	}
	if math.Abs(visit.TotalValueEUR-5610) > 1e-9 {
		t.Fatalf("total value = %v, want 5610", visit.TotalValueEUR)
	}
	if len(visit.StatusHistory) != 1 {
		t.Fatalf("expected initial status history entry")
	}
}

func TestVisitService_Create_TenantRules(t *testing.T) {
	svc, _, _ := newVisitFixture(t)

	// Client admin cannot schedule for another tenant.
	if _, err := svc.Create(context.Background(), clientAdminActor(), createInput("client-2")); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Unknown tenant is rejected.
	if _, err := svc.Create(context.Background(), adminActor(), createInput("client-404")); err != domain.ErrClientNotFound {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestVisitService_Create_InvalidOperations(t *testing.T) {
	svc, _, _ := newVisitFixture(t)

	input := createInput("client-1")
	input.Operations = []cee.Entry{{TypeCode: "NOPE", Quantity: -1, Zone: "H7"}}
	_, err := svc.Create(context.Background(), adminActor(), input)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if _, ok := err.(*cee.ValidationError); !ok {
		t.Fatalf("expected *cee.ValidationError, got %T", err)
	}
}

func TestVisitService_Get_ScopeMasked(t *testing.T) {
	svc, _, _ := newVisitFixture(t)
	ctx := context.Background()

	mine, _ := svc.Create(ctx, adminActor(), createInput("client-1"))
	other, _ := svc.Create(ctx, adminActor(), createInput("client-2"))

	if _, err := svc.Get(ctx, clientAdminActor(), mine.ID); err != nil {
		t.Fatalf("same-tenant get failed: %v", err)
	}
	if _, err := svc.Get(ctx, clientAdminActor(), other.ID); err != domain.ErrVisitNotFound {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}
}

func TestVisitService_List_TechnicianSeesOwn(t *testing.T) {
	svc, _, _ := newVisitFixture(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, adminActor(), createInput("client-1"))
	foreign := createInput("client-1")
	foreign.TechnicianID = "tech-2"
	_, _ = svc.Create(ctx, adminActor(), foreign)

	visits, err := svc.List(ctx, technicianActor())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(visits) != 1 || visits[0].TechnicianID != "tech-1" {
		t.Fatalf("technician should see only their own visits, got %d", len(visits))
	}
}

func TestVisitService_StatusTransitions(t *testing.T) {
	svc, _, _ := newVisitFixture(t)
	ctx := context.Background()
	actor := adminActor()

	visit, _ := svc.Create(ctx, actor, createInput("client-1"))

	// scheduled → completed is not allowed.
	if _, err := svc.UpdateStatus(ctx, actor, visit.ID, domain.VisitCompleted, ""); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, actor, visit.ID, domain.VisitInProgress, "arrived on site"); err != nil {
		t.Fatalf("scheduled → in_progress: %v", err)
	}
	done, err := svc.UpdateStatus(ctx, actor, visit.ID, domain.VisitCompleted, "")
	if err != nil {
		t.Fatalf("in_progress → completed: %v", err)
	}
	if len(done.StatusHistory) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(done.StatusHistory))
	}

	// Completed is terminal.
	if _, err := svc.UpdateStatus(ctx, actor, visit.ID, domain.VisitCancelled, ""); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition from completed, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, actor, visit.ID, "lost", ""); err != domain.ErrUnknownStatus {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestVisitService_Update_RevaluesOperations(t *testing.T) {
	svc, _, _ := newVisitFixture(t)
	ctx := context.Background()
	actor := adminActor()

	visit, _ := svc.Create(ctx, actor, createInput("client-1"))

	updated, err := svc.Update(ctx, actor, visit.ID, ports.UpdateVisitInput{
		Operations: []cee.Entry{{TypeCode: "BAT-EN-101", Quantity: 100, Zone: cee.ZoneH3}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if math.Abs(updated.TotalKWhCumac-440000) > 1e-9 {
		t.Fatalf("total cumac = %v, want 440000", updated.TotalKWhCumac)
	}
}

func TestVisitService_ReportSummary(t *testing.T) {
	svc, _, _ := newVisitFixture(t)
	ctx := context.Background()
	actor := adminActor()

	a, _ := svc.Create(ctx, actor, createInput("client-1"))
	_, _ = svc.Create(ctx, actor, createInput("client-2"))

	_, _ = svc.UpdateStatus(ctx, actor, a.ID, domain.VisitInProgress, "")
	_, _ = svc.UpdateStatus(ctx, actor, a.ID, domain.VisitCompleted, "")

	summary, err := svc.ReportSummary(ctx, actor)
	if err != nil {
		t.Fatalf("ReportSummary: %v", err)
	}

	byStatus := map[domain.VisitStatus]int{}
	for _, row := range summary.Visits {
		byStatus[row.Status] = row.Count
	}
	if byStatus[domain.VisitCompleted] != 1 || byStatus[domain.VisitScheduled] != 1 {
		t.Fatalf("unexpected counts: %v", byStatus)
	}

	// Only the completed visit contributes to the totals.
	if math.Abs(summary.TotalKWhCumac-660000) > 1e-9 {
		t.Fatalf("total cumac = %v, want 660000", summary.TotalKWhCumac)
	}
	if math.Abs(summary.TotalValueEUR-5610) > 1e-9 {
		t.Fatalf("total value = %v, want 5610", summary.TotalValueEUR)
	}

	// Tenant-scoped report for a client admin.
	scoped, err := svc.ReportSummary(ctx, clientAdminActor())
	if err != nil {
		t.Fatalf("scoped ReportSummary: %v", err)
	}
	var total int
	for _, row := range scoped.Visits {
		total += row.Count
	}
	if total != 1 {
		t.Fatalf("client admin should see 1 visit, got %d", total)
	}
}

func TestVisitService_Delete(t *testing.T) {
	svc, repo, _ := newVisitFixture(t)
	ctx := context.Background()
	actor := adminActor()

	visit, _ := svc.Create(ctx, actor, createInput("client-1"))
	if err := svc.Delete(ctx, actor, visit.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, visit.ID); err != domain.ErrVisitNotFound {
		t.Fatalf("visit still present after delete")
	}
}
