package handler

import (
	"time"

	"github.com/ecotriz/cee-visits/internal/core/cee"
	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// --- Request / Response types ---

// operationEntryRequest carries no validate tags: entry semantics (known type
// code, known zone, positive quantity) are checked by the calculator, which
// itemizes offenders per entry index.
type operationEntryRequest struct {
	TypeCode string  `json:"type_code"`
	Quantity float64 `json:"quantity"`
	Zone     string  `json:"zone"`
}

type createVisitRequest struct {
	ClientID     string                  `json:"client_id"     validate:"required"`
	TechnicianID string                  `json:"technician_id" validate:"required"`
	ScheduledAt  time.Time               `json:"scheduled_at"  validate:"required"`
	SiteAddress  string                  `json:"site_address"  validate:"required"`
	Notes        string                  `json:"notes,omitempty"`
	Operations   []operationEntryRequest `json:"operations,omitempty"`
}

type updateVisitRequest struct {
	TechnicianID *string                 `json:"technician_id,omitempty"`
	ScheduledAt  *time.Time              `json:"scheduled_at,omitempty"`
	SiteAddress  *string                 `json:"site_address,omitempty"`
	Notes        *string                 `json:"notes,omitempty"`
	Operations   []operationEntryRequest `json:"operations,omitempty"`
}

type updateVisitStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes,omitempty"`
}

type visitOperationResponse struct {
	TypeCode string  `json:"type_code"`
	Quantity float64 `json:"quantity"`
	Zone     string  `json:"zone"`
	KWhCumac float64 `json:"kwh_cumac"`
	ValueEUR float64 `json:"value_eur"`
}

type statusChangeResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type visitResponse struct {
	ID            string                   `json:"id"`
	ClientID      string                   `json:"client_id"`
	TechnicianID  string                   `json:"technician_id"`
	ScheduledAt   time.Time                `json:"scheduled_at"`
	SiteAddress   string                   `json:"site_address"`
	Status        string                   `json:"status"`
	Notes         string                   `json:"notes,omitempty"`
	Operations    []visitOperationResponse `json:"operations"`
	TotalKWhCumac float64                  `json:"total_kwh_cumac"`
	TotalValueEUR float64                  `json:"total_value_eur"`
	StatusHistory []statusChangeResponse   `json:"status_history"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

type listVisitsResponse struct {
	Data []visitResponse `json:"data"`
}

func toVisitResponse(v *domain.Visit) visitResponse {
	ops := make([]visitOperationResponse, 0, len(v.Operations))
	for _, op := range v.Operations {
		ops = append(ops, visitOperationResponse(op))
	}
	history := make([]statusChangeResponse, 0, len(v.StatusHistory))
	for _, sc := range v.StatusHistory {
		history = append(history, statusChangeResponse{
			Status:    string(sc.Status),
			Timestamp: sc.Timestamp,
			Notes:     sc.Notes,
		})
	}
	return visitResponse{
		ID:            v.ID,
		ClientID:      v.ClientID,
		TechnicianID:  v.TechnicianID,
		ScheduledAt:   v.ScheduledAt,
		SiteAddress:   v.SiteAddress,
		Status:        string(v.Status),
		Notes:         v.Notes,
		Operations:    ops,
		TotalKWhCumac: v.TotalKWhCumac,
		TotalValueEUR: v.TotalValueEUR,
		StatusHistory: history,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func toEntries(ops []operationEntryRequest) []cee.Entry {
	if ops == nil {
		return nil
	}
	entries := make([]cee.Entry, 0, len(ops))
	for _, op := range ops {
		entries = append(entries, cee.Entry{
			TypeCode: op.TypeCode,
			Quantity: op.Quantity,
			Zone:     op.Zone,
		})
	}
	return entries
}
