package domain

import (
	"errors"
	"time"
)

// VisitStatus represents the lifecycle state of a field visit.
type VisitStatus string

const (
	VisitScheduled  VisitStatus = "scheduled"
	VisitInProgress VisitStatus = "in_progress"
	VisitCompleted  VisitStatus = "completed"
	VisitCancelled  VisitStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[VisitStatus][]VisitStatus{
	VisitScheduled:  {VisitInProgress, VisitCancelled},
	VisitInProgress: {VisitCompleted, VisitCancelled},
}

var (
	ErrVisitNotFound     = errors.New("visit not found")
	ErrInvalidTransition = errors.New("invalid visit status transition")
	ErrUnknownStatus     = errors.New("unknown visit status")
)

// Known reports whether s is a recognized visit status.
func (s VisitStatus) Known() bool {
	switch s {
	case VisitScheduled, VisitInProgress, VisitCompleted, VisitCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s VisitStatus) CanTransitionTo(next VisitStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// VisitOperation is one CEE operation recorded during a visit, with its
// credit amount derived at write time.
type VisitOperation struct {
	TypeCode string  `json:"type_code"`
	Quantity float64 `json:"quantity"`
	Zone     string  `json:"zone"`
	KWhCumac float64 `json:"kwh_cumac"`
	ValueEUR float64 `json:"value_eur"`
}

// StatusChange records a single status transition on a visit.
type StatusChange struct {
	Status    VisitStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     string      `json:"notes,omitempty"`
}

// Visit is the core aggregate: a technician's CEE assessment appointment at a
// client site, carrying the operations surveyed there.
type Visit struct {
	ID            string           `json:"id"`
	ClientID      string           `json:"client_id"`
	TechnicianID  string           `json:"technician_id"`
	ScheduledAt   time.Time        `json:"scheduled_at"`
	SiteAddress   string           `json:"site_address"`
	Status        VisitStatus      `json:"status"`
	Notes         string           `json:"notes,omitempty"`
	Operations    []VisitOperation `json:"operations"`
	TotalKWhCumac float64          `json:"total_kwh_cumac"`
	TotalValueEUR float64          `json:"total_value_eur"`
	StatusHistory []StatusChange   `json:"status_history"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
