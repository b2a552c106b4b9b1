package domain

import (
	"strings"
	"time"

	"github.com/prohmpiriya/courtside-tickets/internal/pricing"
	"github.com/shopspring/decimal"
)

// TicketStatus represents the approval state of a ticket request
type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusApproved  TicketStatus = "approved"
	TicketStatusRejected  TicketStatus = "rejected"
	TicketStatusCompleted TicketStatus = "completed"
)

// Quantity bounds for a single ticket request
const (
	MinTicketQuantity = 1
	MaxTicketQuantity = 10
)

// allowedTransitions lists every status change an admin may make.
// Rejected and completed have no outgoing edges.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusPending:  {TicketStatusApproved, TicketStatusRejected},
	TicketStatusApproved: {TicketStatusCompleted, TicketStatusRejected, TicketStatusPending},
}

// ParseTicketStatus normalizes s to a known status
func ParseTicketStatus(s string) (TicketStatus, bool) {
	status := TicketStatus(strings.ToLower(strings.TrimSpace(s)))
	return status, status.IsValid()
}

// IsValid checks if the status is a valid TicketStatus
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusPending, TicketStatusApproved, TicketStatusRejected, TicketStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s TicketStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether moving from s to next is permitted.
// Staying in the same state is always permitted.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// String returns the string representation of TicketStatus
func (s TicketStatus) String() string {
	return string(s)
}

// Ticket represents a ticket request entity
type Ticket struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Game            string           `json:"game"`
	SectionType     pricing.Category `json:"section_type"`
	Section         string           `json:"section"`
	Quantity        int              `json:"quantity"`
	BasePrice       decimal.Decimal  `json:"base_price"`
	ServiceFee      decimal.Decimal  `json:"service_fee"`
	ProcessingFee   decimal.Decimal  `json:"processing_fee"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
	Status          TicketStatus     `json:"status"`
	AdminNotes      string           `json:"admin_notes"`
	SpecialRequests string           `json:"special_requests"`
	Version         int              `json:"version"`
	CreatedAt       time.Time        `json:"created_at"`
	LastUpdated     time.Time        `json:"last_updated"`
}

// ApplyPrice overwrites the stored price fields with a freshly computed breakdown
func (t *Ticket) ApplyPrice(b pricing.Breakdown) {
	t.BasePrice = b.BasePrice
	t.ServiceFee = b.ServiceFee
	t.ProcessingFee = b.ProcessingFee
	t.TotalPrice = b.TotalPrice
}

// Reprice recomputes the price from the ticket's current attributes
func (t *Ticket) Reprice() {
	t.ApplyPrice(pricing.Compute(t.SectionType, t.Section, t.Quantity))
}

// IsOwnedBy reports whether userID requested the ticket
func (t *Ticket) IsOwnedBy(userID string) bool {
	return userID != "" && t.UserID == userID
}

// ValidateQuantity checks the quantity bounds
func ValidateQuantity(q int) error {
	if q < MinTicketQuantity || q > MaxTicketQuantity {
		return NewValidationError("quantity", "must be between 1 and 10")
	}
	return nil
}

// TicketFilter narrows an admin listing. Empty fields match everything.
type TicketFilter struct {
	Status      TicketStatus
	SectionType pricing.Category
	UserID      string
}
