package dto

import (
	"time"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/pricing"
	"github.com/shopspring/decimal"
)

// CreateTicketRequest represents a new ticket request.
// Field validation happens in the service so every entry point shares it.
type CreateTicketRequest struct {
	Game            string `json:"game"`
	SectionType     string `json:"section_type"`
	Section         string `json:"section"`
	Quantity        int    `json:"quantity"`
	SpecialRequests string `json:"special_requests"`
}

// OwnerUpdateTicketRequest represents an owner's edit of a pending ticket
type OwnerUpdateTicketRequest struct {
	Game            *string `json:"game"`
	SectionType     *string `json:"section_type"`
	Section         *string `json:"section"`
	Quantity        *int    `json:"quantity"`
	SpecialRequests *string `json:"special_requests"`
}

// IsEmpty reports whether no field was supplied
func (r *OwnerUpdateTicketRequest) IsEmpty() bool {
	return r.Game == nil && r.SectionType == nil && r.Section == nil && r.Quantity == nil && r.SpecialRequests == nil
}

// AdminUpdateTicketRequest represents an admin edit. Version, when set, must
// match the stored ticket.
type AdminUpdateTicketRequest struct {
	Game        *string `json:"game"`
	Section     *string `json:"section"`
	SectionType *string `json:"section_type"`
	Quantity    *int    `json:"quantity"`
	Status      *string `json:"status"`
	AdminNotes  *string `json:"admin_notes"`
	Version     *int    `json:"version"`
}

// QuoteRequest asks for a price preview without creating a ticket
type QuoteRequest struct {
	SectionType string `json:"section_type"`
	Section     string `json:"section"`
	Quantity    int    `json:"quantity"`
}

// TicketListFilter represents filters for the admin ticket listing
type TicketListFilter struct {
	Status      string `form:"status"`
	SectionType string `form:"section_type"`
	UserID      string `form:"user_id"`
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Game            string  `json:"game"`
	SectionType     string  `json:"section_type"`
	Section         string  `json:"section"`
	Quantity        int     `json:"quantity"`
	BasePrice       float64 `json:"base_price"`
	ServiceFee      float64 `json:"service_fee"`
	ProcessingFee   float64 `json:"processing_fee"`
	TotalPrice      float64 `json:"total_price"`
	Status          string  `json:"status"`
	AdminNotes      string  `json:"admin_notes"`
	SpecialRequests string  `json:"special_requests"`
	Version         int     `json:"version"`
	CreatedAt       string  `json:"created_at"`
	LastUpdated     string  `json:"last_updated"`
}

// NewTicketResponse converts a domain ticket
func NewTicketResponse(t *domain.Ticket) *TicketResponse {
	return &TicketResponse{
		ID:              t.ID,
		UserID:          t.UserID,
		Game:            t.Game,
		SectionType:     string(t.SectionType),
		Section:         t.Section,
		Quantity:        t.Quantity,
		BasePrice:       money(t.BasePrice),
		ServiceFee:      money(t.ServiceFee),
		ProcessingFee:   money(t.ProcessingFee),
		TotalPrice:      money(t.TotalPrice),
		Status:          string(t.Status),
		AdminNotes:      t.AdminNotes,
		SpecialRequests: t.SpecialRequests,
		Version:         t.Version,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		LastUpdated:     t.LastUpdated.Format(time.RFC3339),
	}
}

// NewTicketListResponse converts a slice of domain tickets
func NewTicketListResponse(tickets []*domain.Ticket) []*TicketResponse {
	out := make([]*TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, NewTicketResponse(t))
	}
	return out
}

// QuoteResponse is a priced preview
type QuoteResponse struct {
	SectionType   string  `json:"section_type"`
	Section       string  `json:"section"`
	Quantity      int     `json:"quantity"`
	BasePrice     float64 `json:"base_price"`
	ServiceFee    float64 `json:"service_fee"`
	ProcessingFee float64 `json:"processing_fee"`
	Subtotal      float64 `json:"subtotal"`
	Multiplier    float64 `json:"multiplier"`
	TotalPrice    float64 `json:"total_price"`
}

// NewQuoteResponse converts a price breakdown
func NewQuoteResponse(category pricing.Category, section string, quantity int, b pricing.Breakdown) *QuoteResponse {
	return &QuoteResponse{
		SectionType:   string(category),
		Section:       section,
		Quantity:      quantity,
		BasePrice:     money(b.BasePrice),
		ServiceFee:    money(b.ServiceFee),
		ProcessingFee: money(b.ProcessingFee),
		Subtotal:      money(b.Subtotal),
		Multiplier:    b.Multiplier.InexactFloat64(),
		TotalPrice:    money(b.TotalPrice),
	}
}

// SectionCatalogResponse lists the sections of one category
type SectionCatalogResponse struct {
	SectionType string   `json:"section_type"`
	BasePrice   float64  `json:"base_price"`
	Sections    []string `json:"sections"`
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
