package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/metrics"
	"github.com/prohmpiriya/courtside-tickets/internal/pricing"
	"github.com/prohmpiriya/courtside-tickets/internal/repository"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"github.com/prohmpiriya/courtside-tickets/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// TicketServiceConfig holds ticket workflow switches
type TicketServiceConfig struct {
	// EnforceSectionCatalog rejects sections not listed under their category
	EnforceSectionCatalog bool
}

// ticketService implements TicketService
type ticketService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	events  EventPublisher
	config  *TicketServiceConfig
	log     *logger.Logger
	now     func() time.Time
}

// NewTicketService creates a new TicketService
func NewTicketService(
	tickets repository.TicketRepository,
	users repository.UserRepository,
	events EventPublisher,
	config *TicketServiceConfig,
	log *logger.Logger,
) TicketService {
	if config == nil {
		config = &TicketServiceConfig{}
	}
	if events == nil {
		events = NoOpEventPublisher{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &ticketService{
		tickets: tickets,
		users:   users,
		events:  events,
		config:  config,
		log:     log,
		now:     time.Now,
	}
}

// CreateTicket creates a ticket owned by the caller
func (s *ticketService) CreateTicket(ctx context.Context, caller Caller, req *dto.CreateTicketRequest) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.create")

	if err := caller.authenticated(); err != nil {
		telemetry.EndSpan(span, err)
		return nil, err
	}

	ticket, err := s.create(ctx, caller, caller.UserID, req)
	telemetry.EndSpan(span, err)
	return ticket, err
}

// CreateTicketForUser creates a ticket on behalf of ownerID
func (s *ticketService) CreateTicketForUser(ctx context.Context, caller Caller, ownerID string, req *dto.CreateTicketRequest) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.create_for_user",
		attribute.String("owner_id", ownerID),
	)

	if err := caller.admin(); err != nil {
		telemetry.EndSpan(span, err)
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		telemetry.EndSpan(span, err)
		return nil, err
	}

	ticket, err := s.create(ctx, caller, ownerID, req)
	telemetry.EndSpan(span, err)
	return ticket, err
}

func (s *ticketService) create(ctx context.Context, caller Caller, ownerID string, req *dto.CreateTicketRequest) (*domain.Ticket, error) {
	game := strings.TrimSpace(req.Game)
	if game == "" {
		return nil, domain.NewValidationError("game", "is required")
	}
	section := strings.TrimSpace(req.Section)
	if section == "" {
		return nil, domain.NewValidationError("section", "is required")
	}
	category, err := parseCategory(req.SectionType)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.checkCatalog(category, section); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	ticket := &domain.Ticket{
		ID:              uuid.New().String(),
		UserID:          ownerID,
		Game:            game,
		SectionType:     category,
		Section:         section,
		Quantity:        req.Quantity,
		Status:          domain.TicketStatusPending,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Version:         1,
		CreatedAt:       now,
		LastUpdated:     now,
	}
	ticket.Reprice()

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	metrics.TicketCreated(string(category), ticket.TotalPrice.InexactFloat64())
	s.publish(ctx, NewTicketEvent(EventTicketCreated, ticket, caller.UserID))
	return ticket, nil
}

// GetTicket retrieves a ticket visible to the caller
func (s *ticketService) GetTicket(ctx context.Context, caller Caller, id string) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.get", attribute.String("ticket_id", id))

	ticket, err := s.visibleTicket(ctx, caller, id)
	telemetry.EndSpan(span, err)
	return ticket, err
}

// GetUserTicket retrieves a ticket that must belong to ownerID
func (s *ticketService) GetUserTicket(ctx context.Context, caller Caller, ownerID, id string) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.get_for_user", attribute.String("ticket_id", id))

	ticket, err := s.ownedTicket(ctx, caller, ownerID, id)
	telemetry.EndSpan(span, err)
	return ticket, err
}

// UpdateAsOwner edits a pending ticket owned by the caller
func (s *ticketService) UpdateAsOwner(ctx context.Context, caller Caller, id string, req *dto.OwnerUpdateTicketRequest) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.update_as_owner", attribute.String("ticket_id", id))

	ticket, err := s.updateAsOwner(ctx, caller, id, req)
	telemetry.EndSpan(span, err)
	return ticket, err
}

func (s *ticketService) updateAsOwner(ctx context.Context, caller Caller, id string, req *dto.OwnerUpdateTicketRequest) (*domain.Ticket, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, domain.NewValidationError("", "at least one field must be provided for update")
	}

	stored, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !stored.IsOwnedBy(caller.UserID) {
		return nil, domain.ErrAuthorization
	}
	if stored.Status != domain.TicketStatusPending {
		return nil, domain.ErrTicketNotEditable
	}

	ticket := *stored
	changes := ticketChanges{
		game:        req.Game,
		section:     req.Section,
		sectionType: req.SectionType,
		quantity:    req.Quantity,
	}
	if err := s.applyChanges(&ticket, changes); err != nil {
		return nil, err
	}
	if req.SpecialRequests != nil {
		ticket.SpecialRequests = strings.TrimSpace(*req.SpecialRequests)
	}
	ticket.LastUpdated = s.now().UTC()

	if err := s.save(ctx, &ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, NewTicketEvent(EventTicketUpdated, &ticket, caller.UserID))
	return &ticket, nil
}

// UpdateAsAdmin edits any ticket
func (s *ticketService) UpdateAsAdmin(ctx context.Context, caller Caller, id string, req *dto.AdminUpdateTicketRequest) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.update_as_admin", attribute.String("ticket_id", id))

	ticket, err := s.adminUpdate(ctx, caller, "", id, req)
	telemetry.EndSpan(span, err)
	return ticket, err
}

// UpdateUserTicket edits a ticket that must belong to ownerID
func (s *ticketService) UpdateUserTicket(ctx context.Context, caller Caller, ownerID, id string, req *dto.AdminUpdateTicketRequest) (*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.update_for_user", attribute.String("ticket_id", id))

	ticket, err := s.adminUpdate(ctx, caller, ownerID, id, req)
	telemetry.EndSpan(span, err)
	return ticket, err
}

// adminUpdate merges req onto the stored ticket. An empty ownerID skips the
// ownership check.
func (s *ticketService) adminUpdate(ctx context.Context, caller Caller, ownerID, id string, req *dto.AdminUpdateTicketRequest) (*domain.Ticket, error) {
	var (
		stored *domain.Ticket
		err    error
	)
	if ownerID == "" {
		if err := caller.admin(); err != nil {
			return nil, err
		}
		stored, err = s.tickets.GetByID(ctx, id)
	} else {
		stored, err = s.ownedTicket(ctx, caller, ownerID, id)
	}
	if err != nil {
		return nil, err
	}

	if req.Version != nil && *req.Version != stored.Version {
		metrics.VersionConflict()
		return nil, domain.ErrVersionConflict
	}

	ticket := *stored
	changes := ticketChanges{
		game:        req.Game,
		section:     req.Section,
		sectionType: req.SectionType,
		quantity:    req.Quantity,
	}
	if err := s.applyChanges(&ticket, changes); err != nil {
		return nil, err
	}

	if req.Status != nil {
		next, ok := domain.ParseTicketStatus(*req.Status)
		if !ok {
			return nil, domain.NewValidationError("status", "must be one of pending, approved, rejected, completed")
		}
		if !stored.Status.CanTransitionTo(next) {
			return nil, domain.ErrInvalidStatusTransition
		}
		ticket.Status = next
	}
	if req.AdminNotes != nil {
		ticket.AdminNotes = strings.TrimSpace(*req.AdminNotes)
	}
	ticket.LastUpdated = s.now().UTC()

	if err := s.save(ctx, &ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, NewTicketEvent(EventTicketUpdated, &ticket, caller.UserID))
	if ticket.Status != stored.Status {
		metrics.StatusTransition(string(stored.Status), string(ticket.Status))
		event := NewTicketEvent(EventTicketStatusChanged, &ticket, caller.UserID)
		event.PreviousStatus = string(stored.Status)
		s.publish(ctx, event)
	}
	return &ticket, nil
}

// ticketChanges holds the optional attribute edits shared by owner and
// admin updates. Nil means unchanged.
type ticketChanges struct {
	game        *string
	section     *string
	sectionType *string
	quantity    *int
}

// applyChanges validates and merges changes onto t, repricing when a
// pricing input moved.
func (s *ticketService) applyChanges(t *domain.Ticket, c ticketChanges) error {
	repriced := false

	if c.game != nil {
		game := strings.TrimSpace(*c.game)
		if game == "" {
			return domain.NewValidationError("game", "must not be empty")
		}
		t.Game = game
	}
	if c.sectionType != nil {
		category, err := parseCategory(*c.sectionType)
		if err != nil {
			return err
		}
		repriced = repriced || category != t.SectionType
		t.SectionType = category
	}
	if c.section != nil {
		section := strings.TrimSpace(*c.section)
		if section == "" {
			return domain.NewValidationError("section", "must not be empty")
		}
		repriced = repriced || section != t.Section
		t.Section = section
	}
	if c.quantity != nil {
		if err := domain.ValidateQuantity(*c.quantity); err != nil {
			return err
		}
		repriced = repriced || *c.quantity != t.Quantity
		t.Quantity = *c.quantity
	}

	if c.section != nil || c.sectionType != nil {
		if err := s.checkCatalog(t.SectionType, t.Section); err != nil {
			return err
		}
	}
	if repriced {
		t.Reprice()
	}
	return nil
}

func (s *ticketService) save(ctx context.Context, t *domain.Ticket) error {
	err := s.tickets.Update(ctx, t)
	if errors.Is(err, domain.ErrVersionConflict) {
		metrics.VersionConflict()
	}
	return err
}

// DeleteTicket permanently deletes a ticket
func (s *ticketService) DeleteTicket(ctx context.Context, caller Caller, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.delete", attribute.String("ticket_id", id))

	ticket, err := s.visibleTicket(ctx, caller, id)
	if err == nil {
		err = s.delete(ctx, caller, ticket)
	}
	telemetry.EndSpan(span, err)
	return err
}

// DeleteUserTicket deletes a ticket that must belong to ownerID
func (s *ticketService) DeleteUserTicket(ctx context.Context, caller Caller, ownerID, id string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.delete_for_user", attribute.String("ticket_id", id))

	ticket, err := s.ownedTicket(ctx, caller, ownerID, id)
	if err == nil {
		err = s.delete(ctx, caller, ticket)
	}
	telemetry.EndSpan(span, err)
	return err
}

func (s *ticketService) delete(ctx context.Context, caller Caller, t *domain.Ticket) error {
	if err := s.tickets.Delete(ctx, t.ID); err != nil {
		return err
	}
	s.publish(ctx, NewTicketEvent(EventTicketDeleted, t, caller.UserID))
	return nil
}

// ListForUser lists the tickets of ownerID, newest first
func (s *ticketService) ListForUser(ctx context.Context, caller Caller, ownerID string) ([]*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.list_for_user", attribute.String("owner_id", ownerID))

	tickets, err := s.listForUser(ctx, caller, ownerID)
	telemetry.EndSpan(span, err)
	return tickets, err
}

func (s *ticketService) listForUser(ctx context.Context, caller Caller, ownerID string) ([]*domain.Ticket, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	if ownerID != caller.UserID {
		if !caller.IsAdmin {
			return nil, domain.ErrAuthorization
		}
		if _, err := s.users.GetByID(ctx, ownerID); err != nil {
			return nil, err
		}
	}
	return s.tickets.ListByUser(ctx, ownerID)
}

// ListAll lists every ticket matching filter, newest first
func (s *ticketService) ListAll(ctx context.Context, caller Caller, filter *dto.TicketListFilter) ([]*domain.Ticket, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ticket.list_all")

	tickets, err := s.listAll(ctx, caller, filter)
	telemetry.EndSpan(span, err)
	return tickets, err
}

func (s *ticketService) listAll(ctx context.Context, caller Caller, filter *dto.TicketListFilter) ([]*domain.Ticket, error) {
	if err := caller.admin(); err != nil {
		return nil, err
	}

	var f domain.TicketFilter
	if filter != nil {
		if filter.Status != "" {
			status, ok := domain.ParseTicketStatus(filter.Status)
			if !ok {
				return nil, domain.NewValidationError("status", "unknown status")
			}
			f.Status = status
		}
		if filter.SectionType != "" {
			category, err := parseCategory(filter.SectionType)
			if err != nil {
				return nil, err
			}
			f.SectionType = category
		}
		f.UserID = strings.TrimSpace(filter.UserID)
	}
	return s.tickets.List(ctx, f)
}

// Quote prices a selection without storing anything
func (s *ticketService) Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	_, span := telemetry.StartSpan(ctx, "service.ticket.quote")

	quote, err := s.quote(req)
	telemetry.EndSpan(span, err)
	return quote, err
}

func (s *ticketService) quote(req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	section := strings.TrimSpace(req.Section)
	if section == "" {
		return nil, domain.NewValidationError("section", "is required")
	}
	category, err := parseCategory(req.SectionType)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.checkCatalog(category, section); err != nil {
		return nil, err
	}

	b := pricing.Compute(category, section, req.Quantity)
	return dto.NewQuoteResponse(category, section, req.Quantity, b), nil
}

// SectionCatalog lists the sections of every category
func (s *ticketService) SectionCatalog() []dto.SectionCatalogResponse {
	out := make([]dto.SectionCatalogResponse, 0, len(pricing.Categories))
	for _, c := range pricing.Categories {
		out = append(out, dto.SectionCatalogResponse{
			SectionType: string(c),
			BasePrice:   pricing.BasePrice(c, "").InexactFloat64(),
			Sections:    domain.SectionsFor(c),
		})
	}
	return out
}

// visibleTicket loads a ticket the caller owns, or any ticket for admins
func (s *ticketService) visibleTicket(ctx context.Context, caller Caller, id string) (*domain.Ticket, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin && !ticket.IsOwnedBy(caller.UserID) {
		return nil, domain.ErrAuthorization
	}
	return ticket, nil
}

// ownedTicket loads a ticket for an admin and checks it belongs to ownerID
func (s *ticketService) ownedTicket(ctx context.Context, caller Caller, ownerID, id string) (*domain.Ticket, error) {
	if err := caller.admin(); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != ownerID {
		return nil, domain.ErrTicketOwnerMismatch
	}
	return ticket, nil
}

func (s *ticketService) checkCatalog(category pricing.Category, section string) error {
	if !s.config.EnforceSectionCatalog || domain.IsSectionInCategory(category, section) {
		return nil
	}
	return domain.NewValidationError("section", "is not part of the "+string(category)+" section type")
}

// publish delivers an event after the change is stored. A delivery failure
// never fails the request.
func (s *ticketService) publish(ctx context.Context, event *TicketEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.WithContext(ctx).Warn("ticket event dropped",
			zap.String("event_type", event.Type),
			zap.String("ticket_id", event.TicketID),
			zap.Error(err),
		)
	}
}

func parseCategory(s string) (pricing.Category, error) {
	category, ok := pricing.ParseCategory(s)
	if !ok {
		return "", domain.NewValidationError("section_type", "must be one of Floor, VIP, Lower, Mid, Upper, Special")
	}
	return category, nil
}
