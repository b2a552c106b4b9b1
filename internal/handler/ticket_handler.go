package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/response"
)

// TicketHandler handles ticket request HTTP requests
type TicketHandler struct {
	ticketService service.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Quote prices a selection without creating a ticket
// POST /api/v1/tickets/quote
func (h *TicketHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	quote, err := h.ticketService.Quote(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(quote))
}

// Sections lists the section catalog
// GET /api/v1/sections
func (h *TicketHandler) Sections(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(h.ticketService.SectionCatalog()))
}

// Create creates a ticket owned by the caller
// POST /api/v1/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	var req dto.CreateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), callerFrom(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.NewTicketResponse(ticket)))
}

// History lists the caller's tickets, newest first
// GET /api/v1/tickets/history
func (h *TicketHandler) History(c *gin.Context) {
	caller := callerFrom(c)
	tickets, err := h.ticketService.ListForUser(c.Request.Context(), caller, caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.NewTicketListResponse(tickets), len(tickets)))
}

// Get returns a ticket the caller owns, or any ticket for admins
// GET /api/v1/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.ticketService.GetTicket(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewTicketResponse(ticket)))
}

// OwnerUpdate edits a pending ticket owned by the caller
// PATCH /api/v1/tickets/:id
func (h *TicketHandler) OwnerUpdate(c *gin.Context) {
	var req dto.OwnerUpdateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.UpdateAsOwner(c.Request.Context(), callerFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewTicketResponse(ticket)))
}

// AdminUpdate edits any ticket, status included
// PUT /api/v1/tickets/:id
func (h *TicketHandler) AdminUpdate(c *gin.Context) {
	var req dto.AdminUpdateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.UpdateAsAdmin(c.Request.Context(), callerFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewTicketResponse(ticket)))
}

// Delete permanently deletes a ticket
// DELETE /api/v1/tickets/:id
func (h *TicketHandler) Delete(c *gin.Context) {
	if err := h.ticketService.DeleteTicket(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Ticket deleted successfully"}))
}

// ListAll lists every ticket
// GET /api/v1/admin/tickets?status=&section_type=&user_id=
func (h *TicketHandler) ListAll(c *gin.Context) {
	var filter dto.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	tickets, err := h.ticketService.ListAll(c.Request.Context(), callerFrom(c), &filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.NewTicketListResponse(tickets), len(tickets)))
}

// GetUserTicket returns a ticket that must belong to :userId
// GET /api/v1/admin/tickets/:userId/:id
func (h *TicketHandler) GetUserTicket(c *gin.Context) {
	ticket, err := h.ticketService.GetUserTicket(c.Request.Context(), callerFrom(c), c.Param("userId"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewTicketResponse(ticket)))
}

// UpdateUserTicket edits a ticket that must belong to :userId
// PUT /api/v1/admin/tickets/:userId/:id
func (h *TicketHandler) UpdateUserTicket(c *gin.Context) {
	var req dto.AdminUpdateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.UpdateUserTicket(c.Request.Context(), callerFrom(c), c.Param("userId"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewTicketResponse(ticket)))
}

// DeleteUserTicket deletes a ticket that must belong to :userId
// DELETE /api/v1/admin/tickets/:userId/:id
func (h *TicketHandler) DeleteUserTicket(c *gin.Context) {
	if err := h.ticketService.DeleteUserTicket(c.Request.Context(), callerFrom(c), c.Param("userId"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Ticket deleted successfully"}))
}
