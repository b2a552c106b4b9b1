package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/response"
)

// UserHandler handles profile and admin account requests
type UserHandler struct {
	userService   service.UserService
	ticketService service.TicketService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, ticketService service.TicketService) *UserHandler {
	return &UserHandler{userService: userService, ticketService: ticketService}
}

// GetProfile returns the caller's account
// GET /api/v1/users/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), callerFrom(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewUserResponse(user)))
}

// UpdateProfile edits the caller's account
// PUT /api/v1/users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), callerFrom(c).UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewUserResponse(user)))
}

// ListUsers lists every account
// GET /api/v1/admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.NewUserListResponse(users), len(users)))
}

// GetUser returns one account
// GET /api/v1/admin/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewUserResponse(user)))
}

// UpdateUser edits any account
// PUT /api/v1/admin/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.AdminUpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), callerFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.NewUserResponse(user)))
}

// DeleteUser deletes an account and its tickets
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	result, err := h.userService.DeleteUser(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(result))
}

// ListUserTickets lists one account's tickets
// GET /api/v1/admin/users/:id/tickets
func (h *UserHandler) ListUserTickets(c *gin.Context) {
	tickets, err := h.ticketService.ListForUser(c.Request.Context(), callerFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(dto.NewTicketListResponse(tickets), len(tickets)))
}

// CreateUserTicket creates a ticket on behalf of an account
// POST /api/v1/admin/users/:id/tickets
func (h *UserHandler) CreateUserTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if !bindJSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.CreateTicketForUser(c.Request.Context(), callerFrom(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.NewTicketResponse(ticket)))
}

// CheckAdmin reports whether the caller is an admin
// GET /api/v1/admin/check
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	isAdmin, err := h.userService.IsAdmin(c.Request.Context(), callerFrom(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(dto.AdminCheckResponse{IsAdmin: isAdmin}))
}

// Bootstrap creates the first admin account. It is refused once any admin
// exists.
// POST /api/v1/admin/bootstrap
func (h *UserHandler) Bootstrap(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.CreateFirstAdmin(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(dto.NewUserResponse(user)))
}
