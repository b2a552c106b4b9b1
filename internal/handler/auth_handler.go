package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/middleware"
	"github.com/prohmpiriya/courtside-tickets/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	// Validate email format
	if valid, msg := req.ValidateEmail(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("INVALID_EMAIL", msg))
		return
	}

	// Validate password strength
	if valid, msg := req.ValidatePassword(); !valid {
		c.JSON(http.StatusBadRequest, response.Error("WEAK_PASSWORD", msg))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req, c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// RefreshToken handles token refresh
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Logout handles user logout
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Logged out successfully"}))
}

// LogoutAll handles logging out all sessions
// POST /api/v1/auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("User not authenticated"))
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "All sessions logged out successfully"}))
}

// Me returns current user info
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(dto.NewUserResponse(user)))
}

// Status reports whether the request carries a valid token. It never fails
// for anonymous callers.
// GET /api/v1/auth/status
func (h *AuthHandler) Status(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	status, err := h.authService.Status(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(status))
}
