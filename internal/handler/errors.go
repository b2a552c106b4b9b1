package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"github.com/prohmpiriya/courtside-tickets/pkg/middleware"
	"github.com/prohmpiriya/courtside-tickets/pkg/response"
	"go.uber.org/zap"
)

type errorMapping struct {
	err     error
	status  int
	code    string
	message string
}

// specificErrors is checked in order before the category sentinels
var specificErrors = []errorMapping{
	{service.ErrUserAlreadyExists, http.StatusConflict, "USER_EXISTS", "User with this email already exists"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"},
	{service.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE", "User account is inactive"},
	{service.ErrSessionNotFound, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired refresh token"},
	{service.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED", "Refresh token has expired"},
	{auth.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED", "Token has expired"},
	{auth.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or malformed token"},

	{domain.ErrTicketNotFound, http.StatusNotFound, "TICKET_NOT_FOUND", "Ticket not found"},
	{domain.ErrTicketOwnerMismatch, http.StatusNotFound, "TICKET_NOT_FOUND", "Ticket not found for this user"},
	{domain.ErrTicketNotEditable, http.StatusConflict, "TICKET_NOT_EDITABLE", "Ticket can only be edited while pending"},
	{domain.ErrVersionConflict, http.StatusConflict, "VERSION_CONFLICT", "Ticket was modified by someone else, reload and retry"},
	{domain.ErrInvalidStatusTransition, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Status transition not allowed"},

	{domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found"},
	{domain.ErrEmailInUse, http.StatusConflict, "EMAIL_IN_USE", "Email already in use"},
	{domain.ErrAdminExists, http.StatusConflict, "ADMIN_EXISTS", "An admin account already exists"},
	{domain.ErrCannotDeleteSelf, http.StatusBadRequest, "CANNOT_DELETE_SELF", "You cannot delete your own account"},
	{domain.ErrCannotDemoteSelf, http.StatusForbidden, "CANNOT_DEMOTE_SELF", "You cannot remove your own admin privileges"},
}

var categoryErrors = []errorMapping{
	{domain.ErrAuthentication, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required"},
	{domain.ErrAuthorization, http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found"},
	{domain.ErrConflict, http.StatusConflict, "CONFLICT", "Request conflicts with the current state"},
}

// respondError writes the envelope for err. Unexpected errors are logged
// and reported as 500 without their message.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, response.ErrorWithDetails("VALIDATION_ERROR", verr.Error(), verr.Field))
		return
	}

	for _, m := range specificErrors {
		if errors.Is(err, m.err) {
			c.JSON(m.status, response.Error(m.code, m.message))
			return
		}
	}
	if errors.Is(err, domain.ErrValidation) {
		c.JSON(http.StatusBadRequest, response.Error("VALIDATION_ERROR", err.Error()))
		return
	}
	for _, m := range categoryErrors {
		if errors.Is(err, m.err) {
			c.JSON(m.status, response.Error(m.code, m.message))
			return
		}
	}

	logger.ErrorContext(c.Request.Context(), "request failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, response.InternalError("An unexpected error occurred"))
}

// callerFrom reads the identity set by the auth middleware
func callerFrom(c *gin.Context) service.Caller {
	userID, _ := middleware.GetUserID(c)
	return service.Caller{UserID: userID, IsAdmin: middleware.IsAdmin(c)}
}

// bindJSON binds the body and writes a 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return false
	}
	return true
}
