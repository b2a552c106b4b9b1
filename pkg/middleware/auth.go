package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/prohmpiriya/courtside-tickets/pkg/response"
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
)

// TokenParser validates an access token
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token
func JWTAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("MISSING_TOKEN", "Authorization header is required"))
			return
		}

		claims, err := parser.Parse(token)
		if err != nil {
			code, msg := "INVALID_TOKEN", "Invalid or malformed token"
			if errors.Is(err, auth.ErrTokenExpired) {
				code, msg = "TOKEN_EXPIRED", "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(code, msg))
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets the caller identity when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := parser.Parse(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// ErrAccountNotFound is returned by a RoleResolver when the account behind a
// valid token no longer exists
var ErrAccountNotFound = errors.New("account not found")

// RoleResolver looks up the current admin flag of an account
type RoleResolver interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RefreshRole replaces the role claim with the stored one, so a demotion
// takes effect before the access token expires. Only ErrAccountNotFound
// rejects the token; other lookup failures answer 503. Must run after JWTAuth.
func RefreshRole(resolver RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.Next()
			return
		}

		isAdmin, err := resolver.IsAdmin(c.Request.Context(), userID)
		if errors.Is(err, ErrAccountNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error("INVALID_TOKEN", "Account no longer available"))
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Error("SERVICE_UNAVAILABLE", "Unable to verify account, please retry"))
			return
		}
		if isAdmin {
			c.Set(ContextKeyRole, "admin")
		} else {
			c.Set(ContextKeyRole, "user")
		}
		c.Next()
	}
}

// RequireAdmin must run after JWTAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Admin access required"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyEmail, claims.Email)
	c.Set(ContextKeyRole, claims.Role)
}

// GetUserID returns the authenticated user id
func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextKeyUserID)
	return id, id != ""
}

// GetRole returns the authenticated user's role
func GetRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}

// IsAdmin reports whether the authenticated user is an admin
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == "admin"
}
