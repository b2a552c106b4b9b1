package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/di"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/handler"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// storedRoles answers IsAdmin from a map; other UserService methods are not reached
type storedRoles struct {
	service.UserService
	admins map[string]bool
}

func (s storedRoles) IsAdmin(ctx context.Context, userID string) (bool, error) {
	if userID == "flaky-1" {
		return false, errors.New("connection refused")
	}
	isAdmin, ok := s.admins[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	return isAdmin, nil
}

// emptyTickets answers ListAll and ListForUser with no rows
type emptyTickets struct {
	service.TicketService
}

func (emptyTickets) ListAll(ctx context.Context, caller service.Caller, filter *dto.TicketListFilter) ([]*domain.Ticket, error) {
	return nil, nil
}

func (emptyTickets) ListForUser(ctx context.Context, caller service.Caller, ownerID string) ([]*domain.Ticket, error) {
	return nil, nil
}

func testRouter(t *testing.T) (*gin.Engine, *auth.TokenManager) {
	t.Helper()

	tokens := auth.NewTokenManager("routes-test-secret", "courtside-test", time.Minute)
	users := storedRoles{admins: map[string]bool{"user-1": false, "admin-1": true, "demoted-1": false}}
	tickets := emptyTickets{}

	c := &di.Container{
		Tokens:        tokens,
		UserService:   users,
		RoleResolver:  di.NewRoleResolver(users),
		TicketService: tickets,
		AuthHandler:   handler.NewAuthHandler(nil, users),
		UserHandler:   handler.NewUserHandler(users, tickets),
		TicketHandler: handler.NewTicketHandler(tickets),
		SportsHandler: handler.NewSportsHandler(nil, nil),
	}

	r := gin.New()
	registerRoutes(r.Group("/api/v1"), c)
	return r, tokens
}

func call(t *testing.T, r http.Handler, tokens *auth.TokenManager, method, path, userID, role string) int {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if userID != "" {
		token, err := tokens.Sign(userID, userID+"@example.com", role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRoutes_AccessControl(t *testing.T) {
	r, tokens := testRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		userID string
		role   string
		want   int
	}{
		{"history needs a token", http.MethodGet, "/api/v1/tickets/history", "", "", http.StatusUnauthorized},
		{"history for a user", http.MethodGet, "/api/v1/tickets/history", "user-1", "user", http.StatusOK},
		{"admin listing refused for users", http.MethodGet, "/api/v1/admin/tickets", "user-1", "user", http.StatusForbidden},
		{"admin listing for admins", http.MethodGet, "/api/v1/admin/tickets", "admin-1", "admin", http.StatusOK},
		{"stale admin claim is ignored", http.MethodGet, "/api/v1/admin/tickets", "demoted-1", "admin", http.StatusForbidden},
		{"fresh promotion is honoured", http.MethodGet, "/api/v1/admin/tickets", "admin-1", "user", http.StatusOK},
		{"deleted account", http.MethodGet, "/api/v1/tickets/history", "gone-1", "user", http.StatusUnauthorized},
		{"store outage is not a logout", http.MethodGet, "/api/v1/tickets/history", "flaky-1", "user", http.StatusServiceUnavailable},
		{"admin check for any user", http.MethodGet, "/api/v1/admin/check", "user-1", "user", http.StatusOK},
		{"admin ticket update refused for users", http.MethodPut, "/api/v1/tickets/t-1", "user-1", "user", http.StatusForbidden},
		{"user deletion needs a token", http.MethodDelete, "/api/v1/admin/users/user-1", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, r, tokens, tt.method, tt.path, tt.userID, tt.role))
		})
	}
}
