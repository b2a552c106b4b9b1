package service

import (
	"context"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
)

// Caller is the authenticated identity a request acts as.
// An empty UserID means the request is anonymous.
type Caller struct {
	UserID  string
	IsAdmin bool
}

func (c Caller) authenticated() error {
	if c.UserID == "" {
		return domain.ErrAuthentication
	}
	return nil
}

func (c Caller) admin() error {
	if err := c.authenticated(); err != nil {
		return err
	}
	if !c.IsAdmin {
		return domain.ErrAuthorization
	}
	return nil
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register registers a new user and opens a session
	Register(ctx context.Context, req *dto.RegisterRequest, userAgent, ip string) (*dto.AuthResponse, error)
	// Login authenticates a user
	Login(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error)
	// RefreshToken rotates a refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	// Logout invalidates one session
	Logout(ctx context.Context, refreshToken string) error
	// LogoutAll invalidates every session of a user
	LogoutAll(ctx context.Context, userID string) error
	// ValidateToken validates an access token and returns claims
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
	// Status reports whether userID belongs to an active account
	Status(ctx context.Context, userID string) (*dto.AuthStatusResponse, error)
}

// UserService defines the interface for profile and account management
type UserService interface {
	// GetProfile retrieves the caller's own account
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	// UpdateProfile updates the caller's own account
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error)
	// ListUsers lists every account ordered by first name
	ListUsers(ctx context.Context, caller Caller) ([]*domain.User, error)
	// GetUser retrieves any account
	GetUser(ctx context.Context, caller Caller, id string) (*domain.User, error)
	// UpdateUser edits any account
	UpdateUser(ctx context.Context, caller Caller, id string, req *dto.AdminUpdateUserRequest) (*domain.User, error)
	// DeleteUser deletes an account and its tickets
	DeleteUser(ctx context.Context, caller Caller, id string) (*dto.DeleteUserResponse, error)
	// CreateFirstAdmin creates an admin account while none exists
	CreateFirstAdmin(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	// IsAdmin reports whether userID holds the admin role
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// TicketService defines the interface for the ticket request lifecycle
type TicketService interface {
	// CreateTicket creates a ticket owned by the caller
	CreateTicket(ctx context.Context, caller Caller, req *dto.CreateTicketRequest) (*domain.Ticket, error)
	// CreateTicketForUser creates a ticket on behalf of ownerID
	CreateTicketForUser(ctx context.Context, caller Caller, ownerID string, req *dto.CreateTicketRequest) (*domain.Ticket, error)
	// GetTicket retrieves a ticket visible to the caller
	GetTicket(ctx context.Context, caller Caller, id string) (*domain.Ticket, error)
	// GetUserTicket retrieves a ticket that must belong to ownerID
	GetUserTicket(ctx context.Context, caller Caller, ownerID, id string) (*domain.Ticket, error)
	// UpdateAsOwner edits a pending ticket owned by the caller
	UpdateAsOwner(ctx context.Context, caller Caller, id string, req *dto.OwnerUpdateTicketRequest) (*domain.Ticket, error)
	// UpdateAsAdmin edits any ticket
	UpdateAsAdmin(ctx context.Context, caller Caller, id string, req *dto.AdminUpdateTicketRequest) (*domain.Ticket, error)
	// UpdateUserTicket edits a ticket that must belong to ownerID
	UpdateUserTicket(ctx context.Context, caller Caller, ownerID, id string, req *dto.AdminUpdateTicketRequest) (*domain.Ticket, error)
	// DeleteTicket permanently deletes a ticket
	DeleteTicket(ctx context.Context, caller Caller, id string) error
	// DeleteUserTicket deletes a ticket that must belong to ownerID
	DeleteUserTicket(ctx context.Context, caller Caller, ownerID, id string) error
	// ListForUser lists the tickets of ownerID, newest first
	ListForUser(ctx context.Context, caller Caller, ownerID string) ([]*domain.Ticket, error)
	// ListAll lists every ticket matching filter, newest first
	ListAll(ctx context.Context, caller Caller, filter *dto.TicketListFilter) ([]*domain.Ticket, error)
	// Quote prices a selection without storing anything
	Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error)
	// SectionCatalog lists the sections of every category
	SectionCatalog() []dto.SectionCatalogResponse
}

// GameService defines the interface for the local game schedule
type GameService interface {
	// ListGames lists the locally scheduled games
	ListGames(ctx context.Context) ([]*domain.Game, error)
}

// SportsService defines the interface for read-only sports data
type SportsService interface {
	// Roster loads info and statistics for each requested player
	Roster(ctx context.Context, query *dto.RosterQuery) (*dto.SportsResult, error)
	// Schedule lists a team's games, falling back to the local schedule
	Schedule(ctx context.Context, query *dto.ScheduleQuery) (*dto.SportsResult, error)
	// Standings lists league standings, falling back to generated standings
	Standings(ctx context.Context, query *dto.StandingsQuery) (*dto.SportsResult, error)
}
