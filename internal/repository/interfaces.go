package repository

import (
	"context"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
)

// UserRepository defines the interface for user data access.
// Lookups by ID or email return domain.ErrUserNotFound when nothing matches.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update updates a user
	Update(ctx context.Context, user *domain.User) error
	// ExistsByEmail checks if a user with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List lists all users ordered by first name
	List(ctx context.Context) ([]*domain.User, error)
	// CreateFirstAdmin inserts user only while no admin account exists,
	// returning domain.ErrAdminExists otherwise. Concurrent calls create at
	// most one admin.
	CreateFirstAdmin(ctx context.Context, user *domain.User) error
	// DeleteWithTickets removes a user and all of their tickets in one
	// transaction and returns how many tickets were removed
	DeleteWithTickets(ctx context.Context, id string) (int64, error)
}

// SessionRepository defines the interface for refresh-token sessions
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *domain.Session) error
	// GetByRefreshToken retrieves a session by refresh token, nil if absent
	GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error)
	// Delete deletes a session by ID
	Delete(ctx context.Context, id string) error
	// DeleteByUserID deletes all sessions for a user
	DeleteByUserID(ctx context.Context, userID string) error
	// DeleteExpired deletes all expired sessions
	DeleteExpired(ctx context.Context) (int64, error)
}

// TicketRepository defines the interface for ticket data access.
// Listings are ordered by created_at descending.
type TicketRepository interface {
	// Create creates a new ticket
	Create(ctx context.Context, ticket *domain.Ticket) error
	// GetByID retrieves a ticket by ID, domain.ErrTicketNotFound if absent
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	// Update writes ticket if the stored version still equals ticket.Version,
	// then bumps ticket.Version. A stale version yields domain.ErrVersionConflict.
	Update(ctx context.Context, ticket *domain.Ticket) error
	// Delete permanently deletes a ticket
	Delete(ctx context.Context, id string) error
	// ListByUser lists the tickets of one user
	ListByUser(ctx context.Context, userID string) ([]*domain.Ticket, error)
	// List lists tickets matching filter
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
}

// GameRepository defines the interface for the local game schedule
type GameRepository interface {
	// List lists games ordered by date
	List(ctx context.Context) ([]*domain.Game, error)
}
