package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
)

// mockUserRepository is a map-backed UserRepository
type mockUserRepository struct {
	mu          sync.Mutex
	users       map[string]*domain.User
	tickets     *mockTicketRepository
	createError error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (r *mockUserRepository) add(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return u
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if r.createError != nil {
		return r.createError
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailInUse
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstName < out[j].FirstName })
	return out, nil
}

func (r *mockUserRepository) CreateFirstAdmin(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.IsAdmin() {
			return domain.ErrAdminExists
		}
		if u.Email == user.Email {
			return domain.ErrEmailInUse
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *mockUserRepository) DeleteWithTickets(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	if _, ok := r.users[id]; !ok {
		r.mu.Unlock()
		return 0, domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.mu.Unlock()

	if r.tickets == nil {
		return 0, nil
	}
	return r.tickets.deleteByUser(id), nil
}

// mockSessionRepository is a map-backed SessionRepository keyed by refresh token
type mockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.RefreshToken] = session
	return nil
}

func (r *mockSessionRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[token], nil
}

func (r *mockSessionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if s.ID == id {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *mockSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *mockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for token, s := range r.sessions {
		if s.IsExpired(time.Now()) {
			delete(r.sessions, token)
			n++
		}
	}
	return n, nil
}

func (r *mockSessionRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// mockTicketRepository is a map-backed TicketRepository that enforces the
// same version check as the Postgres implementation.
type mockTicketRepository struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{tickets: make(map[string]*domain.Ticket)}
}

func (r *mockTicketRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tickets)
}

func (r *mockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *mockTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrTicketNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *mockTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return domain.ErrTicketNotFound
	}
	if stored.Version != ticket.Version {
		return domain.ErrVersionConflict
	}
	ticket.Version++
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *mockTicketRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return domain.ErrTicketNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *mockTicketRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Ticket, error) {
	return r.List(ctx, domain.TicketFilter{UserID: userID})
}

func (r *mockTicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Ticket{}
	for _, t := range r.tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.SectionType != "" && t.SectionType != filter.SectionType {
			continue
		}
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *mockTicketRepository) deleteByUser(userID string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, t := range r.tickets {
		if t.UserID == userID {
			delete(r.tickets, id)
			n++
		}
	}
	return n
}

// mockGameRepository serves a fixed schedule
type mockGameRepository struct {
	games []*domain.Game
	err   error
}

func (r *mockGameRepository) List(ctx context.Context) ([]*domain.Game, error) {
	return r.games, r.err
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []*TicketEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event *TicketEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// stubProvider is a scripted nba.Provider
type stubProvider struct {
	games     []json.RawMessage
	standings []json.RawMessage
	players   map[string][]json.RawMessage
	stats     map[string][]json.RawMessage
	err       error
	playerErr map[string]error
}

func (p *stubProvider) Games(ctx context.Context, season, team string) ([]json.RawMessage, error) {
	return p.games, p.err
}

func (p *stubProvider) Standings(ctx context.Context, league, season string) ([]json.RawMessage, error) {
	return p.standings, p.err
}

func (p *stubProvider) Player(ctx context.Context, id string) ([]json.RawMessage, error) {
	if err := p.playerErr[id]; err != nil {
		return nil, err
	}
	return p.players[id], p.err
}

func (p *stubProvider) PlayerStatistics(ctx context.Context, id, season string) ([]json.RawMessage, error) {
	return p.stats[id], p.err
}
