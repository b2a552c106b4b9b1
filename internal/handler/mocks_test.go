package handler

import (
	"context"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/stretchr/testify/mock"
)

type MockTicketService struct {
	mock.Mock
}

func ticketOrNil(args mock.Arguments) (*domain.Ticket, error) {
	if t := args.Get(0); t != nil {
		return t.(*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func ticketsOrNil(args mock.Arguments) ([]*domain.Ticket, error) {
	if t := args.Get(0); t != nil {
		return t.([]*domain.Ticket), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketService) CreateTicket(ctx context.Context, caller service.Caller, req *dto.CreateTicketRequest) (*domain.Ticket, error) {
	return ticketOrNil(m.Called(ctx, caller, req))
}

func (m *MockTicketService) CreateTicketForUser(ctx context.Context, caller service.Caller, ownerID string, req *dto.CreateTicketRequest) (*domain.Ticket, error) {
	return ticketOrNil(m.Called(ctx, caller, ownerID, req))
}

func (m *MockTicketService) GetTicket(ctx context.Context, caller service.Caller, id string) (*domain.Ticket, error) {
	return ticketOrNil(m.Called(ctx, caller, id))
}

func (m *MockTicketService) GetUserTicket(ctx context.Context, caller service.Caller, ownerID, id string) (*domain.Ticket, error) {
	return ticketOrNil(m.Called(ctx, caller, ownerID, id))
}

func (m *MockTicketService) UpdateAsOwner(ctx context.Context, caller service.Caller, id string, req *dto.OwnerUpdateTicketRequest) (*domain.Ticket, error) {
	return ticketOrNil(m.Called(ctx, caller, id, req))
}

func (m *MockTicketService) UpdateAsAdmin(ctx context.Context, caller service.Caller, id string, req *dto.AdminUpdateTicketRequest) (*domain.Ticket, error) {
	return ticketOrNil(m.Called(ctx, caller, id, req))
}

func (m *MockTicketService) UpdateUserTicket(ctx context.Context, caller service.Caller, ownerID, id string, req *dto.AdminUpdateTicketRequest) (*domain.Ticket, error) {
	return ticketOrNil(m.Called(ctx, caller, ownerID, id, req))
}

func (m *MockTicketService) DeleteTicket(ctx context.Context, caller service.Caller, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockTicketService) DeleteUserTicket(ctx context.Context, caller service.Caller, ownerID, id string) error {
	return m.Called(ctx, caller, ownerID, id).Error(0)
}

func (m *MockTicketService) ListForUser(ctx context.Context, caller service.Caller, ownerID string) ([]*domain.Ticket, error) {
	return ticketsOrNil(m.Called(ctx, caller, ownerID))
}

func (m *MockTicketService) ListAll(ctx context.Context, caller service.Caller, filter *dto.TicketListFilter) ([]*domain.Ticket, error) {
	return ticketsOrNil(m.Called(ctx, caller, filter))
}

func (m *MockTicketService) Quote(ctx context.Context, req *dto.QuoteRequest) (*dto.QuoteResponse, error) {
	args := m.Called(ctx, req)
	if q := args.Get(0); q != nil {
		return q.(*dto.QuoteResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTicketService) SectionCatalog() []dto.SectionCatalogResponse {
	return m.Called().Get(0).([]dto.SectionCatalogResponse)
}

type MockAuthService struct {
	mock.Mock
}

func authOrNil(args mock.Arguments) (*dto.AuthResponse, error) {
	if r := args.Get(0); r != nil {
		return r.(*dto.AuthResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Register(ctx context.Context, req *dto.RegisterRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	return authOrNil(m.Called(ctx, req, userAgent, ip))
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	return authOrNil(m.Called(ctx, req, userAgent, ip))
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	return authOrNil(m.Called(ctx, refreshToken))
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	args := m.Called(ctx, token)
	if c := args.Get(0); c != nil {
		return c.(*auth.Claims), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthService) Status(ctx context.Context, userID string) (*dto.AuthStatusResponse, error) {
	args := m.Called(ctx, userID)
	if s := args.Get(0); s != nil {
		return s.(*dto.AuthStatusResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func userOrNil(args mock.Arguments) (*domain.User, error) {
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID))
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	return userOrNil(m.Called(ctx, userID, req))
}

func (m *MockUserService) ListUsers(ctx context.Context, caller service.Caller) ([]*domain.User, error) {
	args := m.Called(ctx, caller)
	if u := args.Get(0); u != nil {
		return u.([]*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, caller service.Caller, id string) (*domain.User, error) {
	return userOrNil(m.Called(ctx, caller, id))
}

func (m *MockUserService) UpdateUser(ctx context.Context, caller service.Caller, id string, req *dto.AdminUpdateUserRequest) (*domain.User, error) {
	return userOrNil(m.Called(ctx, caller, id, req))
}

func (m *MockUserService) DeleteUser(ctx context.Context, caller service.Caller, id string) (*dto.DeleteUserResponse, error) {
	args := m.Called(ctx, caller, id)
	if r := args.Get(0); r != nil {
		return r.(*dto.DeleteUserResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) CreateFirstAdmin(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	return userOrNil(m.Called(ctx, req))
}

func (m *MockUserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type MockSportsService struct {
	mock.Mock
}

func resultOrNil(args mock.Arguments) (*dto.SportsResult, error) {
	if r := args.Get(0); r != nil {
		return r.(*dto.SportsResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSportsService) Roster(ctx context.Context, query *dto.RosterQuery) (*dto.SportsResult, error) {
	return resultOrNil(m.Called(ctx, query))
}

func (m *MockSportsService) Schedule(ctx context.Context, query *dto.ScheduleQuery) (*dto.SportsResult, error) {
	return resultOrNil(m.Called(ctx, query))
}

func (m *MockSportsService) Standings(ctx context.Context, query *dto.StandingsQuery) (*dto.SportsResult, error) {
	return resultOrNil(m.Called(ctx, query))
}

type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) ListGames(ctx context.Context) ([]*domain.Game, error) {
	args := m.Called(ctx)
	if g := args.Get(0); g != nil {
		return g.([]*domain.Game), args.Error(1)
	}
	return nil, args.Error(1)
}
