package di

import (
	"github.com/prohmpiriya/courtside-tickets/internal/handler"
	"github.com/prohmpiriya/courtside-tickets/internal/nba"
	"github.com/prohmpiriya/courtside-tickets/internal/repository"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/prohmpiriya/courtside-tickets/pkg/database"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"github.com/prohmpiriya/courtside-tickets/pkg/middleware"
	"github.com/prohmpiriya/courtside-tickets/pkg/redis"
)

// Container holds all dependencies for the ticket service
type Container struct {
	// Infrastructure
	DB     *database.PostgresDB
	Redis  *redis.Client
	Tokens *auth.TokenManager

	// Repositories
	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	TicketRepo  repository.TicketRepository
	GameRepo    repository.GameRepository

	// Publishers
	EventPublisher service.EventPublisher

	// Services
	AuthService   service.AuthService
	UserService   service.UserService
	TicketService service.TicketService
	GameService   service.GameService
	SportsService service.SportsService
	RoleResolver  middleware.RoleResolver

	// Handlers
	HealthHandler *handler.HealthHandler
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	TicketHandler *handler.TicketHandler
	SportsHandler *handler.SportsHandler
}

// ContainerConfig contains configuration for building the container.
// Redis is optional; without it sports data is not cached.
type ContainerConfig struct {
	DB             *database.PostgresDB
	Redis          *redis.Client
	Tokens         *auth.TokenManager
	SportsProvider nba.Provider
	EventPublisher service.EventPublisher
	Logger         *logger.Logger

	AuthConfig   *service.AuthServiceConfig
	TicketConfig *service.TicketServiceConfig
	SportsConfig *service.SportsServiceConfig
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) (*Container, error) {
	c := &Container{
		DB:             cfg.DB,
		Redis:          cfg.Redis,
		Tokens:         cfg.Tokens,
		EventPublisher: cfg.EventPublisher,
	}
	if c.EventPublisher == nil {
		c.EventPublisher = service.NoOpEventPublisher{}
	}

	// Initialize repositories
	pool := c.DB.Pool()
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.SessionRepo = repository.NewPostgresSessionRepository(pool)
	c.TicketRepo = repository.NewPostgresTicketRepository(pool)
	c.GameRepo = repository.NewPostgresGameRepository(pool)

	// Initialize services
	c.AuthService = service.NewAuthService(c.UserRepo, c.SessionRepo, c.Tokens, cfg.AuthConfig)
	c.UserService = service.NewUserService(c.UserRepo, cfg.AuthConfig.BcryptCost, cfg.Logger)
	c.TicketService = service.NewTicketService(c.TicketRepo, c.UserRepo, c.EventPublisher, cfg.TicketConfig, cfg.Logger)
	c.GameService = service.NewGameService(c.GameRepo)

	sports, err := service.NewSportsService(cfg.SportsProvider, c.GameRepo, cfg.SportsConfig, cfg.Logger)
	if err != nil {
		return nil, err
	}
	c.SportsService = sports
	c.RoleResolver = NewRoleResolver(c.UserService)

	// Initialize handlers
	checks := map[string]handler.HealthChecker{"database": c.DB, "redis": nil}
	if c.Redis != nil {
		checks["redis"] = c.Redis
	}
	c.HealthHandler = handler.NewHealthHandler(checks)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, c.UserService)
	c.UserHandler = handler.NewUserHandler(c.UserService, c.TicketService)
	c.TicketHandler = handler.NewTicketHandler(c.TicketService)
	c.SportsHandler = handler.NewSportsHandler(c.SportsService, c.GameService)

	return c, nil
}
