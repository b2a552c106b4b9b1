package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prohmpiriya/courtside-tickets/internal/di"
	"github.com/prohmpiriya/courtside-tickets/internal/metrics"
	"github.com/prohmpiriya/courtside-tickets/internal/nba"
	"github.com/prohmpiriya/courtside-tickets/internal/repository"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/migrations"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/prohmpiriya/courtside-tickets/pkg/config"
	"github.com/prohmpiriya/courtside-tickets/pkg/database"
	"github.com/prohmpiriya/courtside-tickets/pkg/kafka"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"github.com/prohmpiriya/courtside-tickets/pkg/middleware"
	pkgredis "github.com/prohmpiriya/courtside-tickets/pkg/redis"
	"github.com/prohmpiriya/courtside-tickets/pkg/telemetry"
	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:       cfg.Log.Level,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Courtside Tickets...", zap.String("version", cfg.App.Version))

	ctx := context.Background()

	// Initialize tracing
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn("Tracing disabled, exporter setup failed", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	// Initialize database connection
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      5,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()
	appLog.Info(fmt.Sprintf("Database connected (pool: min=%d, max=%d)", dbCfg.MinConns, dbCfg.MaxConns))

	if cfg.Database.AutoMigrate {
		applied, err := db.Migrate(ctx, migrations.FS)
		if err != nil {
			appLog.Fatal("Migrations failed", zap.Error(err))
		}
		appLog.Info("Migrations applied", zap.Strings("versions", applied))
	}

	// Redis only backs caching and idempotency, so the service starts without it
	redisClient, err := pkgredis.NewClient(ctx, &pkgredis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    2,
		RetryInterval: 500 * time.Millisecond,
	})
	if err != nil {
		appLog.Warn("Redis unavailable, running without cache and idempotency", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Initialize Kafka event publisher
	var eventPublisher service.EventPublisher = service.NoOpEventPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
			Brokers:       cfg.Kafka.Brokers,
			ClientID:      cfg.Kafka.ClientID,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			appLog.Warn("Kafka connection failed, using no-op publisher", zap.Error(err))
		} else {
			eventPublisher = service.NewKafkaEventPublisher(producer, cfg.Kafka.TicketTopic, appLog)
			appLog.Info("Kafka event publisher connected", zap.String("topic", cfg.Kafka.TicketTopic))
		}
	}
	defer eventPublisher.Close()

	// Sports data provider, cached in Redis when available
	var provider nba.Provider = nba.NewClient(&nba.ClientConfig{
		BaseURL:    cfg.NBA.BaseURL,
		APIKey:     cfg.NBA.APIKey,
		Host:       cfg.NBA.Host,
		Timeout:    cfg.NBA.Timeout,
		MaxRetries: cfg.NBA.MaxRetries,
	})
	if redisClient != nil {
		provider = nba.NewCachedProvider(provider, redisClient, cfg.NBA.CacheTTL, appLog)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)

	// Build dependency injection container
	container, err := di.NewContainer(&di.ContainerConfig{
		DB:             db,
		Redis:          redisClient,
		Tokens:         tokens,
		SportsProvider: provider,
		EventPublisher: eventPublisher,
		Logger:         appLog,
		AuthConfig: &service.AuthServiceConfig{
			RefreshTokenExpiry: cfg.JWT.RefreshTokenTTL,
			BcryptCost:         cfg.JWT.BcryptCost,
		},
		TicketConfig: &service.TicketServiceConfig{
			EnforceSectionCatalog: cfg.Tickets.EnforceSectionCatalog,
		},
		SportsConfig: &service.SportsServiceConfig{
			DefaultSeason: cfg.NBA.DefaultSeason,
			DefaultTeamID: cfg.NBA.DefaultTeamID,
		},
	})
	if err != nil {
		appLog.Fatal("Failed to build container", zap.Error(err))
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(telemetry.TracingMiddleware())
	router.Use(middleware.Logger(appLog))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	router.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware())
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	registerRoutes(router.Group("/api/v1"), container)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go runSessionCleanup(cleanupCtx, container.SessionRepo, appLog)

	// Start server in goroutine
	go func() {
		appLog.Info(fmt.Sprintf("Courtside Tickets listening on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")
	stopCleanup()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Server forced to shutdown", zap.Error(err))
	}

	appLog.Info("Server exited gracefully")
}

func registerRoutes(v1 *gin.RouterGroup, c *di.Container) {
	authed := []gin.HandlerFunc{
		middleware.JWTAuth(c.Tokens),
		middleware.RefreshRole(c.RoleResolver),
	}
	adminOnly := append(append([]gin.HandlerFunc{}, authed...), middleware.RequireAdmin())

	// Auth routes
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", c.AuthHandler.Register)
		authGroup.POST("/login", c.AuthHandler.Login)
		authGroup.POST("/refresh", c.AuthHandler.RefreshToken)
		authGroup.POST("/logout", c.AuthHandler.Logout)
		authGroup.GET("/status", middleware.OptionalAuth(c.Tokens), c.AuthHandler.Status)

		protected := authGroup.Group("", authed...)
		protected.GET("/me", c.AuthHandler.Me)
		protected.POST("/logout-all", c.AuthHandler.LogoutAll)
	}

	users := v1.Group("/users", authed...)
	{
		users.GET("/profile", c.UserHandler.GetProfile)
		users.PUT("/profile", c.UserHandler.UpdateProfile)
	}

	// Public catalog and sports data
	v1.GET("/games", c.SportsHandler.Games)
	v1.GET("/sections", c.TicketHandler.Sections)
	sports := v1.Group("/sports")
	{
		sports.GET("/roster", c.SportsHandler.Roster)
		sports.GET("/schedule", c.SportsHandler.Schedule)
		sports.GET("/standings", c.SportsHandler.Standings)
	}

	tickets := v1.Group("/tickets")
	{
		tickets.POST("/quote", c.TicketHandler.Quote)

		own := tickets.Group("", authed...)
		if c.Redis != nil {
			own.POST("", middleware.Idempotency(middleware.DefaultIdempotencyConfig(c.Redis.Client())), c.TicketHandler.Create)
		} else {
			own.POST("", c.TicketHandler.Create)
		}
		own.GET("/history", c.TicketHandler.History)
		own.GET("/:id", c.TicketHandler.Get)
		own.PATCH("/:id", c.TicketHandler.OwnerUpdate)
		own.DELETE("/:id", c.TicketHandler.Delete)
		own.PUT("/:id", middleware.RequireAdmin(), c.TicketHandler.AdminUpdate)
	}

	admin := v1.Group("/admin")
	{
		admin.POST("/bootstrap", c.UserHandler.Bootstrap)
		admin.GET("/check", append(authed, c.UserHandler.CheckAdmin)...)

		restricted := admin.Group("", adminOnly...)
		restricted.GET("/tickets", c.TicketHandler.ListAll)
		restricted.GET("/tickets/:userId/:id", c.TicketHandler.GetUserTicket)
		restricted.PUT("/tickets/:userId/:id", c.TicketHandler.UpdateUserTicket)
		restricted.DELETE("/tickets/:userId/:id", c.TicketHandler.DeleteUserTicket)

		restricted.GET("/users", c.UserHandler.ListUsers)
		restricted.GET("/users/:id", c.UserHandler.GetUser)
		restricted.PUT("/users/:id", c.UserHandler.UpdateUser)
		restricted.DELETE("/users/:id", c.UserHandler.DeleteUser)
		restricted.GET("/users/:id/tickets", c.UserHandler.ListUserTickets)
		restricted.POST("/users/:id/tickets", c.UserHandler.CreateUserTicket)
	}
}

// runSessionCleanup purges expired refresh sessions until ctx is cancelled
func runSessionCleanup(ctx context.Context, sessions repository.SessionRepository, log *logger.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.DeleteExpired(ctx)
			if err != nil {
				log.Warn("Session cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("Expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
