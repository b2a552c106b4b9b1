package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/repository"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/prohmpiriya/courtside-tickets/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists  = fmt.Errorf("%w: user already exists", domain.ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrAuthentication)
	ErrUserInactive       = fmt.Errorf("%w: user is inactive", domain.ErrAuthentication)
	ErrSessionNotFound    = fmt.Errorf("%w: session not found", domain.ErrAuthentication)
	ErrTokenExpired       = fmt.Errorf("%w: refresh token expired", domain.ErrAuthentication)
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	RefreshTokenExpiry time.Duration
	BcryptCost         int
}

// authService implements AuthService
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      *auth.TokenManager
	config      *AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	tokens *auth.TokenManager,
	config *AuthServiceConfig,
) AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.RefreshTokenExpiry == 0 {
		config.RefreshTokenExpiry = 7 * 24 * time.Hour
	}
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		config:      config,
	}
}

// Register registers a new user
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.register")
	defer span.End()

	req.Normalize()
	span.SetAttributes(attribute.String("email", req.Email))

	user, err := newUser(req, domain.RoleUser, s.config.BcryptCost)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Check if user already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if exists {
		span.SetStatus(codes.Error, "user already exists")
		return nil, ErrUserAlreadyExists
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			err = ErrUserAlreadyExists
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp, err := s.openSession(ctx, user, userAgent, ip)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// Login authenticates a user
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.login")
	defer span.End()

	email := dto.NormalizeEmail(req.Email)
	span.SetAttributes(attribute.String("email", email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			span.SetStatus(codes.Error, "invalid credentials")
			return nil, ErrInvalidCredentials
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Verify password before revealing anything about the account
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		span.SetStatus(codes.Error, "user inactive")
		return nil, ErrUserInactive
	}

	resp, err := s.openSession(ctx, user, userAgent, ip)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", user.ID))
	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// RefreshToken rotates a refresh token: the old session is removed and a
// new one is opened.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.refresh_token")
	defer span.End()

	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if session == nil {
		span.SetStatus(codes.Error, "session not found")
		return nil, ErrSessionNotFound
	}

	span.SetAttributes(attribute.String("user_id", session.UserID))

	if session.IsExpired(time.Now()) {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		span.SetStatus(codes.Error, "token expired")
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !user.IsActive {
		span.SetStatus(codes.Error, "user inactive")
		return nil, ErrUserInactive
	}

	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resp, err := s.openSession(ctx, user, session.UserAgent, session.IP)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return resp, nil
}

// Logout logs out a user (invalidates session)
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.logout")
	defer span.End()

	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if session == nil {
		span.SetStatus(codes.Ok, "already logged out")
		return nil
	}

	span.SetAttributes(attribute.String("user_id", session.UserID))

	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// LogoutAll logs out all sessions for a user
func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.auth.logout_all")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// ValidateToken validates an access token and returns claims
func (s *authService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	_, span := telemetry.StartSpan(ctx, "service.auth.validate_token")
	defer span.End()

	claims, err := s.tokens.Parse(token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", claims.UserID))
	span.SetStatus(codes.Ok, "")
	return claims, nil
}

// Status reports whether userID belongs to an active account
func (s *authService) Status(ctx context.Context, userID string) (*dto.AuthStatusResponse, error) {
	if userID == "" {
		return &dto.AuthStatusResponse{IsAuthenticated: false}, nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return &dto.AuthStatusResponse{IsAuthenticated: false}, nil
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return &dto.AuthStatusResponse{IsAuthenticated: false}, nil
	}

	resp := dto.NewUserResponse(user)
	return &dto.AuthStatusResponse{IsAuthenticated: true, User: &resp}, nil
}

// openSession issues a token pair and stores the refresh session
func (s *authService) openSession(ctx context.Context, user *domain.User, userAgent, ip string) (*dto.AuthResponse, error) {
	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    now.Add(s.config.RefreshTokenExpiry),
		CreatedAt:    now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         dto.NewUserResponse(user),
	}, nil
}

// generateTokenPair generates access and refresh tokens
func (s *authService) generateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := s.tokens.Sign(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := auth.NewRefreshToken()
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokens.TTL().Seconds()),
	}, nil
}

// newUser validates a registration and builds the account with a hashed
// password. It does not store anything.
func newUser(req *dto.RegisterRequest, role domain.Role, cost int) (*domain.User, error) {
	if req.FirstName == "" || req.LastName == "" {
		return nil, domain.NewValidationError("name", "first and last name are required")
	}
	if ok, msg := req.ValidateEmail(); !ok {
		return nil, domain.NewValidationError("email", msg)
	}
	if ok, msg := req.ValidatePassword(); !ok {
		return nil, domain.NewValidationError("password", msg)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Location:     req.Location,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
