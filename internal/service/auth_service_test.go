package service

import (
	"context"
	"testing"
	"time"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (AuthService, *mockUserRepository, *mockSessionRepository) {
	userRepo := newMockUserRepository()
	sessionRepo := newMockSessionRepository()
	tokens := auth.NewTokenManager("test-secret-key", "courtside-test", 15*time.Minute)
	svc := NewAuthService(userRepo, sessionRepo, tokens, &AuthServiceConfig{
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		BcryptCost:         bcrypt.MinCost,
	})
	return svc, userRepo, sessionRepo
}

func validRegistration(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FirstName: "Larry",
		LastName:  "Bird",
		Email:     email,
		Password:  "Password1!",
		Phone:     "617-555-0133",
		Location:  "Boston",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		svc, userRepo, sessionRepo := newTestAuthService()

		resp, err := svc.Register(ctx, validRegistration("  Larry@Example.com "), "test-agent", "127.0.0.1")
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, int64(900), resp.ExpiresIn)
		assert.Equal(t, "larry@example.com", resp.User.Email)
		assert.Equal(t, "user", resp.User.Role)
		assert.False(t, resp.User.IsAdmin)
		assert.Equal(t, 1, sessionRepo.count())

		stored, err := userRepo.GetByEmail(ctx, "larry@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "Password1!", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Password1!")))
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, validRegistration("dup@example.com"), "", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, validRegistration("DUP@example.com"), "", "")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("weak password", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		req := validRegistration("weak@example.com")
		req.Password = "password"
		_, err := svc.Register(ctx, req, "", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid email", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		_, err := svc.Register(ctx, validRegistration("not-an-email"), "", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing name", func(t *testing.T) {
		svc, _, _ := newTestAuthService()
		req := validRegistration("noname@example.com")
		req.LastName = "  "
		_, err := svc.Register(ctx, req, "", "")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, _ := newTestAuthService()
	_, err := svc.Register(ctx, validRegistration("login@example.com"), "", "")
	require.NoError(t, err)

	t.Run("successful login", func(t *testing.T) {
		resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "LOGIN@example.com", Password: "Password1!"}, "", "")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		claims, err := svc.ValidateToken(ctx, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "login@example.com", Password: "Wrong1234!"}, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "Password1!"}, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, domain.ErrAuthentication)
	})

	t.Run("inactive user", func(t *testing.T) {
		user, err := userRepo.GetByEmail(ctx, "login@example.com")
		require.NoError(t, err)
		user.IsActive = false
		require.NoError(t, userRepo.Update(ctx, user))

		_, err = svc.Login(ctx, &dto.LoginRequest{Email: "login@example.com", Password: "Password1!"}, "", "")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		svc, _, sessionRepo := newTestAuthService()
		registered, err := svc.Register(ctx, validRegistration("refresh@example.com"), "", "")
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(ctx, registered.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)
		assert.Equal(t, 1, sessionRepo.count())

		_, err = svc.RefreshToken(ctx, registered.RefreshToken)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		svc, _, sessionRepo := newTestAuthService()
		registered, err := svc.Register(ctx, validRegistration("expired@example.com"), "", "")
		require.NoError(t, err)

		session, err := sessionRepo.GetByRefreshToken(ctx, registered.RefreshToken)
		require.NoError(t, err)
		session.ExpiresAt = time.Now().Add(-time.Hour)

		_, err = svc.RefreshToken(ctx, registered.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.Equal(t, 0, sessionRepo.count())
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _, sessionRepo := newTestAuthService()

	first, err := svc.Register(ctx, validRegistration("logout@example.com"), "", "")
	require.NoError(t, err)
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "logout@example.com", Password: "Password1!"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, sessionRepo.count())

	require.NoError(t, svc.Logout(ctx, first.RefreshToken))
	assert.Equal(t, 1, sessionRepo.count())

	// unknown tokens are already logged out
	require.NoError(t, svc.Logout(ctx, "unknown"))

	require.NoError(t, svc.LogoutAll(ctx, first.User.ID))
	assert.Equal(t, 0, sessionRepo.count())
}

func TestAuthService_Status(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService()
	registered, err := svc.Register(ctx, validRegistration("status@example.com"), "", "")
	require.NoError(t, err)

	status, err := svc.Status(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.True(t, status.IsAuthenticated)
	require.NotNil(t, status.User)
	assert.Equal(t, "status@example.com", status.User.Email)

	status, err = svc.Status(ctx, "")
	require.NoError(t, err)
	assert.False(t, status.IsAuthenticated)
	assert.Nil(t, status.User)

	status, err = svc.Status(ctx, "deleted-user")
	require.NoError(t, err)
	assert.False(t, status.IsAuthenticated)
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.ValidateToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	other := auth.NewTokenManager("another-secret", "courtside-test", time.Minute)
	token, err := other.Sign("user-1", "a@example.com", "user")
	require.NoError(t, err)
	_, err = svc.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
