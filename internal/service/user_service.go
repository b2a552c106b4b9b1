package service

import (
	"context"
	"errors"
	"strings"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/dto"
	"github.com/prohmpiriya/courtside-tickets/internal/repository"
	"github.com/prohmpiriya/courtside-tickets/pkg/logger"
	"github.com/prohmpiriya/courtside-tickets/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// userService implements UserService
type userService struct {
	users      repository.UserRepository
	bcryptCost int
	log        *logger.Logger
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository, bcryptCost int, log *logger.Logger) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &userService{users: users, bcryptCost: bcryptCost, log: log}
}

// GetProfile retrieves the caller's own account
func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrAuthentication
	}
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile updates the caller's own account. Empty fields are left as is.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update_profile", attribute.String("user_id", userID))

	user, err := s.updateProfile(ctx, userID, req)
	telemetry.EndSpan(span, err)
	return user, err
}

func (s *userService) updateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.FirstName); v != "" {
		user.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		user.LastName = v
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.TrimSpace(req.Location); v != "" {
		user.Location = v
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers lists every account ordered by first name
func (s *userService) ListUsers(ctx context.Context, caller Caller) ([]*domain.User, error) {
	if err := caller.admin(); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// GetUser retrieves any account
func (s *userService) GetUser(ctx context.Context, caller Caller, id string) (*domain.User, error) {
	if err := caller.admin(); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// UpdateUser edits any account. The role only changes when IsAdmin is set,
// and an admin can never drop their own admin role.
func (s *userService) UpdateUser(ctx context.Context, caller Caller, id string, req *dto.AdminUpdateUserRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.update", attribute.String("user_id", id))

	user, err := s.updateUser(ctx, caller, id, req)
	telemetry.EndSpan(span, err)
	return user, err
}

func (s *userService) updateUser(ctx context.Context, caller Caller, id string, req *dto.AdminUpdateUserRequest) (*domain.User, error) {
	if err := caller.admin(); err != nil {
		return nil, err
	}
	if ok, msg := req.Validate(); !ok {
		return nil, domain.NewValidationError("", msg)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := dto.NormalizeEmail(req.Email)
	if email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrEmailInUse
		}
	}

	if req.IsAdmin != nil {
		if id == caller.UserID && !*req.IsAdmin {
			return nil, domain.ErrCannotDemoteSelf
		}
		if *req.IsAdmin {
			user.Role = domain.RoleAdmin
		} else {
			user.Role = domain.RoleUser
		}
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Email = email
	user.Phone = strings.TrimSpace(req.Phone)
	user.Location = strings.TrimSpace(req.Location)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes an account together with its tickets
func (s *userService) DeleteUser(ctx context.Context, caller Caller, id string) (*dto.DeleteUserResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.delete", attribute.String("user_id", id))

	resp, err := s.deleteUser(ctx, caller, id)
	telemetry.EndSpan(span, err)
	return resp, err
}

func (s *userService) deleteUser(ctx context.Context, caller Caller, id string) (*dto.DeleteUserResponse, error) {
	if err := caller.admin(); err != nil {
		return nil, err
	}
	if id == caller.UserID {
		return nil, domain.ErrCannotDeleteSelf
	}

	deleted, err := s.users.DeleteWithTickets(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("user deleted",
		zap.String("user_id", id),
		zap.String("deleted_by", caller.UserID),
		zap.Int64("tickets_deleted", deleted),
	)
	return &dto.DeleteUserResponse{UserID: id, TicketsDeleted: deleted}, nil
}

// CreateFirstAdmin creates an admin account while none exists
func (s *userService) CreateFirstAdmin(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.user.create_first_admin")

	user, err := s.createFirstAdmin(ctx, req)
	telemetry.EndSpan(span, err)
	return user, err
}

func (s *userService) createFirstAdmin(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	user, err := newUser(req, domain.RoleAdmin, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	if err := s.users.CreateFirstAdmin(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.log.WithContext(ctx).Info("first admin created", zap.String("user_id", user.ID))
	return user, nil
}

// IsAdmin reports whether userID holds the admin role
func (s *userService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}
