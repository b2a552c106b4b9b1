package di

import (
	"context"
	"errors"
	"fmt"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
	"github.com/prohmpiriya/courtside-tickets/internal/service"
	"github.com/prohmpiriya/courtside-tickets/pkg/middleware"
)

// accountRoles feeds the stored admin flag to middleware.RefreshRole
type accountRoles struct {
	users service.UserService
}

// NewRoleResolver adapts UserService for middleware.RefreshRole. A missing
// account is reported as middleware.ErrAccountNotFound; store failures pass
// through unchanged.
func NewRoleResolver(users service.UserService) middleware.RoleResolver {
	return accountRoles{users: users}
}

func (r accountRoles) IsAdmin(ctx context.Context, userID string) (bool, error) {
	isAdmin, err := r.users.IsAdmin(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, fmt.Errorf("%w: %v", middleware.ErrAccountNotFound, err)
	}
	return isAdmin, err
}
