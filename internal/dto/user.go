package dto

import (
	"strings"
	"time"

	"github.com/prohmpiriya/courtside-tickets/internal/domain"
)

// UserResponse represents user data in response
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Role      string `json:"role"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// NewUserResponse converts a domain user
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Location:  u.Location,
		Role:      string(u.Role),
		IsAdmin:   u.IsAdmin(),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// NewUserListResponse converts a slice of domain users
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// UpdateProfileRequest represents a self-service profile update.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
	Phone     string `json:"phone" binding:"omitempty,max=32"`
	Location  string `json:"location" binding:"omitempty,max=200"`
}

// AdminUpdateUserRequest represents an admin edit of another account
type AdminUpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	IsAdmin   *bool  `json:"is_admin"`
}

// Validate validates the AdminUpdateUserRequest
func (r *AdminUpdateUserRequest) Validate() (bool, string) {
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" || strings.TrimSpace(r.Email) == "" {
		return false, "First name, last name, and email are required"
	}
	return ValidateEmail(NormalizeEmail(r.Email))
}

// DeleteUserResponse reports what a user deletion removed
type DeleteUserResponse struct {
	UserID         string `json:"user_id"`
	TicketsDeleted int64  `json:"tickets_deleted"`
}

// AdminCheckResponse answers whether the caller is an admin
type AdminCheckResponse struct {
	IsAdmin bool `json:"is_admin"`
}
