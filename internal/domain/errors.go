package domain

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these to HTTP status codes; every specific
// error below wraps exactly one of them.
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication required")
	ErrAuthorization  = errors.New("not authorized")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
)

// Domain errors
var (
	// Ticket errors
	ErrTicketNotFound          = fmt.Errorf("ticket %w", ErrNotFound)
	ErrTicketNotEditable       = fmt.Errorf("%w: ticket can only be edited while pending", ErrConflict)
	ErrVersionConflict         = fmt.Errorf("%w: ticket was modified concurrently", ErrConflict)
	ErrInvalidStatusTransition = fmt.Errorf("%w: status transition not allowed", ErrConflict)

	// User errors
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailInUse          = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrAdminExists         = fmt.Errorf("%w: an admin account already exists", ErrConflict)
	ErrCannotDeleteSelf    = fmt.Errorf("%w: cannot delete your own account", ErrValidation)
	ErrCannotDemoteSelf    = fmt.Errorf("%w: cannot remove your own admin privileges", ErrAuthorization)
	ErrTicketOwnerMismatch = fmt.Errorf("ticket %w for this user", ErrNotFound)
)

// ValidationError describes a single rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError for field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if error is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
