package session

import (
	"context"

	"github.com/parcauto/fleet-dashboard/internal/domain"
)

// UserContext holds the authenticated user for the current request
type UserContext struct {
	UserID     int
	Name       string
	Email      string
	Role       domain.UserRole
	EmployeeID string
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// IsChief reports whether the user holds the chief role. Chiefs can delete
// vehicles, validate or reject operations, and manage users. This is a
// UI-layer gate only: the backend enforces authorization independently.
func (u *UserContext) IsChief() bool {
	return u.Role == domain.RoleChief
}

// IsTechnician reports whether the user holds the technician role
func (u *UserContext) IsTechnician() bool {
	return u.Role == domain.RoleTechnician
}
