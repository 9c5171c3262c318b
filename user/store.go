package user

import (
	"context"

	"github.com/masatokaneko/shareguard/id"
)

// Store defines persistence operations for user projections.
type Store interface {
	// UpsertUser creates or replaces the projection row for a user.
	UpsertUser(ctx context.Context, u *User) error

	// GetUser retrieves a user by tenant and id.
	GetUser(ctx context.Context, tenantID, userID string) (*User, error)

	// DeleteUser removes a user projection.
	DeleteUser(ctx context.Context, tenantID, userID string) error

	// ListUsers returns users matching the filter.
	ListUsers(ctx context.Context, filter *ListFilter) ([]*User, error)

	// ListUsersByRole returns user ids holding a role in a tenant.
	ListUsersByRole(ctx context.Context, tenantID string, roleID id.RoleID) ([]string, error)
}
