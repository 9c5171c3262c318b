// Package permset defines permission sets and their user assignments.
// Permission sets are strictly additive on top of the profile baseline:
// assigning one can only widen what a user may do.
package permset

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// PermissionSet is a named additive permission container assignable to any
// number of users.
type PermissionSet struct {
	ID          id.PermissionSetID `json:"id" db:"id"`
	TenantID    string             `json:"tenant_id" db:"tenant_id"`
	Name        string             `json:"name" db:"name"`
	Description string             `json:"description,omitempty" db:"description"`
	IsActive    bool               `json:"is_active" db:"is_active"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" db:"updated_at"`
}

// Assignment links a user to a permission set. Deactivating the set leaves
// assignments in place but removes the set from permission resolution.
type Assignment struct {
	ID              id.AssignmentID    `json:"id" db:"id"`
	TenantID        string             `json:"tenant_id" db:"tenant_id"`
	UserID          string             `json:"user_id" db:"user_id"`
	PermissionSetID id.PermissionSetID `json:"permission_set_id" db:"permission_set_id"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
}

// ListFilter contains filters for listing permission sets.
type ListFilter struct {
	TenantID string `json:"tenant_id,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
	Search   string `json:"search,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
