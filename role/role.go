// Package role defines the Role entity and its store interface for the
// role hierarchy.
package role

import (
	"time"

	"github.com/masatokaneko/shareguard/id"
)

// Role is a node in the tenant's role hierarchy. A nil ParentID marks a
// top-level role. The hierarchy is treated as a forest but never trusted to
// be acyclic; every walk carries a visited set.
type Role struct {
	ID          id.RoleID  `json:"id" db:"id"`
	TenantID    string     `json:"tenant_id" db:"tenant_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description,omitempty" db:"description"`
	ParentID    *id.RoleID `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ListFilter contains filters for listing roles.
type ListFilter struct {
	TenantID string     `json:"tenant_id,omitempty"`
	ParentID *id.RoleID `json:"parent_id,omitempty"`
	Search   string     `json:"search,omitempty"`
	Limit    int        `json:"limit,omitempty"`
	Offset   int        `json:"offset,omitempty"`
}
